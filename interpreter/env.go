/*
 * Sigma - The expression tree language guarding spendable outputs
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package interpreter

import (
	"github.com/raviqqe/hamt"
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/ergoplatform/sigma-go/values"
)

type valDefEntry uint32

func (id valDefEntry) Hash() uint32 {
	return fnv1a.HashUint32(uint32(id))
}

func (id valDefEntry) Equal(other hamt.Entry) bool {
	otherID, ok := other.(valDefEntry)
	return ok && otherID == id
}

// Env maps the ids of bound values to their values.
//
// Env is persistent: Extend returns a new Env and leaves the receiver unchanged,
// so sibling evaluations never observe each other's bindings.
// The zero Env is empty.
type Env struct {
	values *hamt.Map
}

func NewEnv() Env {
	return Env{}
}

func (e Env) Extend(id uint32, value values.Value) Env {
	current := e.values
	if current == nil {
		empty := hamt.NewMap()
		current = &empty
	}
	extended := current.Insert(valDefEntry(id), value)
	return Env{values: &extended}
}

func (e Env) Get(id uint32) (values.Value, bool) {
	if e.values == nil {
		return nil, false
	}
	value := e.values.Find(valDefEntry(id))
	if value == nil {
		return nil, false
	}
	return value.(values.Value), true
}
