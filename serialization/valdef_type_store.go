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

package serialization

import (
	"github.com/ergoplatform/sigma-go/stype"
)

// ValDefTypeStore maps the ids of value definitions and function arguments
// read so far to their types.
type ValDefTypeStore struct {
	types map[uint32]stype.SType
}

func NewValDefTypeStore() *ValDefTypeStore {
	return &ValDefTypeStore{
		types: map[uint32]stype.SType{},
	}
}

func (s *ValDefTypeStore) Insert(id uint32, typ stype.SType) {
	s.types[id] = typ
}

func (s *ValDefTypeStore) Get(id uint32) (stype.SType, bool) {
	typ, ok := s.types[id]
	return typ, ok
}
