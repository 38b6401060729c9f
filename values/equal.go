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

package values

import (
	"bytes"

	"github.com/ergoplatform/sigma-go/stype"
)

// Equal reports whether two values are structurally equal.
// Boxes are equal if their ids are, functions are never equal.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case BigInt:
		b, ok := b.(BigInt)
		return ok && a.Int.Cmp(b.Int) == 0

	case Coll:
		b, ok := b.(Coll)
		if !ok ||
			!stype.Equal(a.Elem, b.Elem) ||
			len(a.Items) != len(b.Items) {

			return false
		}
		for i, item := range a.Items {
			if !Equal(item, b.Items[i]) {
				return false
			}
		}
		return true

	case Opt:
		b, ok := b.(Opt)
		if !ok ||
			!stype.Equal(a.Elem, b.Elem) ||
			a.IsDefined() != b.IsDefined() {

			return false
		}
		return !a.IsDefined() || Equal(a.Value, b.Value)

	case Tuple:
		b, ok := b.(Tuple)
		if !ok || len(a) != len(b) {
			return false
		}
		for i, item := range a {
			if !Equal(item, b[i]) {
				return false
			}
		}
		return true

	case BoxValue:
		b, ok := b.(BoxValue)
		return ok && bytes.Equal(a.Box.ID(), b.Box.ID())

	case ContextValue:
		// there is one context per evaluation
		_, ok := b.(ContextValue)
		return ok

	case Func:
		return false

	case nil:
		return b == nil
	}

	return a == b
}
