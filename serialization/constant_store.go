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
	"github.com/ergoplatform/sigma-go/values"
)

// ConstantStore is the ordered table of constants segregated out of a tree.
//
// Constants added with Put are de-duplicated by their encoding,
// so equal constants share one index.
type ConstantStore struct {
	constants []values.Constant
	indices   map[string]uint32
}

func NewConstantStore(constants ...values.Constant) *ConstantStore {
	return &ConstantStore{
		constants: append([]values.Constant(nil), constants...),
	}
}

func (s *ConstantStore) Len() int {
	return len(s.constants)
}

// Get returns the constant at the index, and false if the index is out of bounds.
func (s *ConstantStore) Get(index uint32) (values.Constant, bool) {
	if uint64(index) >= uint64(len(s.constants)) {
		return values.Constant{}, false
	}
	return s.constants[index], true
}

// Constants returns the constants in index order.
func (s *ConstantStore) Constants() []values.Constant {
	return s.constants
}

// Put adds the constant, unless an equal constant is already stored,
// and returns its index.
func (s *ConstantStore) Put(constant values.Constant) (uint32, error) {
	encoded, err := SerializeConstant(constant)
	if err != nil {
		return 0, err
	}

	if s.indices == nil {
		s.indices = make(map[string]uint32, len(s.constants))
		for i, existing := range s.constants {
			existingEncoded, err := SerializeConstant(existing)
			if err != nil {
				return 0, err
			}
			key := string(existingEncoded)
			if _, ok := s.indices[key]; !ok {
				s.indices[key] = uint32(i)
			}
		}
	}

	key := string(encoded)
	if index, ok := s.indices[key]; ok {
		return index, nil
	}

	index := uint32(len(s.constants))
	s.constants = append(s.constants, constant)
	s.indices[key] = index
	return index, nil
}
