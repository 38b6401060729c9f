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

// Type code ranges. Container codes are combined with an embeddable
// element code in a single byte, a zero element code means
// the element type follows.
const (
	primRange = stype.MaxEmbeddableCode + 1

	collTypeCode          = primRange
	nestedCollTypeCode    = 2 * primRange
	optionTypeCode        = 3 * primRange
	optionCollTypeCode    = 4 * primRange
	pair1TypeCode         = 5 * primRange
	pair2TypeCode         = 6 * primRange
	pairSymmetricTypeCode = 7 * primRange
	tupleTypeCode         = 8 * primRange

	tripleTypeCode    = pair2TypeCode
	quadrupleTypeCode = pairSymmetricTypeCode

	typeVarTypeCode = 103
	funcTypeCode    = 112
)

func embeddable(t stype.SType) (stype.PrimitiveType, bool) {
	primitive, ok := t.(stype.PrimitiveType)
	if !ok || !primitive.IsEmbeddable() {
		return 0, false
	}
	return primitive, true
}

// WriteType writes the type.
func WriteType(w *Writer, t stype.SType) error {
	switch t := t.(type) {
	case stype.PrimitiveType:
		if !t.IsValid() {
			return NotSupportedError{Message: t.String()}
		}
		w.PutU8(byte(t))
		return nil

	case stype.SColl:
		if elem, ok := embeddable(t.Elem); ok {
			w.PutU8(collTypeCode + byte(elem))
			return nil
		}
		if inner, ok := t.Elem.(stype.SColl); ok {
			if elem, ok := embeddable(inner.Elem); ok {
				w.PutU8(nestedCollTypeCode + byte(elem))
				return nil
			}
		}
		w.PutU8(collTypeCode)
		return WriteType(w, t.Elem)

	case stype.SOption:
		if elem, ok := embeddable(t.Elem); ok {
			w.PutU8(optionTypeCode + byte(elem))
			return nil
		}
		if inner, ok := t.Elem.(stype.SColl); ok {
			if elem, ok := embeddable(inner.Elem); ok {
				w.PutU8(optionCollTypeCode + byte(elem))
				return nil
			}
		}
		w.PutU8(optionTypeCode)
		return WriteType(w, t.Elem)

	case stype.STuple:
		return writeTupleType(w, t)

	case stype.STypeVar:
		name := []byte(t.Name)
		if len(name) > 255 {
			return NotSupportedError{Message: "type variable name too long"}
		}
		w.PutU8(typeVarTypeCode)
		w.PutU8(byte(len(name)))
		w.PutBytes(name)
		return nil

	case stype.SFunc:
		if len(t.Dom) > 255 {
			return NotSupportedError{Message: "too many function arguments"}
		}
		w.PutU8(funcTypeCode)
		w.PutU8(byte(len(t.Dom)))
		for _, arg := range t.Dom {
			if err := WriteType(w, arg); err != nil {
				return err
			}
		}
		if err := WriteType(w, t.Range); err != nil {
			return err
		}
		// no type parameters
		w.PutU8(0)
		return nil
	}

	return NotSupportedError{Message: "unknown type"}
}

func writeTypes(w *Writer, types []stype.SType) error {
	for _, t := range types {
		if err := WriteType(w, t); err != nil {
			return err
		}
	}
	return nil
}

func writeTupleType(w *Writer, t stype.STuple) error {
	switch len(t.Items) {
	case 2:
		first, second := t.Items[0], t.Items[1]
		if prim, ok := embeddable(first); ok {
			if stype.Equal(first, second) {
				w.PutU8(pairSymmetricTypeCode + byte(prim))
				return nil
			}
			w.PutU8(pair1TypeCode + byte(prim))
			return WriteType(w, second)
		}
		if prim, ok := embeddable(second); ok {
			w.PutU8(pair2TypeCode + byte(prim))
			return WriteType(w, first)
		}
		w.PutU8(pair1TypeCode)
		return writeTypes(w, t.Items)

	case 3:
		w.PutU8(tripleTypeCode)
		return writeTypes(w, t.Items)

	case 4:
		w.PutU8(quadrupleTypeCode)
		return writeTypes(w, t.Items)
	}

	if len(t.Items) < stype.MinTupleLength || len(t.Items) > stype.MaxTupleLength {
		return NotSupportedError{Message: "tuple length out of range"}
	}
	w.PutU8(tupleTypeCode)
	w.PutU8(byte(len(t.Items)))
	return writeTypes(w, t.Items)
}

// ReadType reads a type.
func ReadType(r *Reader) (stype.SType, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	c, err := r.ReadU8("type code")
	if err != nil {
		return nil, err
	}
	if c == 0 {
		return nil, UnknownTypeCodeError{TypeCode: c}
	}

	if c < tupleTypeCode {
		constructor := c / primRange
		primID := c % primRange

		switch constructor {
		case 0:
			return embeddableType(c)

		case 1:
			elem, err := readArgType(r, primID)
			if err != nil {
				return nil, err
			}
			return stype.NewColl(elem), nil

		case 2:
			elem, err := readArgType(r, primID)
			if err != nil {
				return nil, err
			}
			return stype.NewColl(stype.NewColl(elem)), nil

		case 3:
			elem, err := readArgType(r, primID)
			if err != nil {
				return nil, err
			}
			return stype.NewOption(elem), nil

		case 4:
			elem, err := readArgType(r, primID)
			if err != nil {
				return nil, err
			}
			return stype.NewOption(stype.NewColl(elem)), nil

		case 5:
			if primID == 0 {
				return readTupleItems(r, 2)
			}
			first, err := embeddableType(primID)
			if err != nil {
				return nil, err
			}
			second, err := ReadType(r)
			if err != nil {
				return nil, err
			}
			return stype.NewTuple(first, second), nil

		case 6:
			if primID == 0 {
				return readTupleItems(r, 3)
			}
			second, err := embeddableType(primID)
			if err != nil {
				return nil, err
			}
			first, err := ReadType(r)
			if err != nil {
				return nil, err
			}
			return stype.NewTuple(first, second), nil

		case 7:
			if primID == 0 {
				return readTupleItems(r, 4)
			}
			item, err := embeddableType(primID)
			if err != nil {
				return nil, err
			}
			return stype.NewTuple(item, item), nil
		}
	}

	switch c {
	case tupleTypeCode:
		length, err := r.ReadU8("tuple length")
		if err != nil {
			return nil, err
		}
		if length < stype.MinTupleLength {
			return nil, InvalidDataError{Message: "tuple length out of range"}
		}
		return readTupleItems(r, int(length))

	case typeVarTypeCode:
		length, err := r.ReadU8("type variable name length")
		if err != nil {
			return nil, err
		}
		name, err := r.ReadBytes(int(length), "type variable name")
		if err != nil {
			return nil, err
		}
		return stype.STypeVar{Name: string(name)}, nil

	case funcTypeCode:
		return readFuncType(r)
	}

	primitive := stype.PrimitiveType(c)
	if !primitive.IsValid() {
		return nil, UnknownTypeCodeError{TypeCode: c}
	}
	return primitive, nil
}

func embeddableType(code byte) (stype.SType, error) {
	primitive := stype.PrimitiveType(code)
	if !primitive.IsEmbeddable() {
		return nil, UnknownTypeCodeError{TypeCode: code}
	}
	return primitive, nil
}

func readArgType(r *Reader, primID byte) (stype.SType, error) {
	if primID == 0 {
		return ReadType(r)
	}
	return embeddableType(primID)
}

func readTupleItems(r *Reader, length int) (stype.SType, error) {
	items := make([]stype.SType, length)
	for i := range items {
		item, err := ReadType(r)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return stype.NewTuple(items...), nil
}

func readFuncType(r *Reader) (stype.SType, error) {
	domLength, err := r.ReadU8("function argument count")
	if err != nil {
		return nil, err
	}
	dom := make([]stype.SType, domLength)
	for i := range dom {
		dom[i], err = ReadType(r)
		if err != nil {
			return nil, err
		}
	}
	rng, err := ReadType(r)
	if err != nil {
		return nil, err
	}
	typeParams, err := r.ReadU8("function type parameter count")
	if err != nil {
		return nil, err
	}
	if typeParams != 0 {
		return nil, NotSupportedError{Message: "generic function types"}
	}
	return stype.NewFunc(dom, rng), nil
}
