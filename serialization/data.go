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
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"

	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

// maxBigIntBytes is the length of the longest two's complement encoding of a BigInt.
const maxBigIntBytes = values.BigIntBits / 8

func mismatchError(t stype.SType, v values.Value) error {
	return InvalidDataError{
		Message: fmt.Sprintf("value %s does not have type %s", v, t),
	}
}

// WriteData writes the value, which must have the given type.
func WriteData(w *Writer, t stype.SType, v values.Value) error {
	switch t := t.(type) {
	case stype.PrimitiveType:
		return writePrimitiveData(w, t, v)

	case stype.SColl:
		coll, ok := v.(values.Coll)
		if !ok {
			return mismatchError(t, v)
		}
		return writeCollData(w, t.Elem, coll.Items)

	case stype.SOption:
		opt, ok := v.(values.Opt)
		if !ok {
			return mismatchError(t, v)
		}
		if !opt.IsDefined() {
			w.PutU8(0)
			return nil
		}
		w.PutU8(1)
		return WriteData(w, t.Elem, opt.Value)

	case stype.STuple:
		tuple, ok := v.(values.Tuple)
		if !ok || len(tuple) != len(t.Items) {
			return mismatchError(t, v)
		}
		for i, item := range tuple {
			if err := WriteData(w, t.Items[i], item); err != nil {
				return err
			}
		}
		return nil
	}

	return NotSupportedError{
		Message: fmt.Sprintf("data of type %s", t),
	}
}

func writePrimitiveData(w *Writer, t stype.PrimitiveType, v values.Value) error {
	switch t {
	case stype.SBoolean:
		b, ok := v.(values.Boolean)
		if !ok {
			return mismatchError(t, v)
		}
		w.PutBool(bool(b))

	case stype.SByte:
		b, ok := v.(values.Byte)
		if !ok {
			return mismatchError(t, v)
		}
		w.PutU8(byte(b))

	case stype.SShort:
		s, ok := v.(values.Short)
		if !ok {
			return mismatchError(t, v)
		}
		w.PutI16(int16(s))

	case stype.SInt:
		i, ok := v.(values.Int)
		if !ok {
			return mismatchError(t, v)
		}
		w.PutI32(int32(i))

	case stype.SLong:
		l, ok := v.(values.Long)
		if !ok {
			return mismatchError(t, v)
		}
		w.PutI64(int64(l))

	case stype.SBigInt:
		i, ok := v.(values.BigInt)
		if !ok {
			return mismatchError(t, v)
		}
		bytes := SignedBigIntToBigEndianBytes(i.Int)
		if len(bytes) > maxBigIntBytes {
			return InvalidDataError{Message: "BigInt out of range"}
		}
		w.PutU16(uint16(len(bytes)))
		w.PutBytes(bytes)

	case stype.SGroupElement:
		point, ok := v.(values.GroupElement)
		if !ok {
			return mismatchError(t, v)
		}
		w.PutBytes(point[:])

	case stype.SUnit:
		if _, ok := v.(values.Unit); !ok {
			return mismatchError(t, v)
		}

	case stype.SString:
		s, ok := v.(values.String)
		if !ok {
			return mismatchError(t, v)
		}
		if uint64(len(s)) > math.MaxUint32 {
			return InvalidDataError{Message: "string too long"}
		}
		w.PutU32(uint32(len(s)))
		w.PutBytes([]byte(s))

	default:
		return NotSupportedError{
			Message: fmt.Sprintf("data of type %s", t),
		}
	}

	return nil
}

func writeCollData(w *Writer, elem stype.SType, items []values.Value) error {
	if len(items) > math.MaxUint16 {
		return InvalidDataError{Message: "collection too long"}
	}
	w.PutU16(uint16(len(items)))

	switch {
	case stype.Equal(elem, stype.SBoolean):
		bits := bitset.New(uint(len(items)))
		for i, item := range items {
			b, ok := item.(values.Boolean)
			if !ok {
				return mismatchError(elem, item)
			}
			if b {
				bits.Set(uint(i))
			}
		}
		w.PutBytes(packBits(bits, len(items)))

	case stype.Equal(elem, stype.SByte):
		bytes := make([]byte, len(items))
		for i, item := range items {
			b, ok := item.(values.Byte)
			if !ok {
				return mismatchError(elem, item)
			}
			bytes[i] = byte(b)
		}
		w.PutBytes(bytes)

	default:
		for _, item := range items {
			if err := WriteData(w, elem, item); err != nil {
				return err
			}
		}
	}

	return nil
}

// packBits packs the first n bits, least significant bit first.
func packBits(bits *bitset.BitSet, n int) []byte {
	words := bits.Words()
	buf := make([]byte, 8*len(words), 8*len(words)+8)
	for i, word := range words {
		binary.LittleEndian.PutUint64(buf[8*i:], word)
	}
	size := (n + 7) / 8
	for len(buf) < size {
		buf = append(buf, 0)
	}
	return buf[:size]
}

// unpackBits is the inverse of packBits. Bits at n and beyond are cleared.
func unpackBits(packed []byte, n int) *bitset.BitSet {
	if n == 0 {
		return bitset.New(0)
	}
	buf := make([]byte, 8*((n+63)/64))
	copy(buf, packed)
	words := make([]uint64, len(buf)/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(buf[8*i:])
	}
	return bitset.From(words).Shrink(uint(n - 1))
}

// ReadData reads a value of the given type.
func ReadData(r *Reader, t stype.SType) (values.Value, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	switch t := t.(type) {
	case stype.PrimitiveType:
		return readPrimitiveData(r, t)

	case stype.SColl:
		return readCollData(r, t.Elem)

	case stype.SOption:
		tag, err := r.ReadU8("option tag")
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			return values.NewNone(t.Elem), nil
		case 1:
			value, err := ReadData(r, t.Elem)
			if err != nil {
				return nil, err
			}
			return values.NewSome(t.Elem, value), nil
		}
		return nil, InvalidDataError{Message: "invalid option tag"}

	case stype.STuple:
		tuple := make(values.Tuple, len(t.Items))
		for i, itemType := range t.Items {
			item, err := ReadData(r, itemType)
			if err != nil {
				return nil, err
			}
			tuple[i] = item
		}
		return tuple, nil
	}

	return nil, NotSupportedError{
		Message: fmt.Sprintf("data of type %s", t),
	}
}

func readPrimitiveData(r *Reader, t stype.PrimitiveType) (values.Value, error) {
	switch t {
	case stype.SBoolean:
		b, err := r.ReadBool("Boolean")
		return values.Boolean(b), err

	case stype.SByte:
		b, err := r.ReadU8("Byte")
		return values.Byte(b), err

	case stype.SShort:
		s, err := r.ReadI16("Short")
		return values.Short(s), err

	case stype.SInt:
		i, err := r.ReadI32("Int")
		return values.Int(i), err

	case stype.SLong:
		l, err := r.ReadI64("Long")
		return values.Long(l), err

	case stype.SBigInt:
		length, err := r.ReadU16("BigInt length")
		if err != nil {
			return nil, err
		}
		if length == 0 || length > maxBigIntBytes {
			return nil, InvalidDataError{Message: "BigInt length out of range"}
		}
		bytes, err := r.ReadBytes(int(length), "BigInt")
		if err != nil {
			return nil, err
		}
		return values.BigInt{Int: BigEndianBytesToSignedBigInt(bytes)}, nil

	case stype.SGroupElement:
		bytes, err := r.ReadBytes(values.GroupElementLength, "GroupElement")
		if err != nil {
			return nil, err
		}
		var point values.GroupElement
		copy(point[:], bytes)
		return point, nil

	case stype.SUnit:
		return values.Unit{}, nil

	case stype.SString:
		length, err := r.ReadU32("String length")
		if err != nil {
			return nil, err
		}
		bytes, err := r.ReadBytes(int(length), "String")
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(bytes) {
			return nil, InvalidDataError{Message: "invalid UTF-8 string"}
		}
		return values.String(bytes), nil
	}

	return nil, NotSupportedError{
		Message: fmt.Sprintf("data of type %s", t),
	}
}

func readCollData(r *Reader, elem stype.SType) (values.Value, error) {
	length, err := r.ReadU16("collection length")
	if err != nil {
		return nil, err
	}
	n := int(length)

	switch {
	case stype.Equal(elem, stype.SBoolean):
		packed, err := r.ReadBytes((n+7)/8, "Coll[Boolean]")
		if err != nil {
			return nil, err
		}
		bits := unpackBits(packed, n)
		items := make([]values.Value, n)
		for i := range items {
			items[i] = values.Boolean(bits.Test(uint(i)))
		}
		return values.NewColl(elem, items...), nil

	case stype.Equal(elem, stype.SByte):
		bytes, err := r.ReadBytes(n, "Coll[Byte]")
		if err != nil {
			return nil, err
		}
		return values.NewByteColl(bytes), nil
	}

	items := make([]values.Value, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		item, err := ReadData(r, elem)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return values.NewColl(elem, items...), nil
}

// SignedBigIntToBigEndianBytes returns the minimal two's complement encoding.
func SignedBigIntToBigEndianBytes(bigInt *big.Int) []byte {

	switch bigInt.Sign() {
	case -1:
		twosComplement := new(big.Int).Neg(bigInt)
		twosComplement.Sub(twosComplement, big.NewInt(1))
		bytes := twosComplement.Bytes()
		for i := range bytes {
			bytes[i] ^= 0xff
		}
		// Pad with 0xFF to prevent misinterpretation as positive
		if len(bytes) == 0 || bytes[0]&0x80 == 0 {
			return append([]byte{0xff}, bytes...)
		}
		return bytes

	case 0:
		return []byte{0}

	case 1:
		bytes := bigInt.Bytes()
		// Pad with 0x0 to prevent misinterpretation as negative
		if len(bytes) > 0 && bytes[0]&0x80 != 0 {
			return append([]byte{0x0}, bytes...)
		}
		return bytes

	default:
		panic(errors.NewUnreachableError())
	}
}

// BigEndianBytesToSignedBigInt decodes a two's complement encoding.
func BigEndianBytesToSignedBigInt(bytes []byte) *big.Int {
	result := new(big.Int).SetBytes(bytes)
	if len(bytes) > 0 && bytes[0]&0x80 != 0 {
		offset := new(big.Int).Lsh(big.NewInt(1), uint(len(bytes)*8))
		result.Sub(result, offset)
	}
	return result
}
