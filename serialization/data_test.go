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
	"bytes"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

func TestType_Encoding(t *testing.T) {

	t.Parallel()

	type testCase struct {
		typ      stype.SType
		expected []byte
	}

	for name, testCase := range map[string]testCase{
		"Int": {
			typ:      stype.SInt,
			expected: []byte{4},
		},
		"Box": {
			typ:      stype.SBox,
			expected: []byte{99},
		},
		"Coll[Byte]": {
			typ:      stype.ByteArray,
			expected: []byte{14},
		},
		"Coll[Coll[Byte]]": {
			typ:      stype.NewColl(stype.ByteArray),
			expected: []byte{26},
		},
		"Coll[Box]": {
			typ:      stype.BoxColl,
			expected: []byte{12, 99},
		},
		"Option[Int]": {
			typ:      stype.NewOption(stype.SInt),
			expected: []byte{40},
		},
		"Option[Coll[Byte]]": {
			typ:      stype.NewOption(stype.ByteArray),
			expected: []byte{50},
		},
		"Option[Box]": {
			typ:      stype.NewOption(stype.SBox),
			expected: []byte{36, 99},
		},
		"(Int, Int)": {
			typ:      stype.NewTuple(stype.SInt, stype.SInt),
			expected: []byte{88},
		},
		"(Int, Coll[Byte])": {
			typ:      stype.NewTuple(stype.SInt, stype.ByteArray),
			expected: []byte{64, 14},
		},
		"(Coll[Byte], Long)": {
			typ:      stype.NewTuple(stype.ByteArray, stype.SLong),
			expected: []byte{77, 14},
		},
		"(Coll[Byte], Coll[Byte])": {
			typ:      stype.NewTuple(stype.ByteArray, stype.ByteArray),
			expected: []byte{60, 14, 14},
		},
		"(Int, Long, Byte)": {
			typ:      stype.NewTuple(stype.SInt, stype.SLong, stype.SByte),
			expected: []byte{72, 4, 5, 2},
		},
		"(Int, Long, Byte, Short)": {
			typ:      stype.NewTuple(stype.SInt, stype.SLong, stype.SByte, stype.SShort),
			expected: []byte{84, 4, 5, 2, 3},
		},
		"(Int, Long, Byte, Short, Boolean)": {
			typ:      stype.NewTuple(stype.SInt, stype.SLong, stype.SByte, stype.SShort, stype.SBoolean),
			expected: []byte{96, 5, 4, 5, 2, 3, 1},
		},
		"Int => Boolean": {
			typ:      stype.NewFunc([]stype.SType{stype.SInt}, stype.SBoolean),
			expected: []byte{112, 1, 4, 1, 0},
		},
		"type variable": {
			typ:      stype.STypeVar{Name: "T"},
			expected: []byte{103, 1, 'T'},
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			w := NewWriter()
			require.NoError(t, WriteType(w, testCase.typ))
			assert.Equal(t, testCase.expected, w.Bytes())

			actual, err := ReadType(newTestReader(w.Bytes()...))
			require.NoError(t, err)
			assert.Equal(t, testCase.typ, actual)
		})
	}
}

func TestType_Invalid(t *testing.T) {

	t.Parallel()

	for name, input := range map[string][]byte{
		"zero":                    {0},
		"non-embeddable in range": {9},
		"unassigned":              {107},
		"coll of unassigned":      {12, 107},
		"short tuple":             {96, 1, 4},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadType(newTestReader(input...))
			require.Error(t, err)
		})
	}

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		_, err := ReadType(newTestReader(12))
		require.ErrorAs(t, err, &TruncatedInputError{})
	})

	t.Run("too deep", func(t *testing.T) {
		t.Parallel()

		input := bytes.Repeat([]byte{36}, MaxTreeDepth+1)
		input = append(input, 4)

		_, err := ReadType(newTestReader(input...))
		require.ErrorAs(t, err, &DepthLimitReachedError{})
	})
}

func roundTripConstant(t *testing.T, constant values.Constant) values.Constant {
	encoded, err := SerializeConstant(constant)
	require.NoError(t, err)

	decoded, err := ParseConstant(encoded)
	require.NoError(t, err)

	return decoded
}

func TestData_RoundTrip(t *testing.T) {

	t.Parallel()

	var point values.GroupElement
	point[0] = 0x02
	point[32] = 0xFF

	for name, constant := range map[string]values.Constant{
		"boolean":       values.BooleanConstant(true),
		"byte":          values.ByteConstant(-7),
		"short":         values.ShortConstant(-300),
		"int":           values.IntConstant(1 << 30),
		"long":          values.LongConstant(-1 << 62),
		"string":        values.StringConstant("héllo"),
		"bytes":         values.BytesConstant([]byte{1, 2, 3}),
		"unit":          values.NewConstant(stype.SUnit, values.Unit{}),
		"group element": values.NewConstant(stype.SGroupElement, point),
		"booleans": values.NewConstant(
			stype.NewColl(stype.SBoolean),
			values.NewColl(
				stype.SBoolean,
				values.Boolean(true),
				values.Boolean(false),
				values.Boolean(true),
				values.Boolean(true),
				values.Boolean(false),
				values.Boolean(false),
				values.Boolean(false),
				values.Boolean(false),
				values.Boolean(true),
			),
		),
		"ints": values.NewConstant(
			stype.NewColl(stype.SInt),
			values.NewColl(stype.SInt, values.Int(1), values.Int(-1)),
		),
		"empty longs": values.NewConstant(
			stype.NewColl(stype.SLong),
			values.NewColl(stype.SLong),
		),
		"some": values.NewConstant(
			stype.NewOption(stype.SInt),
			values.NewSome(stype.SInt, values.Int(5)),
		),
		"none": values.NewConstant(
			stype.NewOption(stype.ByteArray),
			values.NewNone(stype.ByteArray),
		),
		"tuple": values.NewConstant(
			stype.NewTuple(stype.SInt, stype.ByteArray),
			values.Tuple{values.Int(3), values.NewByteColl([]byte{9})},
		),
		"nested collections": values.NewConstant(
			stype.NewColl(stype.ByteArray),
			values.NewColl(
				stype.ByteArray,
				values.NewByteColl([]byte{1}),
				values.NewByteColl(nil),
			),
		),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, constant, roundTripConstant(t, constant))
		})
	}
}

func TestData_BooleanCollectionIsBitPacked(t *testing.T) {

	t.Parallel()

	constant := values.NewConstant(
		stype.NewColl(stype.SBoolean),
		values.NewColl(
			stype.SBoolean,
			values.Boolean(true),
			values.Boolean(false),
			values.Boolean(true),
		),
	)

	encoded, err := SerializeConstant(constant)
	require.NoError(t, err)

	// type, length, bits
	assert.Equal(t, []byte{13, 3, 0x05}, encoded)
}

func TestData_BooleanCollectionWordBoundaries(t *testing.T) {

	t.Parallel()

	for _, n := range []int{0, 1, 7, 8, 9, 63, 64, 65, 127} {
		items := make([]values.Value, n)
		for i := range items {
			items[i] = values.Boolean(i%3 == 0)
		}
		constant := values.NewConstant(
			stype.NewColl(stype.SBoolean),
			values.NewColl(stype.SBoolean, items...),
		)

		encoded, err := SerializeConstant(constant)
		require.NoError(t, err)
		// type, one length byte, packed bits
		require.Len(t, encoded, 2+(n+7)/8, "length %d", n)

		assert.Equal(t, constant, roundTripConstant(t, constant), "length %d", n)
	}
}

func TestData_BooleanCollectionPaddingIgnored(t *testing.T) {

	t.Parallel()

	decoded, err := ParseConstant([]byte{13, 3, 0xFD})
	require.NoError(t, err)

	expected := values.NewConstant(
		stype.NewColl(stype.SBoolean),
		values.NewColl(
			stype.SBoolean,
			values.Boolean(true),
			values.Boolean(false),
			values.Boolean(true),
		),
	)
	assert.Equal(t, expected, decoded)

	encoded, err := SerializeConstant(decoded)
	require.NoError(t, err)
	assert.Equal(t, []byte{13, 3, 0x05}, encoded)
}

func TestData_BigInt(t *testing.T) {

	t.Parallel()

	for _, i := range []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(127),
		big.NewInt(128),
		big.NewInt(-128),
		big.NewInt(-129),
		values.MaxBigInt,
		values.MinBigInt,
	} {
		constant := values.NewConstant(stype.SBigInt, values.BigInt{Int: i})
		decoded := roundTripConstant(t, constant)

		bigInt, ok := decoded.Value.(values.BigInt)
		require.True(t, ok)
		assert.Zero(t, i.Cmp(bigInt.Int), "expected %s, got %s", i, bigInt.Int)
	}

	assert.Equal(t, []byte{0x00, 0x80}, SignedBigIntToBigEndianBytes(big.NewInt(128)))
	assert.Equal(t, []byte{0x80}, SignedBigIntToBigEndianBytes(big.NewInt(-128)))
	assert.Equal(t, []byte{0xFF, 0x7F}, SignedBigIntToBigEndianBytes(big.NewInt(-129)))

	tooLarge := new(big.Int).Add(values.MaxBigInt, big.NewInt(1))
	_, err := SerializeConstant(values.NewConstant(stype.SBigInt, values.BigInt{Int: tooLarge}))
	require.ErrorAs(t, err, &InvalidDataError{})
}

func TestData_Invalid(t *testing.T) {

	t.Parallel()

	t.Run("value of wrong type", func(t *testing.T) {
		t.Parallel()

		_, err := SerializeConstant(values.NewConstant(stype.SInt, values.Long(1)))
		require.ErrorAs(t, err, &InvalidDataError{})
	})

	t.Run("box", func(t *testing.T) {
		t.Parallel()

		_, err := SerializeConstant(values.NewConstant(stype.SBox, values.BoxValue{}))
		require.ErrorAs(t, err, &NotSupportedError{})
	})

	t.Run("truncated collection", func(t *testing.T) {
		t.Parallel()

		_, err := ParseConstant([]byte{14, 3, 1, 2})
		require.ErrorAs(t, err, &TruncatedInputError{})
	})

	t.Run("invalid string", func(t *testing.T) {
		t.Parallel()

		_, err := ParseConstant([]byte{102, 1, 0xFF})
		require.ErrorAs(t, err, &InvalidDataError{})
	})

	t.Run("trailing bytes", func(t *testing.T) {
		t.Parallel()

		_, err := ParseConstant([]byte{4, 2, 0})
		var trailingErr TrailingBytesError
		require.ErrorAs(t, err, &trailingErr)
		assert.Equal(t, 1, trailingErr.Count)
	})
}

func TestData_RoundTripProperty(t *testing.T) {

	t.Parallel()

	properties := gopter.NewProperties(nil)

	properties.Property("long constants round-trip", prop.ForAll(
		func(l int64) bool {
			constant := values.LongConstant(l)
			encoded, err := SerializeConstant(constant)
			if err != nil {
				return false
			}
			decoded, err := ParseConstant(encoded)
			return err == nil && decoded == constant
		},
		gen.Int64(),
	))

	properties.Property("byte collections round-trip", prop.ForAll(
		func(b []byte) bool {
			constant := values.BytesConstant(b)
			encoded, err := SerializeConstant(constant)
			if err != nil {
				return false
			}
			decoded, err := ParseConstant(encoded)
			if err != nil {
				return false
			}
			coll, ok := decoded.Value.(values.Coll)
			if !ok {
				return false
			}
			actual, ok := coll.Bytes()
			return ok && bytes.Equal(b, actual)
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("boolean collections round-trip", prop.ForAll(
		func(bs []bool) bool {
			items := make([]values.Value, len(bs))
			for i, b := range bs {
				items[i] = values.Boolean(b)
			}
			constant := values.NewConstant(
				stype.NewColl(stype.SBoolean),
				values.NewColl(stype.SBoolean, items...),
			)
			encoded, err := SerializeConstant(constant)
			if err != nil {
				return false
			}
			decoded, err := ParseConstant(encoded)
			if err != nil {
				return false
			}
			coll, ok := decoded.Value.(values.Coll)
			if !ok || len(coll.Items) != len(bs) {
				return false
			}
			for i, item := range coll.Items {
				if item != values.Boolean(bs[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
