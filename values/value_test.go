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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ergoplatform/sigma-go/stype"
)

func TestTypeOf(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value    Value
		expected stype.SType
	}{
		"boolean": {Boolean(true), stype.SBoolean},
		"int":     {Int(1), stype.SInt},
		"long":    {Long(1), stype.SLong},
		"bytes":   {NewByteColl([]byte{1, 2}), stype.ByteArray},
		"none":    {NewNone(stype.SLong), stype.NewOption(stype.SLong)},
		"some":    {NewSome(stype.SInt, Int(4)), stype.NewOption(stype.SInt)},
		"tuple": {
			Tuple{Int(1), NewByteColl(nil)},
			stype.NewTuple(stype.SInt, stype.ByteArray),
		},
		"unit": {Unit{}, stype.SUnit},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.True(t,
				stype.Equal(test.expected, TypeOf(test.value)),
				"expected %s, got %s", test.expected, TypeOf(test.value),
			)
		})
	}
}

func TestRegisterIDFromIndex(t *testing.T) {
	t.Parallel()

	for i := 0; i < RegistersCount; i++ {
		id, ok := RegisterIDFromIndex(i)
		require.True(t, ok)
		assert.Equal(t, RegisterID(i), id)
	}

	for _, i := range []int{-1, 10, 127} {
		_, ok := RegisterIDFromIndex(i)
		assert.False(t, ok, "index %d", i)
	}

	assert.True(t, R3.IsMandatory())
	assert.False(t, R4.IsMandatory())
	assert.Equal(t, "R7", R7.String())
}

func TestCollBytes(t *testing.T) {
	t.Parallel()

	bytes, ok := NewByteColl([]byte{0xff, 0x01}).Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0x01}, bytes)

	_, ok = NewColl(stype.SInt, Int(1)).Bytes()
	assert.False(t, ok)
}

func TestNewBigInt(t *testing.T) {
	t.Parallel()

	_, ok := NewBigInt(MaxBigInt)
	assert.True(t, ok)

	_, ok = NewBigInt(new(big.Int).Add(MaxBigInt, big.NewInt(1)))
	assert.False(t, ok)

	_, ok = NewBigInt(new(big.Int).Sub(MinBigInt, big.NewInt(1)))
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Some(Coll(1.toByte, 2.toByte))", NewSome(stype.ByteArray, NewByteColl([]byte{1, 2})).String())
	assert.Equal(t, "(1, 2L)", Tuple{Int(1), Long(2)}.String())
	assert.Equal(t, "None", NewNone(stype.SInt).String())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, Equal(Int(1), Int(1)))
	assert.False(t, Equal(Int(1), Long(1)))
	assert.True(t, Equal(NewBigIntFromInt64(3), NewBigIntFromInt64(3)))
	assert.False(t, Equal(NewBigIntFromInt64(3), NewBigIntFromInt64(4)))
	assert.True(t, Equal(NewByteColl([]byte{1, 2}), NewByteColl([]byte{1, 2})))
	assert.False(t, Equal(NewByteColl([]byte{1, 2}), NewByteColl([]byte{1})))
	assert.False(t, Equal(NewColl(stype.SInt), NewColl(stype.SLong)))
	assert.True(t, Equal(NewNone(stype.SInt), NewNone(stype.SInt)))
	assert.False(t, Equal(NewNone(stype.SInt), NewSome(stype.SInt, Int(1))))
	assert.True(t, Equal(Tuple{Int(1), String("a")}, Tuple{Int(1), String("a")}))
	assert.False(t, Equal(Tuple{Int(1), String("a")}, Tuple{Int(1), String("b")}))
	assert.True(t, Equal(Unit{}, Unit{}))
}
