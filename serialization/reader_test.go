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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestReader(b ...byte) *Reader {
	return NewReader(bytes.NewReader(b), nil)
}

func TestWriter_VLQ(t *testing.T) {

	t.Parallel()

	type testCase struct {
		write    func(w *Writer)
		expected []byte
	}

	for name, testCase := range map[string]testCase{
		"u64 zero": {
			write:    func(w *Writer) { w.PutU64(0) },
			expected: []byte{0x00},
		},
		"u64 one byte": {
			write:    func(w *Writer) { w.PutU64(127) },
			expected: []byte{0x7F},
		},
		"u64 two bytes": {
			write:    func(w *Writer) { w.PutU64(300) },
			expected: []byte{0xAC, 0x02},
		},
		"u16 max": {
			write:    func(w *Writer) { w.PutU16(0xFFFF) },
			expected: []byte{0xFF, 0xFF, 0x03},
		},
		"i32 zero": {
			write:    func(w *Writer) { w.PutI32(0) },
			expected: []byte{0x00},
		},
		"i32 minus one": {
			write:    func(w *Writer) { w.PutI32(-1) },
			expected: []byte{0x01},
		},
		"i32 one": {
			write:    func(w *Writer) { w.PutI32(1) },
			expected: []byte{0x02},
		},
		"i64 minus 64": {
			write:    func(w *Writer) { w.PutI64(-64) },
			expected: []byte{0x7F},
		},
		"i64 64": {
			write:    func(w *Writer) { w.PutI64(64) },
			expected: []byte{0x80, 0x01},
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			w := NewWriter()
			testCase.write(w)
			assert.Equal(t, testCase.expected, w.Bytes())
		})
	}
}

func TestReader_VLQ(t *testing.T) {

	t.Parallel()

	t.Run("unsigned", func(t *testing.T) {
		t.Parallel()

		r := newTestReader(0xAC, 0x02, 0x7F)

		value, err := r.ReadU32("first")
		require.NoError(t, err)
		assert.Equal(t, uint32(300), value)

		value, err = r.ReadU32("second")
		require.NoError(t, err)
		assert.Equal(t, uint32(127), value)

		assert.Equal(t, 3, r.Offset())
	})

	t.Run("signed", func(t *testing.T) {
		t.Parallel()

		r := newTestReader(0x01, 0x80, 0x01, 0x03)

		i32, err := r.ReadI32("first")
		require.NoError(t, err)
		assert.Equal(t, int32(-1), i32)

		i64, err := r.ReadI64("second")
		require.NoError(t, err)
		assert.Equal(t, int64(64), i64)

		i16, err := r.ReadI16("third")
		require.NoError(t, err)
		assert.Equal(t, int16(-2), i16)
	})

	t.Run("too long", func(t *testing.T) {
		t.Parallel()

		r := newTestReader(0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01)

		_, err := r.ReadU64("value")
		require.ErrorAs(t, err, &MalformedVLQError{})
	})

	t.Run("overflow of width", func(t *testing.T) {
		t.Parallel()

		r := newTestReader(0x80, 0x80, 0x04)

		_, err := r.ReadU16("value")
		require.ErrorAs(t, err, &MalformedVLQError{})
	})

	t.Run("signed overflow of width", func(t *testing.T) {
		t.Parallel()

		w := NewWriter()
		w.PutI64(1 << 40)
		r := newTestReader(w.Bytes()...)

		_, err := r.ReadI32("value")
		require.ErrorAs(t, err, &MalformedVLQError{})
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		r := newTestReader(0x80)

		_, err := r.ReadU32("value")
		var truncatedErr TruncatedInputError
		require.ErrorAs(t, err, &truncatedErr)
		assert.Equal(t, "value", truncatedErr.Field)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		_, err := newTestReader().ReadU32("value")
		require.ErrorAs(t, err, &TruncatedInputError{})
	})
}

func TestReader_PeekDoesNotConsume(t *testing.T) {

	t.Parallel()

	r := newTestReader(0x42, 0x43)

	peeked, err := r.PeekU8("first")
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), peeked)
	assert.Equal(t, 0, r.Offset())

	read, err := r.ReadU8("first")
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), read)

	read, err = r.ReadU8("second")
	require.NoError(t, err)
	assert.Equal(t, byte(0x43), read)

	_, err = r.PeekU8("third")
	require.ErrorAs(t, err, &TruncatedInputError{})
}

func TestReader_ReadBytes(t *testing.T) {

	t.Parallel()

	r := newTestReader(1, 2, 3)

	b, err := r.ReadBytes(2, "bytes")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	_, err = r.ReadBytes(1<<30, "bytes")
	require.ErrorAs(t, err, &TruncatedInputError{})
}

func TestReader_ReadBool(t *testing.T) {

	t.Parallel()

	r := newTestReader(0, 1, 2)

	b, err := r.ReadBool("first")
	require.NoError(t, err)
	assert.False(t, b)

	b, err = r.ReadBool("second")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = r.ReadBool("third")
	require.ErrorAs(t, err, &InvalidDataError{})
}
