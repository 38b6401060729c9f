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
	"encoding/binary"
)

// Writer writes the binary format.
//
// A Writer created with a constant store segregates constants:
// every constant expression is added to the store, and a placeholder
// referring to it is written instead.
type Writer struct {
	buf           bytes.Buffer
	constantStore *ConstantStore
}

func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterWithSegregation returns a writer which moves constants into the given store.
func NewWriterWithSegregation(constantStore *ConstantStore) *Writer {
	return &Writer{
		constantStore: constantStore,
	}
}

func (w *Writer) ConstantStore() *ConstantStore {
	return w.constantStore
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) PutU8(b byte) {
	w.buf.WriteByte(b)
}

func (w *Writer) PutBytes(b []byte) {
	w.buf.Write(b)
}

func (w *Writer) PutBool(b bool) {
	if b {
		w.PutU8(1)
	} else {
		w.PutU8(0)
	}
}

func (w *Writer) PutU64(value uint64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], value)
	w.buf.Write(buf[:n])
}

func (w *Writer) PutU16(value uint16) {
	w.PutU64(uint64(value))
}

func (w *Writer) PutU32(value uint32) {
	w.PutU64(uint64(value))
}

func encodeZigZag(value int64) uint64 {
	return uint64(value<<1) ^ uint64(value>>63)
}

func (w *Writer) PutI16(value int16) {
	w.PutU64(encodeZigZag(int64(value)))
}

func (w *Writer) PutI32(value int32) {
	w.PutU64(encodeZigZag(int64(value)))
}

func (w *Writer) PutI64(value int64) {
	w.PutU64(encodeZigZag(value))
}
