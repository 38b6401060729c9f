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

// Package serialization implements the binary format of types, data and expressions.
//
// Integers are encoded as unsigned LEB128 variable-length quantities,
// signed integers are ZigZag-encoded first.
package serialization

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/ergoplatform/sigma-go/errors"
)

// MaxTreeDepth bounds the nesting of expressions and types read from untrusted input.
const MaxTreeDepth = 110

// Reader reads the binary format.
//
// A Reader carries the parse state of a single tree: the constant store
// placeholders are resolved against and the types of value definitions
// read so far. It must not be shared between parses.
type Reader struct {
	r                      *bufio.Reader
	offset                 int
	constantStore          *ConstantStore
	substitutePlaceholders bool
	valDefTypes            *ValDefTypeStore
	depth                  int
}

// NewReader returns a reader which keeps constant placeholders in parsed trees.
func NewReader(r io.Reader, constantStore *ConstantStore) *Reader {
	if constantStore == nil {
		constantStore = NewConstantStore()
	}
	return &Reader{
		r:             bufio.NewReader(r),
		constantStore: constantStore,
		valDefTypes:   NewValDefTypeStore(),
	}
}

// NewReaderWithSubstitution returns a reader which replaces constant placeholders
// with the constants of the store they refer to.
func NewReaderWithSubstitution(r io.Reader, constantStore *ConstantStore) *Reader {
	reader := NewReader(r, constantStore)
	reader.substitutePlaceholders = true
	return reader
}

func (r *Reader) ConstantStore() *ConstantStore {
	return r.constantStore
}

func (r *Reader) SubstitutePlaceholders() bool {
	return r.substitutePlaceholders
}

func (r *Reader) ValDefTypeStore() *ValDefTypeStore {
	return r.valDefTypes
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.offset
}

func (r *Reader) enter() error {
	if r.depth >= MaxTreeDepth {
		return DepthLimitReachedError{Limit: MaxTreeDepth}
	}
	r.depth++
	return nil
}

func (r *Reader) leave() {
	r.depth--
}

func readError(err error, field string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return TruncatedInputError{Field: field}
	}
	return errors.NewExternalError(err)
}

// PeekU8 returns the next byte without consuming it.
func (r *Reader) PeekU8(field string) (byte, error) {
	b, err := r.r.Peek(1)
	if err != nil {
		return 0, readError(err, field)
	}
	return b[0], nil
}

func (r *Reader) ReadU8(field string) (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, readError(err, field)
	}
	r.offset++
	return b, nil
}

// ReadBytes reads exactly n bytes. The buffer only grows as input arrives,
// so a forged length cannot allocate more than the input holds.
func (r *Reader) ReadBytes(n int, field string) ([]byte, error) {
	var buf bytes.Buffer
	read, err := io.CopyN(&buf, r.r, int64(n))
	r.offset += int(read)
	if err != nil {
		return nil, readError(err, field)
	}
	return buf.Bytes(), nil
}

func (r *Reader) ReadBool(field string) (bool, error) {
	b, err := r.ReadU8(field)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, InvalidDataError{Message: "invalid boolean byte"}
}

// byteReader counts the bytes consumed by binary.ReadUvarint.
type byteReader struct {
	r *Reader
}

func (b byteReader) ReadByte() (byte, error) {
	c, err := b.r.r.ReadByte()
	if err == nil {
		b.r.offset++
	}
	return c, err
}

// ReadU64 reads an unsigned VLQ of at most 10 bytes.
func (r *Reader) ReadU64(field string) (uint64, error) {
	value, err := binary.ReadUvarint(byteReader{r})
	switch {
	case err == nil:
		return value, nil
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return 0, TruncatedInputError{Field: field}
	default:
		// the only other error is the overflow of 64 bits
		return 0, MalformedVLQError{Field: field}
	}
}

func (r *Reader) readUnsigned(max uint64, field string) (uint64, error) {
	value, err := r.ReadU64(field)
	if err != nil {
		return 0, err
	}
	if value > max {
		return 0, MalformedVLQError{Field: field}
	}
	return value, nil
}

func (r *Reader) ReadU16(field string) (uint16, error) {
	value, err := r.readUnsigned(math.MaxUint16, field)
	return uint16(value), err
}

func (r *Reader) ReadU32(field string) (uint32, error) {
	value, err := r.readUnsigned(math.MaxUint32, field)
	return uint32(value), err
}

func decodeZigZag(value uint64) int64 {
	return int64(value>>1) ^ -int64(value&1)
}

func (r *Reader) readSigned(min, max int64, field string) (int64, error) {
	value, err := r.ReadU64(field)
	if err != nil {
		return 0, err
	}
	decoded := decodeZigZag(value)
	if decoded < min || decoded > max {
		return 0, MalformedVLQError{Field: field}
	}
	return decoded, nil
}

func (r *Reader) ReadI16(field string) (int16, error) {
	value, err := r.readSigned(math.MinInt16, math.MaxInt16, field)
	return int16(value), err
}

func (r *Reader) ReadI32(field string) (int32, error) {
	value, err := r.readSigned(math.MinInt32, math.MaxInt32, field)
	return int32(value), err
}

func (r *Reader) ReadI64(field string) (int64, error) {
	return r.readSigned(math.MinInt64, math.MaxInt64, field)
}

// ensureConsumed fails if the input has bytes left.
func (r *Reader) ensureConsumed() error {
	rest, err := io.Copy(io.Discard, r.r)
	if err != nil {
		return errors.NewExternalError(err)
	}
	if rest > 0 {
		return TrailingBytesError{Count: int(rest)}
	}
	return nil
}
