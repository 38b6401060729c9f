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

// Package ergotree implements the container of a serialized tree:
// a header, the optional table of segregated constants, and the root expression.
package ergotree

import (
	"bytes"
	"fmt"

	"github.com/ergoplatform/sigma-go/ast"
	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/serialization"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

// Header is the first byte of a tree.
type Header byte

const (
	VersionMask             Header = 0x07
	SizeFlag                Header = 0x08
	ConstantSegregationFlag Header = 0x10

	reservedMask = ^(VersionMask | SizeFlag | ConstantSegregationFlag)
)

// MaxVersion is the largest tree version which can be stored in the header.
const MaxVersion = uint8(VersionMask)

func NewHeader(version uint8, segregation bool) Header {
	header := Header(version) & VersionMask
	if version > 0 {
		header |= SizeFlag
	}
	if segregation {
		header |= ConstantSegregationFlag
	}
	return header
}

func (h Header) Version() uint8 {
	return uint8(h & VersionMask)
}

func (h Header) HasSize() bool {
	return h&SizeFlag != 0
}

func (h Header) IsConstantSegregation() bool {
	return h&ConstantSegregationFlag != 0
}

// ErgoTree

type ErgoTree struct {
	Header Header
	// Constants is empty unless the header has the constant segregation flag.
	Constants []values.Constant
	// Root refers to Constants through placeholders.
	Root ast.Expr
}

// NewErgoTree returns a version 0 tree. If segregate is set,
// the constants of the root are moved to the constant table.
// A root with placeholders cannot be segregated, segregate its Proposition instead.
func NewErgoTree(root ast.Expr, segregate bool) (*ErgoTree, error) {
	tree := &ErgoTree{
		Header: NewHeader(0, segregate),
		Root:   root,
	}
	if !segregate {
		return tree, nil
	}

	store := serialization.NewConstantStore()
	w := serialization.NewWriterWithSegregation(store)
	if err := serialization.WriteExpr(w, root); err != nil {
		return nil, err
	}
	template, err := serialization.ParseExprWithStore(w.Bytes(), store, false)
	if err != nil {
		return nil, err
	}
	tree.Constants = store.Constants()
	tree.Root = template
	return tree, nil
}

// Parse parses a complete tree.
func Parse(b []byte) (*ErgoTree, error) {
	r := serialization.NewReader(bytes.NewReader(b), nil)

	headerByte, err := r.ReadU8("header")
	if err != nil {
		return nil, err
	}
	header := Header(headerByte)
	if header&reservedMask != 0 {
		return nil, InvalidHeaderError{
			Header:  header,
			Message: "reserved bits are set",
		}
	}
	if header.Version() > 0 && !header.HasSize() {
		return nil, InvalidHeaderError{
			Header:  header,
			Message: "trees of version 1 and later must have a size",
		}
	}

	if header.HasSize() {
		size, err := r.ReadU32("tree size")
		if err != nil {
			return nil, err
		}
		rest := len(b) - r.Offset()
		if uint64(size) != uint64(rest) {
			return nil, SizeMismatchError{
				Declared: int(size),
				Actual:   rest,
			}
		}
	}

	var constants []values.Constant
	if header.IsConstantSegregation() {
		count, err := r.ReadU32("constant count")
		if err != nil {
			return nil, err
		}
		constants = make([]values.Constant, 0, min(count, 256))
		for i := uint32(0); i < count; i++ {
			constant, err := serialization.ReadConstant(r)
			if err != nil {
				return nil, err
			}
			constants = append(constants, constant)
		}
	}

	rootBytes, err := r.ReadBytes(len(b)-r.Offset(), "root")
	if err != nil {
		return nil, err
	}
	root, err := serialization.ParseExprWithStore(
		rootBytes,
		serialization.NewConstantStore(constants...),
		false,
	)
	if err != nil {
		return nil, err
	}

	return &ErgoTree{
		Header:    header,
		Constants: constants,
		Root:      root,
	}, nil
}

// Bytes returns the encoding of the tree.
func (t *ErgoTree) Bytes() ([]byte, error) {
	body := serialization.NewWriter()

	if t.Header.IsConstantSegregation() {
		body.PutU32(uint32(len(t.Constants)))
		for _, constant := range t.Constants {
			if err := serialization.WriteConstant(body, constant); err != nil {
				return nil, err
			}
		}
	}

	if err := serialization.WriteExpr(body, t.Root); err != nil {
		return nil, err
	}

	w := serialization.NewWriter()
	w.PutU8(byte(t.Header))
	if t.Header.HasSize() {
		w.PutU32(uint32(len(body.Bytes())))
	}
	w.PutBytes(body.Bytes())
	return w.Bytes(), nil
}

// Template returns the encoding of the root, with placeholders for the segregated constants.
// Trees which differ only in their constants share the same template.
func (t *ErgoTree) Template() ([]byte, error) {
	return serialization.SerializeExpr(t.Root)
}

// Proposition returns the root with every placeholder replaced by its constant.
func (t *ErgoTree) Proposition() (ast.Expr, error) {
	if !t.Header.IsConstantSegregation() {
		return t.Root, nil
	}
	template, err := t.Template()
	if err != nil {
		return nil, err
	}
	return serialization.ParseExprWithStore(
		template,
		serialization.NewConstantStore(t.Constants...),
		true,
	)
}

// WithConstant returns a copy of the tree with the segregated constant
// at the index replaced. The new constant must have the type of the replaced one.
func (t *ErgoTree) WithConstant(index int, constant values.Constant) (*ErgoTree, error) {
	if index < 0 || index >= len(t.Constants) {
		return nil, ConstantIndexOutOfBoundsError{
			Index: index,
			Size:  len(t.Constants),
		}
	}
	existing := t.Constants[index]
	if !stype.Equal(existing.Type, constant.Type) {
		return nil, ConstantTypeMismatchError{
			Index:    index,
			Expected: existing.Type,
			Actual:   constant.Type,
		}
	}

	constants := make([]values.Constant, len(t.Constants))
	copy(constants, t.Constants)
	constants[index] = constant

	return &ErgoTree{
		Header:    t.Header,
		Constants: constants,
		Root:      t.Root,
	}, nil
}

func (t *ErgoTree) String() string {
	return fmt.Sprintf(
		"ErgoTree(version: %d, constants: %d)\n%s",
		t.Header.Version(),
		len(t.Constants),
		ast.String(t.Root),
	)
}

// Errors

type InvalidHeaderError struct {
	Header  Header
	Message string
}

var _ errors.UserError = InvalidHeaderError{}

func (InvalidHeaderError) IsUserError() {}

func (e InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid tree header 0x%02x: %s", byte(e.Header), e.Message)
}

type SizeMismatchError struct {
	Declared int
	Actual   int
}

var _ errors.UserError = SizeMismatchError{}

func (SizeMismatchError) IsUserError() {}

func (e SizeMismatchError) Error() string {
	return fmt.Sprintf("tree size mismatch: declared %d, got %d", e.Declared, e.Actual)
}

type ConstantIndexOutOfBoundsError struct {
	Index int
	Size  int
}

var _ errors.UserError = ConstantIndexOutOfBoundsError{}

func (ConstantIndexOutOfBoundsError) IsUserError() {}

func (e ConstantIndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("constant index %d out of bounds, tree has %d constants", e.Index, e.Size)
}

type ConstantTypeMismatchError struct {
	Index    int
	Expected stype.SType
	Actual   stype.SType
}

var _ errors.UserError = ConstantTypeMismatchError{}

func (ConstantTypeMismatchError) IsUserError() {}

func (e ConstantTypeMismatchError) Error() string {
	return fmt.Sprintf(
		"constant %d must have type %s, got %s",
		e.Index,
		e.Expected,
		e.Actual,
	)
}
