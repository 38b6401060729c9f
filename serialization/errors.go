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
	"fmt"

	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/opcode"
)

// TruncatedInputError is returned when the input ends inside a field.
type TruncatedInputError struct {
	Field string
}

var _ errors.UserError = TruncatedInputError{}

func (TruncatedInputError) IsUserError() {}

func (e TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input: unexpected end of input while reading %s", e.Field)
}

// MalformedVLQError is returned for a variable-length integer that is too long,
// or does not fit into the width of the field.
type MalformedVLQError struct {
	Field string
}

var _ errors.UserError = MalformedVLQError{}

func (MalformedVLQError) IsUserError() {}

func (e MalformedVLQError) Error() string {
	return fmt.Sprintf("malformed variable-length integer for %s", e.Field)
}

// UnknownOpCodeError

type UnknownOpCodeError struct {
	OpCode opcode.OpCode
}

var _ errors.UserError = UnknownOpCodeError{}

func (UnknownOpCodeError) IsUserError() {}

func (e UnknownOpCodeError) Error() string {
	return fmt.Sprintf("unknown op code 0x%02x", byte(e.OpCode))
}

// UnknownTypeCodeError

type UnknownTypeCodeError struct {
	TypeCode byte
}

var _ errors.UserError = UnknownTypeCodeError{}

func (UnknownTypeCodeError) IsUserError() {}

func (e UnknownTypeCodeError) Error() string {
	return fmt.Sprintf("unknown type code %d", e.TypeCode)
}

// ConstantIndexOutOfBoundsError is returned for a placeholder referring
// past the end of the constant store.
type ConstantIndexOutOfBoundsError struct {
	Index uint32
	Size  int
}

var _ errors.UserError = ConstantIndexOutOfBoundsError{}

func (ConstantIndexOutOfBoundsError) IsUserError() {}

func (e ConstantIndexOutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"constant placeholder index %d out of bounds, store has %d constants",
		e.Index,
		e.Size,
	)
}

// UndeclaredValDefError is returned for a reference to a binding that was not declared before.
type UndeclaredValDefError struct {
	ID uint32
}

var _ errors.UserError = UndeclaredValDefError{}

func (UndeclaredValDefError) IsUserError() {}

func (e UndeclaredValDefError) Error() string {
	return fmt.Sprintf("reference to undeclared value definition %d", e.ID)
}

// InvalidExprError is returned when the operands read for a node are ill-typed.
type InvalidExprError struct {
	OpCode opcode.OpCode
	Err    error
}

var _ errors.UserError = InvalidExprError{}

func (InvalidExprError) IsUserError() {}

func (e InvalidExprError) Unwrap() error {
	return e.Err
}

func (e InvalidExprError) Error() string {
	return fmt.Sprintf("invalid %s expression: %s", e.OpCode, e.Err)
}

// InvalidDataError is returned for encoded data which does not form a valid value of its type.
type InvalidDataError struct {
	Message string
}

var _ errors.UserError = InvalidDataError{}

func (InvalidDataError) IsUserError() {}

func (e InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data: %s", e.Message)
}

// NotSupportedError is returned for types and values without an encoding.
type NotSupportedError struct {
	Message string
}

var _ errors.UserError = NotSupportedError{}

func (NotSupportedError) IsUserError() {}

func (e NotSupportedError) Error() string {
	return fmt.Sprintf("not supported: %s", e.Message)
}

// DepthLimitReachedError is returned for inputs nested deeper than MaxTreeDepth.
type DepthLimitReachedError struct {
	Limit int
}

var _ errors.UserError = DepthLimitReachedError{}

func (DepthLimitReachedError) IsUserError() {}

func (e DepthLimitReachedError) Error() string {
	return fmt.Sprintf("nesting depth limit of %d reached", e.Limit)
}

// TrailingBytesError is returned when input remains after a complete value or expression.
type TrailingBytesError struct {
	Count int
}

var _ errors.UserError = TrailingBytesError{}

func (TrailingBytesError) IsUserError() {}

func (e TrailingBytesError) Error() string {
	return fmt.Sprintf("%d unexpected trailing bytes", e.Count)
}

// UnknownMethodError is returned for a method id without a method in the receiver's table.
type UnknownMethodError struct {
	TypeCode byte
	MethodID byte
}

var _ errors.UserError = UnknownMethodError{}

func (UnknownMethodError) IsUserError() {}

func (e UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method %d of type %d", e.MethodID, e.TypeCode)
}

// UnresolvedPlaceholderError is returned when segregating the constants of an expression
// which still contains placeholders. Their constants are not known to the writer.
type UnresolvedPlaceholderError struct {
	Index uint32
}

var _ errors.UserError = UnresolvedPlaceholderError{}

func (UnresolvedPlaceholderError) IsUserError() {}

func (e UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf(
		"cannot segregate constants: placeholder %d refers to an unknown constant store",
		e.Index,
	)
}
