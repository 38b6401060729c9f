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

package interpreter

import (
	"fmt"

	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

// RegisterIDOutOfBoundsError

type RegisterIDOutOfBoundsError struct {
	Index int
}

var _ errors.UserError = RegisterIDOutOfBoundsError{}

func (RegisterIDOutOfBoundsError) IsUserError() {}

func (e RegisterIDOutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"register index %d is out of bounds, expected 0 to %d",
		e.Index,
		values.RegistersCount-1,
	)
}

// NotFoundError is reported for a missing register, binding, or optional value.
// Err is set if the lookup itself failed.

type NotFoundError struct {
	Message string
	Err     error
}

var _ errors.UserError = NotFoundError{}

func (NotFoundError) IsUserError() {}

func (e NotFoundError) Unwrap() error {
	return e.Err
}

func (e NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not found: %s: %s", e.Message, e.Err)
	}
	return fmt.Sprintf("not found: %s", e.Message)
}

// UnexpectedExprError is reported when an expression does not have the required type.

type UnexpectedExprError struct {
	Message string
}

var _ errors.UserError = UnexpectedExprError{}

func NewUnexpectedExprError(message string, args ...any) UnexpectedExprError {
	return UnexpectedExprError{
		Message: fmt.Sprintf(message, args...),
	}
}

func (UnexpectedExprError) IsUserError() {}

func (e UnexpectedExprError) Error() string {
	return fmt.Sprintf("unexpected expression: %s", e.Message)
}

// UnexpectedValueError is reported when a value does not have its expression's type.
// Constructors of the expressions prevent it for well-typed environments.

type UnexpectedValueError struct {
	Expected stype.SType
	Actual   values.Value
}

var _ errors.UserError = UnexpectedValueError{}

func (UnexpectedValueError) IsUserError() {}

func (e UnexpectedValueError) Error() string {
	return fmt.Sprintf(
		"unexpected value: expected %s, got %s",
		e.Expected,
		valueString(e.Actual),
	)
}

func valueString(value values.Value) string {
	if value == nil {
		return "nothing"
	}
	return value.String()
}

// ArithmeticError

type ArithmeticError struct {
	Operation string
	Message   string
}

var _ errors.UserError = ArithmeticError{}

func (ArithmeticError) IsUserError() {}

func (e ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error in %s: %s", e.Operation, e.Message)
}

// MethodInvocationError

type MethodInvocationError struct {
	Name string
	Err  error
}

var _ errors.UserError = MethodInvocationError{}

func (MethodInvocationError) IsUserError() {}

func (e MethodInvocationError) Unwrap() error {
	return e.Err
}

func (e MethodInvocationError) Error() string {
	return fmt.Sprintf("cannot invoke %s: %s", e.Name, e.Err)
}

// ParseError is reported when a tree or a register cannot be parsed.

type ParseError struct {
	Err error
}

var _ errors.UserError = ParseError{}

func (ParseError) IsUserError() {}

func (e ParseError) Unwrap() error {
	return e.Err
}

func (e ParseError) Error() string {
	return fmt.Sprintf("cannot parse expression: %s", e.Err)
}

// StackDepthLimitReachedError

type StackDepthLimitReachedError struct {
	Limit uint64
}

var _ errors.UserError = StackDepthLimitReachedError{}

func (StackDepthLimitReachedError) IsUserError() {}

func (e StackDepthLimitReachedError) Error() string {
	return fmt.Sprintf("stack depth limit of %d reached", e.Limit)
}

// ComputationLimitExceededError

type ComputationLimitExceededError struct {
	Limit uint64
}

var _ errors.UserError = ComputationLimitExceededError{}

func (ComputationLimitExceededError) IsUserError() {}

func (e ComputationLimitExceededError) Error() string {
	return fmt.Sprintf("computation limit of %d exceeded", e.Limit)
}
