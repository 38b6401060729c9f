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

package chain

import (
	"fmt"

	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/values"
)

// InvalidBoxError

type InvalidBoxError struct {
	Message string
}

var _ errors.UserError = InvalidBoxError{}

func NewInvalidBoxError(message string, args ...any) InvalidBoxError {
	return InvalidBoxError{
		Message: fmt.Sprintf(message, args...),
	}
}

func (InvalidBoxError) IsUserError() {}

func (e InvalidBoxError) Error() string {
	return fmt.Sprintf("invalid box: %s", e.Message)
}

// InvalidRegisterError is reported when the stored contents of a register cannot be read.

type InvalidRegisterError struct {
	Register values.RegisterID
	Err      error
}

var _ errors.UserError = InvalidRegisterError{}

func (InvalidRegisterError) IsUserError() {}

func (e InvalidRegisterError) Unwrap() error {
	return e.Err
}

func (e InvalidRegisterError) Error() string {
	return fmt.Sprintf("cannot read register %s: %s", e.Register, e.Err)
}

// InvalidContextError

type InvalidContextError struct {
	Message string
}

var _ errors.UserError = InvalidContextError{}

func NewInvalidContextError(message string, args ...any) InvalidContextError {
	return InvalidContextError{
		Message: fmt.Sprintf(message, args...),
	}
}

func (InvalidContextError) IsUserError() {}

func (e InvalidContextError) Error() string {
	return fmt.Sprintf("invalid context: %s", e.Message)
}

// SnapshotError is reported when a snapshot cannot be decoded.

type SnapshotError struct {
	Err error
}

var _ errors.UserError = SnapshotError{}

func (SnapshotError) IsUserError() {}

func (e SnapshotError) Unwrap() error {
	return e.Err
}

func (e SnapshotError) Error() string {
	return fmt.Sprintf("invalid snapshot: %s", e.Err)
}
