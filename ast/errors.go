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

package ast

import (
	"fmt"

	"github.com/ergoplatform/sigma-go/errors"
)

// InvalidArgumentError is returned when a node is constructed
// from operands of the wrong type.
type InvalidArgumentError struct {
	Message string
}

var _ errors.UserError = InvalidArgumentError{}

func NewInvalidArgumentError(message string, args ...any) InvalidArgumentError {
	return InvalidArgumentError{
		Message: fmt.Sprintf(message, args...),
	}
}

func (InvalidArgumentError) IsUserError() {}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Message)
}
