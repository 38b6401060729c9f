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
	"github.com/ergoplatform/sigma-go/opcode"
	"github.com/ergoplatform/sigma-go/stype"
)

// Fold

// Fold reduces a collection from left to right.
// FoldOp is a function of one (accumulator, item) tuple argument.
type Fold struct {
	Input  Expr
	Zero   Expr
	FoldOp Expr
}

var _ Expr = &Fold{}

func NewFold(input, zero, foldOp Expr) (*Fold, error) {
	collType, ok := input.Type().(stype.SColl)
	if !ok {
		return nil, NewInvalidArgumentError("expected collection, got %s", input.Type())
	}

	zeroType := zero.Type()
	expectedOpType := stype.NewFunc(
		[]stype.SType{
			stype.NewTuple(zeroType, collType.Elem),
		},
		zeroType,
	)
	if !stype.Equal(foldOp.Type(), expectedOpType) {
		return nil, NewInvalidArgumentError(
			"expected fold operation of type %s, got %s",
			expectedOpType,
			foldOp.Type(),
		)
	}

	return &Fold{
		Input:  input,
		Zero:   zero,
		FoldOp: foldOp,
	}, nil
}

func (*Fold) isExpr() {}

func (*Fold) OpCode() opcode.OpCode {
	return opcode.Fold
}

func (f *Fold) Type() stype.SType {
	return f.Zero.Type()
}
