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
	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/opcode"
	"github.com/ergoplatform/sigma-go/stype"
)

type BinOpKind uint8

const (
	BinOpUnknown BinOpKind = iota

	// Relations

	RelationLt
	RelationLe
	RelationGt
	RelationGe
	RelationEq
	RelationNEq

	// Arithmetic

	ArithMinus
	ArithPlus
	ArithMultiply
	ArithDivision
	ArithModulo
	ArithMin
	ArithMax

	// Logical

	LogicalOr
	LogicalAnd
	LogicalXor
)

var binOpCodes = map[BinOpKind]opcode.OpCode{
	RelationLt:    opcode.Lt,
	RelationLe:    opcode.Le,
	RelationGt:    opcode.Gt,
	RelationGe:    opcode.Ge,
	RelationEq:    opcode.Eq,
	RelationNEq:   opcode.NEq,
	ArithMinus:    opcode.Minus,
	ArithPlus:     opcode.Plus,
	ArithMultiply: opcode.Multiply,
	ArithDivision: opcode.Division,
	ArithModulo:   opcode.Modulo,
	ArithMin:      opcode.Min,
	ArithMax:      opcode.Max,
	LogicalOr:     opcode.BinOr,
	LogicalAnd:    opcode.BinAnd,
	LogicalXor:    opcode.BinXor,
}

var binOpKinds = func() map[opcode.OpCode]BinOpKind {
	kinds := make(map[opcode.OpCode]BinOpKind, len(binOpCodes))
	for kind, code := range binOpCodes {
		kinds[code] = kind
	}
	return kinds
}()

// BinOpKindFromOpCode returns the operation for an op code, and false if there is none.
func BinOpKindFromOpCode(code opcode.OpCode) (BinOpKind, bool) {
	kind, ok := binOpKinds[code]
	return kind, ok
}

func (k BinOpKind) OpCode() opcode.OpCode {
	code, ok := binOpCodes[k]
	if !ok {
		panic(errors.NewUnreachableError())
	}
	return code
}

func (k BinOpKind) IsRelation() bool {
	return k >= RelationLt && k <= RelationNEq
}

func (k BinOpKind) IsArithmetic() bool {
	return k >= ArithMinus && k <= ArithMax
}

func (k BinOpKind) IsLogical() bool {
	return k >= LogicalOr && k <= LogicalXor
}

func (k BinOpKind) Symbol() string {
	switch k {
	case RelationLt:
		return "<"
	case RelationLe:
		return "<="
	case RelationGt:
		return ">"
	case RelationGe:
		return ">="
	case RelationEq:
		return "=="
	case RelationNEq:
		return "!="
	case ArithMinus:
		return "-"
	case ArithPlus:
		return "+"
	case ArithMultiply:
		return "*"
	case ArithDivision:
		return "/"
	case ArithModulo:
		return "%"
	case ArithMin:
		return "min"
	case ArithMax:
		return "max"
	case LogicalOr:
		return "||"
	case LogicalAnd:
		return "&&"
	case LogicalXor:
		return "^"
	}
	panic(errors.NewUnreachableError())
}

// BinOp

type BinOp struct {
	Kind  BinOpKind
	Left  Expr
	Right Expr
}

var _ Expr = &BinOp{}

func NewBinOp(kind BinOpKind, left, right Expr) (*BinOp, error) {
	leftType := left.Type()
	rightType := right.Type()

	if !stype.Equal(leftType, rightType) {
		return nil, NewInvalidArgumentError(
			"operands of %s have different types: %s and %s",
			kind.Symbol(),
			leftType,
			rightType,
		)
	}

	switch {
	case kind == RelationEq || kind == RelationNEq:
		// any type

	case kind.IsRelation(), kind.IsArithmetic():
		if !stype.IsNumeric(leftType) {
			return nil, NewInvalidArgumentError(
				"operands of %s must be numeric, got %s",
				kind.Symbol(),
				leftType,
			)
		}

	case kind.IsLogical():
		if !stype.Equal(leftType, stype.SBoolean) {
			return nil, NewInvalidArgumentError(
				"operands of %s must be Boolean, got %s",
				kind.Symbol(),
				leftType,
			)
		}

	default:
		return nil, NewInvalidArgumentError("unknown binary operation %d", kind)
	}

	return &BinOp{
		Kind:  kind,
		Left:  left,
		Right: right,
	}, nil
}

func (*BinOp) isExpr() {}

func (b *BinOp) OpCode() opcode.OpCode {
	return b.Kind.OpCode()
}

func (b *BinOp) Type() stype.SType {
	if b.Kind.IsArithmetic() {
		return b.Left.Type()
	}
	return stype.SBoolean
}
