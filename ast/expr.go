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

// Package ast contains the expression nodes of the tree language.
//
// The set of nodes is closed. Every node reports its op code and its static type,
// and every operation over nodes is an ExprVisitor, so adding a node
// requires handling it everywhere.
package ast

import (
	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/opcode"
	"github.com/ergoplatform/sigma-go/stype"
)

type Expr interface {
	isExpr()
	OpCode() opcode.OpCode
	Type() stype.SType
}

type ExprVisitor[T any] interface {
	VisitConstant(*Constant) (T, error)
	VisitConstantPlaceholder(*ConstantPlaceholder) (T, error)
	VisitValDef(*ValDef) (T, error)
	VisitValUse(*ValUse) (T, error)
	VisitBlockValue(*BlockValue) (T, error)
	VisitFuncValue(*FuncValue) (T, error)
	VisitTuple(*Tuple) (T, error)
	VisitSelectField(*SelectField) (T, error)
	VisitBinOp(*BinOp) (T, error)
	VisitIf(*If) (T, error)
	VisitContext(Context) (T, error)
	VisitGlobalVars(GlobalVars) (T, error)
	VisitFold(*Fold) (T, error)
	VisitPredefFunc(*PredefFunc) (T, error)
	VisitMethodCall(*MethodCall) (T, error)
	VisitPropertyCall(*PropertyCall) (T, error)
	VisitOptionGet(*OptionGet) (T, error)
	VisitExtractRegisterAs(*ExtractRegisterAs) (T, error)
	VisitDeserializeRegister(*DeserializeRegister) (T, error)
}

func AcceptExpr[T any](expr Expr, visitor ExprVisitor[T]) (T, error) {

	switch expr := expr.(type) {

	case *Constant:
		return visitor.VisitConstant(expr)

	case *ConstantPlaceholder:
		return visitor.VisitConstantPlaceholder(expr)

	case *ValDef:
		return visitor.VisitValDef(expr)

	case *ValUse:
		return visitor.VisitValUse(expr)

	case *BlockValue:
		return visitor.VisitBlockValue(expr)

	case *FuncValue:
		return visitor.VisitFuncValue(expr)

	case *Tuple:
		return visitor.VisitTuple(expr)

	case *SelectField:
		return visitor.VisitSelectField(expr)

	case *BinOp:
		return visitor.VisitBinOp(expr)

	case *If:
		return visitor.VisitIf(expr)

	case Context:
		return visitor.VisitContext(expr)

	case GlobalVars:
		return visitor.VisitGlobalVars(expr)

	case *Fold:
		return visitor.VisitFold(expr)

	case *PredefFunc:
		return visitor.VisitPredefFunc(expr)

	case *MethodCall:
		return visitor.VisitMethodCall(expr)

	case *PropertyCall:
		return visitor.VisitPropertyCall(expr)

	case *OptionGet:
		return visitor.VisitOptionGet(expr)

	case *ExtractRegisterAs:
		return visitor.VisitExtractRegisterAs(expr)

	case *DeserializeRegister:
		return visitor.VisitDeserializeRegister(expr)
	}

	panic(errors.NewUnreachableError())
}
