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

// ValDef

// ValDef binds the value of RHS to ID for the rest of the enclosing block.
type ValDef struct {
	ID  uint32
	RHS Expr
}

var _ Expr = &ValDef{}

func NewValDef(id uint32, rhs Expr) *ValDef {
	return &ValDef{
		ID:  id,
		RHS: rhs,
	}
}

func (*ValDef) isExpr() {}

func (*ValDef) OpCode() opcode.OpCode {
	return opcode.ValDef
}

func (d *ValDef) Type() stype.SType {
	return d.RHS.Type()
}

// ValUse

type ValUse struct {
	ID        uint32
	ValueType stype.SType
}

var _ Expr = &ValUse{}

func NewValUse(id uint32, valueType stype.SType) *ValUse {
	return &ValUse{
		ID:        id,
		ValueType: valueType,
	}
}

func (*ValUse) isExpr() {}

func (*ValUse) OpCode() opcode.OpCode {
	return opcode.ValUse
}

func (u *ValUse) Type() stype.SType {
	return u.ValueType
}

// BlockValue

type BlockValue struct {
	Items  []*ValDef
	Result Expr
}

var _ Expr = &BlockValue{}

func NewBlockValue(items []*ValDef, result Expr) *BlockValue {
	return &BlockValue{
		Items:  items,
		Result: result,
	}
}

func (*BlockValue) isExpr() {}

func (*BlockValue) OpCode() opcode.OpCode {
	return opcode.BlockValue
}

func (b *BlockValue) Type() stype.SType {
	return b.Result.Type()
}

// FuncValue

type FuncArg struct {
	ID   uint32
	Type stype.SType
}

// FuncValue is a lambda. Its arguments are bound like ValDefs while the body is evaluated.
type FuncValue struct {
	Args []FuncArg
	Body Expr
}

var _ Expr = &FuncValue{}

func NewFuncValue(args []FuncArg, body Expr) *FuncValue {
	return &FuncValue{
		Args: args,
		Body: body,
	}
}

func (*FuncValue) isExpr() {}

func (*FuncValue) OpCode() opcode.OpCode {
	return opcode.FuncValue
}

func (f *FuncValue) Type() stype.SType {
	return f.FuncType()
}

func (f *FuncValue) FuncType() stype.SFunc {
	dom := make([]stype.SType, len(f.Args))
	for i, arg := range f.Args {
		dom[i] = arg.Type
	}
	return stype.NewFunc(dom, f.Body.Type())
}
