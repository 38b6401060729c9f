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

// OptionGet

// OptionGet unwraps an optional value, evaluation fails on None.
type OptionGet struct {
	Input    Expr
	elemType stype.SType
}

var _ Expr = &OptionGet{}

func NewOptionGet(input Expr) (*OptionGet, error) {
	optionType, ok := input.Type().(stype.SOption)
	if !ok {
		return nil, NewInvalidArgumentError("expected Option, got %s", input.Type())
	}
	return &OptionGet{
		Input:    input,
		elemType: optionType.Elem,
	}, nil
}

func (*OptionGet) isExpr() {}

func (*OptionGet) OpCode() opcode.OpCode {
	return opcode.OptionGet
}

func (o *OptionGet) Type() stype.SType {
	return o.elemType
}

// ExtractRegisterAs

// ExtractRegisterAs reads a register of a box, as an optional value.
//
// RegisterID is kept as given, the register range is validated during evaluation.
type ExtractRegisterAs struct {
	Input      Expr
	RegisterID int8
	ElemType   stype.SType
}

var _ Expr = &ExtractRegisterAs{}

// NewExtractRegisterAs expects the full Option type of the extracted value.
func NewExtractRegisterAs(input Expr, registerID int8, typ stype.SType) (*ExtractRegisterAs, error) {
	if !stype.Equal(input.Type(), stype.SBox) {
		return nil, NewInvalidArgumentError("expected Box, got %s", input.Type())
	}
	optionType, ok := typ.(stype.SOption)
	if !ok {
		return nil, NewInvalidArgumentError("expected Option type, got %s", typ)
	}
	return &ExtractRegisterAs{
		Input:      input,
		RegisterID: registerID,
		ElemType:   optionType.Elem,
	}, nil
}

func (*ExtractRegisterAs) isExpr() {}

func (*ExtractRegisterAs) OpCode() opcode.OpCode {
	return opcode.ExtractRegisterAs
}

func (e *ExtractRegisterAs) Type() stype.SType {
	return stype.NewOption(e.ElemType)
}

// DeserializeRegister

// DeserializeRegister evaluates the expression serialized in a register of SELF.
// Default is evaluated instead if the register is empty, and may be nil.
type DeserializeRegister struct {
	Register     uint8
	ExpectedType stype.SType
	Default      Expr
}

var _ Expr = &DeserializeRegister{}

func NewDeserializeRegister(register uint8, expectedType stype.SType, defaultExpr Expr) *DeserializeRegister {
	return &DeserializeRegister{
		Register:     register,
		ExpectedType: expectedType,
		Default:      defaultExpr,
	}
}

func (*DeserializeRegister) isExpr() {}

func (*DeserializeRegister) OpCode() opcode.OpCode {
	return opcode.DeserializeRegister
}

func (d *DeserializeRegister) Type() stype.SType {
	return d.ExpectedType
}
