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
	"github.com/ergoplatform/sigma-go/values"
)

// Constant

type Constant struct {
	Constant values.Constant
}

var _ Expr = &Constant{}

func NewConstant(constant values.Constant) *Constant {
	return &Constant{
		Constant: constant,
	}
}

func (*Constant) isExpr() {}

func (*Constant) OpCode() opcode.OpCode {
	return opcode.Constant
}

func (c *Constant) Type() stype.SType {
	return c.Constant.Type
}

// ConstantPlaceholder

// ConstantPlaceholder refers to a constant of the enclosing tree's constant table.
type ConstantPlaceholder struct {
	ID           uint32
	ConstantType stype.SType
}

var _ Expr = &ConstantPlaceholder{}

func NewConstantPlaceholder(id uint32, constantType stype.SType) *ConstantPlaceholder {
	return &ConstantPlaceholder{
		ID:           id,
		ConstantType: constantType,
	}
}

func (*ConstantPlaceholder) isExpr() {}

func (*ConstantPlaceholder) OpCode() opcode.OpCode {
	return opcode.ConstantPlaceholder
}

func (p *ConstantPlaceholder) Type() stype.SType {
	return p.ConstantType
}
