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

// Context is the implicit transaction context value.
type Context struct{}

var _ Expr = Context{}

func (Context) isExpr() {}

func (Context) OpCode() opcode.OpCode {
	return opcode.Context
}

func (Context) Type() stype.SType {
	return stype.SContext
}

// GlobalVars are predefined variables read from the transaction context.
type GlobalVars uint8

const (
	Height GlobalVars = iota
	SelfBox
	Inputs
	Outputs
	MinerPubKey
)

var _ Expr = Height

func (GlobalVars) isExpr() {}

func (v GlobalVars) OpCode() opcode.OpCode {
	switch v {
	case Height:
		return opcode.Height
	case SelfBox:
		return opcode.Self
	case Inputs:
		return opcode.Inputs
	case Outputs:
		return opcode.Outputs
	case MinerPubKey:
		return opcode.MinerPubKey
	}
	panic(errors.NewUnreachableError())
}

func (v GlobalVars) Type() stype.SType {
	switch v {
	case Height:
		return stype.SInt
	case SelfBox:
		return stype.SBox
	case Inputs, Outputs:
		return stype.BoxColl
	case MinerPubKey:
		return stype.ByteArray
	}
	panic(errors.NewUnreachableError())
}

func (v GlobalVars) String() string {
	switch v {
	case Height:
		return "HEIGHT"
	case SelfBox:
		return "SELF"
	case Inputs:
		return "INPUTS"
	case Outputs:
		return "OUTPUTS"
	case MinerPubKey:
		return "minerPubKey"
	}
	panic(errors.NewUnreachableError())
}

// GlobalVarsFromOpCode returns the variable for an op code, and false if there is none.
func GlobalVarsFromOpCode(code opcode.OpCode) (GlobalVars, bool) {
	switch code {
	case opcode.Height:
		return Height, true
	case opcode.Self:
		return SelfBox, true
	case opcode.Inputs:
		return Inputs, true
	case opcode.Outputs:
		return Outputs, true
	case opcode.MinerPubKey:
		return MinerPubKey, true
	}
	return 0, false
}
