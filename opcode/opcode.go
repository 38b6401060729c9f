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

package opcode

import "fmt"

// OpCode identifies a node kind, both on the wire and for dispatch.
//
// First bytes up to LastConstantCode start a constant (they are type codes),
// all larger values are operations.
type OpCode byte

const (
	// Constant is the op code of literal constants. It never appears on the wire,
	// the constant's type code is written instead.
	Constant OpCode = 0

	FirstDataType    OpCode = 1
	LastDataType     OpCode = 111
	LastConstantCode OpCode = LastDataType + 1
)

// Operations
const (
	TaggedVariable      OpCode = 0x71
	ValUse              OpCode = 0x72
	ConstantPlaceholder OpCode = 0x73
	SubstConstants      OpCode = 0x74

	True               OpCode = 0x7F
	False              OpCode = 0x80
	UnitConstant       OpCode = 0x81
	ConcreteCollection OpCode = 0x83
	Tuple              OpCode = 0x86
	SelectField        OpCode = 0x8C

	Lt  OpCode = 0x8F
	Le  OpCode = 0x90
	Gt  OpCode = 0x91
	Ge  OpCode = 0x92
	Eq  OpCode = 0x93
	NEq OpCode = 0x94
	If  OpCode = 0x95

	Minus    OpCode = 0x99
	Plus     OpCode = 0x9A
	Multiply OpCode = 0x9C
	Division OpCode = 0x9D
	Modulo   OpCode = 0x9E
	Min      OpCode = 0xA1
	Max      OpCode = 0xA2

	Height      OpCode = 0xA3
	Inputs      OpCode = 0xA4
	Outputs     OpCode = 0xA5
	Self        OpCode = 0xA7
	MinerPubKey OpCode = 0xAC

	Fold OpCode = 0xB0

	ExtractRegisterAs OpCode = 0xC6

	CalcBlake2b256 OpCode = 0xCB
	CalcSha256     OpCode = 0xCC

	DeserializeContext  OpCode = 0xD4
	DeserializeRegister OpCode = 0xD5
	ValDef              OpCode = 0xD6
	FunDef              OpCode = 0xD7
	BlockValue          OpCode = 0xD8
	FuncValue           OpCode = 0xD9
	FuncApply           OpCode = 0xDA
	PropertyCall        OpCode = 0xDB
	MethodCall          OpCode = 0xDC
	Global              OpCode = 0xDD

	OptionGet OpCode = 0xE4

	BinOr  OpCode = 0xEC
	BinAnd OpCode = 0xED
	BinXor OpCode = 0xF4

	Context OpCode = 0xFE
)

// IsConstant reports whether a first byte starts a constant.
func IsConstant(b byte) bool {
	return OpCode(b) >= FirstDataType && OpCode(b) <= LastConstantCode
}

var names = map[OpCode]string{
	Constant:            "Constant",
	TaggedVariable:      "TaggedVariable",
	ValUse:              "ValUse",
	ConstantPlaceholder: "ConstantPlaceholder",
	SubstConstants:      "SubstConstants",
	True:                "True",
	False:               "False",
	UnitConstant:        "UnitConstant",
	ConcreteCollection:  "ConcreteCollection",
	Tuple:               "Tuple",
	SelectField:         "SelectField",
	Lt:                  "Lt",
	Le:                  "Le",
	Gt:                  "Gt",
	Ge:                  "Ge",
	Eq:                  "Eq",
	NEq:                 "NEq",
	If:                  "If",
	Minus:               "Minus",
	Plus:                "Plus",
	Multiply:            "Multiply",
	Division:            "Division",
	Modulo:              "Modulo",
	Min:                 "Min",
	Max:                 "Max",
	Height:              "Height",
	Inputs:              "Inputs",
	Outputs:             "Outputs",
	Self:                "Self",
	MinerPubKey:         "MinerPubKey",
	Fold:                "Fold",
	ExtractRegisterAs:   "ExtractRegisterAs",
	CalcBlake2b256:      "CalcBlake2b256",
	CalcSha256:          "CalcSha256",
	DeserializeContext:  "DeserializeContext",
	DeserializeRegister: "DeserializeRegister",
	ValDef:              "ValDef",
	FunDef:              "FunDef",
	BlockValue:          "BlockValue",
	FuncValue:           "FuncValue",
	FuncApply:           "FuncApply",
	PropertyCall:        "PropertyCall",
	MethodCall:          "MethodCall",
	Global:              "Global",
	OptionGet:           "OptionGet",
	BinOr:               "BinOr",
	BinAnd:              "BinAnd",
	BinXor:              "BinXor",
	Context:             "Context",
}

func (o OpCode) String() string {
	if name, ok := names[o]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(0x%02x)", byte(o))
}
