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
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"

	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/opcode"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

// Predef is the calling contract of a predefined global function.
type Predef struct {
	OpCode     opcode.OpCode
	Name       string
	ArgTypes   []stype.SType
	ResultType stype.SType
	Invoke     func(args []values.Value) (values.Value, error)
}

func hashFunction(hash func([]byte) []byte) func(args []values.Value) (values.Value, error) {
	return func(args []values.Value) (values.Value, error) {
		input, ok := args[0].(values.Coll)
		if !ok {
			return nil, errors.NewDefaultUserError("expected Coll[Byte], got %s", args[0])
		}
		bytes, ok := input.Bytes()
		if !ok {
			return nil, errors.NewDefaultUserError("expected Coll[Byte], got %s", values.TypeOf(input))
		}
		return values.NewByteColl(hash(bytes)), nil
	}
}

var Blake2b256Func = &Predef{
	OpCode:     opcode.CalcBlake2b256,
	Name:       "blake2b256",
	ArgTypes:   []stype.SType{stype.ByteArray},
	ResultType: stype.ByteArray,
	Invoke: hashFunction(func(data []byte) []byte {
		sum := blake2b.Sum256(data)
		return sum[:]
	}),
}

var Sha256Func = &Predef{
	OpCode:     opcode.CalcSha256,
	Name:       "sha256",
	ArgTypes:   []stype.SType{stype.ByteArray},
	ResultType: stype.ByteArray,
	Invoke: hashFunction(func(data []byte) []byte {
		sum := sha256.Sum256(data)
		return sum[:]
	}),
}

var predefs = map[opcode.OpCode]*Predef{
	Blake2b256Func.OpCode: Blake2b256Func,
	Sha256Func.OpCode:     Sha256Func,
}

// LookupPredef returns the predefined function with the given op code, if any.
func LookupPredef(code opcode.OpCode) (*Predef, bool) {
	predef, ok := predefs[code]
	return predef, ok
}

// PredefFunc

type PredefFunc struct {
	Func *Predef
	Args []Expr
}

var _ Expr = &PredefFunc{}

func NewPredefFunc(function *Predef, args ...Expr) (*PredefFunc, error) {
	if len(args) != len(function.ArgTypes) {
		return nil, NewInvalidArgumentError(
			"%s expects %d arguments, got %d",
			function.Name,
			len(function.ArgTypes),
			len(args),
		)
	}
	for i, arg := range args {
		if !stype.Equal(arg.Type(), function.ArgTypes[i]) {
			return nil, NewInvalidArgumentError(
				"argument %d of %s must be %s, got %s",
				i,
				function.Name,
				function.ArgTypes[i],
				arg.Type(),
			)
		}
	}
	return &PredefFunc{
		Func: function,
		Args: args,
	}, nil
}

func (*PredefFunc) isExpr() {}

func (p *PredefFunc) OpCode() opcode.OpCode {
	return p.Func.OpCode
}

func (p *PredefFunc) Type() stype.SType {
	return p.Func.ResultType
}
