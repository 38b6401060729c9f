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

package interpreter

import (
	"time"

	"github.com/ergoplatform/sigma-go/ast"
	"github.com/ergoplatform/sigma-go/serialization"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

func registerID(index int) (values.RegisterID, error) {
	id, ok := values.RegisterIDFromIndex(index)
	if !ok {
		return 0, RegisterIDOutOfBoundsError{Index: index}
	}
	return id, nil
}

// GetRegister returns the contents of a box register, or nil if it is empty.
//
// The index is validated before the box is asked for the register.
// A failure of the box to look up the register is reported as NotFoundError.
func GetRegister(box values.Box, index int) (*values.Constant, error) {
	id, err := registerID(index)
	if err != nil {
		return nil, err
	}
	constant, err := box.GetRegister(id)
	if err != nil {
		return nil, NotFoundError{
			Message: "register " + id.String(),
			Err:     err,
		}
	}
	return constant, nil
}

// ExtractRegister returns the value of a box register as an Option.
// An empty register is None.
func ExtractRegister(box values.Box, index int, elemType stype.SType) (values.Opt, error) {
	constant, err := GetRegister(box, index)
	if err != nil {
		return values.Opt{}, err
	}
	if constant == nil {
		return values.NewNone(elemType), nil
	}
	if !stype.Equal(constant.Type, elemType) {
		return values.Opt{}, NewUnexpectedExprError(
			"register R%d has type %s, expected %s",
			index,
			constant.Type,
			elemType,
		)
	}
	return values.NewSome(elemType, constant.Value), nil
}

func (e evaluator) extractRegisterAs(box values.Box, index int, elemType stype.SType) (values.Value, error) {
	tracer := e.ctx.Config.Tracer
	startTime := time.Now()

	result, err := ExtractRegister(box, index, elemType)
	if err != nil {
		return nil, err
	}

	if tracer.enabled() {
		tracer.reportExtractRegisterTrace(index, result.IsDefined(), time.Since(startTime))
	}
	return result, nil
}

// deserializeRegister evaluates the expression stored in a register of the self box.
//
// A present register must contain a Coll[Byte], which is parsed with constants inline
// and must have the declared type. If the register is empty, or the box fails to
// look it up, the default is evaluated instead.
// A default must have the declared type, whether it is needed or not.
func (e evaluator) deserializeRegister(
	register uint8,
	expectedType stype.SType,
	defaultExpr ast.Expr,
) (values.Value, error) {
	index := int(register)
	id, err := registerID(index)
	if err != nil {
		return nil, err
	}

	if defaultExpr != nil && !stype.Equal(defaultExpr.Type(), expectedType) {
		return nil, NewUnexpectedExprError(
			"default of register %s has type %s, expected %s",
			id,
			defaultExpr.Type(),
			expectedType,
		)
	}

	logger := e.ctx.Config.Logger
	box := e.ctx.Context.SelfBox()

	constant, lookupErr := box.GetRegister(id)
	if lookupErr == nil && constant != nil {
		return e.evalRegisterExpr(id, constant, expectedType)
	}

	if lookupErr != nil {
		logger.Debug().
			Err(lookupErr).
			Stringer("register", id).
			Msg("register lookup failed")
	}

	if defaultExpr == nil {
		return nil, NotFoundError{
			Message: "register " + id.String() + " of the self box, without default",
			Err:     lookupErr,
		}
	}
	return e.eval(defaultExpr)
}

func (e evaluator) evalRegisterExpr(
	id values.RegisterID,
	constant *values.Constant,
	expectedType stype.SType,
) (values.Value, error) {
	if !stype.Equal(constant.Type, stype.ByteArray) {
		return nil, NewUnexpectedExprError(
			"register %s has type %s, expected %s",
			id,
			constant.Type,
			stype.ByteArray,
		)
	}
	coll, ok := constant.Value.(values.Coll)
	if !ok {
		return nil, UnexpectedValueError{Expected: stype.ByteArray, Actual: constant.Value}
	}
	encoded, ok := coll.Bytes()
	if !ok {
		return nil, UnexpectedValueError{Expected: stype.ByteArray, Actual: constant.Value}
	}

	tracer := e.ctx.Config.Tracer
	startTime := time.Now()

	expr, err := serialization.ParseExpr(encoded)
	if err != nil {
		return nil, ParseError{Err: err}
	}
	if !stype.Equal(expr.Type(), expectedType) {
		return nil, NewUnexpectedExprError(
			"expression in register %s has type %s, expected %s",
			id,
			expr.Type(),
			expectedType,
		)
	}

	if tracer.enabled() {
		tracer.reportDeserializeRegisterTrace(int(id), len(encoded), expectedType, time.Since(startTime))
	}
	e.ctx.Config.Logger.Debug().
		Stringer("register", id).
		Int("size", len(encoded)).
		Msg("evaluating register expression")

	return e.eval(expr)
}
