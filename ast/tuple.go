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

// Tuple

type Tuple struct {
	Items []Expr
}

var _ Expr = &Tuple{}

func NewTuple(items ...Expr) (*Tuple, error) {
	if len(items) < stype.MinTupleLength || len(items) > stype.MaxTupleLength {
		return nil, NewInvalidArgumentError(
			"tuple must have %d to %d items, got %d",
			stype.MinTupleLength,
			stype.MaxTupleLength,
			len(items),
		)
	}
	return &Tuple{Items: items}, nil
}

func (*Tuple) isExpr() {}

func (*Tuple) OpCode() opcode.OpCode {
	return opcode.Tuple
}

func (t *Tuple) Type() stype.SType {
	items := make([]stype.SType, len(t.Items))
	for i, item := range t.Items {
		items[i] = item.Type()
	}
	return stype.NewTuple(items...)
}

// SelectField

// SelectField selects a tuple item. FieldIndex is 1-based.
type SelectField struct {
	Input      Expr
	FieldIndex uint8
	fieldType  stype.SType
}

var _ Expr = &SelectField{}

func NewSelectField(input Expr, fieldIndex uint8) (*SelectField, error) {
	tupleType, ok := input.Type().(stype.STuple)
	if !ok {
		return nil, NewInvalidArgumentError("expected tuple, got %s", input.Type())
	}
	if fieldIndex < 1 || int(fieldIndex) > len(tupleType.Items) {
		return nil, NewInvalidArgumentError(
			"field index %d is out of bounds for %s",
			fieldIndex,
			tupleType,
		)
	}
	return &SelectField{
		Input:      input,
		FieldIndex: fieldIndex,
		fieldType:  tupleType.Items[fieldIndex-1],
	}, nil
}

func (*SelectField) isExpr() {}

func (*SelectField) OpCode() opcode.OpCode {
	return opcode.SelectField
}

func (s *SelectField) Type() stype.SType {
	return s.fieldType
}

// If

type If struct {
	Condition   Expr
	TrueBranch  Expr
	FalseBranch Expr
}

var _ Expr = &If{}

func NewIf(condition, trueBranch, falseBranch Expr) (*If, error) {
	if !stype.Equal(condition.Type(), stype.SBoolean) {
		return nil, NewInvalidArgumentError("condition must be Boolean, got %s", condition.Type())
	}
	if !stype.Equal(trueBranch.Type(), falseBranch.Type()) {
		return nil, NewInvalidArgumentError(
			"branches have different types: %s and %s",
			trueBranch.Type(),
			falseBranch.Type(),
		)
	}
	return &If{
		Condition:   condition,
		TrueBranch:  trueBranch,
		FalseBranch: falseBranch,
	}, nil
}

func (*If) isExpr() {}

func (*If) OpCode() opcode.OpCode {
	return opcode.If
}

func (i *If) Type() stype.SType {
	return i.TrueBranch.Type()
}
