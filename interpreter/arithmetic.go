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
	"math"
	"math/big"

	"github.com/ergoplatform/sigma-go/ast"
	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

type numericBounds struct {
	min *big.Int
	max *big.Int
}

var boundsByType = map[stype.PrimitiveType]numericBounds{
	stype.SByte:   {big.NewInt(math.MinInt8), big.NewInt(math.MaxInt8)},
	stype.SShort:  {big.NewInt(math.MinInt16), big.NewInt(math.MaxInt16)},
	stype.SInt:    {big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)},
	stype.SLong:   {big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)},
	stype.SBigInt: {values.MinBigInt, values.MaxBigInt},
}

// toBigInt returns the numeric value as an integer, together with its type.
func toBigInt(value values.Value) (*big.Int, stype.PrimitiveType, bool) {
	switch value := value.(type) {
	case values.Byte:
		return big.NewInt(int64(value)), stype.SByte, true
	case values.Short:
		return big.NewInt(int64(value)), stype.SShort, true
	case values.Int:
		return big.NewInt(int64(value)), stype.SInt, true
	case values.Long:
		return big.NewInt(int64(value)), stype.SLong, true
	case values.BigInt:
		return value.Int, stype.SBigInt, true
	}
	return nil, 0, false
}

// fromBigInt converts the result of an operation back to the operand type.
// The result must be within the bounds of the type.
func fromBigInt(operation string, i *big.Int, typ stype.PrimitiveType) (values.Value, error) {
	bounds, ok := boundsByType[typ]
	if !ok {
		panic(errors.NewUnreachableError())
	}
	if i.Cmp(bounds.min) < 0 || i.Cmp(bounds.max) > 0 {
		return nil, ArithmeticError{
			Operation: operation,
			Message:   typ.String() + " overflow",
		}
	}

	switch typ {
	case stype.SByte:
		return values.Byte(i.Int64()), nil
	case stype.SShort:
		return values.Short(i.Int64()), nil
	case stype.SInt:
		return values.Int(i.Int64()), nil
	case stype.SLong:
		return values.Long(i.Int64()), nil
	case stype.SBigInt:
		return values.BigInt{Int: i}, nil
	}
	panic(errors.NewUnreachableError())
}

func numericOperands(
	operandType stype.SType,
	left, right values.Value,
) (*big.Int, *big.Int, stype.PrimitiveType, error) {
	l, leftType, ok := toBigInt(left)
	if !ok || !stype.Equal(leftType, operandType) {
		return nil, nil, 0, UnexpectedValueError{
			Expected: operandType,
			Actual:   left,
		}
	}
	r, rightType, ok := toBigInt(right)
	if !ok || rightType != leftType {
		return nil, nil, 0, UnexpectedValueError{
			Expected: operandType,
			Actual:   right,
		}
	}
	return l, r, leftType, nil
}

// evalArithmetic applies an arithmetic operation with the overflow semantics
// of two's complement integers of the operand width: results which do not fit are errors.
// Division truncates towards zero, the remainder has the sign of the dividend.
func evalArithmetic(
	kind ast.BinOpKind,
	operandType stype.SType,
	left, right values.Value,
) (values.Value, error) {
	l, r, typ, err := numericOperands(operandType, left, right)
	if err != nil {
		return nil, err
	}

	operation := kind.Symbol()
	result := new(big.Int)

	switch kind {
	case ast.ArithPlus:
		result.Add(l, r)

	case ast.ArithMinus:
		result.Sub(l, r)

	case ast.ArithMultiply:
		result.Mul(l, r)

	case ast.ArithDivision, ast.ArithModulo:
		if r.Sign() == 0 {
			return nil, ArithmeticError{
				Operation: operation,
				Message:   "division by zero",
			}
		}
		if kind == ast.ArithDivision {
			result.Quo(l, r)
		} else {
			result.Rem(l, r)
		}

	case ast.ArithMin:
		if l.Cmp(r) <= 0 {
			result.Set(l)
		} else {
			result.Set(r)
		}

	case ast.ArithMax:
		if l.Cmp(r) >= 0 {
			result.Set(l)
		} else {
			result.Set(r)
		}

	default:
		panic(errors.NewUnreachableError())
	}

	return fromBigInt(operation, result, typ)
}

// evalRelation compares numeric values, or checks any two values for equality.
func evalRelation(
	kind ast.BinOpKind,
	operandType stype.SType,
	left, right values.Value,
) (values.Value, error) {
	switch kind {
	case ast.RelationEq:
		return values.Boolean(values.Equal(left, right)), nil
	case ast.RelationNEq:
		return values.Boolean(!values.Equal(left, right)), nil
	}

	l, r, _, err := numericOperands(operandType, left, right)
	if err != nil {
		return nil, err
	}
	cmp := l.Cmp(r)

	switch kind {
	case ast.RelationLt:
		return values.Boolean(cmp < 0), nil
	case ast.RelationLe:
		return values.Boolean(cmp <= 0), nil
	case ast.RelationGt:
		return values.Boolean(cmp > 0), nil
	case ast.RelationGe:
		return values.Boolean(cmp >= 0), nil
	}
	panic(errors.NewUnreachableError())
}
