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
	"github.com/ergoplatform/sigma-go/values"
)

// Receiver type codes of container types.
const (
	CollTypeCode   uint8 = 12
	OptionTypeCode uint8 = 36
	TupleTypeCode  uint8 = 96
)

// TypeCode returns the code identifying the method table of a receiver type.
func TypeCode(t stype.SType) (uint8, bool) {
	switch t := t.(type) {
	case stype.PrimitiveType:
		return uint8(t), true
	case stype.SColl:
		return CollTypeCode, true
	case stype.SOption:
		return OptionTypeCode, true
	case stype.STuple:
		return TupleTypeCode, true
	}
	return 0, false
}

// SMethod is a method of a receiver type.
//
// The result type is specialised on the receiver and argument types when a call is constructed,
// and Invoke is resolved at the same time, so evaluation never dispatches on runtime values.
type SMethod struct {
	TypeCode   uint8
	MethodID   uint8
	Name       string
	IsProperty bool
	ArgCount   int
	ResultType func(obj stype.SType, args []stype.SType) (stype.SType, error)
	Invoke     func(obj values.Value, args []values.Value) (values.Value, error)
}

type methodKey struct {
	typeCode uint8
	methodID uint8
}

var methods = map[methodKey]*SMethod{}

func registerMethods(list ...*SMethod) {
	for _, method := range list {
		key := methodKey{method.TypeCode, method.MethodID}
		if _, ok := methods[key]; ok {
			panic(errors.NewUnexpectedError("duplicate method %s", method.Name))
		}
		methods[key] = method
	}
}

// LookupMethod returns the method with the given id of the receiver type code.
func LookupMethod(typeCode uint8, methodID uint8) (*SMethod, bool) {
	method, ok := methods[methodKey{typeCode, methodID}]
	return method, ok
}

func fixedResult(result stype.SType) func(stype.SType, []stype.SType) (stype.SType, error) {
	return func(stype.SType, []stype.SType) (stype.SType, error) {
		return result, nil
	}
}

func unexpectedReceiver(method string, obj values.Value) error {
	return errors.NewDefaultUserError("invalid receiver for %s: %s", method, obj)
}

// Box

func boxMethod(id uint8, name string, result stype.SType, get func(values.Box) values.Value) *SMethod {
	return &SMethod{
		TypeCode:   uint8(stype.SBox),
		MethodID:   id,
		Name:       name,
		IsProperty: true,
		ResultType: fixedResult(result),
		Invoke: func(obj values.Value, _ []values.Value) (values.Value, error) {
			box, ok := obj.(values.BoxValue)
			if !ok {
				return nil, unexpectedReceiver(name, obj)
			}
			return get(box.Box), nil
		},
	}
}

var (
	BoxValueMethod = boxMethod(1, "value", stype.SLong, func(box values.Box) values.Value {
		return values.Long(box.Amount())
	})
	BoxPropositionBytesMethod = boxMethod(2, "propositionBytes", stype.ByteArray, func(box values.Box) values.Value {
		return values.NewByteColl(box.ScriptBytes())
	})
	BoxIDMethod = boxMethod(5, "id", stype.ByteArray, func(box values.Box) values.Value {
		return values.NewByteColl(box.ID())
	})
	BoxCreationInfoMethod = boxMethod(6, "creationInfo", values.CreationInfoType, func(box values.Box) values.Value {
		return values.CreationInfo(box)
	})
)

// Coll

func collElem(obj stype.SType) (stype.SType, error) {
	collType, ok := obj.(stype.SColl)
	if !ok {
		return nil, NewInvalidArgumentError("expected collection, got %s", obj)
	}
	return collType.Elem, nil
}

func collIndex(name string, obj values.Value, index values.Value) (values.Coll, int, bool, error) {
	coll, ok := obj.(values.Coll)
	if !ok {
		return values.Coll{}, 0, false, unexpectedReceiver(name, obj)
	}
	i, ok := index.(values.Int)
	if !ok {
		return values.Coll{}, 0, false, errors.NewDefaultUserError("invalid index for %s: %s", name, index)
	}
	inBounds := i >= 0 && int(i) < len(coll.Items)
	return coll, int(i), inBounds, nil
}

var (
	CollSizeMethod = &SMethod{
		TypeCode:   CollTypeCode,
		MethodID:   1,
		Name:       "size",
		IsProperty: true,
		ResultType: func(obj stype.SType, _ []stype.SType) (stype.SType, error) {
			if _, err := collElem(obj); err != nil {
				return nil, err
			}
			return stype.SInt, nil
		},
		Invoke: func(obj values.Value, _ []values.Value) (values.Value, error) {
			coll, ok := obj.(values.Coll)
			if !ok {
				return nil, unexpectedReceiver("size", obj)
			}
			return values.Int(len(coll.Items)), nil
		},
	}

	CollGetOrElseMethod = &SMethod{
		TypeCode: CollTypeCode,
		MethodID: 2,
		Name:     "getOrElse",
		ArgCount: 2,
		ResultType: func(obj stype.SType, args []stype.SType) (stype.SType, error) {
			elem, err := collElem(obj)
			if err != nil {
				return nil, err
			}
			if !stype.Equal(args[0], stype.SInt) {
				return nil, NewInvalidArgumentError("index must be Int, got %s", args[0])
			}
			if !stype.Equal(args[1], elem) {
				return nil, NewInvalidArgumentError("default must be %s, got %s", elem, args[1])
			}
			return elem, nil
		},
		Invoke: func(obj values.Value, args []values.Value) (values.Value, error) {
			coll, i, inBounds, err := collIndex("getOrElse", obj, args[0])
			if err != nil {
				return nil, err
			}
			if !inBounds {
				return args[1], nil
			}
			return coll.Items[i], nil
		},
	}

	CollApplyMethod = &SMethod{
		TypeCode: CollTypeCode,
		MethodID: 10,
		Name:     "apply",
		ArgCount: 1,
		ResultType: func(obj stype.SType, args []stype.SType) (stype.SType, error) {
			elem, err := collElem(obj)
			if err != nil {
				return nil, err
			}
			if !stype.Equal(args[0], stype.SInt) {
				return nil, NewInvalidArgumentError("index must be Int, got %s", args[0])
			}
			return elem, nil
		},
		Invoke: func(obj values.Value, args []values.Value) (values.Value, error) {
			coll, i, inBounds, err := collIndex("apply", obj, args[0])
			if err != nil {
				return nil, err
			}
			if !inBounds {
				return nil, errors.NewDefaultUserError(
					"index %d out of bounds for collection of size %d",
					i,
					len(coll.Items),
				)
			}
			return coll.Items[i], nil
		},
	}
)

// Option

func optionElem(obj stype.SType) (stype.SType, error) {
	optionType, ok := obj.(stype.SOption)
	if !ok {
		return nil, NewInvalidArgumentError("expected Option, got %s", obj)
	}
	return optionType.Elem, nil
}

func optionMethod(
	id uint8,
	name string,
	argCount int,
	resultType func(elem stype.SType, args []stype.SType) (stype.SType, error),
	invoke func(opt values.Opt, args []values.Value) (values.Value, error),
) *SMethod {
	return &SMethod{
		TypeCode:   OptionTypeCode,
		MethodID:   id,
		Name:       name,
		IsProperty: argCount == 0,
		ArgCount:   argCount,
		ResultType: func(obj stype.SType, args []stype.SType) (stype.SType, error) {
			elem, err := optionElem(obj)
			if err != nil {
				return nil, err
			}
			return resultType(elem, args)
		},
		Invoke: func(obj values.Value, args []values.Value) (values.Value, error) {
			opt, ok := obj.(values.Opt)
			if !ok {
				return nil, unexpectedReceiver(name, obj)
			}
			return invoke(opt, args)
		},
	}
}

var (
	OptionIsDefinedMethod = optionMethod(
		2,
		"isDefined",
		0,
		func(stype.SType, []stype.SType) (stype.SType, error) {
			return stype.SBoolean, nil
		},
		func(opt values.Opt, _ []values.Value) (values.Value, error) {
			return values.Boolean(opt.IsDefined()), nil
		},
	)

	OptionGetMethod = optionMethod(
		3,
		"get",
		0,
		func(elem stype.SType, _ []stype.SType) (stype.SType, error) {
			return elem, nil
		},
		func(opt values.Opt, _ []values.Value) (values.Value, error) {
			if !opt.IsDefined() {
				return nil, errors.NewDefaultUserError("get on empty option")
			}
			return opt.Value, nil
		},
	)

	OptionGetOrElseMethod = optionMethod(
		4,
		"getOrElse",
		1,
		func(elem stype.SType, args []stype.SType) (stype.SType, error) {
			if !stype.Equal(args[0], elem) {
				return nil, NewInvalidArgumentError("default must be %s, got %s", elem, args[0])
			}
			return elem, nil
		},
		func(opt values.Opt, args []values.Value) (values.Value, error) {
			if !opt.IsDefined() {
				return args[0], nil
			}
			return opt.Value, nil
		},
	)
)

// Context

func contextMethod(id uint8, name string, result stype.SType, get func(values.Context) values.Value) *SMethod {
	return &SMethod{
		TypeCode:   uint8(stype.SContext),
		MethodID:   id,
		Name:       name,
		IsProperty: true,
		ResultType: fixedResult(result),
		Invoke: func(obj values.Value, _ []values.Value) (values.Value, error) {
			ctx, ok := obj.(values.ContextValue)
			if !ok {
				return nil, unexpectedReceiver(name, obj)
			}
			return get(ctx.Context), nil
		},
	}
}

var (
	ContextDataInputsMethod = contextMethod(1, "dataInputs", stype.BoxColl, func(ctx values.Context) values.Value {
		return values.NewBoxColl(ctx.DataInputs())
	})
	ContextInputsMethod = contextMethod(4, "INPUTS", stype.BoxColl, func(ctx values.Context) values.Value {
		return values.NewBoxColl(ctx.Inputs())
	})
	ContextOutputsMethod = contextMethod(5, "OUTPUTS", stype.BoxColl, func(ctx values.Context) values.Value {
		return values.NewBoxColl(ctx.Outputs())
	})
	ContextHeightMethod = contextMethod(6, "HEIGHT", stype.SInt, func(ctx values.Context) values.Value {
		return values.Int(ctx.Height())
	})
	ContextSelfMethod = contextMethod(7, "SELF", stype.SBox, func(ctx values.Context) values.Value {
		return values.BoxValue{Box: ctx.SelfBox()}
	})
	ContextMinerPubKeyMethod = contextMethod(10, "minerPubKey", stype.ByteArray, func(ctx values.Context) values.Value {
		return values.NewByteColl(ctx.MinerPubKey())
	})
)

func init() {
	registerMethods(
		BoxValueMethod,
		BoxPropositionBytesMethod,
		BoxIDMethod,
		BoxCreationInfoMethod,
		CollSizeMethod,
		CollGetOrElseMethod,
		CollApplyMethod,
		OptionIsDefinedMethod,
		OptionGetMethod,
		OptionGetOrElseMethod,
		ContextDataInputsMethod,
		ContextInputsMethod,
		ContextOutputsMethod,
		ContextHeightMethod,
		ContextSelfMethod,
		ContextMinerPubKeyMethod,
	)
}

// MethodCall

type MethodCall struct {
	Obj        Expr
	Method     *SMethod
	Args       []Expr
	resultType stype.SType
}

var _ Expr = &MethodCall{}

func NewMethodCall(obj Expr, method *SMethod, args ...Expr) (*MethodCall, error) {
	resultType, err := methodResultType(obj, method, args)
	if err != nil {
		return nil, err
	}
	return &MethodCall{
		Obj:        obj,
		Method:     method,
		Args:       args,
		resultType: resultType,
	}, nil
}

func (*MethodCall) isExpr() {}

func (*MethodCall) OpCode() opcode.OpCode {
	return opcode.MethodCall
}

func (c *MethodCall) Type() stype.SType {
	return c.resultType
}

// PropertyCall

type PropertyCall struct {
	Obj        Expr
	Method     *SMethod
	resultType stype.SType
}

var _ Expr = &PropertyCall{}

func NewPropertyCall(obj Expr, method *SMethod) (*PropertyCall, error) {
	if !method.IsProperty {
		return nil, NewInvalidArgumentError("%s is not a property", method.Name)
	}
	resultType, err := methodResultType(obj, method, nil)
	if err != nil {
		return nil, err
	}
	return &PropertyCall{
		Obj:        obj,
		Method:     method,
		resultType: resultType,
	}, nil
}

func (*PropertyCall) isExpr() {}

func (*PropertyCall) OpCode() opcode.OpCode {
	return opcode.PropertyCall
}

func (c *PropertyCall) Type() stype.SType {
	return c.resultType
}

func methodResultType(obj Expr, method *SMethod, args []Expr) (stype.SType, error) {
	objType := obj.Type()
	typeCode, ok := TypeCode(objType)
	if !ok || typeCode != method.TypeCode {
		return nil, NewInvalidArgumentError("%s has no method %s", objType, method.Name)
	}
	if len(args) != method.ArgCount {
		return nil, NewInvalidArgumentError(
			"%s expects %d arguments, got %d",
			method.Name,
			method.ArgCount,
			len(args),
		)
	}
	argTypes := make([]stype.SType, len(args))
	for i, arg := range args {
		argTypes[i] = arg.Type()
	}
	return method.ResultType(objType, argTypes)
}
