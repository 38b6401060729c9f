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

// Package interpreter evaluates expression trees against a transaction context.
//
// Evaluation is a synchronous tree walk: every node evaluates its operands
// in a fixed order and combines their results. Bindings extend a persistent Env,
// so every evaluation step only sees the bindings of its lexical scope.
package interpreter

import (
	"fmt"
	"time"

	"github.com/ergoplatform/sigma-go/ast"
	"github.com/ergoplatform/sigma-go/ergotree"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

// Eval evaluates the expression.
func Eval(expr ast.Expr, env Env, ctx *EvalContext) (values.Value, error) {
	if err := ctx.enter(); err != nil {
		return nil, err
	}
	defer ctx.leave()

	return ast.AcceptExpr[values.Value](
		expr,
		evaluator{
			env: env,
			ctx: ctx,
		},
	)
}

// EvalTree evaluates the proposition of the tree in an empty environment.
func EvalTree(tree *ergotree.ErgoTree, ctx *EvalContext) (values.Value, error) {
	tracer := ctx.Config.Tracer
	if tracer.enabled() {
		startTime := time.Now()
		defer func() {
			tracer.reportEvalTreeTrace(
				tree.Header.Version(),
				len(tree.Constants),
				time.Since(startTime),
			)
		}()
	}

	proposition, err := tree.Proposition()
	if err != nil {
		return nil, ParseError{Err: err}
	}
	return Eval(proposition, NewEnv(), ctx)
}

// EvalBool evaluates a tree whose proposition is a Boolean.
func EvalBool(tree *ergotree.ErgoTree, ctx *EvalContext) (bool, error) {
	result, err := EvalTree(tree, ctx)
	if err != nil {
		return false, err
	}
	b, ok := result.(values.Boolean)
	if !ok {
		return false, UnexpectedValueError{
			Expected: stype.SBoolean,
			Actual:   result,
		}
	}
	return bool(b), nil
}

type evaluator struct {
	env Env
	ctx *EvalContext
}

var _ ast.ExprVisitor[values.Value] = evaluator{}

func (e evaluator) eval(expr ast.Expr) (values.Value, error) {
	return Eval(expr, e.env, e.ctx)
}

func (e evaluator) evalAll(exprs []ast.Expr) ([]values.Value, error) {
	results := make([]values.Value, len(exprs))
	for i, expr := range exprs {
		result, err := e.eval(expr)
		if err != nil {
			return nil, err
		}
		results[i] = result
	}
	return results, nil
}

func (e evaluator) evalBoolean(expr ast.Expr) (bool, error) {
	result, err := e.eval(expr)
	if err != nil {
		return false, err
	}
	b, ok := result.(values.Boolean)
	if !ok {
		return false, UnexpectedValueError{
			Expected: stype.SBoolean,
			Actual:   result,
		}
	}
	return bool(b), nil
}

func (evaluator) VisitConstant(c *ast.Constant) (values.Value, error) {
	return c.Constant.Value, nil
}

func (evaluator) VisitConstantPlaceholder(p *ast.ConstantPlaceholder) (values.Value, error) {
	return nil, NewUnexpectedExprError(
		"placeholder %d must be substituted before evaluation",
		p.ID,
	)
}

func (evaluator) VisitValDef(d *ast.ValDef) (values.Value, error) {
	return nil, NewUnexpectedExprError("definition of v%d outside of a block", d.ID)
}

func (e evaluator) VisitValUse(u *ast.ValUse) (values.Value, error) {
	value, ok := e.env.Get(u.ID)
	if !ok {
		return nil, NotFoundError{
			Message: fmt.Sprintf("no value bound to v%d", u.ID),
		}
	}
	return value, nil
}

func (e evaluator) VisitBlockValue(b *ast.BlockValue) (values.Value, error) {
	env := e.env
	for _, item := range b.Items {
		value, err := Eval(item.RHS, env, e.ctx)
		if err != nil {
			return nil, err
		}
		env = env.Extend(item.ID, value)
	}
	return Eval(b.Result, env, e.ctx)
}

func (e evaluator) VisitFuncValue(f *ast.FuncValue) (values.Value, error) {
	funcType := f.FuncType()
	closure := e.env
	ctx := e.ctx

	return values.Func{
		Type: funcType,
		Apply: func(args []values.Value) (values.Value, error) {
			if len(args) != len(f.Args) {
				return nil, NewUnexpectedExprError(
					"function of type %s applied to %d arguments",
					funcType,
					len(args),
				)
			}
			env := closure
			for i, arg := range f.Args {
				env = env.Extend(arg.ID, args[i])
			}
			return Eval(f.Body, env, ctx)
		},
	}, nil
}

func (e evaluator) VisitTuple(t *ast.Tuple) (values.Value, error) {
	items, err := e.evalAll(t.Items)
	if err != nil {
		return nil, err
	}
	return values.Tuple(items), nil
}

func (e evaluator) VisitSelectField(s *ast.SelectField) (values.Value, error) {
	input, err := e.eval(s.Input)
	if err != nil {
		return nil, err
	}
	tuple, ok := input.(values.Tuple)
	if !ok || int(s.FieldIndex) > len(tuple) || s.FieldIndex < 1 {
		return nil, UnexpectedValueError{
			Expected: s.Input.Type(),
			Actual:   input,
		}
	}
	return tuple[s.FieldIndex-1], nil
}

func (e evaluator) VisitBinOp(b *ast.BinOp) (values.Value, error) {
	if b.Kind == ast.LogicalAnd || b.Kind == ast.LogicalOr {
		return e.evalShortCircuit(b)
	}

	left, err := e.eval(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(b.Right)
	if err != nil {
		return nil, err
	}

	switch {
	case b.Kind.IsArithmetic():
		return evalArithmetic(b.Kind, b.Left.Type(), left, right)

	case b.Kind.IsRelation():
		return evalRelation(b.Kind, b.Left.Type(), left, right)
	}

	// LogicalXor
	l, ok := left.(values.Boolean)
	if !ok {
		return nil, UnexpectedValueError{Expected: stype.SBoolean, Actual: left}
	}
	r, ok := right.(values.Boolean)
	if !ok {
		return nil, UnexpectedValueError{Expected: stype.SBoolean, Actual: right}
	}
	return values.Boolean(l != r), nil
}

// evalShortCircuit evaluates the right operand of || and && only if the left one
// does not already determine the result.
func (e evaluator) evalShortCircuit(b *ast.BinOp) (values.Value, error) {
	left, err := e.evalBoolean(b.Left)
	if err != nil {
		return nil, err
	}
	if left == (b.Kind == ast.LogicalOr) {
		return values.Boolean(left), nil
	}
	right, err := e.evalBoolean(b.Right)
	if err != nil {
		return nil, err
	}
	return values.Boolean(right), nil
}

func (e evaluator) VisitIf(i *ast.If) (values.Value, error) {
	condition, err := e.evalBoolean(i.Condition)
	if err != nil {
		return nil, err
	}
	if condition {
		return e.eval(i.TrueBranch)
	}
	return e.eval(i.FalseBranch)
}

func (e evaluator) VisitContext(ast.Context) (values.Value, error) {
	return values.ContextValue{Context: e.ctx.Context}, nil
}

func (e evaluator) VisitGlobalVars(v ast.GlobalVars) (values.Value, error) {
	ctx := e.ctx.Context
	switch v {
	case ast.Height:
		return values.Int(ctx.Height()), nil
	case ast.SelfBox:
		return values.BoxValue{Box: ctx.SelfBox()}, nil
	case ast.Inputs:
		return values.NewBoxColl(ctx.Inputs()), nil
	case ast.Outputs:
		return values.NewBoxColl(ctx.Outputs()), nil
	case ast.MinerPubKey:
		return values.NewByteColl(ctx.MinerPubKey()), nil
	}
	return nil, NewUnexpectedExprError("unknown global variable %d", v)
}

func (e evaluator) VisitFold(f *ast.Fold) (values.Value, error) {
	input, err := e.eval(f.Input)
	if err != nil {
		return nil, err
	}
	coll, ok := input.(values.Coll)
	if !ok {
		return nil, UnexpectedValueError{Expected: f.Input.Type(), Actual: input}
	}

	accumulator, err := e.eval(f.Zero)
	if err != nil {
		return nil, err
	}

	op, err := e.eval(f.FoldOp)
	if err != nil {
		return nil, err
	}
	function, ok := op.(values.Func)
	if !ok {
		return nil, UnexpectedValueError{Expected: f.FoldOp.Type(), Actual: op}
	}

	for _, item := range coll.Items {
		accumulator, err = function.Apply([]values.Value{
			values.Tuple{accumulator, item},
		})
		if err != nil {
			return nil, err
		}
	}
	return accumulator, nil
}

func (e evaluator) VisitPredefFunc(p *ast.PredefFunc) (values.Value, error) {
	args, err := e.evalAll(p.Args)
	if err != nil {
		return nil, err
	}
	result, err := p.Func.Invoke(args)
	if err != nil {
		return nil, MethodInvocationError{
			Name: p.Func.Name,
			Err:  err,
		}
	}
	return result, nil
}

func (e evaluator) invokeMethod(
	obj ast.Expr,
	method *ast.SMethod,
	argExprs []ast.Expr,
) (values.Value, error) {
	receiver, err := e.eval(obj)
	if err != nil {
		return nil, err
	}
	args, err := e.evalAll(argExprs)
	if err != nil {
		return nil, err
	}
	result, err := method.Invoke(receiver, args)
	if err != nil {
		return nil, MethodInvocationError{
			Name: method.Name,
			Err:  err,
		}
	}
	return result, nil
}

func (e evaluator) VisitMethodCall(c *ast.MethodCall) (values.Value, error) {
	return e.invokeMethod(c.Obj, c.Method, c.Args)
}

func (e evaluator) VisitPropertyCall(c *ast.PropertyCall) (values.Value, error) {
	return e.invokeMethod(c.Obj, c.Method, nil)
}

func (e evaluator) VisitOptionGet(o *ast.OptionGet) (values.Value, error) {
	input, err := e.eval(o.Input)
	if err != nil {
		return nil, err
	}
	option, ok := input.(values.Opt)
	if !ok {
		return nil, UnexpectedValueError{Expected: o.Input.Type(), Actual: input}
	}
	if !option.IsDefined() {
		return nil, NotFoundError{
			Message: "get of an empty " + o.Input.Type().String(),
		}
	}
	return option.Value, nil
}

func (e evaluator) VisitExtractRegisterAs(x *ast.ExtractRegisterAs) (values.Value, error) {
	input, err := e.eval(x.Input)
	if err != nil {
		return nil, err
	}
	box, ok := input.(values.BoxValue)
	if !ok {
		return nil, UnexpectedValueError{Expected: stype.SBox, Actual: input}
	}
	return e.extractRegisterAs(box.Box, int(x.RegisterID), x.ElemType)
}

func (e evaluator) VisitDeserializeRegister(d *ast.DeserializeRegister) (values.Value, error) {
	return e.deserializeRegister(d.Register, d.ExpectedType, d.Default)
}
