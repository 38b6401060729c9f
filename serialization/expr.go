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

package serialization

import (
	"bytes"

	"github.com/ergoplatform/sigma-go/ast"
	"github.com/ergoplatform/sigma-go/opcode"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

// ParseExpr parses a complete expression, with constants inline.
//
// Every call uses its own reader state, so it is safe to call
// while another parse or evaluation is in progress.
func ParseExpr(b []byte) (ast.Expr, error) {
	return ParseExprWithStore(b, nil, true)
}

// ParseExprWithStore parses a complete expression whose placeholders refer to the given store.
// If substitute is set, placeholders are replaced by the constants they refer to.
func ParseExprWithStore(b []byte, store *ConstantStore, substitute bool) (ast.Expr, error) {
	var r *Reader
	if substitute {
		r = NewReaderWithSubstitution(bytes.NewReader(b), store)
	} else {
		r = NewReader(bytes.NewReader(b), store)
	}

	expr, err := ReadExpr(r)
	if err != nil {
		return nil, err
	}
	if err := r.ensureConsumed(); err != nil {
		return nil, err
	}
	return expr, nil
}

// SerializeExpr encodes the expression with constants inline.
func SerializeExpr(expr ast.Expr) ([]byte, error) {
	w := NewWriter()
	if err := WriteExpr(w, expr); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// SerializeConstant encodes the type and the value of the constant.
func SerializeConstant(constant values.Constant) ([]byte, error) {
	w := NewWriter()
	if err := WriteConstant(w, constant); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ParseConstant parses a complete constant.
func ParseConstant(b []byte) (values.Constant, error) {
	r := NewReader(bytes.NewReader(b), nil)
	constant, err := ReadConstant(r)
	if err != nil {
		return values.Constant{}, err
	}
	if err := r.ensureConsumed(); err != nil {
		return values.Constant{}, err
	}
	return constant, nil
}

func WriteConstant(w *Writer, constant values.Constant) error {
	if err := WriteType(w, constant.Type); err != nil {
		return err
	}
	return WriteData(w, constant.Type, constant.Value)
}

func ReadConstant(r *Reader) (values.Constant, error) {
	typ, err := ReadType(r)
	if err != nil {
		return values.Constant{}, err
	}
	value, err := ReadData(r, typ)
	if err != nil {
		return values.Constant{}, err
	}
	return values.NewConstant(typ, value), nil
}

// Writing

// WriteExpr writes the op code of the expression followed by its fields.
func WriteExpr(w *Writer, expr ast.Expr) error {
	_, err := ast.AcceptExpr[struct{}](expr, exprWriter{w: w})
	return err
}

type exprWriter struct {
	w *Writer
}

var _ ast.ExprVisitor[struct{}] = exprWriter{}

func (e exprWriter) write(exprs ...ast.Expr) (struct{}, error) {
	for _, expr := range exprs {
		if err := WriteExpr(e.w, expr); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (e exprWriter) opCode(expr ast.Expr) {
	e.w.PutU8(byte(expr.OpCode()))
}

func (e exprWriter) VisitConstant(c *ast.Constant) (struct{}, error) {
	store := e.w.ConstantStore()
	if store == nil {
		return struct{}{}, WriteConstant(e.w, c.Constant)
	}

	index, err := store.Put(c.Constant)
	if err != nil {
		return struct{}{}, err
	}
	e.w.PutU8(byte(opcode.ConstantPlaceholder))
	e.w.PutU32(index)
	return struct{}{}, nil
}

func (e exprWriter) VisitConstantPlaceholder(p *ast.ConstantPlaceholder) (struct{}, error) {
	// the index refers to a store other than the one being filled
	if e.w.ConstantStore() != nil {
		return struct{}{}, UnresolvedPlaceholderError{Index: p.ID}
	}
	e.opCode(p)
	e.w.PutU32(p.ID)
	return struct{}{}, nil
}

func (e exprWriter) VisitValDef(d *ast.ValDef) (struct{}, error) {
	e.opCode(d)
	e.w.PutU32(d.ID)
	return e.write(d.RHS)
}

func (e exprWriter) VisitValUse(u *ast.ValUse) (struct{}, error) {
	e.opCode(u)
	e.w.PutU32(u.ID)
	return struct{}{}, nil
}

func (e exprWriter) VisitBlockValue(b *ast.BlockValue) (struct{}, error) {
	e.opCode(b)
	e.w.PutU32(uint32(len(b.Items)))
	for _, item := range b.Items {
		if _, err := e.write(item); err != nil {
			return struct{}{}, err
		}
	}
	return e.write(b.Result)
}

func (e exprWriter) VisitFuncValue(f *ast.FuncValue) (struct{}, error) {
	e.opCode(f)
	e.w.PutU32(uint32(len(f.Args)))
	for _, arg := range f.Args {
		e.w.PutU32(arg.ID)
		if err := WriteType(e.w, arg.Type); err != nil {
			return struct{}{}, err
		}
	}
	return e.write(f.Body)
}

func (e exprWriter) VisitTuple(t *ast.Tuple) (struct{}, error) {
	e.opCode(t)
	e.w.PutU8(byte(len(t.Items)))
	return e.write(t.Items...)
}

func (e exprWriter) VisitSelectField(s *ast.SelectField) (struct{}, error) {
	e.opCode(s)
	if _, err := e.write(s.Input); err != nil {
		return struct{}{}, err
	}
	e.w.PutU8(s.FieldIndex)
	return struct{}{}, nil
}

func (e exprWriter) VisitBinOp(b *ast.BinOp) (struct{}, error) {
	e.opCode(b)
	return e.write(b.Left, b.Right)
}

func (e exprWriter) VisitIf(i *ast.If) (struct{}, error) {
	e.opCode(i)
	return e.write(i.Condition, i.TrueBranch, i.FalseBranch)
}

func (e exprWriter) VisitContext(c ast.Context) (struct{}, error) {
	e.opCode(c)
	return struct{}{}, nil
}

func (e exprWriter) VisitGlobalVars(v ast.GlobalVars) (struct{}, error) {
	e.opCode(v)
	return struct{}{}, nil
}

func (e exprWriter) VisitFold(f *ast.Fold) (struct{}, error) {
	e.opCode(f)
	return e.write(f.Input, f.Zero, f.FoldOp)
}

func (e exprWriter) VisitPredefFunc(p *ast.PredefFunc) (struct{}, error) {
	e.opCode(p)
	return e.write(p.Args...)
}

func (e exprWriter) VisitMethodCall(c *ast.MethodCall) (struct{}, error) {
	e.opCode(c)
	e.w.PutU8(c.Method.TypeCode)
	e.w.PutU8(c.Method.MethodID)
	if _, err := e.write(c.Obj); err != nil {
		return struct{}{}, err
	}
	e.w.PutU32(uint32(len(c.Args)))
	return e.write(c.Args...)
}

func (e exprWriter) VisitPropertyCall(c *ast.PropertyCall) (struct{}, error) {
	e.opCode(c)
	e.w.PutU8(c.Method.TypeCode)
	e.w.PutU8(c.Method.MethodID)
	return e.write(c.Obj)
}

func (e exprWriter) VisitOptionGet(o *ast.OptionGet) (struct{}, error) {
	e.opCode(o)
	return e.write(o.Input)
}

func (e exprWriter) VisitExtractRegisterAs(x *ast.ExtractRegisterAs) (struct{}, error) {
	e.opCode(x)
	if _, err := e.write(x.Input); err != nil {
		return struct{}{}, err
	}
	e.w.PutU8(byte(x.RegisterID))
	return struct{}{}, WriteType(e.w, x.ElemType)
}

func (e exprWriter) VisitDeserializeRegister(d *ast.DeserializeRegister) (struct{}, error) {
	e.opCode(d)
	e.w.PutU8(d.Register)
	if err := WriteType(e.w, d.ExpectedType); err != nil {
		return struct{}{}, err
	}
	if d.Default == nil {
		e.w.PutU8(0)
		return struct{}{}, nil
	}
	e.w.PutU8(1)
	return e.write(d.Default)
}

// Reading

// ReadExpr reads an expression. A first byte in the range of type codes starts a constant.
func ReadExpr(r *Reader) (ast.Expr, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	first, err := r.PeekU8("op code")
	if err != nil {
		return nil, err
	}

	if opcode.IsConstant(first) {
		constant, err := ReadConstant(r)
		if err != nil {
			return nil, err
		}
		return ast.NewConstant(constant), nil
	}

	// consume the peeked op code
	if _, err := r.ReadU8("op code"); err != nil {
		return nil, err
	}

	code := opcode.OpCode(first)
	expr, err := readOperation(r, code)
	if err != nil {
		if _, ok := err.(ast.InvalidArgumentError); ok {
			return nil, InvalidExprError{OpCode: code, Err: err}
		}
		return nil, err
	}
	return expr, nil
}

func readExprs(r *Reader, n int) ([]ast.Expr, error) {
	exprs := make([]ast.Expr, 0, min(n, 256))
	for i := 0; i < n; i++ {
		expr, err := ReadExpr(r)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func readOperation(r *Reader, code opcode.OpCode) (ast.Expr, error) {

	if kind, ok := ast.BinOpKindFromOpCode(code); ok {
		operands, err := readExprs(r, 2)
		if err != nil {
			return nil, err
		}
		return ast.NewBinOp(kind, operands[0], operands[1])
	}

	if globalVar, ok := ast.GlobalVarsFromOpCode(code); ok {
		return globalVar, nil
	}

	if predef, ok := ast.LookupPredef(code); ok {
		args, err := readExprs(r, len(predef.ArgTypes))
		if err != nil {
			return nil, err
		}
		return ast.NewPredefFunc(predef, args...)
	}

	switch code {
	case opcode.ConstantPlaceholder:
		return readConstantPlaceholder(r)

	case opcode.ValDef:
		return readValDef(r)

	case opcode.ValUse:
		id, err := r.ReadU32("value id")
		if err != nil {
			return nil, err
		}
		typ, ok := r.ValDefTypeStore().Get(id)
		if !ok {
			return nil, UndeclaredValDefError{ID: id}
		}
		return ast.NewValUse(id, typ), nil

	case opcode.BlockValue:
		return readBlockValue(r)

	case opcode.FuncValue:
		return readFuncValue(r)

	case opcode.Tuple:
		length, err := r.ReadU8("tuple length")
		if err != nil {
			return nil, err
		}
		items, err := readExprs(r, int(length))
		if err != nil {
			return nil, err
		}
		return ast.NewTuple(items...)

	case opcode.SelectField:
		input, err := ReadExpr(r)
		if err != nil {
			return nil, err
		}
		index, err := r.ReadU8("field index")
		if err != nil {
			return nil, err
		}
		return ast.NewSelectField(input, index)

	case opcode.If:
		operands, err := readExprs(r, 3)
		if err != nil {
			return nil, err
		}
		return ast.NewIf(operands[0], operands[1], operands[2])

	case opcode.Context:
		return ast.Context{}, nil

	case opcode.Fold:
		operands, err := readExprs(r, 3)
		if err != nil {
			return nil, err
		}
		return ast.NewFold(operands[0], operands[1], operands[2])

	case opcode.MethodCall, opcode.PropertyCall:
		return readMethodCall(r, code)

	case opcode.OptionGet:
		input, err := ReadExpr(r)
		if err != nil {
			return nil, err
		}
		return ast.NewOptionGet(input)

	case opcode.ExtractRegisterAs:
		input, err := ReadExpr(r)
		if err != nil {
			return nil, err
		}
		registerID, err := r.ReadU8("register id")
		if err != nil {
			return nil, err
		}
		elemType, err := ReadType(r)
		if err != nil {
			return nil, err
		}
		return ast.NewExtractRegisterAs(input, int8(registerID), stype.NewOption(elemType))

	case opcode.DeserializeRegister:
		return readDeserializeRegister(r)
	}

	return nil, UnknownOpCodeError{OpCode: code}
}

func readConstantPlaceholder(r *Reader) (ast.Expr, error) {
	id, err := r.ReadU32("constant placeholder index")
	if err != nil {
		return nil, err
	}
	store := r.ConstantStore()
	constant, ok := store.Get(id)
	if !ok {
		return nil, ConstantIndexOutOfBoundsError{
			Index: id,
			Size:  store.Len(),
		}
	}
	if r.SubstitutePlaceholders() {
		return ast.NewConstant(constant), nil
	}
	return ast.NewConstantPlaceholder(id, constant.Type), nil
}

func readValDef(r *Reader) (*ast.ValDef, error) {
	id, err := r.ReadU32("value id")
	if err != nil {
		return nil, err
	}
	rhs, err := ReadExpr(r)
	if err != nil {
		return nil, err
	}
	r.ValDefTypeStore().Insert(id, rhs.Type())
	return ast.NewValDef(id, rhs), nil
}

func readBlockValue(r *Reader) (ast.Expr, error) {
	count, err := r.ReadU32("block item count")
	if err != nil {
		return nil, err
	}
	items := make([]*ast.ValDef, 0, min(count, 256))
	for i := uint32(0); i < count; i++ {
		item, err := ReadExpr(r)
		if err != nil {
			return nil, err
		}
		valDef, ok := item.(*ast.ValDef)
		if !ok {
			return nil, InvalidExprError{
				OpCode: opcode.BlockValue,
				Err:    ast.NewInvalidArgumentError("expected value definition, got %s", item.OpCode()),
			}
		}
		items = append(items, valDef)
	}
	result, err := ReadExpr(r)
	if err != nil {
		return nil, err
	}
	return ast.NewBlockValue(items, result), nil
}

func readFuncValue(r *Reader) (ast.Expr, error) {
	count, err := r.ReadU32("function argument count")
	if err != nil {
		return nil, err
	}
	args := make([]ast.FuncArg, 0, min(count, 256))
	for i := uint32(0); i < count; i++ {
		id, err := r.ReadU32("function argument id")
		if err != nil {
			return nil, err
		}
		typ, err := ReadType(r)
		if err != nil {
			return nil, err
		}
		r.ValDefTypeStore().Insert(id, typ)
		args = append(args, ast.FuncArg{ID: id, Type: typ})
	}
	body, err := ReadExpr(r)
	if err != nil {
		return nil, err
	}
	return ast.NewFuncValue(args, body), nil
}

func readMethodCall(r *Reader, code opcode.OpCode) (ast.Expr, error) {
	typeCode, err := r.ReadU8("method type code")
	if err != nil {
		return nil, err
	}
	methodID, err := r.ReadU8("method id")
	if err != nil {
		return nil, err
	}
	method, ok := ast.LookupMethod(typeCode, methodID)
	if !ok {
		return nil, UnknownMethodError{
			TypeCode: typeCode,
			MethodID: methodID,
		}
	}
	obj, err := ReadExpr(r)
	if err != nil {
		return nil, err
	}

	if code == opcode.PropertyCall {
		return ast.NewPropertyCall(obj, method)
	}

	count, err := r.ReadU32("method argument count")
	if err != nil {
		return nil, err
	}
	args, err := readExprs(r, int(count))
	if err != nil {
		return nil, err
	}
	return ast.NewMethodCall(obj, method, args...)
}

func readDeserializeRegister(r *Reader) (ast.Expr, error) {
	register, err := r.ReadU8("register id")
	if err != nil {
		return nil, err
	}
	expectedType, err := ReadType(r)
	if err != nil {
		return nil, err
	}
	hasDefault, err := r.ReadBool("default flag")
	if err != nil {
		return nil, err
	}
	var defaultExpr ast.Expr
	if hasDefault {
		defaultExpr, err = ReadExpr(r)
		if err != nil {
			return nil, err
		}
	}
	return ast.NewDeserializeRegister(register, expectedType, defaultExpr), nil
}
