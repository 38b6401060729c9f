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
	"fmt"
	"strings"

	"github.com/turbolent/prettier"
)

const maxLineWidth = 80

var (
	argumentSeparatorDoc prettier.Doc = prettier.Concat{
		prettier.Text(","),
		prettier.Line{},
	}
	lambdaArrowDoc = prettier.Text(" =>")
)

// Doc returns the pretty-printing document of the expression.
func Doc(expr Expr) prettier.Doc {
	doc, err := AcceptExpr[prettier.Doc](expr, docPrinter{})
	if err != nil {
		// docPrinter never fails
		panic(err)
	}
	return doc
}

// String renders the expression in a readable, source-like syntax.
func String(expr Expr) string {
	var b strings.Builder
	prettier.Prettier(&b, Doc(expr), maxLineWidth, "    ")
	return b.String()
}

type docPrinter struct{}

var _ ExprVisitor[prettier.Doc] = docPrinter{}

func arguments(docs ...prettier.Doc) prettier.Doc {
	if len(docs) == 0 {
		return prettier.Text("()")
	}
	return prettier.Group{
		Doc: prettier.WrapParentheses(
			prettier.Join(argumentSeparatorDoc, docs...),
			prettier.SoftLine{},
		),
	}
}

func docs(exprs []Expr) []prettier.Doc {
	result := make([]prettier.Doc, len(exprs))
	for i, expr := range exprs {
		result[i] = Doc(expr)
	}
	return result
}

func selection(obj Expr, member string) prettier.Doc {
	return prettier.Concat{
		prettier.Group{
			Doc: operandDoc(obj),
		},
		prettier.Text("." + member),
	}
}

// operandDoc parenthesizes compound expressions in operand position.
func operandDoc(expr Expr) prettier.Doc {
	doc := Doc(expr)
	switch expr.(type) {
	case *BinOp, *If:
		return prettier.WrapParentheses(doc, prettier.SoftLine{})
	}
	return doc
}

func valName(id uint32) prettier.Doc {
	return prettier.Text(fmt.Sprintf("v%d", id))
}

func (docPrinter) VisitConstant(c *Constant) (prettier.Doc, error) {
	return prettier.Text(c.Constant.Value.String()), nil
}

func (docPrinter) VisitConstantPlaceholder(p *ConstantPlaceholder) (prettier.Doc, error) {
	return prettier.Text(fmt.Sprintf("placeholder[%d]: %s", p.ID, p.ConstantType)), nil
}

func (docPrinter) VisitValDef(d *ValDef) (prettier.Doc, error) {
	return prettier.Group{
		Doc: prettier.Concat{
			prettier.Text("val "),
			valName(d.ID),
			prettier.Text(" ="),
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.Line{},
					Doc(d.RHS),
				},
			},
		},
	}, nil
}

func (docPrinter) VisitValUse(u *ValUse) (prettier.Doc, error) {
	return valName(u.ID), nil
}

func (docPrinter) VisitBlockValue(b *BlockValue) (prettier.Doc, error) {
	body := prettier.Concat{}
	for _, item := range b.Items {
		body = append(body, prettier.HardLine{}, Doc(item))
	}
	body = append(body, prettier.HardLine{}, Doc(b.Result))

	return prettier.Concat{
		prettier.Text("{"),
		prettier.Indent{
			Doc: body,
		},
		prettier.HardLine{},
		prettier.Text("}"),
	}, nil
}

func (docPrinter) VisitFuncValue(f *FuncValue) (prettier.Doc, error) {
	args := make([]prettier.Doc, len(f.Args))
	for i, arg := range f.Args {
		args[i] = prettier.Concat{
			valName(arg.ID),
			prettier.Text(": " + arg.Type.String()),
		}
	}
	return prettier.Group{
		Doc: prettier.Concat{
			prettier.Text("{ "),
			arguments(args...),
			lambdaArrowDoc,
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.Line{},
					Doc(f.Body),
				},
			},
			prettier.Line{},
			prettier.Text("}"),
		},
	}, nil
}

func (docPrinter) VisitTuple(t *Tuple) (prettier.Doc, error) {
	return arguments(docs(t.Items)...), nil
}

func (docPrinter) VisitSelectField(s *SelectField) (prettier.Doc, error) {
	return selection(s.Input, fmt.Sprintf("_%d", s.FieldIndex)), nil
}

func (docPrinter) VisitBinOp(b *BinOp) (prettier.Doc, error) {
	if b.Kind == ArithMin || b.Kind == ArithMax {
		return prettier.Concat{
			prettier.Text(b.Kind.Symbol()),
			arguments(Doc(b.Left), Doc(b.Right)),
		}, nil
	}
	return prettier.Group{
		Doc: prettier.Concat{
			prettier.Group{
				Doc: operandDoc(b.Left),
			},
			prettier.Line{},
			prettier.Text(b.Kind.Symbol()),
			prettier.Space,
			prettier.Group{
				Doc: operandDoc(b.Right),
			},
		},
	}, nil
}

func (docPrinter) VisitIf(i *If) (prettier.Doc, error) {
	return prettier.Group{
		Doc: prettier.Concat{
			prettier.Text("if "),
			prettier.WrapParentheses(Doc(i.Condition), prettier.SoftLine{}),
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.Line{},
					Doc(i.TrueBranch),
				},
			},
			prettier.Line{},
			prettier.Text("else"),
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.Line{},
					Doc(i.FalseBranch),
				},
			},
		},
	}, nil
}

func (docPrinter) VisitContext(Context) (prettier.Doc, error) {
	return prettier.Text("CONTEXT"), nil
}

func (docPrinter) VisitGlobalVars(v GlobalVars) (prettier.Doc, error) {
	return prettier.Text(v.String()), nil
}

func (docPrinter) VisitFold(f *Fold) (prettier.Doc, error) {
	return prettier.Concat{
		selection(f.Input, "fold"),
		arguments(Doc(f.Zero), Doc(f.FoldOp)),
	}, nil
}

func (docPrinter) VisitPredefFunc(p *PredefFunc) (prettier.Doc, error) {
	return prettier.Concat{
		prettier.Text(p.Func.Name),
		arguments(docs(p.Args)...),
	}, nil
}

func (docPrinter) VisitMethodCall(c *MethodCall) (prettier.Doc, error) {
	return prettier.Concat{
		selection(c.Obj, c.Method.Name),
		arguments(docs(c.Args)...),
	}, nil
}

func (docPrinter) VisitPropertyCall(c *PropertyCall) (prettier.Doc, error) {
	return selection(c.Obj, c.Method.Name), nil
}

func (docPrinter) VisitOptionGet(o *OptionGet) (prettier.Doc, error) {
	return selection(o.Input, "get"), nil
}

func (docPrinter) VisitExtractRegisterAs(e *ExtractRegisterAs) (prettier.Doc, error) {
	return selection(e.Input, fmt.Sprintf("R%d[%s]", e.RegisterID, e.ElemType)), nil
}

func (docPrinter) VisitDeserializeRegister(d *DeserializeRegister) (prettier.Doc, error) {
	args := []prettier.Doc{
		prettier.Text(fmt.Sprintf("R%d", d.Register)),
	}
	if d.Default != nil {
		args = append(args, Doc(d.Default))
	}
	return prettier.Concat{
		prettier.Text(fmt.Sprintf("deserializeRegister[%s]", d.ExpectedType)),
		arguments(args...),
	}, nil
}
