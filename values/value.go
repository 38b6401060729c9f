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

// Package values contains the runtime values of the tree language.
//
// The set of values is closed: only this package can declare new kinds.
package values

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ergoplatform/sigma-go/stype"
)

type Value interface {
	fmt.Stringer
	isValue()
}

// Boolean

type Boolean bool

var _ Value = Boolean(false)

func (Boolean) isValue() {}

func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}

// Byte

type Byte int8

var _ Value = Byte(0)

func (Byte) isValue() {}

func (v Byte) String() string {
	return fmt.Sprintf("%d.toByte", int8(v))
}

// Short

type Short int16

var _ Value = Short(0)

func (Short) isValue() {}

func (v Short) String() string {
	return fmt.Sprintf("%d.toShort", int16(v))
}

// Int

type Int int32

var _ Value = Int(0)

func (Int) isValue() {}

func (v Int) String() string {
	return fmt.Sprintf("%d", int32(v))
}

// Long

type Long int64

var _ Value = Long(0)

func (Long) isValue() {}

func (v Long) String() string {
	return fmt.Sprintf("%dL", int64(v))
}

// BigInt

// BigIntBits is the maximal bit width of a signed BigInt, including the sign bit.
const BigIntBits = 256

var (
	MaxBigInt = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), BigIntBits-1), big.NewInt(1))
	MinBigInt = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), BigIntBits-1))
)

type BigInt struct {
	Int *big.Int
}

var _ Value = BigInt{}

// NewBigInt returns the value and false if it does not fit into BigIntBits.
func NewBigInt(i *big.Int) (BigInt, bool) {
	if i.Cmp(MaxBigInt) > 0 || i.Cmp(MinBigInt) < 0 {
		return BigInt{}, false
	}
	return BigInt{Int: new(big.Int).Set(i)}, true
}

func NewBigIntFromInt64(i int64) BigInt {
	return BigInt{Int: big.NewInt(i)}
}

func (BigInt) isValue() {}

func (v BigInt) String() string {
	return fmt.Sprintf("%s.toBigInt", v.Int)
}

// GroupElement

// GroupElementLength is the length of a compressed curve point.
const GroupElementLength = 33

// GroupElement is kept as its compressed encoding, curve arithmetic is out of scope.
type GroupElement [GroupElementLength]byte

var _ Value = GroupElement{}

func (GroupElement) isValue() {}

func (v GroupElement) String() string {
	return fmt.Sprintf("GroupElement(%x)", v[:])
}

// Unit

type Unit struct{}

var _ Value = Unit{}

func (Unit) isValue() {}

func (Unit) String() string {
	return "()"
}

// String

type String string

var _ Value = String("")

func (String) isValue() {}

func (v String) String() string {
	return fmt.Sprintf("%q", string(v))
}

// Coll

type Coll struct {
	Elem  stype.SType
	Items []Value
}

var _ Value = Coll{}

func NewColl(elem stype.SType, items ...Value) Coll {
	if items == nil {
		items = []Value{}
	}
	return Coll{
		Elem:  elem,
		Items: items,
	}
}

func NewByteColl(bytes []byte) Coll {
	items := make([]Value, len(bytes))
	for i, b := range bytes {
		items[i] = Byte(b)
	}
	return Coll{
		Elem:  stype.SByte,
		Items: items,
	}
}

func (Coll) isValue() {}

// Bytes returns the contents of a Coll[Byte], and false for other collections.
func (v Coll) Bytes() ([]byte, bool) {
	if !stype.Equal(v.Elem, stype.SByte) {
		return nil, false
	}
	bytes := make([]byte, len(v.Items))
	for i, item := range v.Items {
		b, ok := item.(Byte)
		if !ok {
			return nil, false
		}
		bytes[i] = byte(b)
	}
	return bytes, true
}

func (v Coll) String() string {
	var b strings.Builder
	b.WriteString("Coll(")
	for i, item := range v.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Opt

// Opt is an optional value. A nil Value is None.
type Opt struct {
	Elem  stype.SType
	Value Value
}

var _ Value = Opt{}

func NewSome(elem stype.SType, value Value) Opt {
	return Opt{Elem: elem, Value: value}
}

func NewNone(elem stype.SType) Opt {
	return Opt{Elem: elem}
}

func (Opt) isValue() {}

func (v Opt) IsDefined() bool {
	return v.Value != nil
}

func (v Opt) String() string {
	if v.Value == nil {
		return "None"
	}
	return fmt.Sprintf("Some(%s)", v.Value)
}

// Tuple

type Tuple []Value

var _ Value = Tuple{}

func (Tuple) isValue() {}

func (v Tuple) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}

// BoxValue

// BoxValue is an opaque reference to a box owned by the transaction context.
type BoxValue struct {
	Box Box
}

var _ Value = BoxValue{}

func (BoxValue) isValue() {}

func (v BoxValue) String() string {
	return fmt.Sprintf("Box(%x)", v.Box.ID())
}

// ContextValue

// ContextValue is an opaque reference to the transaction context.
type ContextValue struct {
	Context Context
}

var _ Value = ContextValue{}

func (ContextValue) isValue() {}

func (ContextValue) String() string {
	return "CONTEXT"
}

// Func

// Func is a function value created by the evaluator from a lambda.
type Func struct {
	Type  stype.SFunc
	Apply func(args []Value) (Value, error)
}

var _ Value = Func{}

func (Func) isValue() {}

func (v Func) String() string {
	return fmt.Sprintf("<function %s>", v.Type)
}

// TypeOf returns the runtime type tag of the value.
func TypeOf(value Value) stype.SType {
	switch value := value.(type) {
	case Boolean:
		return stype.SBoolean
	case Byte:
		return stype.SByte
	case Short:
		return stype.SShort
	case Int:
		return stype.SInt
	case Long:
		return stype.SLong
	case BigInt:
		return stype.SBigInt
	case GroupElement:
		return stype.SGroupElement
	case Unit:
		return stype.SUnit
	case String:
		return stype.SString
	case Coll:
		return stype.NewColl(value.Elem)
	case Opt:
		return stype.NewOption(value.Elem)
	case Tuple:
		items := make([]stype.SType, len(value))
		for i, item := range value {
			items[i] = TypeOf(item)
		}
		return stype.NewTuple(items...)
	case BoxValue:
		return stype.SBox
	case ContextValue:
		return stype.SContext
	case Func:
		return value.Type
	}
	return nil
}
