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

// Package stype contains the closed set of type tags of the tree language.
//
// Types are compared structurally with Equal, never by identity.
package stype

import (
	"fmt"
	"strings"
)

type SType interface {
	fmt.Stringer
	isSType()
	Equal(other SType) bool
}

// PrimitiveType

type PrimitiveType uint8

// The values are the type codes used on the wire.
const (
	SBoolean      PrimitiveType = 1
	SByte         PrimitiveType = 2
	SShort        PrimitiveType = 3
	SInt          PrimitiveType = 4
	SLong         PrimitiveType = 5
	SBigInt       PrimitiveType = 6
	SGroupElement PrimitiveType = 7
	SSigmaProp    PrimitiveType = 8

	SAny       PrimitiveType = 97
	SUnit      PrimitiveType = 98
	SBox       PrimitiveType = 99
	SAvlTree   PrimitiveType = 100
	SContext   PrimitiveType = 101
	SString    PrimitiveType = 102
	SHeader    PrimitiveType = 104
	SPreHeader PrimitiveType = 105
	SGlobal    PrimitiveType = 106
)

// MaxEmbeddableCode is the largest type code which can be combined
// with a container code into a single byte.
const MaxEmbeddableCode = 11

var _ SType = SBoolean

func (PrimitiveType) isSType() {}

func (t PrimitiveType) Equal(other SType) bool {
	otherPrimitive, ok := other.(PrimitiveType)
	return ok && otherPrimitive == t
}

func (t PrimitiveType) String() string {
	switch t {
	case SBoolean:
		return "Boolean"
	case SByte:
		return "Byte"
	case SShort:
		return "Short"
	case SInt:
		return "Int"
	case SLong:
		return "Long"
	case SBigInt:
		return "BigInt"
	case SGroupElement:
		return "GroupElement"
	case SSigmaProp:
		return "SigmaProp"
	case SAny:
		return "Any"
	case SUnit:
		return "Unit"
	case SBox:
		return "Box"
	case SAvlTree:
		return "AvlTree"
	case SContext:
		return "Context"
	case SString:
		return "String"
	case SHeader:
		return "Header"
	case SPreHeader:
		return "PreHeader"
	case SGlobal:
		return "Global"
	}
	return fmt.Sprintf("PrimitiveType(%d)", uint8(t))
}

// IsValid reports whether the code denotes a known primitive type.
func (t PrimitiveType) IsValid() bool {
	switch t {
	case SBoolean, SByte, SShort, SInt, SLong, SBigInt, SGroupElement, SSigmaProp,
		SAny, SUnit, SBox, SAvlTree, SContext, SString, SHeader, SPreHeader, SGlobal:
		return true
	}
	return false
}

// IsEmbeddable reports whether the type code fits into a container type code.
func (t PrimitiveType) IsEmbeddable() bool {
	return t >= SBoolean && t <= SSigmaProp
}

// IsNumeric reports whether arithmetic and ordering operations apply.
func (t PrimitiveType) IsNumeric() bool {
	switch t {
	case SByte, SShort, SInt, SLong, SBigInt:
		return true
	}
	return false
}

// SColl

type SColl struct {
	Elem SType
}

var _ SType = SColl{}

func NewColl(elem SType) SColl {
	return SColl{Elem: elem}
}

func (SColl) isSType() {}

func (t SColl) Equal(other SType) bool {
	otherColl, ok := other.(SColl)
	return ok && t.Elem.Equal(otherColl.Elem)
}

func (t SColl) String() string {
	return fmt.Sprintf("Coll[%s]", t.Elem)
}

// SOption

type SOption struct {
	Elem SType
}

var _ SType = SOption{}

func NewOption(elem SType) SOption {
	return SOption{Elem: elem}
}

func (SOption) isSType() {}

func (t SOption) Equal(other SType) bool {
	otherOption, ok := other.(SOption)
	return ok && t.Elem.Equal(otherOption.Elem)
}

func (t SOption) String() string {
	return fmt.Sprintf("Option[%s]", t.Elem)
}

// STuple

type STuple struct {
	Items []SType
}

var _ SType = STuple{}

// MinTupleLength and MaxTupleLength bound the number of tuple items.
const (
	MinTupleLength = 2
	MaxTupleLength = 255
)

func NewTuple(items ...SType) STuple {
	return STuple{Items: items}
}

func (STuple) isSType() {}

func (t STuple) Equal(other SType) bool {
	otherTuple, ok := other.(STuple)
	if !ok || len(otherTuple.Items) != len(t.Items) {
		return false
	}
	for i, item := range t.Items {
		if !item.Equal(otherTuple.Items[i]) {
			return false
		}
	}
	return true
}

func (t STuple) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range t.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}

// SFunc

type SFunc struct {
	Dom   []SType
	Range SType
}

var _ SType = SFunc{}

func NewFunc(dom []SType, rng SType) SFunc {
	return SFunc{Dom: dom, Range: rng}
}

func (SFunc) isSType() {}

func (t SFunc) Equal(other SType) bool {
	otherFunc, ok := other.(SFunc)
	if !ok || len(otherFunc.Dom) != len(t.Dom) {
		return false
	}
	for i, arg := range t.Dom {
		if !arg.Equal(otherFunc.Dom[i]) {
			return false
		}
	}
	return t.Range.Equal(otherFunc.Range)
}

func (t SFunc) String() string {
	return fmt.Sprintf("%s => %s", STuple{Items: t.Dom}, t.Range)
}

// STypeVar

type STypeVar struct {
	Name string
}

var _ SType = STypeVar{}

func (STypeVar) isSType() {}

func (t STypeVar) Equal(other SType) bool {
	otherVar, ok := other.(STypeVar)
	return ok && otherVar.Name == t.Name
}

func (t STypeVar) String() string {
	return t.Name
}

// Equal reports whether both types are structurally equal. Nil types are only equal to each other.
func Equal(a, b SType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// IsNumeric reports whether the type supports arithmetic.
func IsNumeric(t SType) bool {
	primitive, ok := t.(PrimitiveType)
	return ok && primitive.IsNumeric()
}

// IsCollOfByte reports whether the type is Coll[Byte].
func IsCollOfByte(t SType) bool {
	return ByteArray.Equal(t)
}

// IsOptionOf reports whether the type is Option[elem].
func IsOptionOf(t SType, elem SType) bool {
	option, ok := t.(SOption)
	return ok && option.Elem.Equal(elem)
}

// ByteArray is the type of byte sequences, Coll[Byte].
var ByteArray SType = SColl{Elem: SByte}

// BoxColl is the type of box collections, Coll[Box].
var BoxColl SType = SColl{Elem: SBox}
