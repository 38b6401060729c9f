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

package stype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, Equal(SInt, SInt))
	assert.False(t, Equal(SInt, SLong))
	assert.True(t, Equal(NewColl(SByte), ByteArray))
	assert.False(t, Equal(NewColl(SByte), NewOption(SByte)))
	assert.True(t, Equal(
		NewTuple(SInt, NewColl(SByte)),
		NewTuple(SInt, NewColl(SByte)),
	))
	assert.False(t, Equal(
		NewTuple(SInt, SLong),
		NewTuple(SInt, SLong, SLong),
	))
	assert.True(t, Equal(
		NewFunc([]SType{SInt}, SBoolean),
		NewFunc([]SType{SInt}, SBoolean),
	))
	assert.False(t, Equal(SInt, nil))
	assert.True(t, Equal(nil, nil))
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Coll[Byte]", ByteArray.String())
	assert.Equal(t, "Option[(Int, Coll[Byte])]", NewOption(NewTuple(SInt, ByteArray)).String())
	assert.Equal(t, "(Long) => Boolean", NewFunc([]SType{SLong}, SBoolean).String())
}

func TestQueries(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNumeric(SBigInt))
	assert.False(t, IsNumeric(SBoolean))
	assert.True(t, IsCollOfByte(NewColl(SByte)))
	assert.False(t, IsCollOfByte(NewColl(SInt)))
	assert.True(t, IsOptionOf(NewOption(SLong), SLong))
	assert.True(t, SSigmaProp.IsEmbeddable())
	assert.False(t, SBox.IsEmbeddable())
	assert.False(t, PrimitiveType(50).IsValid())
}
