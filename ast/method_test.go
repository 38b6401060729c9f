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
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

type testBox struct {
	id     []byte
	amount int64
}

var _ values.Box = testBox{}

func (b testBox) ID() []byte { return b.id }
func (b testBox) Amount() int64 { return b.amount }
func (testBox) ScriptBytes() []byte { return []byte{0x10, 0x01} }
func (testBox) CreationHeight() int32 { return 100 }
func (testBox) TransactionID() []byte { return []byte{0xAA, 0xBB} }
func (testBox) Index() uint16 { return 0x0102 }
func (testBox) GetRegister(values.RegisterID) (*values.Constant, error) {
	return nil, nil
}

type testContext struct {
	self testBox
}

var _ values.Context = testContext{}

func (testContext) Height() int32 { return 42 }
func (c testContext) SelfBox() values.Box { return c.self }
func (c testContext) Inputs() []values.Box { return []values.Box{c.self} }
func (testContext) Outputs() []values.Box { return nil }
func (testContext) DataInputs() []values.Box { return nil }
func (testContext) MinerPubKey() []byte { return []byte{0x02} }

func TestLookupMethod(t *testing.T) {

	t.Parallel()

	for _, method := range []*SMethod{
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
	} {
		actual, ok := LookupMethod(method.TypeCode, method.MethodID)
		require.True(t, ok, method.Name)
		assert.Same(t, method, actual)
	}

	_, ok := LookupMethod(uint8(stype.SBox), 100)
	assert.False(t, ok)
}

func TestTypeCode(t *testing.T) {

	t.Parallel()

	type testCase struct {
		typ      stype.SType
		expected uint8
	}

	for _, testCase := range []testCase{
		{stype.SBox, 99},
		{stype.SContext, 101},
		{stype.ByteArray, CollTypeCode},
		{stype.NewOption(stype.SInt), OptionTypeCode},
		{stype.NewTuple(stype.SInt, stype.SInt), TupleTypeCode},
	} {
		actual, ok := TypeCode(testCase.typ)
		require.True(t, ok)
		assert.Equal(t, testCase.expected, actual)
	}

	_, ok := TypeCode(stype.NewFunc(nil, stype.SInt))
	assert.False(t, ok)
}

func TestBoxMethods(t *testing.T) {

	t.Parallel()

	box := values.BoxValue{
		Box: testBox{id: []byte{1, 2, 3}, amount: 1000},
	}

	value, err := BoxValueMethod.Invoke(box, nil)
	require.NoError(t, err)
	assert.Equal(t, values.Long(1000), value)

	id, err := BoxIDMethod.Invoke(box, nil)
	require.NoError(t, err)
	assert.Equal(t, values.NewByteColl([]byte{1, 2, 3}), id)

	script, err := BoxPropositionBytesMethod.Invoke(box, nil)
	require.NoError(t, err)
	assert.Equal(t, values.NewByteColl([]byte{0x10, 0x01}), script)

	creationInfo, err := BoxCreationInfoMethod.Invoke(box, nil)
	require.NoError(t, err)
	assert.Equal(t,
		values.Tuple{
			values.Int(100),
			values.NewByteColl([]byte{0xAA, 0xBB, 0x01, 0x02}),
		},
		creationInfo,
	)
	assert.True(t, stype.Equal(values.CreationInfoType, values.TypeOf(creationInfo)))

	_, err = BoxValueMethod.Invoke(values.Int(1), nil)
	require.Error(t, err)
}

func TestCollMethods(t *testing.T) {

	t.Parallel()

	coll := values.NewColl(stype.SInt, values.Int(10), values.Int(20))

	t.Run("size", func(t *testing.T) {
		t.Parallel()

		size, err := CollSizeMethod.Invoke(coll, nil)
		require.NoError(t, err)
		assert.Equal(t, values.Int(2), size)
	})

	t.Run("apply", func(t *testing.T) {
		t.Parallel()

		item, err := CollApplyMethod.Invoke(coll, []values.Value{values.Int(1)})
		require.NoError(t, err)
		assert.Equal(t, values.Int(20), item)

		_, err = CollApplyMethod.Invoke(coll, []values.Value{values.Int(2)})
		require.Error(t, err)

		_, err = CollApplyMethod.Invoke(coll, []values.Value{values.Int(-1)})
		require.Error(t, err)
	})

	t.Run("getOrElse", func(t *testing.T) {
		t.Parallel()

		item, err := CollGetOrElseMethod.Invoke(coll, []values.Value{values.Int(0), values.Int(5)})
		require.NoError(t, err)
		assert.Equal(t, values.Int(10), item)

		item, err = CollGetOrElseMethod.Invoke(coll, []values.Value{values.Int(7), values.Int(5)})
		require.NoError(t, err)
		assert.Equal(t, values.Int(5), item)
	})
}

func TestOptionMethods(t *testing.T) {

	t.Parallel()

	some := values.NewSome(stype.SInt, values.Int(1))
	none := values.NewNone(stype.SInt)

	defined, err := OptionIsDefinedMethod.Invoke(some, nil)
	require.NoError(t, err)
	assert.Equal(t, values.Boolean(true), defined)

	defined, err = OptionIsDefinedMethod.Invoke(none, nil)
	require.NoError(t, err)
	assert.Equal(t, values.Boolean(false), defined)

	value, err := OptionGetMethod.Invoke(some, nil)
	require.NoError(t, err)
	assert.Equal(t, values.Int(1), value)

	_, err = OptionGetMethod.Invoke(none, nil)
	require.Error(t, err)

	value, err = OptionGetOrElseMethod.Invoke(none, []values.Value{values.Int(9)})
	require.NoError(t, err)
	assert.Equal(t, values.Int(9), value)
}

func TestContextMethods(t *testing.T) {

	t.Parallel()

	self := testBox{id: []byte{7}}
	ctx := values.ContextValue{
		Context: testContext{self: self},
	}

	height, err := ContextHeightMethod.Invoke(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, values.Int(42), height)

	selfBox, err := ContextSelfMethod.Invoke(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, values.BoxValue{Box: self}, selfBox)

	inputs, err := ContextInputsMethod.Invoke(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, values.NewBoxColl([]values.Box{self}), inputs)

	outputs, err := ContextOutputsMethod.Invoke(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, values.NewColl(stype.SBox), outputs)

	minerPubKey, err := ContextMinerPubKeyMethod.Invoke(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, values.NewByteColl([]byte{0x02}), minerPubKey)

	call, err := NewPropertyCall(Context{}, ContextDataInputsMethod)
	require.NoError(t, err)
	assert.Equal(t, stype.BoxColl, call.Type())
}

func TestPredefFunctions(t *testing.T) {

	t.Parallel()

	empty := []values.Value{values.NewByteColl(nil)}

	blake2b, err := Blake2b256Func.Invoke(empty)
	require.NoError(t, err)
	assert.Equal(t,
		"0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		hexOf(t, blake2b),
	)

	sha256, err := Sha256Func.Invoke(empty)
	require.NoError(t, err)
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		hexOf(t, sha256),
	)

	_, err = Sha256Func.Invoke([]values.Value{values.NewColl(stype.SInt)})
	require.Error(t, err)

	predef, ok := LookupPredef(Blake2b256Func.OpCode)
	require.True(t, ok)
	assert.Same(t, Blake2b256Func, predef)
}

func hexOf(t *testing.T, value values.Value) string {
	coll, ok := value.(values.Coll)
	require.True(t, ok)
	bytes, ok := coll.Bytes()
	require.True(t, ok)
	return hex.EncodeToString(bytes)
}
