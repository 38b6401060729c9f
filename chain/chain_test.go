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

package chain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ergoplatform/sigma-go/errors"
	"github.com/ergoplatform/sigma-go/serialization"
	"github.com/ergoplatform/sigma-go/stype"
	. "github.com/ergoplatform/sigma-go/test_utils/common_utils"
	"github.com/ergoplatform/sigma-go/values"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	testTransactionID = bytes.Repeat([]byte{0xAB}, DigestLength)
	testTokenID       = bytes.Repeat([]byte{0x01}, DigestLength)
	testErgoTree      = []byte{0x00, 0x94, 0xA3, 0x04, 0x02}
)

func newTestBox(t *testing.T, value int64, registers ...values.Constant) *ErgoBox {
	encoded, err := EncodeRegisters(registers...)
	require.NoError(t, err)

	box, err := NewErgoBox(
		BoxCandidate{
			Value:          value,
			ErgoTree:       testErgoTree,
			Tokens:         []Token{{ID: testTokenID, Amount: 10}},
			CreationHeight: 100,
			Registers:      encoded,
		},
		testTransactionID,
		2,
	)
	require.NoError(t, err)
	return box
}

func TestErgoBox_MandatoryRegisters(t *testing.T) {

	t.Parallel()

	box := newTestBox(t, 1000)

	r0, err := box.GetRegister(values.R0)
	require.NoError(t, err)
	assert.Equal(t, values.LongConstant(1000), *r0)

	r1, err := box.GetRegister(values.R1)
	require.NoError(t, err)
	assert.Equal(t, values.BytesConstant(testErgoTree), *r1)

	r2, err := box.GetRegister(values.R2)
	require.NoError(t, err)
	AssertEqualWithDiff(t,
		values.NewConstant(
			TokensType,
			values.NewColl(
				stype.NewTuple(stype.ByteArray, stype.SLong),
				values.Tuple{values.NewByteColl(testTokenID), values.Long(10)},
			),
		),
		*r2,
	)

	r3, err := box.GetRegister(values.R3)
	require.NoError(t, err)
	expectedRef := append(bytes.Clone(testTransactionID), 0x00, 0x02)
	AssertEqualWithDiff(t,
		values.NewConstant(
			values.CreationInfoType,
			values.Tuple{values.Int(100), values.NewByteColl(expectedRef)},
		),
		*r3,
	)
}

func TestErgoBox_NonMandatoryRegisters(t *testing.T) {

	t.Parallel()

	box := newTestBox(t, 1000,
		values.IntConstant(7),
		values.BytesConstant([]byte{0xCA, 0xFE}),
	)

	r4, err := box.GetRegister(values.R4)
	require.NoError(t, err)
	assert.Equal(t, values.IntConstant(7), *r4)

	r5, err := box.GetRegister(values.R5)
	require.NoError(t, err)
	assert.Equal(t, values.BytesConstant([]byte{0xCA, 0xFE}), *r5)

	for _, id := range []values.RegisterID{values.R6, values.R7, values.R8, values.R9} {
		register, err := box.GetRegister(id)
		require.NoError(t, err)
		assert.Nil(t, register, id.String())
	}

	_, err = box.GetRegister(values.RegisterID(10))
	require.ErrorAs(t, err, &InvalidRegisterError{})
}

func TestErgoBox_UndecodableRegister(t *testing.T) {

	t.Parallel()

	box, err := NewErgoBox(
		BoxCandidate{
			Value:     1,
			ErgoTree:  testErgoTree,
			Registers: [][]byte{{0xFF, 0xFF}},
		},
		testTransactionID,
		0,
	)
	require.NoError(t, err)

	_, err = box.GetRegister(values.R4)
	var registerErr InvalidRegisterError
	require.ErrorAs(t, err, &registerErr)
	assert.Equal(t, values.R4, registerErr.Register)
	require.ErrorAs(t, err, &serialization.UnknownTypeCodeError{})
	assert.True(t, errors.IsUserError(err))
}

func TestErgoBox_ID(t *testing.T) {

	t.Parallel()

	box := newTestBox(t, 1000)
	assert.Len(t, box.ID(), DigestLength)

	assert.Equal(t, box.ID(), newTestBox(t, 1000).ID())
	assert.NotEqual(t, box.ID(), newTestBox(t, 1001).ID())
	assert.NotEqual(t, box.ID(), newTestBox(t, 1000, values.IntConstant(1)).ID())
}

func TestNewErgoBox_Invalid(t *testing.T) {

	t.Parallel()

	valid := BoxCandidate{
		Value:    1,
		ErgoTree: testErgoTree,
	}

	for name, test := range map[string]struct {
		modify        func(*BoxCandidate)
		transactionID []byte
	}{
		"negative value": {
			modify: func(c *BoxCandidate) { c.Value = -1 },
		},
		"negative creation height": {
			modify: func(c *BoxCandidate) { c.CreationHeight = -1 },
		},
		"too many registers": {
			modify: func(c *BoxCandidate) {
				c.Registers = make([][]byte, values.MaxNonMandatoryRegisters+1)
				for i := range c.Registers {
					c.Registers[i] = []byte{0x04, 0x00}
				}
			},
		},
		"empty register": {
			modify: func(c *BoxCandidate) { c.Registers = [][]byte{{0x04, 0x00}, nil} },
		},
		"short token id": {
			modify: func(c *BoxCandidate) { c.Tokens = []Token{{ID: []byte{1}, Amount: 1}} },
		},
		"zero token amount": {
			modify: func(c *BoxCandidate) { c.Tokens = []Token{{ID: testTokenID}} },
		},
		"short transaction id": {
			modify:        func(*BoxCandidate) {},
			transactionID: []byte{1, 2, 3},
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			candidate := valid
			test.modify(&candidate)

			transactionID := test.transactionID
			if transactionID == nil {
				transactionID = testTransactionID
			}

			_, err := NewErgoBox(candidate, transactionID, 0)
			require.ErrorAs(t, err, &InvalidBoxError{})
		})
	}
}

func newTestContext(t *testing.T) *Context {
	self := newTestBox(t, 1000, values.IntConstant(5))
	other := newTestBox(t, 2000)
	output := newTestBox(t, 2900)
	dataInput := newTestBox(t, 1, values.LongConstant(3))

	ctx, err := NewContext(
		120,
		[]*ErgoBox{other, self},
		1,
		[]*ErgoBox{output},
		[]*ErgoBox{dataInput},
		[]byte{0x02, 0x03},
	)
	require.NoError(t, err)
	return ctx
}

func TestContext(t *testing.T) {

	t.Parallel()

	ctx := newTestContext(t)

	assert.Equal(t, int32(120), ctx.Height())
	assert.Equal(t, int64(1000), ctx.SelfBox().Amount())
	assert.Len(t, ctx.Inputs(), 2)
	assert.Same(t, ctx.Self(), ctx.Inputs()[1])
	assert.Len(t, ctx.Outputs(), 1)
	assert.Len(t, ctx.DataInputs(), 1)
	assert.Equal(t, []byte{0x02, 0x03}, ctx.MinerPubKey())

	higher, err := ctx.WithHeight(121)
	require.NoError(t, err)
	assert.Equal(t, int32(121), higher.Height())
	assert.Equal(t, int32(120), ctx.Height())
}

func TestNewContext_Invalid(t *testing.T) {

	t.Parallel()

	box := newTestBox(t, 1)

	_, err := NewContext(1, []*ErgoBox{box}, 1, nil, nil, nil)
	require.ErrorAs(t, err, &InvalidContextError{})

	_, err = NewContext(1, nil, 0, nil, nil, nil)
	require.ErrorAs(t, err, &InvalidContextError{})

	_, err = NewContext(-1, []*ErgoBox{box}, 0, nil, nil, nil)
	require.ErrorAs(t, err, &InvalidContextError{})

	_, err = NewContext(1, []*ErgoBox{box}, 0, []*ErgoBox{nil}, nil, nil)
	require.ErrorAs(t, err, &InvalidContextError{})
}

func TestSnapshot_Context(t *testing.T) {

	t.Parallel()

	ctx := newTestContext(t)

	encoded, err := EncodeContext(ctx)
	require.NoError(t, err)

	decoded, err := DecodeContext(encoded)
	require.NoError(t, err)
	AssertEqualWithDiff(t, ctx, decoded)

	// canonical encoding is deterministic
	reencoded, err := EncodeContext(decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded)
}

func TestSnapshot_Box(t *testing.T) {

	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		box := newTestBox(t, 1000, values.IntConstant(5))

		encoded, err := EncodeBox(box)
		require.NoError(t, err)

		decoded, err := DecodeBox(encoded)
		require.NoError(t, err)
		AssertEqualWithDiff(t, box, decoded)
	})

	t.Run("undecodable register survives", func(t *testing.T) {
		t.Parallel()

		box, err := NewErgoBox(
			BoxCandidate{
				Value:     1,
				ErgoTree:  testErgoTree,
				Registers: [][]byte{{0xFF}},
			},
			testTransactionID,
			0,
		)
		require.NoError(t, err)

		encoded, err := EncodeBox(box)
		require.NoError(t, err)

		decoded, err := DecodeBox(encoded)
		require.NoError(t, err)

		_, err = decoded.GetRegister(values.R4)
		require.ErrorAs(t, err, &InvalidRegisterError{})
	})

	t.Run("tampered id", func(t *testing.T) {
		t.Parallel()

		box := newTestBox(t, 1000)
		encodedBox := prepareBox(box)
		encodedBox.ID = bytes.Repeat([]byte{0}, DigestLength)

		encoded, err := cborEncMode.Marshal(encodedBox)
		require.NoError(t, err)

		_, err = DecodeBox(encoded)
		require.ErrorAs(t, err, &SnapshotError{})
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeBox([]byte{0xFF})
		require.ErrorAs(t, err, &SnapshotError{})
	})
}
