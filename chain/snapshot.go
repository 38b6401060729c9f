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
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/ergoplatform/sigma-go/errors"
)

// Snapshots are CBOR encodings of boxes and contexts.
// Registers are stored as their encoded constants,
// so undecodable register contents survive a round trip and fail when read.

var cborEncMode = func() cbor.EncMode {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

var cborDecMode = func() cbor.DecMode {
	decMode, err := cbor.DecOptions{
		IntDec:           cbor.IntDecConvertNone,
		MaxArrayElements: math.MaxUint16,
		MaxMapPairs:      math.MaxUint16,
		MaxNestedLevels:  16,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return decMode
}()

type encodedToken struct {
	ID     []byte `cbor:"0,keyasint"`
	Amount int64  `cbor:"1,keyasint"`
}

type encodedBox struct {
	Value          int64          `cbor:"0,keyasint"`
	ErgoTree       []byte         `cbor:"1,keyasint"`
	Tokens         []encodedToken `cbor:"2,keyasint,omitempty"`
	CreationHeight int32          `cbor:"3,keyasint"`
	Registers      [][]byte       `cbor:"4,keyasint,omitempty"`
	TransactionID  []byte         `cbor:"5,keyasint"`
	Index          uint16         `cbor:"6,keyasint"`
	ID             []byte         `cbor:"7,keyasint"`
}

type encodedContext struct {
	Height      int32        `cbor:"0,keyasint"`
	SelfIndex   int          `cbor:"1,keyasint"`
	Inputs      []encodedBox `cbor:"2,keyasint"`
	Outputs     []encodedBox `cbor:"3,keyasint,omitempty"`
	DataInputs  []encodedBox `cbor:"4,keyasint,omitempty"`
	MinerPubKey []byte       `cbor:"5,keyasint,omitempty"`
}

func prepareBox(box *ErgoBox) encodedBox {
	var tokens []encodedToken
	for _, token := range box.tokens {
		tokens = append(tokens, encodedToken(token))
	}
	return encodedBox{
		Value:          box.value,
		ErgoTree:       box.ergoTree,
		Tokens:         tokens,
		CreationHeight: box.creationHeight,
		Registers:      box.registers,
		TransactionID:  box.transactionID,
		Index:          box.index,
		ID:             box.id,
	}
}

func prepareBoxes(boxes []*ErgoBox) []encodedBox {
	if len(boxes) == 0 {
		return nil
	}
	result := make([]encodedBox, len(boxes))
	for i, box := range boxes {
		result[i] = prepareBox(box)
	}
	return result
}

func restoreBox(encoded encodedBox) (*ErgoBox, error) {
	tokens := make([]Token, len(encoded.Tokens))
	for i, token := range encoded.Tokens {
		tokens[i] = Token(token)
	}
	box, err := NewErgoBox(
		BoxCandidate{
			Value:          encoded.Value,
			ErgoTree:       encoded.ErgoTree,
			Tokens:         tokens,
			CreationHeight: encoded.CreationHeight,
			Registers:      encoded.Registers,
		},
		encoded.TransactionID,
		encoded.Index,
	)
	if err != nil {
		return nil, SnapshotError{Err: err}
	}
	if !bytes.Equal(box.id, encoded.ID) {
		return nil, SnapshotError{
			Err: NewInvalidBoxError("id %x does not match contents, expected %x", encoded.ID, box.id),
		}
	}
	return box, nil
}

func restoreBoxes(encoded []encodedBox) ([]*ErgoBox, error) {
	boxes := make([]*ErgoBox, len(encoded))
	for i, encodedBox := range encoded {
		box, err := restoreBox(encodedBox)
		if err != nil {
			return nil, err
		}
		boxes[i] = box
	}
	return boxes, nil
}

// EncodeBox returns the snapshot of a box.
func EncodeBox(box *ErgoBox) ([]byte, error) {
	return marshal(prepareBox(box))
}

// marshal encodes a snapshot. The snapshot types always have an encoding,
// so a failure is an implementation error.
func marshal(v any) ([]byte, error) {
	b, err := cborEncMode.Marshal(v)
	if err != nil {
		return nil, errors.NewUnexpectedErrorFromCause(err)
	}
	return b, nil
}

// DecodeBox restores a box from its snapshot and checks its id.
func DecodeBox(b []byte) (*ErgoBox, error) {
	var encoded encodedBox
	if err := cborDecMode.Unmarshal(b, &encoded); err != nil {
		return nil, SnapshotError{Err: err}
	}
	return restoreBox(encoded)
}

// EncodeContext returns the snapshot of a context.
func EncodeContext(ctx *Context) ([]byte, error) {
	return marshal(encodedContext{
		Height:      ctx.height,
		SelfIndex:   ctx.selfIndex,
		Inputs:      prepareBoxes(ctx.inputs),
		Outputs:     prepareBoxes(ctx.outputs),
		DataInputs:  prepareBoxes(ctx.dataInputs),
		MinerPubKey: ctx.minerPubKey,
	})
}

// DecodeContext restores a context from its snapshot.
func DecodeContext(b []byte) (*Context, error) {
	var encoded encodedContext
	if err := cborDecMode.Unmarshal(b, &encoded); err != nil {
		return nil, SnapshotError{Err: err}
	}

	inputs, err := restoreBoxes(encoded.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := restoreBoxes(encoded.Outputs)
	if err != nil {
		return nil, err
	}
	dataInputs, err := restoreBoxes(encoded.DataInputs)
	if err != nil {
		return nil, err
	}

	ctx, err := NewContext(
		encoded.Height,
		inputs,
		encoded.SelfIndex,
		outputs,
		dataInputs,
		encoded.MinerPubKey,
	)
	if err != nil {
		return nil, SnapshotError{Err: err}
	}
	return ctx, nil
}
