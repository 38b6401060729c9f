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

// Package chain provides concrete boxes and transaction contexts
// which serve as the read-only collaborators of evaluation.
package chain

import (
	"bytes"

	"golang.org/x/crypto/blake2b"

	"github.com/ergoplatform/sigma-go/serialization"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

const (
	// DigestLength is the length of box ids, token ids and transaction ids.
	DigestLength = blake2b.Size256

	MaxTokens = 255
)

type Token struct {
	ID     []byte
	Amount int64
}

// TokensType is the type of register R2.
var TokensType = stype.NewColl(stype.NewTuple(stype.ByteArray, stype.SLong))

// BoxCandidate is an output before it is included in a transaction.
type BoxCandidate struct {
	Value          int64
	ErgoTree       []byte
	Tokens         []Token
	CreationHeight int32
	// Registers holds the encoded constants of R4 onwards, without gaps.
	Registers [][]byte
}

// EncodeRegisters encodes constants for BoxCandidate.Registers.
func EncodeRegisters(constants ...values.Constant) ([][]byte, error) {
	registers := make([][]byte, 0, len(constants))
	for _, constant := range constants {
		encoded, err := serialization.SerializeConstant(constant)
		if err != nil {
			return nil, err
		}
		registers = append(registers, encoded)
	}
	return registers, nil
}

// ErgoBox is an output of a transaction.
//
// Non-mandatory registers are kept encoded and only parsed when they are read.
type ErgoBox struct {
	value          int64
	ergoTree       []byte
	tokens         []Token
	creationHeight int32
	registers      [][]byte
	transactionID  []byte
	index          uint16
	id             []byte
}

var _ values.Box = &ErgoBox{}

// NewErgoBox returns the box created by the output at the index of the transaction.
func NewErgoBox(candidate BoxCandidate, transactionID []byte, index uint16) (*ErgoBox, error) {
	if candidate.Value < 0 {
		return nil, NewInvalidBoxError("negative value %d", candidate.Value)
	}
	if candidate.CreationHeight < 0 {
		return nil, NewInvalidBoxError("negative creation height %d", candidate.CreationHeight)
	}
	if len(candidate.Tokens) > MaxTokens {
		return nil, NewInvalidBoxError("too many tokens: %d", len(candidate.Tokens))
	}
	if len(candidate.Registers) > values.MaxNonMandatoryRegisters {
		return nil, NewInvalidBoxError("too many registers: %d", len(candidate.Registers))
	}
	if len(transactionID) != DigestLength {
		return nil, NewInvalidBoxError("invalid transaction id length %d", len(transactionID))
	}

	tokens := make([]Token, 0, len(candidate.Tokens))
	for _, token := range candidate.Tokens {
		if len(token.ID) != DigestLength {
			return nil, NewInvalidBoxError("invalid token id length %d", len(token.ID))
		}
		if token.Amount <= 0 {
			return nil, NewInvalidBoxError("token amount must be positive, got %d", token.Amount)
		}
		tokens = append(tokens, Token{
			ID:     bytes.Clone(token.ID),
			Amount: token.Amount,
		})
	}

	var registers [][]byte
	for i, register := range candidate.Registers {
		if len(register) == 0 {
			return nil, NewInvalidBoxError("register %s is empty", values.R4+values.RegisterID(i))
		}
		registers = append(registers, bytes.Clone(register))
	}

	box := &ErgoBox{
		value:          candidate.Value,
		ergoTree:       bytes.Clone(candidate.ErgoTree),
		creationHeight: candidate.CreationHeight,
		transactionID:  bytes.Clone(transactionID),
		index:          index,
	}
	if len(tokens) > 0 {
		box.tokens = tokens
	}
	box.registers = registers

	id := blake2b.Sum256(box.Bytes())
	box.id = id[:]

	return box, nil
}

// Bytes returns the canonical encoding of the box, which its id is computed from.
func (b *ErgoBox) Bytes() []byte {
	w := serialization.NewWriter()
	w.PutU64(uint64(b.value))
	w.PutU32(uint32(len(b.ergoTree)))
	w.PutBytes(b.ergoTree)
	w.PutU32(uint32(b.creationHeight))
	w.PutU8(byte(len(b.tokens)))
	for _, token := range b.tokens {
		w.PutBytes(token.ID)
		w.PutU64(uint64(token.Amount))
	}
	w.PutU8(byte(len(b.registers)))
	for _, register := range b.registers {
		w.PutBytes(register)
	}
	w.PutBytes(b.transactionID)
	w.PutU16(b.index)
	return w.Bytes()
}

func (b *ErgoBox) ID() []byte {
	return b.id
}

func (b *ErgoBox) Amount() int64 {
	return b.value
}

func (b *ErgoBox) ScriptBytes() []byte {
	return b.ergoTree
}

func (b *ErgoBox) Tokens() []Token {
	return b.tokens
}

func (b *ErgoBox) CreationHeight() int32 {
	return b.creationHeight
}

func (b *ErgoBox) TransactionID() []byte {
	return b.transactionID
}

func (b *ErgoBox) Index() uint16 {
	return b.index
}

// RegisterBytes returns the encoded constant of a non-mandatory register,
// or nil if the register is empty.
func (b *ErgoBox) RegisterBytes(id values.RegisterID) []byte {
	if id.IsMandatory() {
		return nil
	}
	index := int(id - values.R4)
	if index >= len(b.registers) {
		return nil
	}
	return b.registers[index]
}

// GetRegister returns the contents of the register, or nil if it is empty.
// Stored contents which cannot be decoded are reported as InvalidRegisterError.
func (b *ErgoBox) GetRegister(id values.RegisterID) (*values.Constant, error) {
	var constant values.Constant

	switch id {
	case values.R0:
		constant = values.LongConstant(b.value)

	case values.R1:
		constant = values.BytesConstant(b.ergoTree)

	case values.R2:
		constant = values.NewConstant(TokensType, b.tokensValue())

	case values.R3:
		constant = values.NewConstant(values.CreationInfoType, values.CreationInfo(b))

	default:
		if id >= values.RegistersCount {
			return nil, InvalidRegisterError{
				Register: id,
				Err:      NewInvalidBoxError("no such register"),
			}
		}
		encoded := b.RegisterBytes(id)
		if encoded == nil {
			return nil, nil
		}
		var err error
		constant, err = serialization.ParseConstant(encoded)
		if err != nil {
			return nil, InvalidRegisterError{
				Register: id,
				Err:      err,
			}
		}
	}

	return &constant, nil
}

func (b *ErgoBox) tokensValue() values.Coll {
	items := make([]values.Value, len(b.tokens))
	for i, token := range b.tokens {
		items[i] = values.Tuple{
			values.NewByteColl(token.ID),
			values.Long(token.Amount),
		}
	}
	return values.NewColl(TokensType.Elem, items...)
}
