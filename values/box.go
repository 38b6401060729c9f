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

package values

import (
	"fmt"

	"github.com/ergoplatform/sigma-go/stype"
)

// RegisterID identifies one of the typed data slots of a box.
type RegisterID uint8

const (
	R0 RegisterID = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
)

const (
	// MandatoryRegistersCount is the number of registers every box has: R0 to R3.
	MandatoryRegistersCount = 4
	// RegistersCount is the number of register slots: R0 to R9.
	RegistersCount = 10
	// MaxNonMandatoryRegisters is the number of optional registers: R4 to R9.
	MaxNonMandatoryRegisters = RegistersCount - MandatoryRegistersCount
)

// RegisterIDFromIndex validates the index against the register range.
func RegisterIDFromIndex(index int) (RegisterID, bool) {
	if index < 0 || index >= RegistersCount {
		return 0, false
	}
	return RegisterID(index), true
}

func (id RegisterID) IsMandatory() bool {
	return id < MandatoryRegistersCount
}

func (id RegisterID) String() string {
	return fmt.Sprintf("R%d", uint8(id))
}

// Box is a transaction output as seen by evaluation. Implementations must be read-only.
type Box interface {
	ID() []byte
	Amount() int64
	ScriptBytes() []byte
	CreationHeight() int32
	TransactionID() []byte
	Index() uint16
	// GetRegister returns nil for an empty register.
	// An error is only returned if the register contents could not be retrieved.
	GetRegister(id RegisterID) (*Constant, error)
}

// Context is the read-only execution context of one evaluation.
type Context interface {
	Height() int32
	SelfBox() Box
	Inputs() []Box
	Outputs() []Box
	DataInputs() []Box
	MinerPubKey() []byte
}

// CreationInfo returns the creation height of the box and the id of the
// transaction which created it, followed by the big-endian output index.
func CreationInfo(box Box) Tuple {
	txID := box.TransactionID()
	index := box.Index()
	ref := make([]byte, 0, len(txID)+2)
	ref = append(ref, txID...)
	ref = append(ref, byte(index>>8), byte(index))
	return Tuple{
		Int(box.CreationHeight()),
		NewByteColl(ref),
	}
}

// CreationInfoType is the type of CreationInfo, (Int, Coll[Byte]).
var CreationInfoType = stype.NewTuple(stype.SInt, stype.ByteArray)

// NewBoxColl returns the boxes as a Coll[Box].
func NewBoxColl(boxes []Box) Coll {
	items := make([]Value, len(boxes))
	for i, box := range boxes {
		items[i] = BoxValue{Box: box}
	}
	return NewColl(stype.SBox, items...)
}
