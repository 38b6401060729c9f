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

	"github.com/ergoplatform/sigma-go/values"
)

// Context is the transaction context a box is spent in.
type Context struct {
	height      int32
	selfIndex   int
	inputs      []*ErgoBox
	outputs     []*ErgoBox
	dataInputs  []*ErgoBox
	minerPubKey []byte
}

var _ values.Context = &Context{}

// NewContext returns the context of spending the input at selfIndex.
func NewContext(
	height int32,
	inputs []*ErgoBox,
	selfIndex int,
	outputs []*ErgoBox,
	dataInputs []*ErgoBox,
	minerPubKey []byte,
) (*Context, error) {
	if height < 0 {
		return nil, NewInvalidContextError("negative height %d", height)
	}
	if selfIndex < 0 || selfIndex >= len(inputs) {
		return nil, NewInvalidContextError(
			"self index %d is out of bounds for %d inputs",
			selfIndex,
			len(inputs),
		)
	}
	for _, boxes := range [][]*ErgoBox{inputs, outputs, dataInputs} {
		for i, box := range boxes {
			if box == nil {
				return nil, NewInvalidContextError("box %d is missing", i)
			}
		}
	}

	return &Context{
		height:      height,
		selfIndex:   selfIndex,
		inputs:      cloneBoxes(inputs),
		outputs:     cloneBoxes(outputs),
		dataInputs:  cloneBoxes(dataInputs),
		minerPubKey: bytes.Clone(minerPubKey),
	}, nil
}

func cloneBoxes(boxes []*ErgoBox) []*ErgoBox {
	if len(boxes) == 0 {
		return nil
	}
	result := make([]*ErgoBox, len(boxes))
	copy(result, boxes)
	return result
}

func asBoxes(boxes []*ErgoBox) []values.Box {
	result := make([]values.Box, len(boxes))
	for i, box := range boxes {
		result[i] = box
	}
	return result
}

func (c *Context) Height() int32 {
	return c.height
}

func (c *Context) SelfIndex() int {
	return c.selfIndex
}

func (c *Context) Self() *ErgoBox {
	return c.inputs[c.selfIndex]
}

func (c *Context) SelfBox() values.Box {
	return c.Self()
}

func (c *Context) Inputs() []values.Box {
	return asBoxes(c.inputs)
}

func (c *Context) Outputs() []values.Box {
	return asBoxes(c.outputs)
}

func (c *Context) DataInputs() []values.Box {
	return asBoxes(c.dataInputs)
}

func (c *Context) MinerPubKey() []byte {
	return c.minerPubKey
}

// WithHeight returns a copy of the context at another height.
func (c *Context) WithHeight(height int32) (*Context, error) {
	return NewContext(height, c.inputs, c.selfIndex, c.outputs, c.dataInputs, c.minerPubKey)
}
