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

package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConstant(t *testing.T) {

	t.Parallel()

	assert.False(t, IsConstant(0))
	assert.True(t, IsConstant(1))
	assert.True(t, IsConstant(byte(LastConstantCode)))
	assert.False(t, IsConstant(byte(TaggedVariable)))
	assert.False(t, IsConstant(byte(Context)))
}

func TestOpCode_String(t *testing.T) {

	t.Parallel()

	assert.Equal(t, "DeserializeRegister", DeserializeRegister.String())
	assert.Equal(t, "OpCode(0x02)", OpCode(2).String())
}
