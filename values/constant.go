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

// Constant is a value paired with its type.
type Constant struct {
	Type  stype.SType
	Value Value
}

func NewConstant(typ stype.SType, value Value) Constant {
	return Constant{
		Type:  typ,
		Value: value,
	}
}

func (c Constant) String() string {
	return fmt.Sprintf("%s: %s", c.Value, c.Type)
}

func BooleanConstant(b bool) Constant {
	return NewConstant(stype.SBoolean, Boolean(b))
}

func ByteConstant(b int8) Constant {
	return NewConstant(stype.SByte, Byte(b))
}

func ShortConstant(s int16) Constant {
	return NewConstant(stype.SShort, Short(s))
}

func IntConstant(i int32) Constant {
	return NewConstant(stype.SInt, Int(i))
}

func LongConstant(l int64) Constant {
	return NewConstant(stype.SLong, Long(l))
}

func BytesConstant(b []byte) Constant {
	return NewConstant(stype.ByteArray, NewByteColl(b))
}

func StringConstant(s string) Constant {
	return NewConstant(stype.SString, String(s))
}
