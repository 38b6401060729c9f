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

package interpreter

import (
	"github.com/rs/zerolog"
)

// DefaultStackDepthLimit bounds the nesting of evaluated expressions,
// including expressions parsed from registers during evaluation.
const DefaultStackDepthLimit = 256

type Config struct {
	Tracer
	// Logger receives debug events of the evaluation. The default discards them.
	Logger zerolog.Logger
	// StackDepthLimit is the maximal nesting depth of evaluated expressions.
	StackDepthLimit uint64
	// ComputationLimit is the maximal number of evaluated expressions, 0 for no limit.
	ComputationLimit uint64
}

func NewConfig() *Config {
	return &Config{
		Logger:          zerolog.Nop(),
		StackDepthLimit: DefaultStackDepthLimit,
	}
}
