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
	"github.com/ergoplatform/sigma-go/values"
)

// EvalContext is the state of one evaluation: the read-only transaction context,
// the configuration, and the bookkeeping of the limits.
//
// An EvalContext must not be shared between concurrent evaluations.
type EvalContext struct {
	Context values.Context
	Config  *Config
	depth   uint64
	steps   uint64
}

// NewEvalContext returns a fresh evaluation state. A nil config uses NewConfig.
func NewEvalContext(ctx values.Context, config *Config) *EvalContext {
	if config == nil {
		config = NewConfig()
	}
	return &EvalContext{
		Context: ctx,
		Config:  config,
	}
}

// Steps returns the number of expressions evaluated so far.
func (c *EvalContext) Steps() uint64 {
	return c.steps
}

func (c *EvalContext) enter() error {
	limit := c.Config.StackDepthLimit
	if limit > 0 && c.depth >= limit {
		return StackDepthLimitReachedError{Limit: limit}
	}

	c.steps++
	if c.Config.ComputationLimit > 0 && c.steps > c.Config.ComputationLimit {
		return ComputationLimitExceededError{Limit: c.Config.ComputationLimit}
	}

	c.depth++
	return nil
}

func (c *EvalContext) leave() {
	c.depth--
}
