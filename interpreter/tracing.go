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
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ergoplatform/sigma-go/stype"
)

const (
	tracingEvalTree            = "tree.eval"
	tracingExtractRegister     = "register.extract"
	tracingDeserializeRegister = "register.deserialize"
)

// OnRecordTraceFunc is a function that records a trace.
type OnRecordTraceFunc func(
	operationName string,
	duration time.Duration,
	attrs []attribute.KeyValue,
)

type Tracer struct {
	// OnRecordTrace is triggered when a trace is recorded
	OnRecordTrace OnRecordTraceFunc
	// TracingEnabled determines if tracing is enabled.
	// Tracing reports tree evaluations and register accesses.
	TracingEnabled bool
}

func (tracer Tracer) enabled() bool {
	return tracer.TracingEnabled && tracer.OnRecordTrace != nil
}

func (tracer Tracer) reportEvalTreeTrace(version uint8, constants int, duration time.Duration) {
	tracer.OnRecordTrace(
		tracingEvalTree,
		duration,
		[]attribute.KeyValue{
			attribute.Int("version", int(version)),
			attribute.Int("constants", constants),
		},
	)
}

func (tracer Tracer) reportExtractRegisterTrace(register int, present bool, duration time.Duration) {
	tracer.OnRecordTrace(
		tracingExtractRegister,
		duration,
		[]attribute.KeyValue{
			attribute.Int("register", register),
			attribute.Bool("present", present),
		},
	)
}

func (tracer Tracer) reportDeserializeRegisterTrace(
	register int,
	size int,
	expectedType stype.SType,
	duration time.Duration,
) {
	tracer.OnRecordTrace(
		tracingDeserializeRegister,
		duration,
		[]attribute.KeyValue{
			attribute.Int("register", register),
			attribute.Int("size", size),
			attribute.String("type", expectedType.String()),
		},
	)
}
