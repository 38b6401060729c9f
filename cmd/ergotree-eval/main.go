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

// ergotree-eval evaluates a hex encoded ErgoTree against a transaction context.
//
// The context is read from a YAML fixture (-context) or a CBOR snapshot (-snapshot).
// A context read from a fixture can be stored as a snapshot with -save-snapshot.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/pretty"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ergoplatform/sigma-go/chain"
	"github.com/ergoplatform/sigma-go/ergotree"
	"github.com/ergoplatform/sigma-go/interpreter"
	"github.com/ergoplatform/sigma-go/values"
)

var treeFlag = flag.String("tree", "", "hex encoded ErgoTree")
var contextFlag = flag.String("context", "", "path of a YAML context fixture")
var snapshotFlag = flag.String("snapshot", "", "path of a CBOR context snapshot")
var saveSnapshotFlag = flag.String("save-snapshot", "", "write the context as a CBOR snapshot to the given path")
var jsonFlag = flag.Bool("json", false, "print the result as JSON")
var colorFlag = flag.Bool("color", true, "colorize the output")
var traceFlag = flag.Bool("trace", false, "report evaluation traces")
var printFlag = flag.Bool("print", false, "print the tree before evaluating it")
var computationLimitFlag = flag.Uint64("limit", 0, "maximum number of evaluation steps, 0 is unbounded")
var verboseFlag = flag.Bool("v", false, "enable debug logging")

type options struct {
	tree             string
	context          string
	snapshot         string
	saveSnapshot     string
	json             bool
	color            bool
	trace            bool
	print            bool
	computationLimit uint64
	logger           zerolog.Logger
}

type trace struct {
	Operation  string            `json:"operation"`
	Duration   string            `json:"duration"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type result struct {
	Value  string  `json:"value"`
	Type   string  `json:"type"`
	Steps  uint64  `json:"steps"`
	Traces []trace `json:"traces,omitempty"`
}

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !*colorFlag,
	})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verboseFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *treeFlag == "" {
		log.Fatal().Msg("missing -tree")
	}

	opts := options{
		tree:             *treeFlag,
		context:          *contextFlag,
		snapshot:         *snapshotFlag,
		saveSnapshot:     *saveSnapshotFlag,
		json:             *jsonFlag,
		color:            *colorFlag,
		trace:            *traceFlag,
		print:            *printFlag,
		computationLimit: *computationLimitFlag,
		logger:           log.Logger,
	}

	if err := evaluate(opts, os.Stdout); err != nil {
		au := aurora.New(aurora.WithColors(opts.color))
		_, _ = fmt.Fprintln(os.Stderr, au.Red("error:"), err)
		os.Exit(1)
	}
}

func loadContext(opts options) (*chain.Context, error) {
	switch {
	case opts.context != "" && opts.snapshot != "":
		return nil, fmt.Errorf("-context and -snapshot are mutually exclusive")

	case opts.snapshot != "":
		data, err := os.ReadFile(opts.snapshot)
		if err != nil {
			return nil, err
		}
		return chain.DecodeContext(data)

	case opts.context != "":
		fixture, err := ReadFixture(opts.context)
		if err != nil {
			return nil, err
		}
		return fixture.Context()

	default:
		return nil, fmt.Errorf("missing -context or -snapshot")
	}
}

func evaluate(opts options, out io.Writer) error {
	treeBytes, err := hex.DecodeString(strings.TrimSpace(opts.tree))
	if err != nil {
		return fmt.Errorf("invalid tree: %w", err)
	}

	tree, err := ergotree.Parse(treeBytes)
	if err != nil {
		return err
	}

	ctx, err := loadContext(opts)
	if err != nil {
		return err
	}

	if opts.saveSnapshot != "" {
		snapshot, err := chain.EncodeContext(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.saveSnapshot, snapshot, 0o644); err != nil {
			return err
		}
		opts.logger.Info().Msgf("wrote context snapshot to %s", opts.saveSnapshot)
	}

	au := aurora.New(aurora.WithColors(opts.color))

	if opts.print && !opts.json {
		_, _ = fmt.Fprintln(out, au.Bold(tree.String()))
	}

	var traces []trace

	config := interpreter.NewConfig()
	config.Logger = opts.logger
	config.ComputationLimit = opts.computationLimit
	config.Tracer = interpreter.Tracer{
		TracingEnabled: opts.trace,
		OnRecordTrace: func(operationName string, duration time.Duration, attrs []attribute.KeyValue) {
			entry := trace{
				Operation: operationName,
				Duration:  duration.String(),
			}
			if len(attrs) > 0 {
				entry.Attributes = make(map[string]string, len(attrs))
				for _, attr := range attrs {
					entry.Attributes[string(attr.Key)] = attr.Value.Emit()
				}
			}
			traces = append(traces, entry)
		},
	}

	evalContext := interpreter.NewEvalContext(ctx, config)

	value, err := interpreter.EvalTree(tree, evalContext)
	if err != nil {
		return err
	}

	res := result{
		Value:  value.String(),
		Type:   values.TypeOf(value).String(),
		Steps:  evalContext.Steps(),
		Traces: traces,
	}

	if opts.json {
		return writeJSON(out, res, opts.color)
	}

	writeResult(out, au, res)
	return nil
}

func writeJSON(out io.Writer, res result, color bool) error {
	encoded, err := json.Marshal(res)
	if err != nil {
		return err
	}
	encoded = pretty.Pretty(encoded)
	if color {
		encoded = pretty.Color(encoded, pretty.TerminalStyle)
	}
	_, err = out.Write(encoded)
	return err
}

func writeResult(out io.Writer, au *aurora.Aurora, res result) {
	var formatted aurora.Value
	switch res.Value {
	case "true":
		formatted = au.Green(res.Value)
	case "false":
		formatted = au.Red(res.Value)
	default:
		formatted = au.Bold(res.Value)
	}

	_, _ = fmt.Fprintf(out, "%s: %s\n", formatted, res.Type)

	for _, t := range res.Traces {
		_, _ = fmt.Fprintf(out, "  %s %s", au.Bold(t.Operation), t.Duration)
		for _, key := range slices.Sorted(maps.Keys(t.Attributes)) {
			_, _ = fmt.Fprintf(out, " %s=%s", key, t.Attributes[key])
		}
		_, _ = fmt.Fprintln(out)
	}
}
