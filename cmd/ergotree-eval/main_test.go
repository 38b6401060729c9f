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

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ergoplatform/sigma-go/ast"
	"github.com/ergoplatform/sigma-go/chain"
	"github.com/ergoplatform/sigma-go/ergotree"
	"github.com/ergoplatform/sigma-go/stype"
	"github.com/ergoplatform/sigma-go/values"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// HEIGHT != 1, with the constant segregated
const heightNotOneTree = "1001040294a37300"

const testFixture = `
height: 5
self: 0
minerPubKey: "02aa"
inputs:
  - value: 1000
    ergoTree: "1001040294a37300"
    creationHeight: 3
    transactionId: "1111111111111111111111111111111111111111111111111111111111111111"
    index: 0
    tokens:
      - id: "2222222222222222222222222222222222222222222222222222222222222222"
        amount: 10
    registers:
      - "040e"
outputs:
  - value: 900
    ergoTree: "00"
    creationHeight: 5
    transactionId: "3333333333333333333333333333333333333333333333333333333333333333"
    index: 1
`

func writeFixture(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "context.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testOptions(t *testing.T) options {
	return options{
		tree:    heightNotOneTree,
		context: writeFixture(t, testFixture),
		logger:  zerolog.Nop(),
	}
}

func TestParseFixture(t *testing.T) {

	t.Parallel()

	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	assert.Equal(t, int32(5), fixture.Height)
	require.Len(t, fixture.Inputs, 1)
	require.Len(t, fixture.Outputs, 1)
	assert.Empty(t, fixture.DataInputs)
	assert.Equal(t, []string{"040e"}, fixture.Inputs[0].Registers)

	ctx, err := fixture.Context()
	require.NoError(t, err)

	assert.Equal(t, int32(5), ctx.Height())
	assert.Equal(t, []byte{0x02, 0xaa}, ctx.MinerPubKey())

	self := ctx.Self()
	assert.Equal(t, int64(1000), self.Amount())
	assert.Equal(t, []chain.Token{
		{ID: bytes.Repeat([]byte{0x22}, chain.DigestLength), Amount: 10},
	}, self.Tokens())

	r4, err := self.GetRegister(values.R4)
	require.NoError(t, err)
	assert.Equal(t, values.IntConstant(7), *r4)
}

func TestParseFixture_Invalid(t *testing.T) {

	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		_, err := ParseFixture([]byte("height: [1"))
		require.Error(t, err)
	})

	t.Run("hex", func(t *testing.T) {
		t.Parallel()

		fixture, err := ParseFixture([]byte(`
height: 1
inputs:
  - value: 1
    ergoTree: "zz"
`))
		require.NoError(t, err)

		_, err = fixture.Context()
		require.ErrorContains(t, err, "invalid ergo tree")
	})

	t.Run("box", func(t *testing.T) {
		t.Parallel()

		fixture, err := ParseFixture([]byte(`
height: 1
inputs:
  - value: 1
    ergoTree: "00"
    transactionId: "11"
`))
		require.NoError(t, err)

		_, err = fixture.Context()
		var boxErr chain.InvalidBoxError
		require.ErrorAs(t, err, &boxErr)
	})

	t.Run("self", func(t *testing.T) {
		t.Parallel()

		fixture, err := ParseFixture([]byte("height: 1\n"))
		require.NoError(t, err)

		_, err = fixture.Context()
		var contextErr chain.InvalidContextError
		require.ErrorAs(t, err, &contextErr)
	})
}

func TestEvaluate(t *testing.T) {

	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		err := evaluate(testOptions(t), &out)
		require.NoError(t, err)
		assert.Equal(t, "true: Boolean\n", out.String())
	})

	t.Run("print", func(t *testing.T) {
		t.Parallel()

		opts := testOptions(t)
		opts.print = true

		var out bytes.Buffer
		err := evaluate(opts, &out)
		require.NoError(t, err)
		assert.Equal(
			t,
			"ErgoTree(version: 0, constants: 1)\nHEIGHT != placeholder[0]: Int\ntrue: Boolean\n",
			out.String(),
		)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		opts := testOptions(t)
		opts.json = true
		opts.trace = true

		var out bytes.Buffer
		err := evaluate(opts, &out)
		require.NoError(t, err)

		var res result
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
		assert.Equal(t, "true", res.Value)
		assert.Equal(t, "Boolean", res.Type)
		assert.Positive(t, res.Steps)
		require.Len(t, res.Traces, 1)
		assert.Equal(t, "tree.eval", res.Traces[0].Operation)
		assert.Equal(t, "1", res.Traces[0].Attributes["constants"])
	})

	t.Run("register", func(t *testing.T) {
		t.Parallel()

		extract, err := ast.NewExtractRegisterAs(ast.SelfBox, 4, stype.NewOption(stype.SInt))
		require.NoError(t, err)
		get, err := ast.NewOptionGet(extract)
		require.NoError(t, err)
		root, err := ast.NewBinOp(ast.RelationEq, get, ast.NewConstant(values.IntConstant(7)))
		require.NoError(t, err)

		tree, err := ergotree.NewErgoTree(root, true)
		require.NoError(t, err)
		treeBytes, err := tree.Bytes()
		require.NoError(t, err)

		opts := testOptions(t)
		opts.tree = hex.EncodeToString(treeBytes)

		var out bytes.Buffer
		err = evaluate(opts, &out)
		require.NoError(t, err)
		assert.Equal(t, "true: Boolean\n", out.String())
	})

	t.Run("computation limit", func(t *testing.T) {
		t.Parallel()

		opts := testOptions(t)
		opts.computationLimit = 1

		err := evaluate(opts, &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestEvaluate_Snapshot(t *testing.T) {

	t.Parallel()

	snapshotPath := filepath.Join(t.TempDir(), "context.cbor")

	opts := testOptions(t)
	opts.saveSnapshot = snapshotPath

	var fromFixture bytes.Buffer
	require.NoError(t, evaluate(opts, &fromFixture))

	opts = options{
		tree:     heightNotOneTree,
		snapshot: snapshotPath,
		logger:   zerolog.Nop(),
	}

	var fromSnapshot bytes.Buffer
	require.NoError(t, evaluate(opts, &fromSnapshot))

	assert.Equal(t, fromFixture.String(), fromSnapshot.String())
}

func TestEvaluate_Errors(t *testing.T) {

	t.Parallel()

	t.Run("tree hex", func(t *testing.T) {
		t.Parallel()

		opts := testOptions(t)
		opts.tree = "xyz"

		err := evaluate(opts, &bytes.Buffer{})
		require.ErrorContains(t, err, "invalid tree")
	})

	t.Run("tree", func(t *testing.T) {
		t.Parallel()

		opts := testOptions(t)
		opts.tree = "20"

		err := evaluate(opts, &bytes.Buffer{})
		var headerErr ergotree.InvalidHeaderError
		require.ErrorAs(t, err, &headerErr)
	})

	t.Run("missing context", func(t *testing.T) {
		t.Parallel()

		opts := testOptions(t)
		opts.context = ""

		err := evaluate(opts, &bytes.Buffer{})
		require.ErrorContains(t, err, "missing -context or -snapshot")
	})

	t.Run("context and snapshot", func(t *testing.T) {
		t.Parallel()

		opts := testOptions(t)
		opts.snapshot = "context.cbor"

		err := evaluate(opts, &bytes.Buffer{})
		require.ErrorContains(t, err, "mutually exclusive")
	})

	t.Run("snapshot", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "context.cbor")
		require.NoError(t, os.WriteFile(path, []byte{0xff}, 0o600))

		opts := testOptions(t)
		opts.context = ""
		opts.snapshot = path

		err := evaluate(opts, &bytes.Buffer{})
		var snapshotErr chain.SnapshotError
		require.ErrorAs(t, err, &snapshotErr)
	})
}
