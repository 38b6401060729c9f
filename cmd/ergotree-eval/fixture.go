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
	"encoding/hex"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ergoplatform/sigma-go/chain"
)

// Fixture describes a transaction context in YAML.
// Byte strings are hex encoded, registers hold the encoded constants of R4 onwards.
type Fixture struct {
	Height      int32        `yaml:"height"`
	Self        int          `yaml:"self"`
	MinerPubKey string       `yaml:"minerPubKey"`
	Inputs      []FixtureBox `yaml:"inputs"`
	Outputs     []FixtureBox `yaml:"outputs"`
	DataInputs  []FixtureBox `yaml:"dataInputs"`
}

type FixtureBox struct {
	Value          int64          `yaml:"value"`
	ErgoTree       string         `yaml:"ergoTree"`
	CreationHeight int32          `yaml:"creationHeight"`
	TransactionID  string         `yaml:"transactionId"`
	Index          uint16         `yaml:"index"`
	Tokens         []FixtureToken `yaml:"tokens"`
	Registers      []string       `yaml:"registers"`
}

type FixtureToken struct {
	ID     string `yaml:"id"`
	Amount int64  `yaml:"amount"`
}

func ParseFixture(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &fixture, nil
}

func ReadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixture(data)
}

func decodeHex(field string, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return b, nil
}

func (b FixtureBox) Box() (*chain.ErgoBox, error) {
	ergoTree, err := decodeHex("ergo tree", b.ErgoTree)
	if err != nil {
		return nil, err
	}
	transactionID, err := decodeHex("transaction id", b.TransactionID)
	if err != nil {
		return nil, err
	}

	tokens := make([]chain.Token, len(b.Tokens))
	for i, token := range b.Tokens {
		id, err := decodeHex("token id", token.ID)
		if err != nil {
			return nil, err
		}
		tokens[i] = chain.Token{
			ID:     id,
			Amount: token.Amount,
		}
	}

	registers := make([][]byte, len(b.Registers))
	for i, register := range b.Registers {
		registers[i], err = decodeHex("register", register)
		if err != nil {
			return nil, err
		}
	}

	return chain.NewErgoBox(
		chain.BoxCandidate{
			Value:          b.Value,
			ErgoTree:       ergoTree,
			Tokens:         tokens,
			CreationHeight: b.CreationHeight,
			Registers:      registers,
		},
		transactionID,
		b.Index,
	)
}

func fixtureBoxes(boxes []FixtureBox) ([]*chain.ErgoBox, error) {
	result := make([]*chain.ErgoBox, len(boxes))
	for i, box := range boxes {
		ergoBox, err := box.Box()
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		result[i] = ergoBox
	}
	return result, nil
}

func (f *Fixture) Context() (*chain.Context, error) {
	inputs, err := fixtureBoxes(f.Inputs)
	if err != nil {
		return nil, fmt.Errorf("inputs: %w", err)
	}
	outputs, err := fixtureBoxes(f.Outputs)
	if err != nil {
		return nil, fmt.Errorf("outputs: %w", err)
	}
	dataInputs, err := fixtureBoxes(f.DataInputs)
	if err != nil {
		return nil, fmt.Errorf("data inputs: %w", err)
	}
	minerPubKey, err := decodeHex("miner public key", f.MinerPubKey)
	if err != nil {
		return nil, err
	}

	return chain.NewContext(
		f.Height,
		inputs,
		f.Self,
		outputs,
		dataInputs,
		minerPubKey,
	)
}
