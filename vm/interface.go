// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"github.com/velalab/vela/vela"
)

// Stater is the storage backend the engine executes against. Storage is the
// only entity shared across calls; all mutations made through it are
// provisional until the host commits them, and RevertTo discards everything
// written since the matching checkpoint.
type Stater interface {
	GetStorage(addr vela.Address, key vela.Bytes32) vela.Bytes32
	SetStorage(addr vela.Address, key, value vela.Bytes32)

	GetCode(addr vela.Address) []byte
	GetCodeHash(addr vela.Address) vela.Bytes32
	SetCode(addr vela.Address, code []byte)
	Exists(addr vela.Address) bool

	// Creation counts back contract address derivation. They live in state
	// so addresses stay distinct across engine instances sharing a backend.
	GetCreationCount(addr vela.Address) uint64
	SetCreationCount(addr vela.Address, count uint64)

	NewCheckpoint() int
	RevertTo(checkpoint int)
}

// CostOracle is consulted once per dispatched opcode. Charge reports whether
// the resource budget covers the step; false terminates the call with an
// out-of-resource fault. Pricing policy is entirely the oracle's concern.
type CostOracle interface {
	Charge(op OpCode) bool
}

// Unmetered is a CostOracle without any budget.
type Unmetered struct{}

// Charge implements CostOracle.
func (Unmetered) Charge(OpCode) bool { return true }

// Budget is a CostOracle charging one unit per dispatched opcode until the
// step allowance runs out.
type Budget struct {
	remaining uint64
}

// NewBudget creates a budget allowing at most steps dispatched opcodes.
func NewBudget(steps uint64) *Budget {
	return &Budget{remaining: steps}
}

// Charge implements CostOracle.
func (b *Budget) Charge(OpCode) bool {
	if b.remaining == 0 {
		return false
	}
	b.remaining--
	return true
}

// Remaining returns the unused step allowance.
func (b *Budget) Remaining() uint64 {
	return b.remaining
}
