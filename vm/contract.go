// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"github.com/holiman/uint256"
	"github.com/velalab/vela/vela"
)

// ContractRef is a reference to the contract's backing object
type ContractRef interface {
	Address() vela.Address
}

// AccountRef implements ContractRef.
type AccountRef vela.Address

// Address casts AccountRef to an Address
func (ar AccountRef) Address() vela.Address { return vela.Address(ar) }

// Contract represents a contract call frame's immutable ingredients: the
// code being executed, the read-only calldata, the caller and the target
// identity. The transient regions (stack, memory, pc) live in the
// interpreter's scope for the duration of the run.
type Contract struct {
	// CallerAddress is the result of the caller which initialised this
	// contract.
	CallerAddress vela.Address
	caller        ContractRef
	self          ContractRef

	jumpdests map[vela.Bytes32]bitvec // Aggregated result of JUMPDEST analysis.
	analysis  bitvec                  // Locally cached result of JUMPDEST analysis

	Code     []byte
	CodeHash vela.Bytes32
	Input    []byte

	value *uint256.Int

	// IsDeployment marks a creation frame, whose code tail carries
	// constructor arguments rather than executable instructions.
	IsDeployment bool
}

// NewContract returns a new contract environment for the execution of a call.
func NewContract(caller ContractRef, object ContractRef, value *uint256.Int) *Contract {
	c := &Contract{
		CallerAddress: caller.Address(),
		caller:        caller,
		self:          object,
		jumpdests:     make(map[vela.Bytes32]bitvec),
	}
	if parent, ok := caller.(*Contract); ok {
		// Reuse JUMPDEST analysis from parent context if available.
		c.jumpdests = parent.jumpdests
	}
	if value == nil {
		value = new(uint256.Int)
	}
	c.value = value
	return c
}

func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	// PC cannot go beyond len(code) and certainly can't be bigger than 2^64.
	// Don't bother checking for JUMPDEST in that case.
	if overflow || udest >= uint64(len(c.Code)) {
		return false
	}
	// Only JUMPDESTs allowed for destinations
	if OpCode(c.Code[udest]) != JUMPDEST {
		return false
	}
	return c.isCode(udest)
}

// isCode returns true if the provided PC location is an actual opcode, as
// opposed to a data-segment following a PUSHN operation.
func (c *Contract) isCode(udest uint64) bool {
	// Do we already have an analysis laying around?
	if c.analysis != nil {
		return c.analysis.codeSegment(udest)
	}
	// Do we have a contract hash already?
	// If we do have a hash, that means it's a 'regular' contract. For regular
	// contracts ( not temporary initcode), we store the analysis in a map
	if !c.CodeHash.IsZero() {
		// Does parent context have the analysis?
		analysis, exist := c.jumpdests[c.CodeHash]
		if !exist {
			// Do the analysis and save in parent context
			// We do not need to store it in c.analysis
			analysis = codeBitmap(c.Code)
			c.jumpdests[c.CodeHash] = analysis
		}
		// Also stash it in current contract for faster access
		c.analysis = analysis
		return analysis.codeSegment(udest)
	}
	// We don't have the code hash, most likely a piece of initcode not already
	// in state trie. In that case, we do an analysis, and save it locally, so
	// we don't have to recalculate it for every JUMP instruction in the execution
	// However, we don't save it within the parent context
	c.analysis = codeBitmap(c.Code)
	return c.analysis.codeSegment(udest)
}

// GetOp returns the n'th element in the contract's byte array.
// Past-the-end positions decode to STOP, which makes running off the end of
// code an implicit stop, not a fault.
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

// Caller returns the caller of the contract.
func (c *Contract) Caller() vela.Address {
	return c.CallerAddress
}

// Address returns the contracts address
func (c *Contract) Address() vela.Address {
	return c.self.Address()
}

// Value returns the contract's value (sent to it from it's caller)
func (c *Contract) Value() *uint256.Int {
	return c.value
}

// SetCallCode sets the code of the contract and address of the backing data
// object
func (c *Contract) SetCallCode(hash vela.Bytes32, code []byte) {
	c.Code = code
	c.CodeHash = hash
}
