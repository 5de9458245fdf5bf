// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"errors"
	"fmt"
)

// All faults are call-local: they terminate the faulting call and roll back
// its provisional storage mutations, but never propagate as errors into the
// parent frame, which only observes the outcome of the sub-call.
var (
	ErrDepth                 = errors.New("max call depth exceeded")
	ErrOutOfBudget           = errors.New("out of execution budget")
	ErrMemoryLimit           = errors.New("memory limit exceeded")
	ErrMemSizeOverflow       = errors.New("memory size overflows uint64")
	ErrInvalidJump           = errors.New("invalid jump destination")
	ErrReturnDataOutOfBounds = errors.New("return data out of bounds")

	ErrContractAddressCollision = errors.New("contract address collision")

	// ErrExecutionReverted is an intentional revert, not a fault: storage is
	// rolled back but the returned reason bytes are surfaced to the caller.
	ErrExecutionReverted = errors.New("execution reverted")

	// errStopToken is an internal sentinel to break out of the dispatch loop.
	// It is never visible outside the interpreter.
	errStopToken = errors.New("stop token")
)

// ErrStackUnderflow wraps an evm error when the items on the stack less
// than the minimal requirement.
type ErrStackUnderflow struct {
	stackLen int
	required int
}

func (e ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.stackLen, e.required)
}

// ErrStackOverflow wraps an evm error when the items on the stack exceeds
// the maximum allowance.
type ErrStackOverflow struct {
	stackLen int
	limit    int
}

func (e ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.stackLen, e.limit)
}

// ErrInvalidOpCode wraps an evm error when an invalid opcode is encountered.
type ErrInvalidOpCode struct {
	opcode OpCode
}

func (e ErrInvalidOpCode) Error() string {
	return fmt.Sprintf("invalid opcode: %s", e.opcode)
}
