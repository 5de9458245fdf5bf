// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"math"
)

// Config are the configuration options for the Interpreter
type Config struct {
	// CostOracle meters execution. A nil oracle runs unmetered.
	CostOracle CostOracle

	// MemoryLimit caps the byte size a frame's memory may grow to.
	// Zero means unlimited.
	MemoryLimit uint64

	// JumpTable contains the instruction table. A nil table selects
	// the canonical one.
	JumpTable *JumpTable
}

// ScopeContext contains the things that are per-call, such as stack and
// memory, but not transients like pc and budget
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Contract *Contract
}

// Interpreter is used to run byte code based contracts and will handle the
// stack, memory and program counter of a single frame. Everything durable
// goes through the state backend.
type Interpreter struct {
	evm *EVM
	cfg Config

	table *JumpTable

	returnData []byte // Last CALL's return data for subsequent reuse
}

// NewInterpreter returns a new instance of the Interpreter.
func NewInterpreter(evm *EVM, cfg Config) *Interpreter {
	table := cfg.JumpTable
	if table == nil {
		t := NewJumpTable()
		table = &t
	}
	return &Interpreter{
		evm:   evm,
		cfg:   cfg,
		table: table,
	}
}

// Run loops and evaluates the contract's code with the given input data and returns
// the return byte-slice and an error if one occurred.
//
// It's important to note that any errors returned by the interpreter should be
// considered a revert-and-consume-all-budget operation except for
// ErrExecutionReverted which means revert-and-keep-budget-left.
func (in *Interpreter) Run(contract *Contract, input []byte) (ret []byte, err error) {
	// Don't bother with the execution if there's no code.
	if len(contract.Code) == 0 {
		return nil, nil
	}

	var (
		op          OpCode        // current opcode
		mem         = NewMemory() // bound memory
		stack       = newstack()  // local stack
		callContext = &ScopeContext{
			Memory:   mem,
			Stack:    stack,
			Contract: contract,
		}
		pc  = uint64(0) // program counter
		res []byte      // result of the opcode execution function
	)
	defer func() {
		returnStack(stack)
	}()
	contract.Input = input

	// A fresh frame starts with an empty return data buffer. The parent's
	// view is re-established by the CALL instruction on return.
	in.returnData = nil

	// The Interpreter main run loop (contextual). This loop runs until either an
	// explicit STOP, RETURN or REVERT is executed, an error occurred during
	// the execution of one of the operations or until the done flag is set by the
	// parent context.
	for {
		// Get the operation from the jump table and validate the stack to ensure there are
		// enough stack items available to perform the operation.
		op = contract.GetOp(pc)
		operation := in.table[op]
		if operation == nil {
			return nil, &ErrInvalidOpCode{opcode: op}
		}
		if in.cfg.CostOracle != nil && !in.cfg.CostOracle.Charge(op) {
			return nil, ErrOutOfBudget
		}
		// Validate stack
		if sLen := stack.len(); sLen < operation.minStack {
			return nil, &ErrStackUnderflow{stackLen: sLen, required: operation.minStack}
		} else if sLen > operation.maxStack {
			return nil, &ErrStackOverflow{stackLen: sLen, limit: operation.maxStack}
		}
		if operation.memorySize != nil {
			// calculate the new memory size and expand the memory to fit
			// the operation
			// Memory check needs to be done prior to evaluating the dynamic budget portion,
			// to detect calculation overflows
			memSize, overflow := operation.memorySize(stack)
			if overflow {
				return nil, ErrMemSizeOverflow
			}
			// memory is expanded in words of 32 bytes. Gas
			// is also calculated in words.
			if memSize, overflow = safeMul(toWordSize(memSize), 32); overflow {
				return nil, ErrMemSizeOverflow
			}
			if in.cfg.MemoryLimit > 0 && memSize > in.cfg.MemoryLimit {
				return nil, ErrMemoryLimit
			}
			if memSize > 0 {
				mem.Resize(memSize)
			}
		}

		// execute the operation
		res, err = operation.execute(&pc, in, callContext)
		if err != nil {
			break
		}
		if !operation.jumps {
			pc++
		}
	}

	if err == errStopToken {
		err = nil // clear stop token error
	}

	return res, err
}

func safeMul(x, y uint64) (uint64, bool) {
	if x == 0 || y == 0 {
		return 0, false
	}
	if x > math.MaxUint64/y {
		return 0, true
	}
	return x * y, false
}
