// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"github.com/holiman/uint256"
	"github.com/velalab/vela/vela"
)

// Context provides the EVM with auxiliary information from the host. Once
// provided it shouldn't be modified.
type Context struct {
	// Origin is the account that started the outermost call.
	Origin vela.Address

	// NewContractAddress derives the address for a contract being created.
	// A nil function selects the canonical creator-and-counter scheme.
	NewContractAddress func(creator vela.Address, counter uint64) vela.Address
}

// EVM is the execution engine. It runs one call tree at a time against a
// single state backend and should never be reused across concurrent runs.
// Faults and reverts roll the state back to the checkpoint taken at frame
// entry; outer layers decide whether the surviving writes get committed.
type EVM struct {
	Context

	state Stater
	cfg   Config

	interpreter *Interpreter

	// depth is the current call stack depth
	depth int
}

// NewEVM returns a new EVM. The returned EVM is not thread safe.
func NewEVM(ctx Context, state Stater, cfg Config) *EVM {
	if ctx.NewContractAddress == nil {
		ctx.NewContractAddress = vela.CreateContractAddress
	}
	evm := &EVM{
		Context: ctx,
		state:   state,
		cfg:     cfg,
	}
	evm.interpreter = NewInterpreter(evm, cfg)
	return evm
}

// State exposes the state backend the EVM runs against.
func (evm *EVM) State() Stater {
	return evm.state
}

// Depth returns the current call stack depth.
func (evm *EVM) Depth() int {
	return evm.depth
}

// Call executes the contract associated with addr with the given input as
// parameters. A target without code succeeds immediately with empty return
// data. Any failure rolls storage back to the state at frame entry;
// ErrExecutionReverted additionally preserves the frame's return data.
func (evm *EVM) Call(caller ContractRef, addr vela.Address, input []byte, value *uint256.Int) (ret []byte, err error) {
	if evm.depth > vela.MaxCallDepth {
		return nil, ErrDepth
	}
	evm.depth++
	defer func() { evm.depth-- }()

	checkpoint := evm.state.NewCheckpoint()

	code := evm.state.GetCode(addr)
	if len(code) == 0 {
		return nil, nil
	}

	contract := NewContract(caller, AccountRef(addr), value)
	contract.SetCallCode(evm.state.GetCodeHash(addr), code)

	ret, err = evm.interpreter.Run(contract, input)
	if err != nil {
		evm.state.RevertTo(checkpoint)
		if err != ErrExecutionReverted {
			ret = nil
		}
	}
	return ret, err
}

// Create runs initCode as the constructor of a new contract and installs
// whatever the constructor returns as the contract's runtime code. The
// constructor observes empty calldata; its arguments, if any, travel as a
// tail appended to the code itself.
func (evm *EVM) Create(caller ContractRef, initCode []byte, value *uint256.Int) (ret []byte, contractAddr vela.Address, err error) {
	if evm.depth > vela.MaxCallDepth {
		return nil, vela.Address{}, ErrDepth
	}
	evm.depth++
	defer func() { evm.depth-- }()

	// The counter is read from and bumped in state, so repeated creations
	// derive distinct addresses no matter how many engine instances ran
	// before. The bump sits outside the frame checkpoint, like a nonce.
	counter := evm.state.GetCreationCount(caller.Address())
	evm.state.SetCreationCount(caller.Address(), counter+1)
	contractAddr = evm.NewContractAddress(caller.Address(), counter)

	if evm.state.Exists(contractAddr) {
		return nil, vela.Address{}, ErrContractAddressCollision
	}

	checkpoint := evm.state.NewCheckpoint()

	contract := NewContract(caller, AccountRef(contractAddr), value)
	// Init code is transient so it carries no code hash; JUMPDEST analysis
	// stays local to this frame.
	contract.SetCallCode(vela.Bytes32{}, initCode)
	contract.IsDeployment = true

	ret, err = evm.interpreter.Run(contract, nil)
	if err == nil {
		evm.state.SetCode(contractAddr, ret)
		return ret, contractAddr, nil
	}

	evm.state.RevertTo(checkpoint)
	if err != ErrExecutionReverted {
		ret = nil
	}
	return ret, vela.Address{}, err
}
