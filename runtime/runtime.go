// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"time"

	"github.com/holiman/uint256"
	"github.com/inconshreveable/log15"

	"github.com/velalab/vela/abi"
	"github.com/velalab/vela/metrics"
	"github.com/velalab/vela/state"
	"github.com/velalab/vela/vela"
	"github.com/velalab/vela/vm"
)

var logger = log15.New("pkg", "runtime")

var (
	metricCallOutcome   = metrics.LazyLoadCounterVec("call_outcome_total", []string{"outcome"})
	metricDeployOutcome = metrics.LazyLoadCounterVec("deploy_outcome_total", []string{"outcome"})
	metricCallDuration  = metrics.LazyLoadHistogram("call_duration_ms", metrics.Bucket10s)
)

// Runtime drives contract execution against one world state. It resolves
// selector routing ahead of dispatch, runs the engine, and commits surviving
// storage effects of successful outermost calls.
type Runtime struct {
	vmConfig  vm.Config
	state     *state.State
	selectors map[vela.Address]abi.SelectorTable
}

// New create a Runtime object.
func New(state *state.State) *Runtime {
	return &Runtime{
		state:     state,
		selectors: make(map[vela.Address]abi.SelectorTable),
	}
}

// State returns the world state the runtime executes against.
func (rt *Runtime) State() *state.State { return rt.state }

// SetVMConfig config VM.
// Returns this runtime.
func (rt *Runtime) SetVMConfig(config vm.Config) *Runtime {
	rt.vmConfig = config
	return rt
}

// RegisterSelectors attaches the compiled selector table for the contract at
// addr. The table travels with the code from the compilation collaborator;
// execution works without one, routing is then unresolved.
func (rt *Runtime) RegisterSelectors(addr vela.Address, table abi.SelectorTable) {
	rt.selectors[addr] = table
}

// Selection is the result of the routing step performed before dispatch.
type Selection struct {
	Selector abi.MethodID
	Offset   uint64
	Matched  bool
}

// Output is the outcome of a call or deployment.
type Output struct {
	Data            []byte
	VMErr           error // VMErr identify the execution result of the contract function
	ContractAddress *vela.Address
	Selection       *Selection
}

// Failed reports whether execution ended in a revert or fault.
func (o *Output) Failed() bool { return o.VMErr != nil }

// Call executes the code deployed at target with the given calldata. When a
// selector table is registered for the target, the leading calldata bytes
// are resolved against it first; an unmatched selector still executes, as the
// code's own fallback path decides what happens. Storage effects of a
// successful call are committed before returning.
func (rt *Runtime) Call(caller, target vela.Address, calldata []byte, value *uint256.Int) *Output {
	startTime := time.Now()

	out := &Output{}
	if table, ok := rt.selectors[target]; ok {
		sel := &Selection{Selector: abi.SelectorOf(calldata)}
		sel.Offset, sel.Matched = table.Resolve(calldata)
		out.Selection = sel
		if !sel.Matched {
			logger.Debug("selector unmatched, fallback path", "target", target, "selector", sel.Selector)
		}
	}

	evm := vm.NewEVM(vm.Context{Origin: caller}, rt.state, rt.vmConfig)
	out.Data, out.VMErr = evm.Call(vm.AccountRef(caller), target, calldata, value)
	if out.VMErr == nil {
		rt.state.Commit()
	}

	outcome := outcomeLabel(out.VMErr)
	metricCallOutcome().AddWithLabel(1, map[string]string{"outcome": outcome})
	metricCallDuration().Observe(time.Since(startTime).Milliseconds())
	logger.Debug("call executed",
		"target", target,
		"outcome", outcome,
		"returnSize", len(out.Data))
	return out
}

// Deploy runs initCode with constructorArgs appended as the creation code of
// a new contract. The constructor observes empty calldata; its arguments are
// read from the code region's tail. On success the returned bytes are
// persisted verbatim, trailing metadata included, as the contract's runtime
// code and the deployment is committed.
func (rt *Runtime) Deploy(caller vela.Address, initCode, constructorArgs []byte, value *uint256.Int) *Output {
	creationCode := make([]byte, 0, len(initCode)+len(constructorArgs))
	creationCode = append(creationCode, initCode...)
	creationCode = append(creationCode, constructorArgs...)

	evm := vm.NewEVM(vm.Context{Origin: caller}, rt.state, rt.vmConfig)
	out := &Output{}
	var addr vela.Address
	out.Data, addr, out.VMErr = evm.Create(vm.AccountRef(caller), creationCode, value)
	if out.VMErr == nil {
		out.ContractAddress = &addr
		rt.state.Commit()
	}

	outcome := outcomeLabel(out.VMErr)
	metricDeployOutcome().AddWithLabel(1, map[string]string{"outcome": outcome})
	logger.Debug("deployment executed",
		"outcome", outcome,
		"codeSize", len(out.Data))
	return out
}

func outcomeLabel(err error) string {
	switch err {
	case nil:
		return "success"
	case vm.ErrExecutionReverted:
		return "revert"
	default:
		return "fault"
	}
}
