// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"encoding/hex"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/velalab/vela/state"
	"github.com/velalab/vela/vela"
)

// Solidity-style deployment preambles. The first copies 0x3f bytes of
// runtime code starting at offset 0x11 and returns them; the second
// additionally rejects a non-zero call value before doing the same
// from offset 0x1d.
const (
	payableInitHex    = "6080604052603f8060116000396000f3fe"
	nonPayableInitHex = "6080604052348015600f57600080fd5b50603f80601d6000396000f3fe"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	assert.Nil(t, err)
	return b
}

func TestCreateInstallsRuntimeCode(t *testing.T) {
	preamble := mustHex(t, payableInitHex)
	runtime := []byte{byte(PUSH0), byte(PUSH0), byte(RETURN)}
	// pad the runtime region to the 0x3f bytes the preamble returns
	initCode := append(preamble, runtime...)

	st := state.New()
	evm := NewEVM(Context{Origin: testOrigin}, st, Config{})
	ret, addr, err := evm.Create(AccountRef(testOrigin), initCode, nil)
	assert.Nil(t, err)
	assert.False(t, addr.IsZero())
	assert.Len(t, ret, 0x3f)

	// the returned bytes start with the runtime code and are zero-padded
	// to the declared length
	assert.Equal(t, runtime, ret[:len(runtime)])
	for _, b := range ret[len(runtime):] {
		assert.Zero(t, b)
	}
	assert.Equal(t, ret, st.GetCode(addr))
	assert.True(t, st.Exists(addr))
}

func TestCreateNonPayable(t *testing.T) {
	initCode := mustHex(t, nonPayableInitHex)

	st := state.New()
	evm := NewEVM(Context{Origin: testOrigin}, st, Config{})

	// sending value trips the guard and reverts the deployment
	ret, addr, err := evm.Create(AccountRef(testOrigin), initCode, uint256.NewInt(1))
	assert.Equal(t, ErrExecutionReverted, err)
	assert.Empty(t, ret)
	assert.True(t, addr.IsZero())

	// without value the guard falls through and deployment succeeds
	ret, addr, err = evm.Create(AccountRef(testOrigin), initCode, nil)
	assert.Nil(t, err)
	assert.Len(t, ret, 0x3f)
	assert.False(t, addr.IsZero())
}

func TestCreateDistinctAddresses(t *testing.T) {
	initCode := mustHex(t, payableInitHex)

	st := state.New()
	evm := NewEVM(Context{Origin: testOrigin}, st, Config{})

	_, addr1, err := evm.Create(AccountRef(testOrigin), initCode, nil)
	assert.Nil(t, err)
	_, addr2, err := evm.Create(AccountRef(testOrigin), initCode, nil)
	assert.Nil(t, err)
	assert.NotEqual(t, addr1, addr2)
}

func TestCreateCounterSurvivesEngine(t *testing.T) {
	initCode := mustHex(t, payableInitHex)
	st := state.New()

	_, addr1, err := NewEVM(Context{Origin: testOrigin}, st, Config{}).
		Create(AccountRef(testOrigin), initCode, nil)
	assert.Nil(t, err)

	// a fresh engine over the same state must not rederive the first
	// address and collide with it
	_, addr2, err := NewEVM(Context{Origin: testOrigin}, st, Config{}).
		Create(AccountRef(testOrigin), initCode, nil)
	assert.Nil(t, err)
	assert.NotEqual(t, addr1, addr2)
	assert.Equal(t, uint64(2), st.GetCreationCount(testOrigin))
}

func TestCallEmptyTarget(t *testing.T) {
	st := state.New()
	evm := NewEVM(Context{Origin: testOrigin}, st, Config{})

	// a target without code succeeds with no return data
	ret, err := evm.Call(AccountRef(testOrigin), testTarget, []byte{0x01}, nil)
	assert.Nil(t, err)
	assert.Nil(t, ret)
}

func TestCallSstoreSurvivesSuccess(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x2a,
		byte(PUSH0),
		byte(SSTORE),
	}
	_, st, err := runCode(t, Config{}, code, nil)
	assert.Nil(t, err)

	got := st.GetStorage(testTarget, vela.Bytes32{})
	assert.Equal(t, vela.WordToBytes32(uint256.NewInt(42)), got)
}

func TestCallRevertRollsBackStorage(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x2a,
		byte(PUSH0),
		byte(SSTORE),
		byte(PUSH0),
		byte(PUSH0),
		byte(REVERT),
	}
	ret, st, err := runCode(t, Config{}, code, nil)
	assert.Equal(t, ErrExecutionReverted, err)
	assert.Empty(t, ret)

	// the write made before the revert is gone
	assert.True(t, st.GetStorage(testTarget, vela.Bytes32{}).IsZero())
}

func TestCallFaultRollsBackStorage(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x2a,
		byte(PUSH0),
		byte(SSTORE),
		byte(INVALID),
	}
	ret, st, err := runCode(t, Config{}, code, nil)
	assert.ErrorContains(t, err, "invalid opcode")
	assert.Nil(t, ret)
	assert.True(t, st.GetStorage(testTarget, vela.Bytes32{}).IsZero())
}

func TestNestedCall(t *testing.T) {
	st := state.New()

	// callee returns the word 42
	callee := vela.BytesToAddress([]byte("callee"))
	calleeCode := []byte{
		byte(PUSH1), 0x2a,
		byte(PUSH0),
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH0),
		byte(RETURN),
	}
	st.SetCode(callee, calleeCode)

	// caller forwards the callee's return value
	callerCode := []byte{
		byte(PUSH1), 0x20, // retSize
		byte(PUSH0), // retOffset
		byte(PUSH0), // inSize
		byte(PUSH0), // inOffset
		byte(PUSH0), // value
		byte(PUSH20),
	}
	callerCode = append(callerCode, callee.Bytes()...)
	callerCode = append(callerCode,
		byte(PUSH0), // resource word, ignored
		byte(CALL),
		byte(POP),
		byte(PUSH1), 0x20,
		byte(PUSH0),
		byte(RETURN),
	)
	caller := vela.BytesToAddress([]byte("caller"))
	st.SetCode(caller, callerCode)

	evm := NewEVM(Context{Origin: testOrigin}, st, Config{})
	ret, err := evm.Call(AccountRef(testOrigin), caller, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, uint64(42), new(uint256.Int).SetBytes(ret).Uint64())
}

func TestNestedCallStatus(t *testing.T) {
	st := state.New()

	// callee always reverts
	callee := vela.BytesToAddress([]byte("callee"))
	st.SetCode(callee, []byte{byte(PUSH0), byte(PUSH0), byte(REVERT)})

	// caller returns the call's status word
	callerCode := []byte{
		byte(PUSH0), // retSize
		byte(PUSH0), // retOffset
		byte(PUSH0), // inSize
		byte(PUSH0), // inOffset
		byte(PUSH0), // value
		byte(PUSH20),
	}
	callerCode = append(callerCode, callee.Bytes()...)
	callerCode = append(callerCode,
		byte(PUSH0),
		byte(CALL),
		byte(PUSH0),
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH0),
		byte(RETURN),
	)
	caller := vela.BytesToAddress([]byte("caller"))
	st.SetCode(caller, callerCode)

	evm := NewEVM(Context{Origin: testOrigin}, st, Config{})
	ret, err := evm.Call(AccountRef(testOrigin), caller, nil, nil)
	// the callee's revert does not fault the caller; it observes status 0
	assert.Nil(t, err)
	assert.True(t, new(uint256.Int).SetBytes(ret).IsZero())
}

func TestNestedCallReturnData(t *testing.T) {
	st := state.New()

	callee := vela.BytesToAddress([]byte("callee"))
	st.SetCode(callee, []byte{
		byte(PUSH1), 0x2a,
		byte(PUSH0),
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH0),
		byte(RETURN),
	})

	// caller fetches the return data via RETURNDATASIZE/RETURNDATACOPY
	callerCode := []byte{
		byte(PUSH0), // retSize: deliberately none, copied explicitly below
		byte(PUSH0),
		byte(PUSH0),
		byte(PUSH0),
		byte(PUSH0),
		byte(PUSH20),
	}
	callerCode = append(callerCode, callee.Bytes()...)
	callerCode = append(callerCode,
		byte(PUSH0),
		byte(CALL),
		byte(POP),
		byte(RETURNDATASIZE), // length
		byte(PUSH0),          // data offset
		byte(PUSH0),          // mem offset
		byte(RETURNDATACOPY),
		byte(RETURNDATASIZE),
		byte(PUSH0),
		byte(RETURN),
	)
	caller := vela.BytesToAddress([]byte("caller"))
	st.SetCode(caller, callerCode)

	evm := NewEVM(Context{Origin: testOrigin}, st, Config{})
	ret, err := evm.Call(AccountRef(testOrigin), caller, nil, nil)
	assert.Nil(t, err)
	assert.Len(t, ret, 32)
	assert.Equal(t, uint64(42), new(uint256.Int).SetBytes(ret).Uint64())
}

func TestCallDepthLimit(t *testing.T) {
	st := state.New()

	// self-recursive contract; recursion bottoms out at the depth limit
	// with failed inner calls instead of a fault
	self := vela.BytesToAddress([]byte("recursive"))
	code := []byte{
		byte(PUSH0),
		byte(PUSH0),
		byte(PUSH0),
		byte(PUSH0),
		byte(PUSH0),
		byte(PUSH20),
	}
	code = append(code, self.Bytes()...)
	code = append(code,
		byte(PUSH0),
		byte(CALL),
		byte(STOP),
	)
	st.SetCode(self, code)

	evm := NewEVM(Context{Origin: testOrigin}, st, Config{})
	_, err := evm.Call(AccountRef(testOrigin), self, nil, nil)
	assert.Nil(t, err)
}
