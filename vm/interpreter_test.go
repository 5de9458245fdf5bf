// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/velalab/vela/state"
	"github.com/velalab/vela/vela"
)

var (
	testOrigin = vela.BytesToAddress([]byte("origin"))
	testTarget = vela.BytesToAddress([]byte("target"))
)

// runCode installs code at a fixed address and executes it through a fresh
// EVM with the given calldata.
func runCode(t *testing.T, cfg Config, code, input []byte) ([]byte, *state.State, error) {
	t.Helper()
	st := state.New()
	st.SetCode(testTarget, code)
	evm := NewEVM(Context{Origin: testOrigin}, st, cfg)
	ret, err := evm.Call(AccountRef(testOrigin), testTarget, input, nil)
	return ret, st, err
}

func TestRunArithmetic(t *testing.T) {
	// 3 + 4, stored to memory and returned as one word
	code := []byte{
		byte(PUSH1), 0x03,
		byte(PUSH1), 0x04,
		byte(ADD),
		byte(PUSH0),
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH0),
		byte(RETURN),
	}
	ret, _, err := runCode(t, Config{}, code, nil)
	assert.Nil(t, err)
	assert.Len(t, ret, 32)
	assert.Equal(t, uint64(7), new(uint256.Int).SetBytes(ret).Uint64())
}

func TestRunImplicitStop(t *testing.T) {
	// running off the end of code is a normal stop, not a fault
	code := []byte{byte(PUSH1), 0x01, byte(POP)}
	ret, _, err := runCode(t, Config{}, code, nil)
	assert.Nil(t, err)
	assert.Nil(t, ret)
}

func TestRunStackUnderflow(t *testing.T) {
	code := []byte{byte(ADD)}
	ret, _, err := runCode(t, Config{}, code, nil)
	assert.Nil(t, ret)
	assert.ErrorContains(t, err, "stack underflow")
}

func TestRunStackOverflow(t *testing.T) {
	// push one extra word per loop iteration until the stack limit trips
	code := []byte{
		byte(JUMPDEST),
		byte(PUSH0),
		byte(PUSH0),
		byte(JUMP),
	}
	_, _, err := runCode(t, Config{}, code, nil)
	assert.ErrorContains(t, err, "stack limit reached")
}

func TestRunInvalidOpcode(t *testing.T) {
	for _, code := range [][]byte{
		{0xef},
		{byte(INVALID)},
	} {
		_, _, err := runCode(t, Config{}, code, nil)
		assert.ErrorContains(t, err, "invalid opcode")
	}
}

func TestRunInvalidJump(t *testing.T) {
	// destination is past the end of code
	code := []byte{byte(PUSH1), 0x05, byte(JUMP)}
	_, _, err := runCode(t, Config{}, code, nil)
	assert.Equal(t, ErrInvalidJump, err)

	// destination is inside PUSH data
	code = []byte{
		byte(PUSH1), 0x04,
		byte(JUMP),
		byte(PUSH1), byte(JUMPDEST),
	}
	_, _, err = runCode(t, Config{}, code, nil)
	assert.Equal(t, ErrInvalidJump, err)
}

func TestRunJumpi(t *testing.T) {
	// JUMPI over a REVERT when the condition is non-zero
	code := []byte{
		byte(PUSH1), 0x01, // cond
		byte(PUSH1), 0x07, // dest
		byte(JUMPI),
		byte(PUSH0),
		byte(PUSH0),
		// skipped when cond != 0
		byte(JUMPDEST),
		byte(STOP),
	}
	// dest points at offset 7 which is the JUMPDEST
	_, _, err := runCode(t, Config{}, code, nil)
	assert.Nil(t, err)
}

func TestRunZeroMemoryRead(t *testing.T) {
	// MLOAD of untouched memory yields the zero word
	code := []byte{
		byte(PUSH1), 0x40,
		byte(MLOAD),
		byte(PUSH0),
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH0),
		byte(RETURN),
	}
	ret, _, err := runCode(t, Config{}, code, nil)
	assert.Nil(t, err)
	assert.True(t, new(uint256.Int).SetBytes(ret).IsZero())
}

func TestRunCalldata(t *testing.T) {
	// echo the first calldata word
	code := []byte{
		byte(PUSH0),
		byte(CALLDATALOAD),
		byte(PUSH0),
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH0),
		byte(RETURN),
	}
	input := make([]byte, 32)
	input[31] = 0x2a
	ret, _, err := runCode(t, Config{}, code, input)
	assert.Nil(t, err)
	assert.Equal(t, uint64(42), new(uint256.Int).SetBytes(ret).Uint64())

	// short calldata reads zero-padded on the right
	ret, _, err = runCode(t, Config{}, code, []byte{0xff})
	assert.Nil(t, err)
	assert.Equal(t, byte(0xff), ret[0])
	assert.True(t, new(uint256.Int).SetBytes(ret[1:]).IsZero())
}

func TestRunBudgetExhaustion(t *testing.T) {
	code := []byte{
		byte(JUMPDEST),
		byte(PUSH0),
		byte(POP),
		byte(PUSH0),
		byte(JUMP),
	}
	_, _, err := runCode(t, Config{CostOracle: NewBudget(100)}, code, nil)
	assert.Equal(t, ErrOutOfBudget, err)
}

func TestRunMemoryLimit(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x01,
		byte(PUSH2), 0x01, 0x00,
		byte(MSTORE),
	}
	_, _, err := runCode(t, Config{MemoryLimit: 64}, code, nil)
	assert.Equal(t, ErrMemoryLimit, err)

	// the same program passes without the cap
	_, _, err = runCode(t, Config{}, code, nil)
	assert.Nil(t, err)
}

func TestRunDeterminism(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x0d,
		byte(PUSH1), 0x11,
		byte(MUL),
		byte(PUSH0),
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH0),
		byte(RETURN),
	}
	first, _, err := runCode(t, Config{}, code, nil)
	assert.Nil(t, err)
	for i := 0; i < 10; i++ {
		ret, _, err := runCode(t, Config{}, code, nil)
		assert.Nil(t, err)
		assert.Equal(t, first, ret)
	}
}
