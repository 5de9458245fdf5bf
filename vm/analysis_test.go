// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeBitmapPush1(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(ADD)}
	bm := codeBitmap(code)

	assert.True(t, bm.codeSegment(0))
	assert.False(t, bm.codeSegment(1)) // PUSH1 operand
	assert.True(t, bm.codeSegment(2))
}

func TestCodeBitmapJumpdestInPushData(t *testing.T) {
	// The JUMPDEST byte sits inside PUSH2's operand, so it is data,
	// not a valid jump target.
	code := []byte{byte(PUSH2), byte(JUMPDEST), 0x00, byte(JUMPDEST)}
	bm := codeBitmap(code)

	assert.False(t, bm.codeSegment(1))
	assert.False(t, bm.codeSegment(2))
	assert.True(t, bm.codeSegment(3))
}

func TestCodeBitmapPush32(t *testing.T) {
	code := make([]byte, 34)
	code[0] = byte(PUSH32)
	code[33] = byte(JUMPDEST)
	bm := codeBitmap(code)

	assert.True(t, bm.codeSegment(0))
	for i := uint64(1); i <= 32; i++ {
		assert.False(t, bm.codeSegment(i), "operand byte %d", i)
	}
	assert.True(t, bm.codeSegment(33))
}

func TestCodeBitmapTruncatedPush(t *testing.T) {
	// PUSH32 at the end of code marks bits past the code without panicking.
	code := []byte{byte(ADD), byte(PUSH32)}
	bm := codeBitmap(code)
	assert.True(t, bm.codeSegment(0))
	assert.True(t, bm.codeSegment(1))
	assert.False(t, bm.codeSegment(2))
}

func TestCodeBitmapConsecutivePushes(t *testing.T) {
	code := []byte{byte(PUSH1), byte(PUSH1), byte(PUSH1), 0x00}
	bm := codeBitmap(code)

	assert.True(t, bm.codeSegment(0))
	assert.False(t, bm.codeSegment(1)) // operand of first push
	assert.True(t, bm.codeSegment(2))  // a real PUSH1 again
	assert.False(t, bm.codeSegment(3))
}
