// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestStackPushPop(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.push(uint256.NewInt(3))
	assert.Equal(t, 3, st.len())

	v3 := st.pop()
	assert.Equal(t, uint64(3), v3.Uint64())
	v2 := st.pop()
	assert.Equal(t, uint64(2), v2.Uint64())
	v1 := st.pop()
	assert.Equal(t, uint64(1), v1.Uint64())
	assert.Equal(t, 0, st.len())
}

func TestStackPushCopies(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	v := uint256.NewInt(7)
	st.push(v)
	v.SetUint64(8)

	assert.Equal(t, uint64(7), st.peek().Uint64())
}

func TestStackSwap(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.push(uint256.NewInt(3))

	st.swap(3)
	assert.Equal(t, uint64(1), st.peek().Uint64())
	assert.Equal(t, uint64(3), st.Back(2).Uint64())
}

func TestStackDup(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(5))
	st.push(uint256.NewInt(6))

	st.dup(2)
	assert.Equal(t, 3, st.len())
	assert.Equal(t, uint64(5), st.peek().Uint64())
}

func TestStackBack(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(10))
	st.push(uint256.NewInt(20))
	st.push(uint256.NewInt(30))

	assert.Equal(t, uint64(30), st.Back(0).Uint64())
	assert.Equal(t, uint64(20), st.Back(1).Uint64())
	assert.Equal(t, uint64(10), st.Back(2).Uint64())
}

func TestStackPoolReuse(t *testing.T) {
	st := newstack()
	st.push(uint256.NewInt(1))
	returnStack(st)

	st = newstack()
	defer returnStack(st)
	assert.Equal(t, 0, st.len())
}
