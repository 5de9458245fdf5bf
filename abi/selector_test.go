// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodIDOf(t *testing.T) {
	// well-known Storage contract selectors
	assert.Equal(t, MethodID{0x60, 0x57, 0x36, 0x1d}, MethodIDOf("store(uint256)"))
	assert.Equal(t, MethodID{0x2e, 0x64, 0xce, 0xc1}, MethodIDOf("retrieve()"))
}

func TestMethodIDString(t *testing.T) {
	assert.Equal(t, "0x6057361d", MethodID{0x60, 0x57, 0x36, 0x1d}.String())
	assert.True(t, EmptyMethodID.IsEmpty())
	assert.False(t, MethodIDOf("store(uint256)").IsEmpty())
}

func TestExtractMethodID(t *testing.T) {
	id, err := ExtractMethodID([]byte{0x60, 0x57, 0x36, 0x1d, 0xff})
	assert.Nil(t, err)
	assert.Equal(t, MethodID{0x60, 0x57, 0x36, 0x1d}, id)

	_, err = ExtractMethodID([]byte{0x60, 0x57})
	assert.Error(t, err)
}

func TestSelectorTableResolve(t *testing.T) {
	table := NewSelectorTable().
		Bind("store(uint256)", 0x43).
		Bind("retrieve()", 0x2e)

	calldata := append([]byte{0x60, 0x57, 0x36, 0x1d}, make([]byte, 32)...)
	calldata[4+31] = 10 // store(10)
	offset, ok := table.Resolve(calldata)
	assert.True(t, ok)
	assert.Equal(t, uint64(0x43), offset)

	offset, ok = table.Resolve([]byte{0x2e, 0x64, 0xce, 0xc1})
	assert.True(t, ok)
	assert.Equal(t, uint64(0x2e), offset)

	// unknown selector misses
	_, ok = table.Resolve([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.False(t, ok)
}

func TestSelectorTableShortCalldata(t *testing.T) {
	table := NewSelectorTable().Bind("store(uint256)", 0x43)

	// short calldata zero-pads and falls through to the fallback path
	for _, calldata := range [][]byte{nil, {}, {0x60}, {0x60, 0x57, 0x36}} {
		_, ok := table.Resolve(calldata)
		assert.False(t, ok)
	}

	// unless the padded bytes happen to be bound explicitly
	table.BindID(SelectorOf([]byte{0x60}), 0x99)
	offset, ok := table.Resolve([]byte{0x60})
	assert.True(t, ok)
	assert.Equal(t, uint64(0x99), offset)
}
