// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vela

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	_, err := ParseAddress("0x1234")
	assert.Error(t, err)

	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())
	assert.False(t, addr.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestCreateContractAddress(t *testing.T) {
	creator := BytesToAddress([]byte("creator"))

	a0 := CreateContractAddress(creator, 0)
	a1 := CreateContractAddress(creator, 1)

	assert.NotEqual(t, a0, a1, "distinct creation counts must yield distinct addresses")
	assert.Equal(t, a0, CreateContractAddress(creator, 0), "derivation must be deterministic")
}
