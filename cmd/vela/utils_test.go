// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velalab/vela/abi"
)

func TestParseSelectorTable(t *testing.T) {
	table, err := parseSelectorTable("store(uint256)=0x43, retrieve()=46")
	assert.Nil(t, err)
	assert.Len(t, table, 2)

	offset, ok := table.Resolve([]byte{0x60, 0x57, 0x36, 0x1d})
	assert.True(t, ok)
	assert.Equal(t, uint64(0x43), offset)

	retrieveID := abi.MethodIDOf("retrieve()")
	offset, ok = table.Resolve(retrieveID[:])
	assert.True(t, ok)
	assert.Equal(t, uint64(46), offset)
}

func TestParseSelectorTableErrors(t *testing.T) {
	_, err := parseSelectorTable("")
	assert.Error(t, err)

	_, err = parseSelectorTable("store(uint256)")
	assert.Error(t, err)

	_, err = parseSelectorTable("store(uint256)=nope")
	assert.Error(t, err)
}
