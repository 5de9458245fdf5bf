// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// MethodID method id.
type MethodID [4]byte

// EmptyMethodID represents an empty method ID (used for constructors).
var EmptyMethodID = MethodID{}

// IsEmpty returns true if the MethodID is empty.
func (id MethodID) IsEmpty() bool {
	return id == EmptyMethodID
}

// String implements stringer.
func (id MethodID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// MethodIDOf derives the method ID of the canonical signature, e.g.
// "store(uint256)". It is the first 4 bytes of the signature's keccak hash.
func MethodIDOf(signature string) MethodID {
	var id MethodID
	copy(id[:], crypto.Keccak256([]byte(signature)))
	return id
}

// ExtractMethodID extract method id from input data.
func ExtractMethodID(input []byte) (id MethodID, err error) {
	if len(input) < len(id) {
		err = errors.New("input data too short")
		return
	}
	copy(id[:], input)
	return
}

// SelectorOf reads the leading method ID from calldata, zero-padding on the
// right when calldata is shorter than 4 bytes.
func SelectorOf(calldata []byte) MethodID {
	var id MethodID
	copy(id[:], calldata)
	return id
}

// SelectorTable maps compiled method IDs to handler entry offsets within
// runtime code. It is built once alongside the code and never mutated during
// execution.
type SelectorTable map[MethodID]uint64

// NewSelectorTable creates an empty selector table.
func NewSelectorTable() SelectorTable {
	return make(SelectorTable)
}

// Bind derives the method ID of signature and maps it to offset.
func (t SelectorTable) Bind(signature string, offset uint64) SelectorTable {
	t[MethodIDOf(signature)] = offset
	return t
}

// BindID maps an already-derived method ID to offset.
func (t SelectorTable) BindID(id MethodID, offset uint64) SelectorTable {
	t[id] = offset
	return t
}

// Resolve matches the leading 4 bytes of calldata against the table and
// returns the bound entry offset. Calldata shorter than 4 bytes is padded
// with zeros, which in practice matches no entry and lands on the fallback
// path; ok reports whether a match was found.
func (t SelectorTable) Resolve(calldata []byte) (offset uint64, ok bool) {
	offset, ok = t[SelectorOf(calldata)]
	return
}
