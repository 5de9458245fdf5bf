// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/velalab/vela/stackedmap"
	"github.com/velalab/vela/vela"
)

// State manages the world state of contract accounts: per-contract storage,
// deployed code and per-creator creation counts. All mutations are
// provisional, journaled on a stacked map, until Commit flushes them into the
// backing store. RevertTo discards every mutation made since the matching
// checkpoint.
type State struct {
	storage        map[storageKey]vela.Bytes32
	code           map[vela.Address][]byte
	creationCounts map[vela.Address]uint64
	sm             *stackedmap.StackedMap
}

type (
	storageKey struct {
		addr vela.Address
		key  vela.Bytes32
	}
	codeKey          vela.Address
	codeHashKey      vela.Address
	creationCountKey vela.Address
)

// New creates an empty world state.
func New() *State {
	state := State{
		storage:        make(map[storageKey]vela.Bytes32),
		code:           make(map[vela.Address][]byte),
		creationCounts: make(map[vela.Address]uint64),
	}
	state.sm = stackedmap.New(func(key any) (any, bool) {
		return state.backingGetter(key)
	})
	// base level for writes made outside any checkpoint
	state.sm.Push()
	return &state
}

// backingGetter implements stackedmap.MapGetter over the committed store.
// Unset keys resolve to zero values, never to absence.
func (s *State) backingGetter(key any) (value any, exist bool) {
	switch k := key.(type) {
	case storageKey:
		return s.storage[k], true
	case codeKey:
		return s.code[vela.Address(k)], true
	case codeHashKey:
		code := s.code[vela.Address(k)]
		if len(code) == 0 {
			return vela.Bytes32{}, true
		}
		return vela.BytesToBytes32(crypto.Keccak256(code)), true
	case creationCountKey:
		return s.creationCounts[vela.Address(k)], true
	}
	panic("unexpected state key type")
}

// GetStorage returns the storage value for the given contract and key.
// A key never written returns the zero value.
func (s *State) GetStorage(addr vela.Address, key vela.Bytes32) vela.Bytes32 {
	v, _ := s.sm.Get(storageKey{addr, key})
	return v.(vela.Bytes32)
}

// SetStorage sets the storage value for the given contract and key.
// The write is provisional until committed.
func (s *State) SetStorage(addr vela.Address, key, value vela.Bytes32) {
	s.sm.Put(storageKey{addr, key}, value)
}

// GetCode returns the deployed code of the given contract, nil if none.
func (s *State) GetCode(addr vela.Address) []byte {
	v, _ := s.sm.Get(codeKey(addr))
	return v.([]byte)
}

// GetCodeHash returns the keccak hash of the deployed code, zero if none.
func (s *State) GetCodeHash(addr vela.Address) vela.Bytes32 {
	v, _ := s.sm.Get(codeHashKey(addr))
	return v.(vela.Bytes32)
}

// SetCode persists code as the contract's deployed program. The bytes are
// stored verbatim, trailing metadata included.
func (s *State) SetCode(addr vela.Address, code []byte) {
	s.sm.Put(codeKey(addr), code)
	if len(code) > 0 {
		s.sm.Put(codeHashKey(addr), vela.BytesToBytes32(crypto.Keccak256(code)))
	} else {
		s.sm.Put(codeHashKey(addr), vela.Bytes32{})
	}
}

// GetCreationCount returns how many contract creations the given account has
// performed, zero if it never created one.
func (s *State) GetCreationCount(addr vela.Address) uint64 {
	v, _ := s.sm.Get(creationCountKey(addr))
	return v.(uint64)
}

// SetCreationCount sets the creation count of the given account.
// The write is provisional until committed.
func (s *State) SetCreationCount(addr vela.Address, count uint64) {
	s.sm.Put(creationCountKey(addr), count)
}

// Exists returns whether the given address has deployed code.
func (s *State) Exists(addr vela.Address) bool {
	return len(s.GetCode(addr)) > 0
}

// NewCheckpoint makes a checkpoint of current state.
// It returns the checkpoint to be passed to RevertTo.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to the checkpoint, discarding every provisional mutation
// made since it was taken.
func (s *State) RevertTo(checkpoint int) {
	s.sm.PopTo(checkpoint)
}

// Commit flushes all provisional mutations into the backing store and drops
// every open checkpoint.
func (s *State) Commit() {
	s.sm.Journal(func(key, value any) bool {
		switch k := key.(type) {
		case storageKey:
			s.storage[k] = value.(vela.Bytes32)
		case codeKey:
			s.code[vela.Address(k)] = value.([]byte)
		case creationCountKey:
			s.creationCounts[vela.Address(k)] = value.(uint64)
		}
		return true
	})
	s.sm.PopTo(0)
	s.sm.Push()
}
