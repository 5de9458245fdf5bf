// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vela

// Constants of the execution engine.
const (
	MaxStackDepth int = 1024 // operand stack capacity of one call frame.
	MaxCallDepth  int = 1024 // limit of nested call frames.

	WordSize uint64 = 32 // memory grows in multiples of this alignment.

	SelectorLength int = 4 // leading calldata bytes used for method routing.
)
