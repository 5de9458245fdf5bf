// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/velalab/vela/abi"
)

// parseSelectorTable parses comma separated 'signature=offset' entries into a
// selector table, e.g. 'store(uint256)=0x43,retrieve()=0x2e'.
func parseSelectorTable(raw string) (abi.SelectorTable, error) {
	table := abi.NewSelectorTable()
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		i := strings.LastIndex(entry, "=")
		if i < 0 {
			return nil, errors.Errorf("invalid selector entry %q, want 'signature=offset'", entry)
		}
		offset, err := strconv.ParseUint(strings.TrimSpace(entry[i+1:]), 0, 64)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid offset in %q", entry)
		}
		table.Bind(strings.TrimSpace(entry[:i]), offset)
	}
	if len(table) == 0 {
		return nil, errors.New("empty selector table")
	}
	return table, nil
}
