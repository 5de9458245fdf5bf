// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-9)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables prometheus metrics collection and the metrics API",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics API listening address",
	}
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "hex address of the calling account",
	}
	codeFlag = cli.StringFlag{
		Name:  "code",
		Usage: "hex encoded contract code",
	}
	dataFlag = cli.StringFlag{
		Name:  "data",
		Usage: "hex encoded calldata",
	}
	argsFlag = cli.StringFlag{
		Name:  "args",
		Usage: "hex encoded constructor arguments appended to the init code",
	}
	valueFlag = cli.Uint64Flag{
		Name:  "value",
		Usage: "value transferred with the call",
	}
	budgetFlag = cli.Uint64Flag{
		Name:  "budget",
		Usage: "execution step budget, 0 runs unmetered",
	}
	memLimitFlag = cli.Uint64Flag{
		Name:  "mem-limit",
		Usage: "memory size limit in bytes per call frame, 0 means unlimited",
	}
	selectorsFlag = cli.StringFlag{
		Name:  "selectors",
		Usage: "comma separated selector table entries, e.g. 'store(uint256)=0x43,retrieve()=0x2e'",
	}
)
