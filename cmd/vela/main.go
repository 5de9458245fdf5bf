// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/velalab/vela/metrics"
	"github.com/velalab/vela/runtime"
	"github.com/velalab/vela/state"
	"github.com/velalab/vela/vela"
	"github.com/velalab/vela/vm"
)

var (
	version   string
	gitCommit string
	log       = log15.New()
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Vela",
		Usage:     "stack machine execution engine for contract bytecode",
		Copyright: "2026 The Vela developers",
		Flags: []cli.Flag{
			verbosityFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Commands: []cli.Command{
			{
				Name:  "deploy",
				Usage: "run init code as a creation call and print the deployed runtime code",
				Flags: []cli.Flag{
					codeFlag,
					argsFlag,
					callerFlag,
					valueFlag,
					budgetFlag,
					memLimitFlag,
					verbosityFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: deployAction,
			},
			{
				Name:  "call",
				Usage: "execute runtime code with the given calldata",
				Flags: []cli.Flag{
					codeFlag,
					dataFlag,
					callerFlag,
					valueFlag,
					budgetFlag,
					memLimitFlag,
					selectorsFlag,
					verbosityFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: callAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func deployAction(ctx *cli.Context) error {
	closeMetrics, err := initCLI(ctx)
	if err != nil {
		return err
	}
	defer closeMetrics()

	initCode, err := hexFlag(ctx, codeFlag.Name, true)
	if err != nil {
		return err
	}
	args, err := hexFlag(ctx, argsFlag.Name, false)
	if err != nil {
		return err
	}

	rt := runtime.New(state.New()).SetVMConfig(vmConfig(ctx))
	out := rt.Deploy(callerAddress(ctx), initCode, args, uint256.NewInt(ctx.Uint64(valueFlag.Name)))
	if out.VMErr != nil {
		if out.VMErr == vm.ErrExecutionReverted {
			return fmt.Errorf("deployment reverted, reason: 0x%x", out.Data)
		}
		return fmt.Errorf("deployment faulted: %v", out.VMErr)
	}

	log.Info("deployment succeeded", "address", out.ContractAddress, "codeSize", len(out.Data))
	fmt.Println("address:", out.ContractAddress)
	fmt.Printf("code: 0x%x\n", out.Data)
	return nil
}

func callAction(ctx *cli.Context) error {
	closeMetrics, err := initCLI(ctx)
	if err != nil {
		return err
	}
	defer closeMetrics()

	code, err := hexFlag(ctx, codeFlag.Name, true)
	if err != nil {
		return err
	}
	calldata, err := hexFlag(ctx, dataFlag.Name, false)
	if err != nil {
		return err
	}

	st := state.New()
	target := vela.BytesToAddress([]byte("vela-cli-target"))
	st.SetCode(target, code)
	st.Commit()

	rt := runtime.New(st).SetVMConfig(vmConfig(ctx))
	if ctx.IsSet(selectorsFlag.Name) {
		table, err := parseSelectorTable(ctx.String(selectorsFlag.Name))
		if err != nil {
			return err
		}
		rt.RegisterSelectors(target, table)
	}

	out := rt.Call(callerAddress(ctx), target, calldata, uint256.NewInt(ctx.Uint64(valueFlag.Name)))
	if sel := out.Selection; sel != nil {
		if sel.Matched {
			fmt.Printf("selector: %s -> offset %#x\n", sel.Selector, sel.Offset)
		} else {
			fmt.Printf("selector: %s -> no match (fallback)\n", sel.Selector)
		}
	}
	if out.VMErr != nil {
		if out.VMErr == vm.ErrExecutionReverted {
			return fmt.Errorf("call reverted, reason: 0x%x", out.Data)
		}
		return fmt.Errorf("call faulted: %v", out.VMErr)
	}

	fmt.Printf("return: 0x%x\n", out.Data)
	return nil
}

// initCLI sets up logging and, when enabled, metrics collection plus the
// HTTP endpoint serving them. The returned function stops the endpoint.
func initCLI(ctx *cli.Context) (func(), error) {
	logLevel := ctx.GlobalInt(verbosityFlag.Name)
	if ctx.IsSet(verbosityFlag.Name) {
		logLevel = ctx.Int(verbosityFlag.Name)
	}
	format := log15.LogfmtFormat()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		format = log15.TerminalFormat()
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(
		log15.Lvl(logLevel),
		log15.StreamHandler(os.Stderr, format)))

	if ctx.GlobalBool(enableMetricsFlag.Name) || ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		addr := ctx.String(metricsAddrFlag.Name)
		if addr == "" {
			addr = ctx.GlobalString(metricsAddrFlag.Name)
		}
		url, closeFunc, err := startMetricsServer(addr)
		if err != nil {
			return nil, errors.Wrap(err, "unable to start metrics server")
		}
		log.Info("metrics server started", "url", url)
		return closeFunc, nil
	}
	return func() {}, nil
}

func vmConfig(ctx *cli.Context) vm.Config {
	cfg := vm.Config{
		MemoryLimit: ctx.Uint64(memLimitFlag.Name),
	}
	if budget := ctx.Uint64(budgetFlag.Name); budget > 0 {
		cfg.CostOracle = vm.NewBudget(budget)
	}
	return cfg
}

func callerAddress(ctx *cli.Context) vela.Address {
	if s := ctx.String(callerFlag.Name); s != "" {
		addr, err := vela.ParseAddress(s)
		if err == nil {
			return addr
		}
		log.Warn("invalid caller address, using default", "err", err)
	}
	return vela.BytesToAddress([]byte("vela-cli-caller"))
}

func hexFlag(ctx *cli.Context, name string, required bool) ([]byte, error) {
	s := ctx.String(name)
	if s == "" {
		if required {
			return nil, fmt.Errorf("missing required flag --%s", name)
		}
		return nil, nil
	}
	if len(s) >= 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex for --%s: %v", name, err)
	}
	return b, nil
}
