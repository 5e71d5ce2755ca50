// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/OasisDEX/summer-earn-protocol-sub010/api"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/events"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/params"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/rewards"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/token"
	"github.com/OasisDEX/summer-earn-protocol-sub010/log"
	"github.com/OasisDEX/summer-earn-protocol-sub010/metrics"
	"github.com/OasisDEX/summer-earn-protocol-sub010/state"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

var (
	version   string
	gitCommit string

	logger = log.WithContext("pkg", "main")

	// well-known contract addresses of a solo instance
	addrParams  = summer.BytesToAddress([]byte("params"))
	addrTokens  = summer.BytesToAddress([]byte("tokens"))
	addrRewards = summer.BytesToAddress([]byte("rewards"))
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

var (
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to the YAML genesis file",
		Value: "genesis.yaml",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Usage: "query API listen address",
		Value: "localhost:8669",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "Prometheus metrics listen address, empty to disable",
		Value: "",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log verbosity (0=error, 1=warn, 2=info, 3=debug)",
		Value: 2,
	}
)

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "summer",
		Usage:     "Solo instance of the Summer Earn staking rewards engine",
		Copyright: "2025 Oasis",
		Flags: []cli.Flag{
			genesisFlag,
			apiAddrFlag,
			metricsAddrFlag,
			verbosityFlag,
		},
		Action: soloAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx *cli.Context) {
	level := slog.LevelInfo
	switch ctx.Int(verbosityFlag.Name) {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelWarn
	case 3:
		level = slog.LevelDebug
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd())
	log.SetHandler(log.NewTerminalHandler(os.Stderr, level, useColor))
}

func soloAction(ctx *cli.Context) error {
	initLogger(ctx)

	gen, err := loadGenesis(ctx.String(genesisFlag.Name))
	if err != nil {
		return err
	}
	governor, err := summer.ParseAddress(gen.Governor)
	if err != nil {
		return err
	}

	st := state.New()
	journal := events.NewJournal()
	par := params.New(addrParams, st)
	par.Initialize(*governor)
	registry := token.New(addrTokens, st)
	if err := gen.apply(registry); err != nil {
		return err
	}
	mgr := rewards.New(addrRewards, st, registry, par, journal)

	clock := func() uint64 { return uint64(time.Now().Unix()) }
	if gen.StakingAsset != "" {
		staking, err := summer.ParseAddress(gen.StakingAsset)
		if err != nil {
			return err
		}
		if err := mgr.InitializeStakingToken(*governor, *staking, clock()); err != nil {
			return err
		}
	}

	logger.Info("solo instance bootstrapped",
		"governor", governor,
		"assets", len(gen.Assets),
		"version", fullVersion(),
	)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(runCtx)
	group.Go(func() error {
		return serve(groupCtx, "api", ctx.String(apiAddrFlag.Name), api.New(mgr, journal, clock))
	})
	if metricsAddr := ctx.String(metricsAddrFlag.Name); metricsAddr != "" {
		metrics.InitializePrometheusMetrics()
		group.Go(func() error {
			return serve(groupCtx, "metrics", metricsAddr, metrics.HTTPHandler())
		})
	}
	return group.Wait()
}

func serve(ctx context.Context, name, addr string, handler http.Handler) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()
	logger.Info("server listening", "name", name, "addr", listener.Addr())
	if err := srv.Serve(listener); err != http.ErrServerClosed {
		return err
	}
	return nil
}
