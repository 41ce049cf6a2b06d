// Copyright 2025 The govkit Authors
// This file is part of the govkit library.
//
// The govkit library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The govkit library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the govkit library. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/daosuite/govkit/api"
	"github.com/daosuite/govkit/audit"
	"github.com/daosuite/govkit/governance"
	"github.com/daosuite/govkit/metrics"
	"github.com/daosuite/govkit/repo"
	"github.com/daosuite/govkit/token"
	"github.com/daosuite/govkit/treasury"
)

func start(ctx *cli.Context) error {
	p, err := getRootPath(ctx)
	if err != nil {
		return err
	}
	r, err := repo.Load(p)
	if err != nil {
		return err
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(r.Config.Log.Level)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logger.SetLevel(level)

	printVersion()

	admin, err := repo.ParseAddress(r.Config.Admin)
	if err != nil {
		return err
	}
	engineAddr, err := repo.ParseAddress(r.Config.EngineAddress)
	if err != nil {
		return err
	}
	custody, err := repo.ParseAddress(r.Config.TreasuryAddress)
	if err != nil {
		return err
	}
	govTokenAddr, err := repo.ParseAddress(r.Config.GovTokenAddress)
	if err != nil {
		return err
	}
	govCfg, err := r.Config.Governance.Parse()
	if err != nil {
		return err
	}

	journal, err := audit.OpenJournal(filepath.Join(r.Config.RepoRoot, repo.JournalDirName), logger)
	if err != nil {
		return errors.Wrap(err, "open audit journal")
	}
	defer journal.Close()

	govToken := token.NewToken("Governance Token", "GOV", admin)
	registry := token.NewRegistry()
	registry.Register(govTokenAddr, govToken)
	bank := token.NewBank()

	treas := treasury.New(admin, engineAddr, custody, bank, registry,
		logger, journal, metrics.PromTreasuryMetrics())
	engine := governance.NewEngine(admin, engineAddr, govCfg, govToken, treas,
		governance.SystemClock{}, logger, journal, metrics.PromGovernanceMetrics())

	server := api.NewServer(engine, treas, govToken, logger, metrics.PromAPIMetrics())
	httpServer := &http.Server{
		Addr:    r.Config.API.ListenAddr,
		Handler: server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	fmt.Println("=============govkit is ready=============")
	logger.WithField("addr", r.Config.API.ListenAddr).Info("api listening")

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		logger.Info("received interrupt signal, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
