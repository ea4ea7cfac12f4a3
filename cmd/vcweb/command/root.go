// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of the vcweb.
// Commands are organized using the cobra library. The root command
// starts the web server itself while the "db" sub-command can be used
// for initializing the database.
//
//	./vcweb [-c /path/of/config.yaml]           # start web server
//	./vcweb db init-dev [-c /path/of/config.yaml]
//	./vcweb db init-prod [-c /path/of/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/momeni/vacancies/pkg/adapter/config"
	"github.com/momeni/vacancies/pkg/adapter/restful/gin/routes"
	"github.com/momeni/vacancies/pkg/core/log"
	"github.com/momeni/vacancies/pkg/core/repo"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the graceful shutdown of the web server.
const shutdownTimeout = 10 * time.Second

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "vcweb",
	Short: "Companies and vacancies listing web service",
	Long: `Companies and vacancies listing web service which stores the
companies and their vacancies in a PostgreSQL database and reports them
via REST APIs, including the number of vacancies per company, keyword
search over vacancy names, and the salary statistics (average salary
and vacancies with a salary above that average).
Salaries with different currencies are averaged only if the currency
rates are configured. GET responses may be cached in Redis.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	log.Info(ctx, "configs are loaded", log.Str("path", cfgPath))
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	e := c.Gin.NewEngine(slog.Default())
	cleanup, err := routes.Register(e, p, c)
	if err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	defer cleanup()
	srv := &http.Server{Addr: *c.Gin.Address, Handler: e}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", log.Str("address", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err = <-errCh:
		return fmt.Errorf("running Gin engine: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down")
	sctx, cancel := context.WithTimeout(
		context.Background(), shutdownTimeout,
	)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath loads the .env file (if any) and then ensures that
// cfgPath is set respectively by either the CLI args, the CONFIG_FILE
// environment variable, or its default value.
func fixConfigPath() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring the .env file: %v\n", err)
	}
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
