// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/vacancies/pkg/adapter/config"
	"github.com/spf13/cobra"
)

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database with development suitable data",
	Long: `Initialize database with sample companies and vacancies which
are suitable for a development environment.
The database connection information are read from the config file.
Existing tables are dropped.
` + credsRenewalMessage,
	RunE: initDev,
	Args: cobra.NoArgs,
}

func initDev(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.NewInitDBUseCase().InitDev(ctx); err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd)
}
