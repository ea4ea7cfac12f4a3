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

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database with empty tables",
	Long: `Initialize database with empty companies and vacancies tables.
The database connection information are read from the config file.
Existing tables are dropped.
` + credsRenewalMessage,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initProd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.NewInitDBUseCase().InitProd(ctx); err != nil {
		return fmt.Errorf("initializing DB with prod data: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initProdCmd)
}
