// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import "github.com/spf13/cobra"

const credsRenewalMessage = `
Both of the admin and normal roles passwords are renewed. The admin role
password must be known initially, so it may be used for connecting to
the database. New passwords are written to the .pgpass.new file in the
configured pass-dir and it replaces the .pgpass file after the database
is updated. An interrupted renewal may be repeated safely.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation in a development or production environment,
the init-dev or init-prod may be used respectively.`,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
