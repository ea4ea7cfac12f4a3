// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemauc

import (
	"context"

	"github.com/momeni/vacancies/pkg/core/repo"
)

// Pool is a repo.Pool which must be closed after its usage.
type Pool interface {
	repo.Pool

	// Close closes all connections of the pool.
	Close() error
}

// Settings represents the database-related settings which should be
// provided by a configuration file.
type Settings interface {
	// ConnectionPool creates a database connection pool for the `r`
	// role. Passwords are read from a passwords file in the configured
	// passwords directory. Each non-empty and non-commented line of
	// that file should conform with this format:
	//
	//	host:port:dbname:role:password
	//
	// A temporary passwords file (with the new passwords) is consulted
	// when the main file is stale, so an interrupted RenewPasswords
	// call does not lock the roles out. If the temporary file is used
	// successfully, it replaces the main passwords file.
	ConnectionPool(ctx context.Context, r repo.Role) (Pool, error)

	// NewSchemaRepo instantiates a fresh Schema repository which uses
	// the same role name suffix as the ConnectionPool method.
	NewSchemaRepo() repo.Schema

	// RenewPasswords generates new passwords for the given roles and
	// records them in the temporary passwords file. Then it calls the
	// change function in order to update them in the database, which
	// may do so in a transaction that is not committed yet. After the
	// transaction commits, the returned finalizer must be called in
	// order to move the temporary passwords file over the main one.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)
}
