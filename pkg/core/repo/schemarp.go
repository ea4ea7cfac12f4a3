// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/vacancies/pkg/core/model"
)

// Schema interface presents expectations from a repository which
// manages database tables and roles. It is used while a database is
// being initialized, so tables may be queried by other use cases.
type Schema interface {
	// Tx takes a Tx interface instance, unwraps it as required,
	// and returns a SchemaTxQueryer interface which can manage tables
	// and roles in that transaction.
	Tx(Tx) SchemaTxQueryer
}

// SchemaTxQueryer lists the schema management operations. All of them
// run in one transaction, so a failed initialization leaves nothing
// behind.
type SchemaTxQueryer interface {
	// DropTablesIfExist drops the given tables (in the reverse order,
	// so referencing tables are dropped before their references).
	// Missing tables are ignored.
	DropTablesIfExist(ctx context.Context, tables ...model.Table) error

	// CreateTables creates the given tables in order, with their
	// primary key, foreign key, and check constraints.
	CreateTables(ctx context.Context, tables ...model.Table) error

	// CreateRoleIfNotExists creates the `role` role with the login
	// option (and no password) if it does not exist already.
	// The role name may be suffixed automatically.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL privileges on the `schema` schema
	// to the `role` role, so it may create and query tables there.
	//
	// Caller is responsible to pass a trusted schema name string.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// ChangePasswords updates the passwords of the given roles.
	// The roles and passwords slices must have the same length and are
	// used in pair. Passwords are hashed before being sent to the
	// database, so plaintext passwords are never logged.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}
