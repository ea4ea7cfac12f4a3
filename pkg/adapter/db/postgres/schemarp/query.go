// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
	"github.com/momeni/vacancies/pkg/core/scram"
)

// HashIterations is the SCRAM iterations count of role passwords.
const HashIterations = 15000

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// CreateTableSQL renders the CREATE TABLE statement of the t table.
// Table and column names are quoted, while the check expressions are
// written as is, so they must be trusted.
func CreateTableSQL(t model.Table) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	defs := make([]string, 0, len(t.Columns)+len(t.Checks))
	for _, c := range t.Columns {
		var b strings.Builder
		b.WriteString(ident(c.Name))
		b.WriteString(" ")
		b.WriteString(c.Type.String())
		for _, cons := range c.Constraints {
			switch cons.Kind {
			case model.ConstraintPK:
				b.WriteString(" PRIMARY KEY")
			case model.ConstraintFK:
				fmt.Fprintf(
					&b, " REFERENCES %s(%s)",
					ident(cons.RefTable), ident(cons.RefColumn),
				)
			default:
				return "", fmt.Errorf(
					"column %q: unknown constraint kind %d",
					c.Name, cons.Kind,
				)
			}
		}
		defs = append(defs, b.String())
	}
	for _, chk := range t.Checks {
		defs = append(defs, "CHECK ("+chk+")")
	}
	return fmt.Sprintf(
		"CREATE TABLE %s (%s)", ident(t.Name), strings.Join(defs, ", "),
	), nil
}

// DropTablesIfExist drops the given tables if they exist, in the
// reverse order of their creation.
func DropTablesIfExist[Q postgres.Queryer](
	ctx context.Context, q Q, tables ...model.Table,
) error {
	for i := len(tables) - 1; i >= 0; i-- {
		t := tables[i]
		sql := "DROP TABLE IF EXISTS " + ident(t.Name)
		if _, err := q.Exec(ctx, sql); err != nil {
			return fmt.Errorf("dropping %q: %w", t.Name, err)
		}
	}
	return nil
}

// CreateTables creates the given tables in order.
func CreateTables[Q postgres.Queryer](
	ctx context.Context, q Q, tables ...model.Table,
) error {
	for _, t := range tables {
		sql, err := CreateTableSQL(t)
		if err != nil {
			return fmt.Errorf("rendering %q: %w", t.Name, err)
		}
		if _, err := q.Exec(ctx, sql); err != nil {
			return fmt.Errorf("creating %q: %w", t.Name, err)
		}
	}
	return nil
}

// CreateRoleIfNotExists creates the `role` role (suffixed by the
// roleSuffix) with the login option if it does not exist.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix, role repo.Role,
) error {
	name := string(role + roleSuffix)
	var n int64
	gdb := q.GORM(ctx).Raw(
		"SELECT count(*) FROM pg_roles WHERE rolname = ?", name,
	).Scan(&n)
	if err := gdb.Error; err != nil {
		return fmt.Errorf("looking up %q role: %w", name, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := q.Exec(ctx, "CREATE ROLE "+ident(name)+" WITH LOGIN"); err != nil {
		return fmt.Errorf("creating %q role: %w", name, err)
	}
	return nil
}

// GrantPrivileges grants ALL privileges on the `schema` schema to the
// `role` role (suffixed by the roleSuffix).
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role,
	schema string, role repo.Role,
) error {
	sql := fmt.Sprintf(
		"GRANT ALL ON SCHEMA %s TO %s",
		ident(schema), ident(string(role+roleSuffix)),
	)
	if _, err := q.Exec(ctx, sql); err != nil {
		return fmt.Errorf("granting %q privileges: %w", schema, err)
	}
	return nil
}

// ChangePasswords updates the passwords of the given roles (suffixed
// by the roleSuffix). Passwords are hashed by the hasher, so only their
// SCRAM hash is sent to the DBMS.
func ChangePasswords[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles and %d passwords", len(roles), len(passwords),
		)
	}
	for i, r := range roles {
		name := string(r + roleSuffix)
		h, err := hasher.Hash(passwords[i], "", HashIterations)
		if err != nil {
			return fmt.Errorf("hashing %q password: %w", name, err)
		}
		sql := fmt.Sprintf(
			"ALTER ROLE %s WITH PASSWORD '%s'",
			ident(name), strings.ReplaceAll(h, "'", "''"),
		)
		if _, err := q.Exec(ctx, sql); err != nil {
			return fmt.Errorf("altering %q role: %w", name, err)
		}
	}
	return nil
}
