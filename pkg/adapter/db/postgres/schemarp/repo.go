// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create or drop the tables which are described
// by model.Table values and to manage database roles.
package schemarp

import (
	"context"

	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
	"github.com/momeni/vacancies/pkg/core/scram"
)

// Repo represents a schema management repository.
// Role names are suffixed by roleSuffix before being used, so several
// deployments may share a DBMS, and passwords are hashed by hasher.
type Repo struct {
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// New instantiates a schema management Repo.
func New(roleSuffix repo.Role, hasher scram.Hasher) *Repo {
	return &Repo{roleSuffix: roleSuffix, hasher: hasher}
}

type txQueryer struct {
	*postgres.Tx
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// Tx unwraps tx, which must be a *postgres.Tx, and returns a queryer
// which manages tables and roles in that transaction.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{
		Tx:         tt,
		roleSuffix: schema.roleSuffix,
		hasher:     schema.hasher,
	}
}

func (tq txQueryer) DropTablesIfExist(
	ctx context.Context, tables ...model.Table,
) error {
	return DropTablesIfExist(ctx, tq.Tx, tables...)
}

func (tq txQueryer) CreateTables(
	ctx context.Context, tables ...model.Table,
) error {
	return CreateTables(ctx, tq.Tx, tables...)
}

func (tq txQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, tq.Tx, tq.roleSuffix, role)
}

func (tq txQueryer) GrantPrivileges(
	ctx context.Context, schema string, role repo.Role,
) error {
	return GrantPrivileges(ctx, tq.Tx, tq.roleSuffix, schema, role)
}

func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	return ChangePasswords(
		ctx, tq.Tx, tq.roleSuffix, tq.hasher, roles, passwords,
	)
}
