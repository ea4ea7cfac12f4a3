// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package companiesrp provides a reification of the repo.Companies
// interface over the companies table.
package companiesrp

import (
	"context"

	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
)

// Repo represents the companies repository.
type Repo struct {
}

// New instantiates a companies Repo.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps c, which must be a *postgres.Conn, and returns a
// queryer which runs companies queries with it.
func (companies *Repo) Conn(c repo.Conn) repo.CompaniesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) All(ctx context.Context) ([]model.Company, error) {
	return All(ctx, cq.Conn)
}

func (cq connQueryer) Create(
	ctx context.Context, c *model.Company,
) (*model.Company, error) {
	return Create(ctx, cq.Conn, c)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps tx, which must be a *postgres.Tx, and returns a queryer
// which runs companies queries in that transaction.
func (companies *Repo) Tx(tx repo.Tx) repo.CompaniesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) All(ctx context.Context) ([]model.Company, error) {
	return All(ctx, tq.Tx)
}

func (tq txQueryer) Create(
	ctx context.Context, c *model.Company,
) (*model.Company, error) {
	return Create(ctx, tq.Tx, c)
}
