// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vacanciesrp provides a reification of the repo.Vacancies
// interface over the vacancies table.
package vacanciesrp

import (
	"context"

	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
)

// Repo represents the vacancies repository.
type Repo struct {
}

// New instantiates a vacancies Repo.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps c, which must be a *postgres.Conn, and returns a
// queryer which runs vacancies queries with it.
func (vacancies *Repo) Conn(c repo.Conn) repo.VacanciesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) All(ctx context.Context) ([]model.Vacancy, error) {
	return All(ctx, cq.Conn)
}

func (cq connQueryer) Filter(
	ctx context.Context, f model.VacancyFilter,
) ([]model.Vacancy, error) {
	return Filter(ctx, cq.Conn, f)
}

func (cq connQueryer) Count(
	ctx context.Context, f model.VacancyFilter,
) (int64, error) {
	return Count(ctx, cq.Conn, f)
}

func (cq connQueryer) Create(
	ctx context.Context, v *model.Vacancy,
) (*model.Vacancy, error) {
	return Create(ctx, cq.Conn, v)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps tx, which must be a *postgres.Tx, and returns a queryer
// which runs vacancies queries in that transaction.
func (vacancies *Repo) Tx(tx repo.Tx) repo.VacanciesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) All(ctx context.Context) ([]model.Vacancy, error) {
	return All(ctx, tq.Tx)
}

func (tq txQueryer) Filter(
	ctx context.Context, f model.VacancyFilter,
) ([]model.Vacancy, error) {
	return Filter(ctx, tq.Tx, f)
}

func (tq txQueryer) Count(
	ctx context.Context, f model.VacancyFilter,
) (int64, error) {
	return Count(ctx, tq.Tx, f)
}

func (tq txQueryer) Create(
	ctx context.Context, v *model.Vacancy,
) (*model.Vacancy, error) {
	return Create(ctx, tq.Tx, v)
}
