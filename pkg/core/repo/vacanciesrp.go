// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/vacancies/pkg/core/model"
)

// Vacancies is the repository of the Vacancy aggregate.
type Vacancies interface {
	Conn(Conn) VacanciesConnQueryer
	Tx(Tx) VacanciesTxQueryer
}

// VacanciesConnQueryer runs vacancies queries with a connection.
type VacanciesConnQueryer interface {
	VacanciesQueryer
}

// VacanciesTxQueryer runs vacancies queries within a transaction.
type VacanciesTxQueryer interface {
	VacanciesQueryer
}

// VacanciesQueryer lists vacancies queries which may run with both of
// a connection or a transaction.
type VacanciesQueryer interface {
	// All returns all vacancies, ordered by their ID.
	All(ctx context.Context) ([]model.Vacancy, error)

	// Filter returns vacancies which match all non-nil criteria of f,
	// ordered by their ID. No match yields an empty slice.
	Filter(ctx context.Context, f model.VacancyFilter) (
		[]model.Vacancy, error,
	)

	// Count returns the number of vacancies which match f.
	Count(ctx context.Context, f model.VacancyFilter) (int64, error)

	// Create inserts v (ignoring its ID) and returns the stored
	// vacancy with its assigned ID. The v.CompanyID must refer to an
	// existing company.
	Create(ctx context.Context, v *model.Vacancy) (*model.Vacancy, error)
}
