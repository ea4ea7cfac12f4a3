// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/vacancies/pkg/core/model"
)

// Companies is the repository of the Company aggregate.
type Companies interface {
	Conn(Conn) CompaniesConnQueryer
	Tx(Tx) CompaniesTxQueryer
}

// CompaniesConnQueryer runs companies queries with a connection.
type CompaniesConnQueryer interface {
	CompaniesQueryer
}

// CompaniesTxQueryer runs companies queries within a transaction.
type CompaniesTxQueryer interface {
	CompaniesQueryer
}

// CompaniesQueryer lists companies queries which may run with both of
// a connection or a transaction.
type CompaniesQueryer interface {
	// All returns all companies, ordered by their ID. An empty table
	// yields an empty slice and no error.
	All(ctx context.Context) ([]model.Company, error)

	// Create inserts c (ignoring its ID) and returns the stored
	// company with its assigned ID.
	Create(ctx context.Context, c *model.Company) (*model.Company, error)
}
