// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema provides a database schema verifier which can be used
// for testing purposes. It checks that the tables which are described
// by model.Tables exist with the expected columns, and that their
// contents match the development or production initial data.
package schema

import (
	"context"
	"fmt"
	"testing"

	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
	"github.com/momeni/vacancies/pkg/core/usecase/schemauc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Verifier verifies the schema and its contents using a database
// connection.
type Verifier struct {
	c repo.Conn // database connection which is used for testing
}

// NewVerifier creates a Verifier which wraps the `c` connection. The
// `v` schema version must be supported by the postgres adapter.
func NewVerifier(c repo.Conn, v model.SemVer) (*Verifier, error) {
	if v[0] != postgres.Major || v[1] > postgres.Minor {
		return nil, fmt.Errorf("unsupported schema version: %s", v)
	}
	return &Verifier{c: c}, nil
}

// dataTypes maps model data types to their information_schema names.
var dataTypes = map[model.DataType]string{
	model.DataTypeSerial:  "integer",
	model.DataTypeInteger: "integer",
	model.DataTypeVarchar: "character varying",
	model.DataTypeText:    "text",
}

// VerifySchema ensures that all tables exist in the public schema with
// their expected columns and data types, in order.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	for _, tbl := range model.Tables() {
		rows, err := v.c.Query(ctx, `SELECT column_name, data_type
FROM information_schema.columns
WHERE table_schema=$1 AND table_name=$2
ORDER BY ordinal_position`, schemauc.SchemaName, tbl.Name)
		require.NoError(t, err, "querying %q columns", tbl.Name)
		var got, want [][2]string
		for rows.Next() {
			var col [2]string
			if !assert.NoError(t, rows.Scan(&col[0], &col[1])) {
				break
			}
			got = append(got, col)
		}
		assert.NoError(t, rows.Err(), "iterating %q columns", tbl.Name)
		rows.Close()
		for _, c := range tbl.Columns {
			want = append(want, [2]string{c.Name, dataTypes[c.Type]})
		}
		assert.Equal(t, want, got, "columns of %q", tbl.Name)
	}
}

func (v *Verifier) names(
	ctx context.Context, t *testing.T, table string,
) []string {
	rows, err := v.c.Query(ctx, fmt.Sprintf(
		"SELECT name FROM %s ORDER BY 1", table,
	))
	require.NoError(t, err, "querying %q names", table)
	defer rows.Close()
	names := []string{}
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	return names
}

// VerifyDevData checks for presence of the development initial data.
// Presence of extra rows is acceptable.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	companies := v.names(ctx, t, "companies")
	for _, c := range schemauc.DevCompanies() {
		assert.Contains(t, companies, c.Name)
	}
	vacancies := v.names(ctx, t, "vacancies")
	for _, s := range schemauc.DevVacancies() {
		assert.Contains(t, vacancies, s.Vacancy.Name)
	}
}

// VerifyProdData checks that production tables are created empty.
func (v *Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	assert.Empty(t, v.names(ctx, t, "companies"))
	assert.Empty(t, v.names(ctx, t, "vacancies"))
}
