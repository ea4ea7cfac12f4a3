// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres realizes the repo.Pool, repo.Conn, and repo.Tx
// interfaces using the GORM framework and its pgx-based PostgreSQL
// driver. The per-aggregate repositories (see the companiesrp,
// vacanciesrp, and schemarp sub-packages) write their queries as
// generic functions over the Queryer constraint, so each query can
// run with both of a *Conn and a *Tx.
package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/vacancies/pkg/core/cerr"
	"github.com/momeni/vacancies/pkg/core/model"
)

// These constants represent the major, minor, and patch components of
// the current database schema semantic version.
const (
	Major = 1 // schema major version
	Minor = 0 // schema minor version in the Major series
	Patch = 0 // schema patch version in the Minor series
)

// Version is the supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}

// PostgreSQL error codes which are reported by constraint violations.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Classify wraps constraint violation errors by a cerr.Error, so they
// may be reported properly. A foreign key violation is taken as a
// missing referenced row (cerr.NotFound) and a check violation is
// taken as an invalid argument (cerr.BadRequest). Other errors are
// returned unchanged.
func Classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeForeignKeyViolation:
		return cerr.NotFound(fmt.Errorf("%s: %w", pgErr.Detail, err))
	case codeCheckViolation:
		return cerr.BadRequest(err)
	default:
		return err
	}
}
