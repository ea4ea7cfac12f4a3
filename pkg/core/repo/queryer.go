// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer lists the raw SQL execution methods which are shared by
// both Conn and Tx. Repositories use them (or the ORM which is wrapped
// by their implementation) in order to run their queries.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is the result set of a Query call. It must be closed.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
	Values() ([]any, error)
}
