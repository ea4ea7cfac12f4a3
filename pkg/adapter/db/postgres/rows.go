// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"database/sql"
	"fmt"
)

// rowsAdapter adapts *sql.Rows to the repo.Rows interface.
type rowsAdapter struct {
	*sql.Rows
}

func (ra rowsAdapter) Close() {
	// returned error may be checked by calling the Err() method
	_ = ra.Rows.Close()
}

// Values scans the current row into a slice with one item per column.
func (ra rowsAdapter) Values() ([]any, error) {
	names, err := ra.Columns()
	if err != nil {
		return nil, fmt.Errorf("column-names: %w", err)
	}
	vals := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err = ra.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return vals, nil
}
