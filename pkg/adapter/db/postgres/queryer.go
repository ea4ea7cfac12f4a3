// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/vacancies/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is a type constraint which is satisfied by *Conn and *Tx.
// Repository query functions take a Q Queryer type parameter, so they
// can be written once and used with a connection or a transaction.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM returns the wrapped *gorm.DB, bound to ctx.
	GORM(ctx context.Context) *gorm.DB
}
