// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is a callback which receives an ongoing transaction.
// Returning nil commits the transaction and a non-nil error causes
// it to be rolled back.
type TxHandler func(context.Context, Tx) error

// Conn represents one acquired database connection.
type Conn interface {
	Queryer

	// Tx begins a transaction, runs handler with it, and commits or
	// rolls it back depending on the handler error.
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn prevents a Tx to mistakenly implement Conn.
	IsConn()
}
