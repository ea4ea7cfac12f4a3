// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the persistence expectations of the use cases
// layer as a set of interfaces. Pool, Conn, and Tx model a database
// connections pool, one of its acquired connections, and an ongoing
// transaction. Each aggregate (Companies, Vacancies) is managed by a
// repository which takes a Conn or Tx and returns a queryer, so the
// same query methods may run with or without a transaction.
// Implementations are kept in the adapter layer.
package repo

import "context"

// ConnHandler is a callback which receives an acquired connection.
// The connection is released after the handler returns, so it must
// not be kept or used concurrently.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connections pool.
type Pool interface {
	// Conn acquires a connection, passes it to handler, and releases
	// it afterwards, returning the handler error (if any).
	Conn(ctx context.Context, handler ConnHandler) error
}
