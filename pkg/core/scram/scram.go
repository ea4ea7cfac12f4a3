// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the Salted Challenge Response Authentication
// Mechanism (SCRAM) expectations of the use cases layer. Only the hash
// generation is needed, so database role passwords may be changed
// without sending them in plaintext. The SCRAM conversation itself is
// handled by the PostgreSQL server and its driver.
package scram

// Hasher computes the storedKey and serverKey of a password for one
// underlying hash function (e.g., SHA-256) as detailed in RFC 5802.
type Hasher interface {
	// Hash computes a SCRAM hash string for the non-empty pass.
	// The salt must be the base64 encoding of the salt bytes, or empty
	// in order to use a random salt. The iters must be at least 4096.
	// The result has the following format and may be passed to the
	// ALTER ROLE statements of a PostgreSQL server.
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)
}
