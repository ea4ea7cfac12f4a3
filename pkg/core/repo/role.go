// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a database role name which is used for connecting to the
// database. Roles may be suffixed by the adapter layer (e.g., in order
// to share one DBMS among several deployments).
type Role string

// Expected database roles. The AdminRole must be created manually with
// super user privileges, so it can create the NormalRole during the
// database initialization. Their passwords are kept in the pass-dir
// directory as configured.
const (
	// AdminRole creates roles, grants privileges, and drops tables.
	AdminRole Role = "admin"

	// NormalRole creates and fills tables during initialization and
	// runs all queries of the vacancies use cases.
	NormalRole Role = "vcweb"
)
