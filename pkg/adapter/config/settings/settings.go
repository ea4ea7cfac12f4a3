// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the version-independent building blocks of
// the cfgN configuration packages. Optional settings are kept as
// pointers, so a missing item can be told apart from its zero value,
// and the Nil2Zero/OverwriteNil helpers fill them with defaults.
// Bounded settings are checked by VerifyRange and durations are kept
// as Duration values which are human-readable when marshaled.
package settings
