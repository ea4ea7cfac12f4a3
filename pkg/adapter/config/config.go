// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files and allows the vcweb to instantiate the adapters and use cases
// using the loaded settings. The settings format is versioned and each
// major version is maintained by a cfgN sub-package.
// Parsed settings are passed to their components as individual params
// (for the mandatory items) and functional options (for the optional
// items), so the use cases layer does not depend on this package.
package config

import (
	"fmt"
	"os"

	"github.com/momeni/vacancies/pkg/adapter/config/cfg1"
	"github.com/momeni/vacancies/pkg/adapter/config/vers"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/core/cerr"
)

// Load loads, validates, and normalizes the configuration file from
// the given path. It must follow the latest known configuration format
// and its database schema version must match the postgres.Version.
func Load(path string) (*cfg1.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse is similar to Load, but takes the configuration file contents.
func Parse(data []byte) (*cfg1.Config, error) {
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	vc := v.Versions
	if vc.Config[0] != cfg1.Major {
		return nil, fmt.Errorf(
			"unexpected config version: %s", vc.Config.String(),
		)
	}
	if vc.Database != postgres.Version {
		return nil, fmt.Errorf(
			"unexpected database schema version: %w",
			&cerr.MismatchingSemVerError{postgres.Version, vc.Database},
		)
	}
	c, err := cfg1.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading cfg1.Config: %w", err)
	}
	return c, nil
}
