// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers parses the versions which are shared by all config
// formats, namely the configuration file and the database schema
// versions. They are read before the remaining settings, so the right
// cfgN package may be chosen for parsing the rest of the file.
package vers

import (
	"fmt"

	"github.com/momeni/vacancies/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config embeds the Versions with the `versions` key. It is inlined
// by the cfgN.Config structs.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file and database schema
// versions. Each binary supports one config major version and one
// database schema version.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Marshalled is the YAML friendly form of Config, having the versions
// as strings.
type Marshalled struct {
	Versions struct {
		Database string
		Config   string
	}
}

// Marshal creates a Marshalled instance representing vc.
func (vc *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Versions.Database = vc.Versions.Database.Marshal()
	m.Versions.Config = vc.Versions.Config.Marshal()
	return m
}

// Load deserializes the versions from data, ignoring other items.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate ensures that the config version has the given major version
// and its minor version is not newer than the given minor argument.
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if v[0] != major {
		return fmt.Errorf("incompatible major version: %d", v[0])
	}
	if v[1] > minor {
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	return nil
}
