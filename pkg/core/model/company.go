// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., json tags for the REST
// adapters) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
// The ORM specific structs are kept in the repository packages, see
// the gCompany and gVacancy structs in pkg/adapter/db/postgres.
package model

import (
	"errors"
	"strings"
)

// ErrEmptyCompanyName indicates that a company has no name.
var ErrEmptyCompanyName = errors.New("company name is empty")

// Company models an employer which publishes vacancies.
// The ID is assigned by the persistence layer (a SERIAL column) and
// must be left zero when a new Company is being created.
// Company is comparable, so it may be used as a map key.
type Company struct {
	ID   int64  `json:"company_id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Validate ensures that c has a non-blank name.
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCompanyName
	}
	return nil
}

// CompanyVacancies pairs a Company with the number of its vacancies.
type CompanyVacancies struct {
	Company Company `json:"company"`
	Count   int64   `json:"vacancies"`
}

// CompanyCounts is an ordered mapping from companies to their vacancies
// count. The order follows the companies iteration order, as returned
// by the persistence layer.
type CompanyCounts []CompanyVacancies

// Map converts the ordered cc slice into a map, keyed by companies.
// Since each company appears once in cc, no count is lost.
func (cc CompanyCounts) Map() map[Company]int64 {
	m := make(map[Company]int64, len(cc))
	for _, c := range cc {
		m[c.Company] = c.Count
	}
	return m
}
