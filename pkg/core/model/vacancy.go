// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// Vacancy models a job offer which is published by one Company.
// The SalaryFrom and SalaryTo bounds are optional and so are kept as
// pointers, while a nil pointer means that the bound is not announced.
// The ID is assigned by the persistence layer.
type Vacancy struct {
	ID             int64  `json:"vacancy_id"`
	Name           string `json:"name"`
	CompanyID      int64  `json:"company_id"`
	SalaryFrom     *int64 `json:"salary_from"`
	SalaryTo       *int64 `json:"salary_to"`
	SalaryCurrency string `json:"salary_currency"`
	Area           string `json:"area"`
	Requirement    string `json:"requirement"`
	Responsibility string `json:"responsibility"`
	URL            string `json:"url"`
}

// ErrInvalidSalaryRange indicates that the lower salary bound of a
// vacancy is greater than its upper salary bound.
var ErrInvalidSalaryRange = errors.New(
	"salary_from is greater than salary_to",
)

// Salary returns the derived salary value of v.
func (v *Vacancy) Salary() Salary {
	return Salary{
		From:     v.SalaryFrom,
		To:       v.SalaryTo,
		Currency: v.SalaryCurrency,
	}
}

// Validate checks the v fields which can be verified without knowing
// about other entities. Existence of the referenced company is
// enforced by the persistence layer foreign key instead.
func (v *Vacancy) Validate() error {
	if v.CompanyID <= 0 {
		return fmt.Errorf("invalid company_id: %d", v.CompanyID)
	}
	if v.SalaryFrom != nil && v.SalaryTo != nil &&
		*v.SalaryFrom > *v.SalaryTo {
		return ErrInvalidSalaryRange
	}
	return nil
}

// VacancyFilter lists the field=value criteria which may be used for
// filtering vacancies. Nil fields are ignored and all non-nil fields
// must match simultaneously. A zero VacancyFilter matches everything.
type VacancyFilter struct {
	CompanyID      *int64
	SalaryCurrency *string
	Area           *string
}

// Match reports whether v satisfies all criteria of f.
// Persistence adapters which cannot push f down to their storage
// engine may use Match for filtering materialized vacancies.
func (f VacancyFilter) Match(v *Vacancy) bool {
	switch {
	case f.CompanyID != nil && *f.CompanyID != v.CompanyID:
		return false
	case f.SalaryCurrency != nil && *f.SalaryCurrency != v.SalaryCurrency:
		return false
	case f.Area != nil && *f.Area != v.Area:
		return false
	}
	return true
}
