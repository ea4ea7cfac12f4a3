// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "errors"

// Salary is a value object which is derived from the salary related
// fields of a Vacancy. It is never stored itself.
type Salary struct {
	From, To *int64 // optional lower and upper bounds
	Currency string // currency code, as announced by the employer
}

// Avg returns the average salary of s and true, or zero and false if
// s has no bound at all. When both bounds are present, their midpoint
// is returned (computed with a floating-point division). When only one
// bound is announced, that bound is taken as the average, so a "from
// 100" offer weighs as 100 and not as 50.
func (s Salary) Avg() (float64, bool) {
	switch {
	case s.From != nil && s.To != nil:
		return (float64(*s.From) + float64(*s.To)) / 2, true
	case s.From != nil:
		return float64(*s.From), true
	case s.To != nil:
		return float64(*s.To), true
	default:
		return 0, false
	}
}

// ErrEmptyDataset indicates that a mean salary was asked while there
// were no vacancies (or no vacancy announced a salary) to be averaged.
// Callers must not replace it by a zero mean because such a zero
// threshold would make every vacancy look well-paid.
var ErrEmptyDataset = errors.New("no vacancies to average")

// ErrMixedCurrencies indicates that salaries with different currencies
// were going to be averaged while no currency rates were configured
// for their normalization.
var ErrMixedCurrencies = errors.New(
	"salaries use mixed currencies and no rates are configured",
)

// SalaryMean is the arithmetic mean of average salaries of Count
// vacancies, expressed in the Currency currency.
type SalaryMean struct {
	Value    float64 `json:"average"`
	Currency string  `json:"currency"`
	Count    int     `json:"count"`
}
