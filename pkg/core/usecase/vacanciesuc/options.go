// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vacanciesuc

import (
	"errors"
	"fmt"

	"github.com/momeni/vacancies/pkg/core/model"
)

// Option is a functional option for the vacancies use case.
type Option func(uc *UseCase) error

// WithGroupedCounting option makes CompanyVacancyCounts to fetch all
// vacancies once and group them by their company, instead of running
// one counting query per company. Both methods report equal counts.
func WithGroupedCounting() Option {
	return func(uc *UseCase) error {
		uc.groupedCounting = true
		return nil
	}
}

// WithCurrencyRates option configures the currency rates which are
// used for converting salaries to the base currency before they are
// averaged or compared. Without this option, salaries with different
// currencies may not be averaged together.
func WithCurrencyRates(base string, rates map[string]float64) Option {
	return func(uc *UseCase) error {
		if uc.rates != nil {
			return errors.New("currency rates are already configured")
		}
		cr, err := model.NewCurrencyRates(base, rates)
		if err != nil {
			return fmt.Errorf("currency rates: %w", err)
		}
		uc.rates = cr
		return nil
	}
}
