// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strings"
)

// CurrencyRates converts amounts from several currencies into the Base
// currency. Each entry of Rates maps an upper-cased currency code to
// the number of Base units which are worth one unit of that currency.
// The Base currency itself is always convertible with a rate of one,
// even if it is not listed in Rates.
type CurrencyRates struct {
	Base  string
	Rates map[string]float64
}

// UnknownCurrencyError indicates that an amount could not be converted
// because its currency had no configured rate. Its value is the
// offending currency code.
type UnknownCurrencyError string

// Error implements the error interface.
func (e UnknownCurrencyError) Error() string {
	return fmt.Sprintf("no rate for currency %q", string(e))
}

// NewCurrencyRates creates a CurrencyRates instance, normalizing the
// given currency codes to upper-case. Rates must be positive.
func NewCurrencyRates(
	base string, rates map[string]float64,
) (*CurrencyRates, error) {
	base = NormalizeCurrency(base)
	if base == "" {
		return nil, fmt.Errorf("base currency must be non-empty")
	}
	cr := &CurrencyRates{
		Base:  base,
		Rates: make(map[string]float64, len(rates)),
	}
	for c, r := range rates {
		if r <= 0 {
			return nil, fmt.Errorf("rate of %q is not positive: %v", c, r)
		}
		cr.Rates[NormalizeCurrency(c)] = r
	}
	return cr, nil
}

// Convert returns the given amount in the cr.Base currency.
func (cr *CurrencyRates) Convert(
	amount float64, currency string,
) (float64, error) {
	c := NormalizeCurrency(currency)
	if c == cr.Base {
		return amount, nil
	}
	r, ok := cr.Rates[c]
	if !ok {
		return 0, UnknownCurrencyError(currency)
	}
	return amount * r, nil
}

// NormalizeCurrency trims and upper-cases a currency code, so "rur "
// and "RUR" are taken as the same currency.
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}
