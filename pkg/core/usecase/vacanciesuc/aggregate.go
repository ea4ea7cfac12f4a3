// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vacanciesuc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/momeni/vacancies/pkg/core/model"
)

// CountPerCompany counts vacancies of each company in one pass over
// the vacancies slice. The result has one entry per company (including
// the companies without any vacancy) in the companies order. Vacancies
// which refer to a company that is not listed are ignored.
func CountPerCompany(
	companies []model.Company, vacancies []model.Vacancy,
) model.CompanyCounts {
	counts := make(map[int64]int64, len(companies))
	for i := range vacancies {
		counts[vacancies[i].CompanyID]++
	}
	cc := make(model.CompanyCounts, 0, len(companies))
	for _, c := range companies {
		cc = append(cc, model.CompanyVacancies{
			Company: c,
			Count:   counts[c.ID],
		})
	}
	return cc
}

// MatchKeyword returns vacancies whose name contains keyword, ignoring
// the letter case. The keyword is trimmed, but names are not, so a
// " go" keyword matches "Go developer". An empty keyword matches all
// vacancies. The original order is preserved.
func MatchKeyword(vacancies []model.Vacancy, keyword string) []model.Vacancy {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	matched := make([]model.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if strings.Contains(strings.ToLower(v.Name), kw) {
			matched = append(matched, v)
		}
	}
	return matched
}

// normalizedAvg returns the average salary of v in the currency which
// is used for comparisons. With nil rates, salaries are left in their
// own currency. The ok result is false for vacancies without salary.
func normalizedAvg(
	v *model.Vacancy, rates *model.CurrencyRates,
) (avg float64, ok bool, err error) {
	s := v.Salary()
	avg, ok = s.Avg()
	if !ok || rates == nil {
		return avg, ok, nil
	}
	avg, err = rates.Convert(avg, s.Currency)
	if err != nil {
		return 0, false, fmt.Errorf("vacancy %d: %w", v.ID, err)
	}
	return avg, true, nil
}

// MeanSalary computes the arithmetic mean of the average salaries of
// vacancies. Vacancies without any salary bound are excluded.
//
// The model.ErrEmptyDataset is returned if there is nothing to average,
// either because vacancies is empty or since none of them announces a
// salary. A zero mean is never reported in place of that error.
//
// If rates is nil, all salaried vacancies must use the same currency
// (compared case-insensitively) or model.ErrMixedCurrencies will be
// returned. Otherwise, all salaries are converted to rates.Base and
// a model.UnknownCurrencyError is returned for a currency without rate.
func MeanSalary(
	vacancies []model.Vacancy, rates *model.CurrencyRates,
) (model.SalaryMean, error) {
	if len(vacancies) == 0 {
		return model.SalaryMean{}, model.ErrEmptyDataset
	}
	var (
		sum      float64
		count    int
		currency string
	)
	if rates != nil {
		currency = rates.Base
	}
	for i := range vacancies {
		v := &vacancies[i]
		avg, ok, err := normalizedAvg(v, rates)
		if err != nil {
			return model.SalaryMean{}, err
		}
		if !ok {
			continue
		}
		if rates == nil {
			c := model.NormalizeCurrency(v.SalaryCurrency)
			if count == 0 {
				currency = c
			} else if c != currency {
				return model.SalaryMean{}, fmt.Errorf(
					"%q and %q: %w", currency, c, model.ErrMixedCurrencies,
				)
			}
		}
		sum += avg
		count++
	}
	if count == 0 {
		return model.SalaryMean{}, fmt.Errorf(
			"none of %d vacancies announces a salary: %w",
			len(vacancies), model.ErrEmptyDataset,
		)
	}
	return model.SalaryMean{
		Value:    sum / float64(count),
		Currency: currency,
		Count:    count,
	}, nil
}

// AboveMean returns vacancies whose average salary is greater than or
// equal to the MeanSalary of the same vacancies slice. MeanSalary
// errors are returned unchanged, so an empty input never produces an
// empty result silently. Vacancies without salary never qualify and
// the original order is preserved.
func AboveMean(
	vacancies []model.Vacancy, rates *model.CurrencyRates,
) ([]model.Vacancy, error) {
	mean, err := MeanSalary(vacancies, rates)
	if err != nil {
		return nil, err
	}
	above := make([]model.Vacancy, 0, mean.Count)
	for i := range vacancies {
		// errors are impossible because MeanSalary converted them all
		avg, ok, _ := normalizedAvg(&vacancies[i], rates)
		if ok && avg >= mean.Value {
			above = append(above, vacancies[i])
		}
	}
	return above, nil
}

// MeansByCurrency computes one mean salary per (case-insensitive)
// currency, sorted by the currency code. Vacancies without salary are
// excluded and so an empty slice is returned when there is no salary.
func MeansByCurrency(vacancies []model.Vacancy) []model.SalaryMean {
	byCurrency := make(map[string]*model.SalaryMean)
	for i := range vacancies {
		s := vacancies[i].Salary()
		avg, ok := s.Avg()
		if !ok {
			continue
		}
		c := model.NormalizeCurrency(s.Currency)
		m := byCurrency[c]
		if m == nil {
			m = &model.SalaryMean{Currency: c}
			byCurrency[c] = m
		}
		m.Value += avg // sum, divided below
		m.Count++
	}
	means := make([]model.SalaryMean, 0, len(byCurrency))
	for _, m := range byCurrency {
		m.Value /= float64(m.Count)
		means = append(means, *m)
	}
	sort.Slice(means, func(i, j int) bool {
		return means[i].Currency < means[j].Currency
	})
	return means
}
