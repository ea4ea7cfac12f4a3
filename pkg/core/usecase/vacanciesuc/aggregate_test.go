// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vacanciesuc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/usecase/vacanciesuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(n int64) *int64 {
	return &n
}

// salaried returns a vacancy with the given id and salary bounds,
// published by the company 1 in the RUR currency.
func salaried(id int64, from, to *int64) model.Vacancy {
	return model.Vacancy{
		ID:             id,
		Name:           fmt.Sprintf("vacancy-%d", id),
		CompanyID:      1,
		SalaryFrom:     from,
		SalaryTo:       to,
		SalaryCurrency: "RUR",
	}
}

func ids(vacancies []model.Vacancy) []int64 {
	ids := make([]int64, 0, len(vacancies))
	for _, v := range vacancies {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestCountPerCompany(t *testing.T) {
	a := model.Company{ID: 1, Name: "A"}
	b := model.Company{ID: 2, Name: "B"}
	c := model.Company{ID: 3, Name: "C"}
	vacancies := []model.Vacancy{
		{ID: 1, CompanyID: 1}, {ID: 2, CompanyID: 1}, {ID: 3, CompanyID: 2},
		{ID: 4, CompanyID: 9}, // dangling
	}
	cc := vacanciesuc.CountPerCompany(
		[]model.Company{a, b, c}, vacancies,
	)
	assert.Equal(t, model.CompanyCounts{
		{Company: a, Count: 2},
		{Company: b, Count: 1},
		{Company: c, Count: 0},
	}, cc)
	assert.Equal(t, map[model.Company]int64{a: 2, b: 1, c: 0}, cc.Map())

	assert.Empty(t, vacanciesuc.CountPerCompany(nil, vacancies))
}

func TestMatchKeyword(t *testing.T) {
	vacancies := []model.Vacancy{
		{ID: 1, Name: "Senior Software ENGINEER"},
		{ID: 2, Name: "Accountant"},
		{ID: 3, Name: "engineering manager"},
		{ID: 4, Name: " engineer "},
	}
	want := []int64{1, 3, 4}
	assert.Equal(t, want, ids(vacanciesuc.MatchKeyword(vacancies, "engineer")))
	assert.Equal(
		t, want, ids(vacanciesuc.MatchKeyword(vacancies, "  Engineer  ")),
		"keyword must be trimmed and compared case-insensitively",
	)
	assert.Equal(
		t, []int64{1, 2, 3, 4}, ids(vacanciesuc.MatchKeyword(vacancies, "")),
		"empty keyword matches all vacancies in order",
	)
	assert.Equal(
		t, []int64{4}, ids(vacanciesuc.MatchKeyword(vacancies, " engineer ")),
		"keyword must be trimmed while names are not",
	)
	assert.Empty(t, vacanciesuc.MatchKeyword(vacancies, "pilot"))
	m := vacanciesuc.MatchKeyword(nil, "x")
	assert.NotNil(t, m, "empty data yields an empty slice")
	assert.Empty(t, m)
}

func TestMeanSalary(t *testing.T) {
	mean, err := vacanciesuc.MeanSalary([]model.Vacancy{
		salaried(1, i64(100), i64(200)),
		salaried(2, i64(300), i64(400)),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SalaryMean{
		Value: 250, Currency: "RUR", Count: 2,
	}, mean)

	mean, err = vacanciesuc.MeanSalary([]model.Vacancy{
		salaried(1, i64(100), nil),
		salaried(2, nil, i64(301)),
		salaried(3, nil, nil),
	}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 200.5, mean.Value, 1e-9)
	assert.Equal(t, 2, mean.Count, "vacancies without salary are excluded")
}

func TestMeanSalaryEmptyDataset(t *testing.T) {
	for _, tc := range []struct {
		name      string
		vacancies []model.Vacancy
	}{
		{name: "nil"},
		{name: "empty", vacancies: []model.Vacancy{}},
		{name: "no salary", vacancies: []model.Vacancy{
			salaried(1, nil, nil), salaried(2, nil, nil),
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mean, err := vacanciesuc.MeanSalary(tc.vacancies, nil)
			assert.ErrorIs(t, err, model.ErrEmptyDataset)
			assert.Zero(t, mean)

			above, err := vacanciesuc.AboveMean(tc.vacancies, nil)
			assert.ErrorIs(t, err, model.ErrEmptyDataset)
			assert.Nil(t, above, "no list may be returned silently")
		})
	}
}

func TestMeanSalaryCurrencies(t *testing.T) {
	usd := salaried(2, i64(1), i64(3))
	usd.SalaryCurrency = "usd"
	vacancies := []model.Vacancy{salaried(1, i64(100), i64(200)), usd}

	_, err := vacanciesuc.MeanSalary(vacancies, nil)
	assert.ErrorIs(t, err, model.ErrMixedCurrencies)

	rates, err := model.NewCurrencyRates("RUR", map[string]float64{
		"USD": 100,
	})
	require.NoError(t, err)
	mean, err := vacanciesuc.MeanSalary(vacancies, rates)
	require.NoError(t, err)
	assert.Equal(t, "RUR", mean.Currency)
	assert.InDelta(t, 175, mean.Value, 1e-9) // (150 + 2*100) / 2

	usd.SalaryCurrency = "KZT"
	_, err = vacanciesuc.MeanSalary(
		[]model.Vacancy{vacancies[0], usd}, rates,
	)
	var uce model.UnknownCurrencyError
	assert.True(t, errors.As(err, &uce), "expected UnknownCurrencyError")

	lower := salaried(3, i64(10), i64(10))
	lower.SalaryCurrency = "rur"
	mean, err = vacanciesuc.MeanSalary(
		[]model.Vacancy{vacancies[0], lower}, nil,
	)
	require.NoError(t, err, "currencies are compared case-insensitively")
	assert.InDelta(t, 80, mean.Value, 1e-9)
}

func TestAboveMean(t *testing.T) {
	vacancies := []model.Vacancy{
		salaried(1, i64(100), i64(100)),
		salaried(2, i64(150), i64(250)),
		salaried(3, nil, nil),
		salaried(4, i64(300), nil),
	}
	above, err := vacanciesuc.AboveMean(vacancies, nil)
	require.NoError(t, err)
	assert.Equal(
		t, []int64{2, 4}, ids(above),
		"mean is 200, equal avg is included, no-salary is excluded",
	)

	same := []model.Vacancy{
		salaried(1, i64(5), i64(6)), salaried(2, i64(5), i64(6)),
	}
	above, err = vacanciesuc.AboveMean(same, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(above), "boundary is inclusive")
}

func TestMeansByCurrency(t *testing.T) {
	usd := salaried(3, i64(10), i64(20))
	usd.SalaryCurrency = "USD"
	eur := salaried(4, nil, i64(7))
	eur.SalaryCurrency = "eur"
	means := vacanciesuc.MeansByCurrency([]model.Vacancy{
		salaried(1, i64(100), i64(200)),
		usd,
		salaried(2, i64(300), i64(400)),
		eur,
		salaried(5, nil, nil),
	})
	assert.Equal(t, []model.SalaryMean{
		{Value: 7, Currency: "EUR", Count: 1},
		{Value: 250, Currency: "RUR", Count: 2},
		{Value: 15, Currency: "USD", Count: 1},
	}, means)

	means = vacanciesuc.MeansByCurrency(nil)
	assert.NotNil(t, means)
	assert.Empty(t, means)
}

func ExampleMeanSalary() {
	mean, err := vacanciesuc.MeanSalary([]model.Vacancy{
		salaried(1, i64(100), i64(200)),
		salaried(2, i64(300), i64(400)),
	}, nil)
	fmt.Println(mean.Value, mean.Currency, err)
	// Output:
	// 250 RUR <nil>
}
