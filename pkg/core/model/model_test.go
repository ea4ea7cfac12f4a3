// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(n int64) *int64 {
	return &n
}

func TestSalaryAvg(t *testing.T) {
	for _, tc := range []struct {
		name     string
		from, to *int64
		avg      float64
		ok       bool
	}{
		{name: "both bounds", from: i64(100), to: i64(200), avg: 150, ok: true},
		{name: "odd sum", from: i64(100), to: i64(101), avg: 100.5, ok: true},
		{name: "only from", from: i64(100), avg: 100, ok: true},
		{name: "only to", to: i64(300), avg: 300, ok: true},
		{name: "zero bounds", from: i64(0), to: i64(0), avg: 0, ok: true},
		{name: "no bounds"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := model.Salary{From: tc.from, To: tc.to, Currency: "RUR"}
			avg, ok := s.Avg()
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.avg, avg, 1e-9)
		})
	}
}

func TestVacancyValidate(t *testing.T) {
	v := &model.Vacancy{CompanyID: 1, SalaryFrom: i64(10), SalaryTo: i64(20)}
	assert.NoError(t, v.Validate())

	v.SalaryFrom = i64(30)
	assert.ErrorIs(t, v.Validate(), model.ErrInvalidSalaryRange)

	v.SalaryTo = nil
	assert.NoError(t, v.Validate(), "a single bound cannot be inverted")

	v.CompanyID = 0
	assert.Error(t, v.Validate(), "company_id must be positive")
}

func TestVacancyFilterMatch(t *testing.T) {
	rur, area := "RUR", "Moscow"
	v := &model.Vacancy{CompanyID: 2, SalaryCurrency: "RUR", Area: "Moscow"}
	assert.True(t, model.VacancyFilter{}.Match(v), "zero filter")
	assert.True(t, model.VacancyFilter{
		CompanyID: i64(2), SalaryCurrency: &rur, Area: &area,
	}.Match(v))
	assert.False(t, model.VacancyFilter{CompanyID: i64(3)}.Match(v))
	usd := "USD"
	assert.False(t, model.VacancyFilter{
		CompanyID: i64(2), SalaryCurrency: &usd,
	}.Match(v), "all criteria must match")
}

func TestCurrencyRates(t *testing.T) {
	r := require.New(t)
	cr, err := model.NewCurrencyRates("rur", map[string]float64{
		"usd": 90,
		"EUR": 100,
	})
	r.NoError(err)
	r.Equal("RUR", cr.Base)

	amount, err := cr.Convert(10, "Usd")
	r.NoError(err)
	r.InDelta(900, amount, 1e-9)

	amount, err = cr.Convert(10, " rur")
	r.NoError(err, "base currency needs no rate")
	r.InDelta(10, amount, 1e-9)

	_, err = cr.Convert(10, "KZT")
	var uce model.UnknownCurrencyError
	r.True(errors.As(err, &uce), "expected UnknownCurrencyError")
	r.Equal(model.UnknownCurrencyError("KZT"), uce)

	_, err = model.NewCurrencyRates("", nil)
	r.Error(err, "base currency is mandatory")
	_, err = model.NewCurrencyRates("RUR", map[string]float64{"USD": 0})
	r.Error(err, "rates must be positive")
}

func TestDataType(t *testing.T) {
	for _, d := range []model.DataType{
		model.DataTypeSerial, model.DataTypeInteger,
		model.DataTypeVarchar, model.DataTypeText,
	} {
		p, err := model.ParseDataType(d.String())
		assert.NoError(t, err)
		assert.Equal(t, d, p)
	}
	d, err := model.ParseDataType("BLOB")
	assert.ErrorIs(t, err, model.ErrUnknownDataType)
	assert.Equal(t, model.DataTypeInvalid, d)
	assert.Equal(t, model.DataTypeError(0), model.DataTypeInvalid.Validate())
	assert.Panics(t, func() { _ = model.DataType(9).String() })
}

func TestTablesValidate(t *testing.T) {
	for _, tbl := range model.Tables() {
		assert.NoError(t, tbl.Validate(), "table %q", tbl.Name)
	}
	assert.Error(t, model.Table{Name: "empty"}.Validate())
	assert.Error(t, model.Table{
		Name: "broken",
		Columns: []model.Column{{
			Name: "ref", Type: model.DataTypeInteger,
			Constraints: []model.Constraint{{Kind: model.ConstraintFK}},
		}},
	}.Validate())
}

func ExampleCompanyCounts_Map() {
	c1 := model.Company{ID: 1, Name: "Acme"}
	c2 := model.Company{ID: 2, Name: "Globex"}
	m := model.CompanyCounts{
		{Company: c1, Count: 3},
		{Company: c2, Count: 0},
	}.Map()
	fmt.Println(len(m), m[c1], m[c2])
	// Output:
	// 2 3 0
}

func TestCompanyValidate(t *testing.T) {
	assert.NoError(t, (&model.Company{Name: "Acme"}).Validate())
	assert.ErrorIs(
		t, (&model.Company{Name: " \t"}).Validate(),
		model.ErrEmptyCompanyName,
	)
}
