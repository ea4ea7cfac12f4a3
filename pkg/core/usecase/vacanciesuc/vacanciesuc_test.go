// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vacanciesuc_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/vacancies/internal/test/memrepo"
	"github.com/momeni/vacancies/pkg/core/cerr"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/usecase/vacanciesuc"
	"github.com/stretchr/testify/suite"
)

type UseCaseTestSuite struct {
	suite.Suite

	Ctx context.Context
	DB  *memrepo.DB
	UC  *vacanciesuc.UseCase

	a, b, c model.Company
}

func TestUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &UseCaseTestSuite{Ctx: context.Background()})
}

func (ucts *UseCaseTestSuite) SetupTest() {
	ucts.a = model.Company{ID: 1, Name: "A", URL: "https://a.example"}
	ucts.b = model.Company{ID: 2, Name: "B", URL: "https://b.example"}
	ucts.c = model.Company{ID: 3, Name: "C", URL: "https://c.example"}
	ucts.DB = memrepo.New(
		[]model.Company{ucts.a, ucts.b, ucts.c},
		[]model.Vacancy{
			ucts.vacancy(1, "Go Engineer", 1, 100, 100),
			ucts.vacancy(2, "QA engineer", 1, 150, 250),
			ucts.vacancy(3, "Accountant", 2, 300, 300),
		},
	)
	ucts.UC = ucts.newUseCase()
}

func (ucts *UseCaseTestSuite) vacancy(
	id int64, name string, companyID, from, to int64,
) model.Vacancy {
	return model.Vacancy{
		ID:             id,
		Name:           name,
		CompanyID:      companyID,
		SalaryFrom:     &from,
		SalaryTo:       &to,
		SalaryCurrency: "RUR",
	}
}

func (ucts *UseCaseTestSuite) newUseCase(
	opts ...vacanciesuc.Option,
) *vacanciesuc.UseCase {
	uc, err := vacanciesuc.New(
		ucts.DB, memrepo.Companies{}, memrepo.Vacancies{}, opts...,
	)
	ucts.Require().NoError(err, "cannot create vacancies use case")
	return uc
}

func (ucts *UseCaseTestSuite) assertStatus(err error, code int) {
	var ce *cerr.Error
	if ucts.True(errors.As(err, &ce), "expected a cerr.Error: %v", err) {
		ucts.Equal(code, ce.HTTPStatusCode)
	}
}

func (ucts *UseCaseTestSuite) TestCompanyVacancyCounts() {
	want := model.CompanyCounts{
		{Company: ucts.a, Count: 2},
		{Company: ucts.b, Count: 1},
		{Company: ucts.c, Count: 0},
	}
	cc, err := ucts.UC.CompanyVacancyCounts(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Equal(want, cc)
	ucts.Equal(3, ucts.DB.Calls("Vacancies.Count"), "one count per company")

	grouped := ucts.newUseCase(vacanciesuc.WithGroupedCounting())
	cc, err = grouped.CompanyVacancyCounts(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Equal(want, cc, "grouped counting must agree")
	ucts.Equal(3, ucts.DB.Calls("Vacancies.Count"), "no more count queries")
	ucts.Equal(1, ucts.DB.Calls("Vacancies.All"))
}

func (ucts *UseCaseTestSuite) TestSearchByKeyword() {
	found, err := ucts.UC.SearchByKeyword(ucts.Ctx, "  Engineer  ")
	ucts.Require().NoError(err)
	ucts.Equal([]int64{1, 2}, ids(found))

	all, err := ucts.UC.SearchByKeyword(ucts.Ctx, "")
	ucts.Require().NoError(err)
	ucts.Equal([]int64{1, 2, 3}, ids(all))
}

func (ucts *UseCaseTestSuite) TestAverageAndAbove() {
	mean, err := ucts.UC.AverageSalary(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Equal(&model.SalaryMean{Value: 200, Currency: "RUR", Count: 3}, mean)

	above, err := ucts.UC.AboveAverage(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Equal([]int64{2, 3}, ids(above))
}

func (ucts *UseCaseTestSuite) TestEmptyDataset() {
	ucts.DB = memrepo.New(nil, nil)
	uc := ucts.newUseCase()

	mean, err := uc.AverageSalary(ucts.Ctx)
	ucts.Nil(mean)
	ucts.ErrorIs(err, model.ErrEmptyDataset)
	ucts.assertStatus(err, http.StatusNotFound)

	above, err := uc.AboveAverage(ucts.Ctx)
	ucts.Nil(above)
	ucts.ErrorIs(err, model.ErrEmptyDataset)
	ucts.assertStatus(err, http.StatusNotFound)

	cc, err := uc.CompanyVacancyCounts(ucts.Ctx)
	ucts.NoError(err)
	ucts.Empty(cc)

	found, err := uc.SearchByKeyword(ucts.Ctx, "x")
	ucts.NoError(err)
	ucts.Empty(found)
}

func (ucts *UseCaseTestSuite) TestMixedCurrencies() {
	usd := ucts.vacancy(0, "Remote", 3, 1, 3)
	usd.SalaryCurrency = "USD"
	_, err := ucts.UC.AddVacancy(ucts.Ctx, &usd)
	ucts.Require().NoError(err)

	_, err = ucts.UC.AverageSalary(ucts.Ctx)
	ucts.ErrorIs(err, model.ErrMixedCurrencies)
	ucts.assertStatus(err, http.StatusConflict)

	means, err := ucts.UC.AverageSalaryByCurrency(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Equal([]model.SalaryMean{
		{Value: 200, Currency: "RUR", Count: 3},
		{Value: 2, Currency: "USD", Count: 1},
	}, means)

	uc := ucts.newUseCase(vacanciesuc.WithCurrencyRates(
		"rur", map[string]float64{"usd": 400},
	))
	mean, err := uc.AverageSalary(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Equal(&model.SalaryMean{Value: 350, Currency: "RUR", Count: 4}, mean)
	above, err := uc.AboveAverage(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Equal([]int64{4}, ids(above))

	_, err = vacanciesuc.New(
		ucts.DB, memrepo.Companies{}, memrepo.Vacancies{},
		vacanciesuc.WithCurrencyRates("RUR", nil),
		vacanciesuc.WithCurrencyRates("RUR", nil),
	)
	ucts.Error(err, "rates may not be configured twice")
}

func (ucts *UseCaseTestSuite) TestIdempotence() {
	for _, op := range []struct {
		name string
		run  func() (any, error)
	}{
		{"counts", func() (any, error) {
			return ucts.UC.CompanyVacancyCounts(ucts.Ctx)
		}},
		{"search", func() (any, error) {
			return ucts.UC.SearchByKeyword(ucts.Ctx, "engineer")
		}},
		{"average", func() (any, error) {
			return ucts.UC.AverageSalary(ucts.Ctx)
		}},
		{"above", func() (any, error) {
			return ucts.UC.AboveAverage(ucts.Ctx)
		}},
	} {
		ucts.Run(op.name, func() {
			first, err := op.run()
			ucts.Require().NoError(err)
			second, err := op.run()
			ucts.Require().NoError(err)
			ucts.Equal(first, second)
		})
	}
	companies, err := ucts.UC.Companies(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Len(companies, 3, "aggregates may not change the companies")
	vacancies, err := ucts.UC.Vacancies(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Len(vacancies, 3, "aggregates may not change the vacancies")
}

func (ucts *UseCaseTestSuite) TestAddCompanyAndVacancy() {
	_, err := ucts.UC.AddCompany(ucts.Ctx, &model.Company{Name: " "})
	ucts.ErrorIs(err, model.ErrEmptyCompanyName)
	ucts.assertStatus(err, http.StatusBadRequest)

	d, err := ucts.UC.AddCompany(ucts.Ctx, &model.Company{
		ID: 99, Name: "D", URL: "https://d.example",
	})
	ucts.Require().NoError(err)
	ucts.Equal(int64(4), d.ID, "ID is assigned by the repository")

	v := ucts.vacancy(0, "Data engineer", d.ID, 500, 400)
	_, err = ucts.UC.AddVacancy(ucts.Ctx, &v)
	ucts.ErrorIs(err, model.ErrInvalidSalaryRange)
	ucts.assertStatus(err, http.StatusBadRequest)

	v.SalaryFrom = nil
	created, err := ucts.UC.AddVacancy(ucts.Ctx, &v)
	ucts.Require().NoError(err)
	ucts.Equal(int64(4), created.ID)
	ucts.Equal(d.ID, created.CompanyID)

	v.CompanyID = 42
	_, err = ucts.UC.AddVacancy(ucts.Ctx, &v)
	ucts.assertStatus(err, http.StatusNotFound)

	vacancies, err := ucts.UC.Vacancies(ucts.Ctx)
	ucts.Require().NoError(err)
	ucts.Equal([]int64{1, 2, 3, 4}, ids(vacancies), "failed tx rolls back")
}

func (ucts *UseCaseTestSuite) TestRepositoryErrors() {
	failure := fmt.Errorf("connection reset")
	ucts.DB.Fail(failure)
	_, err := ucts.UC.CompanyVacancyCounts(ucts.Ctx)
	ucts.ErrorIs(err, failure)
	_, err = ucts.UC.SearchByKeyword(ucts.Ctx, "")
	ucts.ErrorIs(err, failure)
	_, err = ucts.UC.AverageSalary(ucts.Ctx)
	ucts.ErrorIs(err, failure)
	var ce *cerr.Error
	ucts.False(errors.As(err, &ce), "repository errors are not classified")
	_, err = ucts.UC.AboveAverage(ucts.Ctx)
	ucts.ErrorIs(err, failure)
}
