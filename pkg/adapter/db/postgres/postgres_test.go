// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/momeni/vacancies/internal/test/dbcontainer"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres/companiesrp"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres/vacanciesrp"
	"github.com/momeni/vacancies/pkg/core/cerr"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationReposTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool

	companies *companiesrp.Repo
	vacancies *vacanciesrp.Repo
}

func TestIntegrationReposTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationReposTestSuite{
		Ctx:       ctx,
		Pg:        pg,
		Pool:      pool,
		companies: companiesrp.New(),
		vacancies: vacanciesrp.New(),
	})
}

func (irts *IntegrationReposTestSuite) tx(h repo.TxHandler) error {
	return irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, h)
		},
	)
}

func (irts *IntegrationReposTestSuite) SetupTest() {
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		tt := tx.(*postgres.Tx)
		err := schemarp.DropTablesIfExist(ctx, tt, model.Tables()...)
		if err != nil {
			return err
		}
		return schemarp.CreateTables(ctx, tt, model.Tables()...)
	})
	irts.Require().NoError(err, "failed to recreate tables")
}

func (irts *IntegrationReposTestSuite) createCompany(name string) int64 {
	var id int64
	err := irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			created, err := irts.companies.Conn(c).Create(
				ctx, &model.Company{ID: 77, Name: name, URL: "u"},
			)
			if err != nil {
				return err
			}
			id = created.ID
			return nil
		},
	)
	irts.Require().NoError(err, "creating company %q", name)
	return id
}

func (irts *IntegrationReposTestSuite) TestCompanies() {
	a := irts.createCompany("A")
	b := irts.createCompany("B")
	irts.Equal(a+1, b, "company_id is a SERIAL column")
	irts.NotEqual(int64(77), a, "given ID is ignored")

	err := irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			companies, err := irts.companies.Conn(c).All(ctx)
			irts.Require().NoError(err)
			irts.Equal([]model.Company{
				{ID: a, Name: "A", URL: "u"},
				{ID: b, Name: "B", URL: "u"},
			}, companies)
			return nil
		},
	)
	irts.NoError(err)
}

func (irts *IntegrationReposTestSuite) TestVacancies() {
	a := irts.createCompany("A")
	b := irts.createCompany("B")
	from, to := int64(100), int64(200)
	rur, area := "RUR", "Moscow"
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		q := irts.vacancies.Tx(tx)
		for _, v := range []model.Vacancy{
			{Name: "Go", CompanyID: a, SalaryFrom: &from, SalaryTo: &to,
				SalaryCurrency: "RUR", Area: "Moscow"},
			{Name: "QA", CompanyID: a, SalaryFrom: &from,
				SalaryCurrency: "USD", Area: "Moscow"},
			{Name: "Ops", CompanyID: b, Area: "Kazan"},
		} {
			if _, err := q.Create(ctx, &v); err != nil {
				return err
			}
		}
		return nil
	})
	irts.Require().NoError(err, "creating vacancies")

	err = irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			q := irts.vacancies.Conn(c)
			all, err := q.All(ctx)
			irts.Require().NoError(err)
			irts.Require().Len(all, 3)
			irts.Equal("Go", all[0].Name)
			irts.Equal(&from, all[0].SalaryFrom)
			irts.Equal(&to, all[0].SalaryTo)
			irts.Nil(all[1].SalaryTo, "missing bound is kept as NULL")
			irts.Nil(all[2].SalaryFrom)

			n, err := q.Count(ctx, model.VacancyFilter{CompanyID: &a})
			irts.NoError(err)
			irts.Equal(int64(2), n)
			n, err = q.Count(ctx, model.VacancyFilter{})
			irts.NoError(err)
			irts.Equal(int64(3), n)

			f := model.VacancyFilter{SalaryCurrency: &rur, Area: &area}
			matched, err := q.Filter(ctx, f)
			irts.NoError(err)
			irts.Len(matched, 1)
			for i := range all {
				irts.Equal(f.Match(&all[i]), all[i].Name == "Go")
			}

			none := int64(999)
			matched, err = q.Filter(
				ctx, model.VacancyFilter{CompanyID: &none},
			)
			irts.NoError(err)
			irts.NotNil(matched)
			irts.Empty(matched)
			return nil
		},
	)
	irts.NoError(err)
}

func (irts *IntegrationReposTestSuite) TestConstraintViolations() {
	a := irts.createCompany("A")
	from, to := int64(300), int64(200)
	for _, tc := range []struct {
		name string
		v    model.Vacancy
		code int
	}{
		{
			name: "missing company",
			v:    model.Vacancy{Name: "x", CompanyID: a + 100},
			code: http.StatusNotFound,
		},
		{
			name: "inverted salary",
			v: model.Vacancy{
				Name: "y", CompanyID: a, SalaryFrom: &from, SalaryTo: &to,
			},
			code: http.StatusBadRequest,
		},
	} {
		irts.Run(tc.name, func() {
			err := irts.Pool.Conn(
				irts.Ctx, func(ctx context.Context, c repo.Conn) error {
					_, err := irts.vacancies.Conn(c).Create(ctx, &tc.v)
					return err
				},
			)
			var ce *cerr.Error
			irts.Require().True(errors.As(err, &ce), "got %v", err)
			irts.Equal(tc.code, ce.HTTPStatusCode)
		})
	}
}

func (irts *IntegrationReposTestSuite) TestRollback() {
	failure := errors.New("abort")
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		_, err := irts.companies.Tx(tx).Create(
			ctx, &model.Company{Name: "ghost"},
		)
		irts.Require().NoError(err)
		return failure
	})
	irts.ErrorIs(err, failure)
	err = irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			companies, err := irts.companies.Conn(c).All(ctx)
			irts.NoError(err)
			irts.Empty(companies, "rolled back insertion is not visible")
			return nil
		},
	)
	irts.NoError(err)
}

func (irts *IntegrationReposTestSuite) TestRoles() {
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		tt := tx.(*postgres.Tx)
		for i := 0; i < 2; i++ {
			err := schemarp.CreateRoleIfNotExists(
				ctx, tt, "_test", repo.NormalRole,
			)
			irts.Require().NoError(err, "creation must be idempotent")
		}
		return schemarp.GrantPrivileges(
			ctx, tt, "_test", "public", repo.NormalRole,
		)
	})
	irts.NoError(err)
	rows := 0
	err = irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			rs, err := c.Query(
				ctx, "SELECT rolname FROM pg_roles WHERE rolname=$1",
				"vcweb_test",
			)
			if err != nil {
				return err
			}
			defer rs.Close()
			for rs.Next() {
				rows++
			}
			return rs.Err()
		},
	)
	irts.NoError(err)
	irts.Equal(1, rows)
}
