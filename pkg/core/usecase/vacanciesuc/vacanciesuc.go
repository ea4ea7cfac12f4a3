// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vacanciesuc contains the vacancies UseCase which supports
// the job-listings related use cases. Four aggregate queries are
// supported:
//  1. Counting vacancies of each company,
//  2. Searching vacancies by a keyword,
//  3. Computing the average salary,
//  4. Listing vacancies which pay at least the average salary.
//
// Aggregates are computed by pure functions (see CountPerCompany,
// MatchKeyword, MeanSalary, and AboveMean) over the vacancies which
// are fetched from the repositories, so they can be tested without
// a database. Listing and creation of companies and vacancies are
// supported too.
package vacanciesuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/vacancies/pkg/core/cerr"
	"github.com/momeni/vacancies/pkg/core/log"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
)

// UseCase represents the vacancies use case. It holds a database
// connection pool, the companies and vacancies repositories, and the
// optional settings. It is not modified after New returns, so it may
// be used concurrently.
type UseCase struct {
	pool      repo.Pool
	companies repo.Companies
	vacancies repo.Vacancies

	groupedCounting bool
	rates           *model.CurrencyRates
}

// New instantiates a vacancies use case.
// Required parameters are passed individually while optional ones are
// passed as functional options.
func New(
	p repo.Pool, c repo.Companies, v repo.Vacancies, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, companies: c, vacancies: v}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return uc, nil
}

// CompanyVacancyCounts returns the number of vacancies of each company,
// ordered like the companies listing. Companies without vacancies are
// reported with a zero count.
func (uc *UseCase) CompanyVacancyCounts(
	ctx context.Context,
) (cc model.CompanyCounts, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		companies, err := uc.companies.Conn(c).All(ctx)
		if err != nil {
			return fmt.Errorf("listing companies: %w", err)
		}
		vq := uc.vacancies.Conn(c)
		if uc.groupedCounting {
			vacancies, err := vq.All(ctx)
			if err != nil {
				return fmt.Errorf("listing vacancies: %w", err)
			}
			cc = CountPerCompany(companies, vacancies)
			return nil
		}
		cc = make(model.CompanyCounts, 0, len(companies))
		for _, company := range companies {
			id := company.ID
			n, err := vq.Count(ctx, model.VacancyFilter{CompanyID: &id})
			if err != nil {
				return fmt.Errorf("counting company %d vacancies: %w", id, err)
			}
			cc = append(cc, model.CompanyVacancies{
				Company: company,
				Count:   n,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cc, nil
}

// SearchByKeyword returns vacancies whose name contains the keyword,
// case-insensitively. See MatchKeyword.
func (uc *UseCase) SearchByKeyword(
	ctx context.Context, keyword string,
) ([]model.Vacancy, error) {
	vacancies, err := uc.Vacancies(ctx)
	if err != nil {
		return nil, err
	}
	return MatchKeyword(vacancies, keyword), nil
}

// AverageSalary returns the mean of vacancies average salaries.
// If there is no salary to be averaged, a cerr.NotFound error is
// returned which wraps model.ErrEmptyDataset. Incomparable currencies
// cause a cerr.Conflict error. See MeanSalary.
func (uc *UseCase) AverageSalary(
	ctx context.Context,
) (*model.SalaryMean, error) {
	vacancies, err := uc.Vacancies(ctx)
	if err != nil {
		return nil, err
	}
	mean, err := MeanSalary(vacancies, uc.rates)
	if err != nil {
		return nil, classify(fmt.Errorf("averaging salaries: %w", err))
	}
	log.Debug(
		ctx, "averaged salaries",
		log.Float("average", mean.Value),
		log.Int("count", int64(mean.Count)),
	)
	return &mean, nil
}

// AverageSalaryByCurrency returns one mean salary per currency.
// It works with no currency rates and reports an empty slice if no
// vacancy announces a salary.
func (uc *UseCase) AverageSalaryByCurrency(
	ctx context.Context,
) ([]model.SalaryMean, error) {
	vacancies, err := uc.Vacancies(ctx)
	if err != nil {
		return nil, err
	}
	return MeansByCurrency(vacancies), nil
}

// AboveAverage returns vacancies which pay at least the average salary.
// Vacancies are read once in a transaction, so the average and the
// filtered vacancies are computed from the same rows. Errors are
// classified like AverageSalary.
func (uc *UseCase) AboveAverage(
	ctx context.Context,
) (above []model.Vacancy, err error) {
	var vacancies []model.Vacancy
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			vacancies, err = uc.vacancies.Tx(tx).All(ctx)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing vacancies: %w", err)
	}
	above, err = AboveMean(vacancies, uc.rates)
	if err != nil {
		return nil, classify(fmt.Errorf("filtering salaries: %w", err))
	}
	return above, nil
}

// Companies lists all companies, ordered by their ID.
func (uc *UseCase) Companies(
	ctx context.Context,
) (companies []model.Company, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		companies, err = uc.companies.Conn(c).All(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	return companies, nil
}

// Vacancies lists all vacancies, ordered by their ID.
func (uc *UseCase) Vacancies(
	ctx context.Context,
) (vacancies []model.Vacancy, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		vacancies, err = uc.vacancies.Conn(c).All(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing vacancies: %w", err)
	}
	return vacancies, nil
}

// AddCompany stores the given company and returns it with its ID.
func (uc *UseCase) AddCompany(
	ctx context.Context, company *model.Company,
) (created *model.Company, err error) {
	if err = company.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		created, err = uc.companies.Conn(c).Create(ctx, company)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}
	log.Info(ctx, "company is created", log.Int("company_id", created.ID))
	return created, nil
}

// AddVacancy validates and stores the given vacancy in a transaction,
// returning it with its ID. Invalid salary bounds cause a
// cerr.BadRequest error, while a missing company is reported by the
// repository (as a cerr.NotFound error).
func (uc *UseCase) AddVacancy(
	ctx context.Context, vacancy *model.Vacancy,
) (created *model.Vacancy, err error) {
	if err = vacancy.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			created, err = uc.vacancies.Tx(tx).Create(ctx, vacancy)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("creating vacancy: %w", err)
	}
	log.Info(
		ctx, "vacancy is created",
		log.Int("vacancy_id", created.ID),
		log.Int("company_id", created.CompanyID),
	)
	return created, nil
}

// classify wraps the aggregation errors with a cerr.Error, so they may
// be reported properly by the REST adapters.
func classify(err error) error {
	var uce model.UnknownCurrencyError
	switch {
	case errors.Is(err, model.ErrEmptyDataset):
		return cerr.NotFound(err)
	case errors.Is(err, model.ErrMixedCurrencies), errors.As(err, &uce):
		return cerr.Conflict(err)
	default:
		return err
	}
}
