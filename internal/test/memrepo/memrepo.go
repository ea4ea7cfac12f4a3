// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo implements the repo interfaces in memory, so the use
// cases can be tested without a database. A DB is a repo.Pool whose
// transactions work on a private copy of the rows and replace the
// committed rows when their handler succeeds. Raw SQL execution is not
// supported.
//
// The Companies and Vacancies repositories enforce the same rules as
// the PostgreSQL adapters, including the company foreign key and the
// salary range check, and order their results by ID.
package memrepo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/momeni/vacancies/pkg/core/cerr"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
)

// ErrRawSQL is returned by Exec and Query methods.
var ErrRawSQL = errors.New("raw SQL is not supported in memory")

type state struct {
	companies []model.Company
	vacancies []model.Vacancy

	lastCompanyID, lastVacancyID int64
}

func (s *state) clone() *state {
	return &state{
		companies:     slices.Clone(s.companies),
		vacancies:     slices.Clone(s.vacancies),
		lastCompanyID: s.lastCompanyID,
		lastVacancyID: s.lastVacancyID,
	}
}

// DB keeps companies and vacancies rows and counts the queries which
// are run against them.
type DB struct {
	mu      sync.Mutex
	st      *state
	calls   map[string]int
	failure error
}

// New creates a DB which is filled by the given rows. Rows with a zero
// ID are numbered like a SERIAL column would do.
func New(companies []model.Company, vacancies []model.Vacancy) *DB {
	db := &DB{st: &state{}, calls: make(map[string]int)}
	for _, c := range companies {
		db.st.insertCompany(c)
	}
	for _, v := range vacancies {
		db.st.insertVacancy(v)
	}
	return db
}

func (s *state) insertCompany(c model.Company) model.Company {
	if c.ID == 0 {
		c.ID = s.lastCompanyID + 1
	}
	s.lastCompanyID = max(s.lastCompanyID, c.ID)
	s.companies = append(s.companies, c)
	slices.SortStableFunc(s.companies, func(a, b model.Company) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return c
}

func (s *state) insertVacancy(v model.Vacancy) model.Vacancy {
	if v.ID == 0 {
		v.ID = s.lastVacancyID + 1
	}
	s.lastVacancyID = max(s.lastVacancyID, v.ID)
	s.vacancies = append(s.vacancies, v)
	slices.SortStableFunc(s.vacancies, func(a, b model.Vacancy) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return v
}

// Fail makes all future queries to fail with err. A nil err restores
// the normal behavior.
func (db *DB) Fail(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.failure = err
}

// Calls returns the number of times that the method query (e.g.,
// "Vacancies.Count") was run.
func (db *DB) Calls(method string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.calls[method]
}

// record counts a method call and reports the injected failure.
func (db *DB) record(method string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.calls[method]++
	return db.failure
}

// Conn passes a connection to handler. Connections are not limited.
func (db *DB) Conn(ctx context.Context, handler repo.ConnHandler) error {
	return handler(ctx, &Conn{db: db})
}

// store runs f with the rows which are visible to a Conn or Tx.
type store interface {
	with(method string, f func(s *state) error) error
}

// Conn is a connection to a DB, running each query atomically.
type Conn struct {
	db *DB
}

func (c *Conn) with(method string, f func(s *state) error) error {
	if err := c.db.record(method); err != nil {
		return err
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	return f(c.db.st)
}

// Tx runs handler with a transaction. The rows which are changed by
// handler replace the DB rows only if handler returns nil.
func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	c.db.mu.Lock()
	tx := &Tx{db: c.db, st: c.db.st.clone()}
	c.db.mu.Unlock()
	if err := handler(ctx, tx); err != nil {
		return fmt.Errorf("handler: %w", err)
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.st = tx.st
	return nil
}

// Exec returns ErrRawSQL.
func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

// Query returns ErrRawSQL.
func (c *Conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

// IsConn marks Conn as a repo.Conn.
func (c *Conn) IsConn() {
}

// Tx is an ongoing transaction. It is unsafe for concurrent use.
type Tx struct {
	db *DB
	st *state
}

func (tx *Tx) with(method string, f func(s *state) error) error {
	if err := tx.db.record(method); err != nil {
		return err
	}
	return f(tx.st)
}

// Exec returns ErrRawSQL.
func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

// Query returns ErrRawSQL.
func (tx *Tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

// IsTx marks Tx as a repo.Tx.
func (tx *Tx) IsTx() {
}

// Companies is the in-memory companies repository.
type Companies struct{}

type companiesQueryer struct {
	store
}

// Conn returns a queryer which runs on c, that must be a *Conn.
func (Companies) Conn(c repo.Conn) repo.CompaniesConnQueryer {
	return companiesQueryer{store: c.(*Conn)}
}

// Tx returns a queryer which runs in tx, that must be a *Tx.
func (Companies) Tx(tx repo.Tx) repo.CompaniesTxQueryer {
	return companiesQueryer{store: tx.(*Tx)}
}

func (q companiesQueryer) All(ctx context.Context) (
	companies []model.Company, err error,
) {
	err = q.with("Companies.All", func(s *state) error {
		companies = slices.Clone(s.companies)
		return nil
	})
	if companies == nil && err == nil {
		companies = []model.Company{}
	}
	return
}

func (q companiesQueryer) Create(
	ctx context.Context, c *model.Company,
) (created *model.Company, err error) {
	err = q.with("Companies.Create", func(s *state) error {
		cc := *c
		cc.ID = 0
		cc = s.insertCompany(cc)
		created = &cc
		return nil
	})
	return
}

// Vacancies is the in-memory vacancies repository.
type Vacancies struct{}

type vacanciesQueryer struct {
	store
}

// Conn returns a queryer which runs on c, that must be a *Conn.
func (Vacancies) Conn(c repo.Conn) repo.VacanciesConnQueryer {
	return vacanciesQueryer{store: c.(*Conn)}
}

// Tx returns a queryer which runs in tx, that must be a *Tx.
func (Vacancies) Tx(tx repo.Tx) repo.VacanciesTxQueryer {
	return vacanciesQueryer{store: tx.(*Tx)}
}

func (q vacanciesQueryer) All(ctx context.Context) (
	[]model.Vacancy, error,
) {
	return q.filter("Vacancies.All", model.VacancyFilter{})
}

func (q vacanciesQueryer) Filter(
	ctx context.Context, f model.VacancyFilter,
) ([]model.Vacancy, error) {
	return q.filter("Vacancies.Filter", f)
}

func (q vacanciesQueryer) filter(
	method string, f model.VacancyFilter,
) (vacancies []model.Vacancy, err error) {
	vacancies = []model.Vacancy{}
	err = q.with(method, func(s *state) error {
		for i := range s.vacancies {
			if f.Match(&s.vacancies[i]) {
				vacancies = append(vacancies, s.vacancies[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (q vacanciesQueryer) Count(
	ctx context.Context, f model.VacancyFilter,
) (n int64, err error) {
	err = q.with("Vacancies.Count", func(s *state) error {
		for i := range s.vacancies {
			if f.Match(&s.vacancies[i]) {
				n++
			}
		}
		return nil
	})
	return
}

func (q vacanciesQueryer) Create(
	ctx context.Context, v *model.Vacancy,
) (created *model.Vacancy, err error) {
	err = q.with("Vacancies.Create", func(s *state) error {
		if v.SalaryFrom != nil && v.SalaryTo != nil &&
			*v.SalaryFrom > *v.SalaryTo {
			return cerr.BadRequest(model.ErrInvalidSalaryRange)
		}
		found := slices.ContainsFunc(s.companies, func(c model.Company) bool {
			return c.ID == v.CompanyID
		})
		if !found {
			return cerr.NotFound(
				fmt.Errorf("company %d does not exist", v.CompanyID),
			)
		}
		vv := *v
		vv.ID = 0
		vv = s.insertVacancy(vv)
		created = &vv
		return nil
	})
	return
}

var (
	_ repo.Pool      = (*DB)(nil)
	_ repo.Conn      = (*Conn)(nil)
	_ repo.Tx        = (*Tx)(nil)
	_ repo.Companies = Companies{}
	_ repo.Vacancies = Vacancies{}
)
