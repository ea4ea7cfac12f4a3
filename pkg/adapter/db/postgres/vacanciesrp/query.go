// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vacanciesrp

import (
	"context"
	"fmt"

	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/core/model"
	"gorm.io/gorm"
)

// gVacancy is the GORM model of the vacancies table rows.
// Nullable text columns are scanned as pointers.
type gVacancy struct {
	VacancyID      int64   `gorm:"primaryKey;column:vacancy_id"`
	Name           *string `gorm:"column:name"`
	CompanyID      int64   `gorm:"column:company_id"`
	SalaryFrom     *int64  `gorm:"column:salary_from"`
	SalaryTo       *int64  `gorm:"column:salary_to"`
	SalaryCurrency *string `gorm:"column:salary_currency"`
	Area           *string `gorm:"column:area"`
	Requirement    *string `gorm:"column:requirement"`
	Responsibility *string `gorm:"column:responsibility"`
	URL            *string `gorm:"column:url"`
}

func (gv *gVacancy) TableName() string {
	return "vacancies"
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fromModel(v *model.Vacancy) *gVacancy {
	return &gVacancy{
		Name:           &v.Name,
		CompanyID:      v.CompanyID,
		SalaryFrom:     v.SalaryFrom,
		SalaryTo:       v.SalaryTo,
		SalaryCurrency: &v.SalaryCurrency,
		Area:           &v.Area,
		Requirement:    &v.Requirement,
		Responsibility: &v.Responsibility,
		URL:            &v.URL,
	}
}

func (gv *gVacancy) Model() model.Vacancy {
	return model.Vacancy{
		ID:             gv.VacancyID,
		Name:           str(gv.Name),
		CompanyID:      gv.CompanyID,
		SalaryFrom:     gv.SalaryFrom,
		SalaryTo:       gv.SalaryTo,
		SalaryCurrency: str(gv.SalaryCurrency),
		Area:           str(gv.Area),
		Requirement:    str(gv.Requirement),
		Responsibility: str(gv.Responsibility),
		URL:            str(gv.URL),
	}
}

// where adds one equality condition per non-nil field of f.
func where(gdb *gorm.DB, f model.VacancyFilter) *gorm.DB {
	if f.CompanyID != nil {
		gdb = gdb.Where("company_id = ?", *f.CompanyID)
	}
	if f.SalaryCurrency != nil {
		gdb = gdb.Where("salary_currency = ?", *f.SalaryCurrency)
	}
	if f.Area != nil {
		gdb = gdb.Where("area = ?", *f.Area)
	}
	return gdb
}

// All lists all vacancies, ordered by their vacancy_id.
func All[Q postgres.Queryer](ctx context.Context, q Q) (
	[]model.Vacancy, error,
) {
	return Filter(ctx, q, model.VacancyFilter{})
}

// Filter lists the vacancies which match f, ordered by vacancy_id.
func Filter[Q postgres.Queryer](
	ctx context.Context, q Q, f model.VacancyFilter,
) ([]model.Vacancy, error) {
	var gvs []gVacancy
	gdb := where(q.GORM(ctx), f).Order("vacancy_id").Find(&gvs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	vacancies := make([]model.Vacancy, 0, len(gvs))
	for i := range gvs {
		vacancies = append(vacancies, gvs[i].Model())
	}
	return vacancies, nil
}

// Count counts the vacancies which match f.
func Count[Q postgres.Queryer](
	ctx context.Context, q Q, f model.VacancyFilter,
) (int64, error) {
	var n int64
	gdb := where(q.GORM(ctx).Model(&gVacancy{}), f).Count(&n)
	if err := gdb.Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return n, nil
}

// Create inserts v, ignoring its ID, and returns the inserted vacancy
// with its database assigned ID. Violation of the company foreign key
// is reported as a cerr.NotFound error.
func Create[Q postgres.Queryer](
	ctx context.Context, q Q, v *model.Vacancy,
) (*model.Vacancy, error) {
	gv := fromModel(v)
	if err := q.GORM(ctx).Create(gv).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", postgres.Classify(err))
	}
	created := gv.Model()
	return &created, nil
}
