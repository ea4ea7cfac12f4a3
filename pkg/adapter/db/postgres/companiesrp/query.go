// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package companiesrp

import (
	"context"
	"fmt"

	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/core/model"
)

// gCompany is the GORM model of the companies table rows.
type gCompany struct {
	CompanyID int64   `gorm:"primaryKey;column:company_id"`
	Name      *string `gorm:"column:name"`
	URL       *string `gorm:"column:url"`
}

func (gc *gCompany) TableName() string {
	return "companies"
}

func (gc *gCompany) Model() model.Company {
	c := model.Company{ID: gc.CompanyID}
	if gc.Name != nil {
		c.Name = *gc.Name
	}
	if gc.URL != nil {
		c.URL = *gc.URL
	}
	return c
}

// All lists all companies, ordered by their company_id.
func All[Q postgres.Queryer](ctx context.Context, q Q) (
	[]model.Company, error,
) {
	var gcs []gCompany
	if err := q.GORM(ctx).Order("company_id").Find(&gcs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	companies := make([]model.Company, 0, len(gcs))
	for i := range gcs {
		companies = append(companies, gcs[i].Model())
	}
	return companies, nil
}

// Create inserts c, ignoring its ID, and returns the inserted company
// with its database assigned ID.
func Create[Q postgres.Queryer](
	ctx context.Context, q Q, c *model.Company,
) (*model.Company, error) {
	gc := &gCompany{Name: &c.Name, URL: &c.URL}
	if err := q.GORM(ctx).Create(gc).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", postgres.Classify(err))
	}
	created := gc.Model()
	return &created, nil
}
