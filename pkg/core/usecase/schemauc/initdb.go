// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemauc provides the database initialization use cases.
// The InitDBUseCase drops and recreates the companies and vacancies
// tables (as described by model.Tables), prepares the database roles,
// and optionally fills the tables with development suitable data.
package schemauc

import (
	"context"
	"fmt"

	"github.com/momeni/vacancies/pkg/core/log"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
)

// SchemaName is the database schema which holds all tables.
const SchemaName = "public"

// InitDBUseCase represents the database initialization use case. It may
// be used to initialize database with development or production
// suitable data as asked by the InitDev and InitProd methods.
type InitDBUseCase struct {
	settings   Settings // target database settings
	schemaRepo repo.Schema
	companies  repo.Companies
	vacancies  repo.Vacancies
}

// NewInitDB creates an InitDBUseCase instance, using the `ss` settings
// in order to connect to the target database and to create its schema
// repository. The companies and vacancies repositories are used for
// inserting the initial rows.
func NewInitDB(
	ss Settings, c repo.Companies, v repo.Vacancies,
) *InitDBUseCase {
	return &InitDBUseCase{
		settings:   ss,
		schemaRepo: ss.NewSchemaRepo(),
		companies:  c,
		vacancies:  v,
	}
}

// InitProd prepares the database with the admin role and then creates
// empty tables with the normal role. See InitDev for details.
func (iduc *InitDBUseCase) InitProd(ctx context.Context) error {
	return iduc.initDB(ctx, nil, nil)
}

// InitDev uses the admin role in order to drop the tables (if they
// exist), create the normal role (if it does not exist), grant it
// privileges on the SchemaName schema, and renew passwords of both
// admin and normal roles, all in one transaction. Passwords renewal
// is coordinated with the passwords files, so it may be repeated after
// an abrupt failure.
// Thereafter, it connects using the normal role and creates all tables
// and fills them with DevCompanies and DevVacancies in a second
// transaction.
func (iduc *InitDBUseCase) InitDev(ctx context.Context) error {
	return iduc.initDB(ctx, DevCompanies(), DevVacancies())
}

func (iduc *InitDBUseCase) initDB(
	ctx context.Context,
	companies []model.Company,
	vacancies []Seed,
) error {
	if err := iduc.dropAndPrepareRoles(ctx); err != nil {
		return fmt.Errorf("dropping tables/preparing roles: %w", err)
	}
	p, err := iduc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			err := iduc.schemaRepo.Tx(tx).CreateTables(
				ctx, model.Tables()...,
			)
			if err != nil {
				return fmt.Errorf("creating tables: %w", err)
			}
			return iduc.fill(ctx, tx, companies, vacancies)
		})
	})
	if err != nil {
		return fmt.Errorf("normal connection: %w", err)
	}
	log.Info(
		ctx, "database is initialized",
		log.Int("companies", int64(len(companies))),
		log.Int("vacancies", int64(len(vacancies))),
	)
	return nil
}

func (iduc *InitDBUseCase) fill(
	ctx context.Context,
	tx repo.Tx,
	companies []model.Company,
	vacancies []Seed,
) error {
	cq := iduc.companies.Tx(tx)
	ids := make([]int64, 0, len(companies))
	for i := range companies {
		c, err := cq.Create(ctx, &companies[i])
		if err != nil {
			return fmt.Errorf("creating company %q: %w", companies[i].Name, err)
		}
		ids = append(ids, c.ID)
	}
	vq := iduc.vacancies.Tx(tx)
	for _, s := range vacancies {
		if s.Company < 0 || s.Company >= len(ids) {
			return fmt.Errorf(
				"vacancy %q: company index %d is out of range",
				s.Vacancy.Name, s.Company,
			)
		}
		v := s.Vacancy
		v.CompanyID = ids[s.Company]
		if err := v.Validate(); err != nil {
			return fmt.Errorf("vacancy %q: %w", v.Name, err)
		}
		if _, err := vq.Create(ctx, &v); err != nil {
			return fmt.Errorf("creating vacancy %q: %w", v.Name, err)
		}
	}
	return nil
}

func (iduc *InitDBUseCase) dropAndPrepareRoles(
	ctx context.Context,
) error {
	p, err := iduc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := iduc.schemaRepo.Tx(tx)
			if err := q.DropTablesIfExist(
				ctx, model.Tables()...,
			); err != nil {
				return fmt.Errorf("dropping tables: %w", err)
			}
			if err := q.CreateRoleIfNotExists(
				ctx, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			if err := q.GrantPrivileges(
				ctx, SchemaName, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("granting normal role privs: %w", err)
			}
			finalizer, err = iduc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("RenewPasswords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	return nil
}
