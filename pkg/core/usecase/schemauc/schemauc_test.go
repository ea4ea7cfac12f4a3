// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemauc_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/momeni/vacancies/internal/test/dbcontainer"
	"github.com/momeni/vacancies/internal/test/schema"
	"github.com/momeni/vacancies/pkg/adapter/config/cfg1"
	"github.com/momeni/vacancies/pkg/adapter/config/vers"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/adapter/hash/scram"
	"github.com/momeni/vacancies/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type InitDBTestSuite struct {
	Ctx  context.Context
	Pool *postgres.Pool
	Port int

	dbDir  string
	hasher *scram.Mechanism
}

func TestInitDBTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	u, err := url.Parse(pg.ConnectionString())
	if ok := assert.NoError(t, err, "parsing DB container URL"); !ok {
		return
	}
	p, err := strconv.Atoi(u.Port())
	if ok := assert.NoError(t, err, "parsing DB container port"); !ok {
		return
	}
	dbDir, err := os.MkdirTemp("", "schemauc-db")
	if ok := assert.NoError(t, err, "creating temp db dir"); !ok {
		return
	}
	defer func() {
		err := os.RemoveAll(dbDir)
		assert.NoError(t, err, "removing temp db dir")
	}()
	idts := &InitDBTestSuite{
		Ctx:    ctx,
		Pool:   pool,
		Port:   p,
		dbDir:  dbDir,
		hasher: scram.SHA256(),
	}
	t.Run("dev then prod", idts.TestDevThenProd)
	t.Run("prod then dev", idts.TestProdThenDev)
}

func (idts *InitDBTestSuite) TestDevThenProd(t *testing.T) {
	r := require.New(t)
	c := idts.createEmptyDB(t, "dev_prod")
	uc := c.NewInitDBUseCase()
	r.NoError(uc.InitDev(idts.Ctx), "initializing with dev data")
	idts.verify(t, c, true)
	r.NoError(uc.InitProd(idts.Ctx), "reinitializing with prod data")
	idts.verify(t, c, false)
}

func (idts *InitDBTestSuite) TestProdThenDev(t *testing.T) {
	r := require.New(t)
	c := idts.createEmptyDB(t, "prod_dev")
	uc := c.NewInitDBUseCase()
	r.NoError(uc.InitProd(idts.Ctx), "initializing with prod data")
	idts.verify(t, c, false)
	r.NoError(uc.InitDev(idts.Ctx), "reinitializing with dev data")
	idts.verify(t, c, true)

	_, err := os.Stat(filepath.Join(c.Database.PassDir, cfg1.NewPassFile))
	r.ErrorIs(err, os.ErrNotExist, "renewal must be finalized")
}

func (idts *InitDBTestSuite) verify(t *testing.T, c *cfg1.Config, dev bool) {
	r := require.New(t)
	p, err := c.ConnectionPool(idts.Ctx, repo.NormalRole)
	r.NoError(err, "connecting with the renewed normal role password")
	defer p.Close()
	err = p.Conn(idts.Ctx, func(ctx context.Context, cn repo.Conn) error {
		v, err := schema.NewVerifier(cn, c.SchemaVersion())
		if err != nil {
			return fmt.Errorf("NewVerifier(%v): %w", c.SchemaVersion(), err)
		}
		v.VerifySchema(ctx, t)
		if dev {
			v.VerifyDevData(ctx, t)
		} else {
			v.VerifyProdData(ctx, t)
		}
		return nil
	})
	r.NoError(err, "verifying database schema")
}

// createEmptyDB creates a database and a superuser admin role, both
// named after `name`, and records the admin password in a fresh
// pass-dir. The returned configuration points to them.
func (idts *InitDBTestSuite) createEmptyDB(
	t *testing.T, name string,
) *cfg1.Config {
	r := require.New(t)
	name = "initdb_" + name
	suffix := repo.Role("_" + name)
	admin := repo.AdminRole + suffix
	b := make([]byte, 8)
	_, err := rand.Read(b)
	r.NoError(err, "generating a random password")
	pass := fmt.Sprintf("%x", b)
	err = idts.Pool.Conn(
		idts.Ctx, func(ctx context.Context, c repo.Conn) error {
			// DDL statements cannot be parameterized, but `name` and
			// `admin` are fixed by the tests.
			if _, err := c.Exec(ctx, "CREATE DATABASE "+name); err != nil {
				return fmt.Errorf("creating %q database: %w", name, err)
			}
			hp, err := idts.hasher.Hash(pass, "", 15000)
			if err != nil {
				return fmt.Errorf("hashing admin password: %w", err)
			}
			if _, err := c.Exec(ctx, fmt.Sprintf(
				`CREATE ROLE %s WITH SUPERUSER LOGIN PASSWORD '%s';
GRANT ALL PRIVILEGES ON DATABASE %s TO %[1]s`,
				admin, hp, name,
			)); err != nil {
				return fmt.Errorf("creating %q role: %w", admin, err)
			}
			return nil
		},
	)
	r.NoError(err, "preparing an empty database")
	d := filepath.Join(idts.dbDir, name)
	r.NoError(os.Mkdir(d, 0o700), "creating %q dir", d)
	line := fmt.Sprintf(
		"127.0.0.1:%d:%s:%s:%s\n", idts.Port, name, admin, pass,
	)
	err = os.WriteFile(filepath.Join(d, cfg1.PassFile), []byte(line), 0o600)
	r.NoError(err, "writing the pass-file")
	c := &cfg1.Config{
		Database: cfg1.Database{
			Host:       "127.0.0.1",
			Port:       idts.Port,
			Name:       name,
			PassDir:    d,
			RoleSuffix: suffix,
		},
		Vers: vers.Config{
			Versions: vers.Versions{
				Database: postgres.Version,
				Config:   cfg1.Version,
			},
		},
	}
	r.NoError(c.ValidateAndNormalize(), "validating the configuration")
	return c
}
