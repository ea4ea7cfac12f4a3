// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/momeni/vacancies/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool is a connections pool, wrapping a *gorm.DB instance.
// It is safe for concurrent use.
type Pool struct {
	*gorm.DB
}

// NewPool connects to the url PostgreSQL database and returns a Pool.
// A connection is acquired and released before returning, so a wrong
// url or password is reported early.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	gdb = gdb.Session(&gorm.Session{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: false,
				Colorful:                  true,
				// Set to false in order to log with replaced vars
				ParameterizedQueries: true,
			}),
	})
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

// ConnHandler is an alias for repo.ConnHandler.
type ConnHandler = repo.ConnHandler

// NoOpConnHandler does nothing and may be used to test a Pool.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a dedicated connection and passes it to f as a *Conn.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Close closes all connections of p.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
