// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 makes it possible to load configuration settings with
// version 1.x.y since all known minor and patch versions of the same
// major version can be loaded with one implementation.
// When settings are written out, the latest known minor and patch
// versions are used.
package cfg1

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/vacancies/pkg/adapter/cache/redis"
	"github.com/momeni/vacancies/pkg/adapter/config/settings"
	"github.com/momeni/vacancies/pkg/adapter/config/vers"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres/companiesrp"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres/vacanciesrp"
	"github.com/momeni/vacancies/pkg/adapter/restful/gin"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/repo"
	"github.com/momeni/vacancies/pkg/core/usecase/schemauc"
	"github.com/momeni/vacancies/pkg/core/usecase/vacanciesuc"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Default values of the optional settings.
var (
	DefaultAddress  = ":8080"
	DefaultCacheTTL = settings.Duration(time.Minute)

	minCacheTTL = settings.Duration(time.Second)
	maxCacheTTL = settings.Duration(24 * time.Hour)
	minCacheDB  = 0
	maxCacheDB  = 15
)

// Config contains all settings which are required by the adapters and
// use cases following the v1.x.y format. It is implemented with
// primitive fields or local structs, not models, so it may be kept
// intact while other layers change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Cache    Cache    // Redis response cache settings
	Usecases Usecases // Configuration settings for supported use cases

	// Vers contains the configuration file and database schema version
	// strings corresponding to this Config instance and its Database
	// target.
	Vers vers.Config `yaml:",inline"`
}

var _ schemauc.Settings = (*Config)(nil)

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (schemauc.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"%s.ConnectionPool: %w", c.Database.String(), err,
		)
	}
	return p, nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
// See Database.NewSchemaRepo.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// RenewPasswords renews the roles passwords.
// See Database.RenewPasswords.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}

// SchemaVersion returns the semantic version of the database schema
// which its connection information are kept by this Config struct.
func (c *Config) SchemaVersion() model.SemVer {
	return c.Vers.Versions.Database
}

// NewInitDBUseCase instantiates the database initialization use case
// for the database which is described by `c`.
func (c *Config) NewInitDBUseCase() *schemauc.InitDBUseCase {
	return schemauc.NewInitDB(c, companiesrp.New(), vacanciesrp.New())
}

// NewVacanciesUseCase instantiates a new vacancies use case based on
// the settings in the c struct.
func (c *Config) NewVacanciesUseCase(
	p repo.Pool,
) (*vacanciesuc.UseCase, error) {
	return c.Usecases.Vacancies.NewUseCase(
		p, companiesrp.New(), vacanciesrp.New(),
	)
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill them by their default values.
type Gin struct {
	Logger   *bool   // Whether to register the access log middleware
	Recovery *bool   // Whether to register the recovery middleware
	Address  *string `yaml:",omitempty"` // host:port to listen on
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. Requests are always tagged with an ID.
func (g Gin) NewEngine(l *slog.Logger) *gin.Engine {
	middlewares := []gin.HandlerFunc{gin.RequestID()}
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger(l))
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery(l))
	}
	return gin.New(middlewares...)
}

// Cache contains the Redis settings for caching the GET responses.
// An empty Address disables the cache.
type Cache struct {
	Address  string             `yaml:",omitempty"` // host:port
	Password string             `yaml:",omitempty"`
	DB       *int               `yaml:"db,omitempty"` // 0..15
	TTL      *settings.Duration `yaml:"ttl,omitempty"`
}

// Enabled reports if a Redis server is configured.
func (c Cache) Enabled() bool {
	return c.Address != ""
}

// NewStore creates a Redis store based on the `c` settings. It returns
// nil if the cache is not enabled.
func (c Cache) NewStore() *redis.Store {
	if !c.Enabled() {
		return nil
	}
	return redis.New(c.Address, c.Password, *c.DB)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Vacancies Vacancies // vacancies use cases related settings
}

// Vacancies contains the configuration settings for the vacancies use
// cases. Unset items are left for the use cases layer defaults.
type Vacancies struct {
	// GroupedCounting makes the vacancies to be fetched once and
	// grouped by their companies, instead of counting them per company.
	GroupedCounting *bool `yaml:"grouped-counting,omitempty"`

	// BaseCurrency enables conversion of salaries to this currency
	// before they are averaged, using the CurrencyRates.
	BaseCurrency string `yaml:"base-currency,omitempty"`

	// CurrencyRates maps each currency code to the value of one unit
	// of that currency in the BaseCurrency.
	CurrencyRates map[string]float64 `yaml:"currency-rates,omitempty"`
}

// NewUseCase instantiates a new vacancies use case based on the
// settings in the `v` struct.
func (v Vacancies) NewUseCase(
	p repo.Pool, c repo.Companies, vr repo.Vacancies,
) (*vacanciesuc.UseCase, error) {
	opts := make([]vacanciesuc.Option, 0, 2)
	if v.GroupedCounting != nil && *v.GroupedCounting {
		opts = append(opts, vacanciesuc.WithGroupedCounting())
	}
	if v.BaseCurrency != "" {
		opts = append(opts, vacanciesuc.WithCurrencyRates(
			v.BaseCurrency, v.CurrencyRates,
		))
	}
	return vacanciesuc.New(p, c, vr, opts...)
}

// Load unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. Thereafter, loaded Config will be validated and normalized.
func Load(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also fills the
// missing optional settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	settings.OverwriteNil(&c.Gin.Address, &DefaultAddress)
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	settings.Nil2Zero(&c.Cache.DB)
	if err := settings.VerifyRange(
		&c.Cache.DB, &minCacheDB, &maxCacheDB,
	); err != nil {
		return fmt.Errorf("VerifyRange(cache db=%d): %w", *err.Value, err)
	}
	settings.OverwriteNil(&c.Cache.TTL, &DefaultCacheTTL)
	if err := settings.VerifyRange(
		&c.Cache.TTL, &minCacheTTL, &maxCacheTTL,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(cache ttl=%v, minb=%v, maxb=%v): %w",
			time.Duration(*err.Value), time.Duration(minCacheTTL),
			time.Duration(maxCacheTTL), err,
		)
	}
	v := c.Usecases.Vacancies
	if v.BaseCurrency == "" && len(v.CurrencyRates) > 0 {
		return fmt.Errorf("currency-rates require a base-currency")
	}
	if v.BaseCurrency != "" {
		// fails early instead of when the use case is instantiated
		if _, err := model.NewCurrencyRates(
			v.BaseCurrency, v.CurrencyRates,
		); err != nil {
			return fmt.Errorf("validating currency rates: %w", err)
		}
	}
	return nil
}

// Marshalled struct contains a field for each one of the Config struct
// fields. Fields whose default YAML encoding is not suitable are
// replaced by their primitive representation.
type Marshalled struct {
	Database Database
	Gin      Gin
	Cache    struct {
		Address  string  `yaml:",omitempty"`
		Password string  `yaml:",omitempty"`
		DB       *int    `yaml:"db,omitempty"`
		TTL      *string `yaml:"ttl,omitempty"`
	}
	Usecases Usecases
	Vers     *vers.Marshalled `yaml:",inline"`
}

// MarshalYAML implements yaml.Marshaler, so `c` is serialized as its
// Marshalled form.
func (c *Config) MarshalYAML() (interface{}, error) {
	return c.Marshal(), nil
}

// Marshal creates an instance of the Marshalled struct and fills it
// with the `c` Config instance contents.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Database = c.Database
	m.Gin = c.Gin
	m.Cache.Address = c.Cache.Address
	m.Cache.Password = c.Cache.Password
	m.Cache.DB = c.Cache.DB
	m.Cache.TTL = c.Cache.TTL.Marshal()
	m.Usecases = c.Usecases
	m.Vers = c.Vers.Marshal()
	return m
}
