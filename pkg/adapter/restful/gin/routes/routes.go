// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes facilitates instantiation and registration of all
// repo, use case, and resource packages based on the user provided
// configuration settings.
package routes

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/momeni/vacancies/pkg/adapter/config/cfg1"
	"github.com/momeni/vacancies/pkg/adapter/restful/gin/cachemw"
	"github.com/momeni/vacancies/pkg/adapter/restful/gin/companiesrs"
	"github.com/momeni/vacancies/pkg/adapter/restful/gin/vacanciesrs"
	"github.com/momeni/vacancies/pkg/core/repo"
	"github.com/momeni/vacancies/pkg/core/usecase/vacanciesuc"
)

// Prefix is the path prefix of all REST APIs.
const Prefix = "/api/vcweb/v1"

// Register instantiates the vacancies use case based on the c
// configuration settings. The p connections pool is passed to the use
// case, so it may acquire connections and transactions on demand and
// pass them to the repositories. If the c.Cache is enabled, responses
// are cached in Redis. The returned cleanup function releases the
// cache connections and must be called after the e engine is stopped.
func Register(
	e *gin.Engine, p repo.Pool, c *cfg1.Config,
) (cleanup func() error, err error) {
	uc, err := c.NewVacanciesUseCase(p)
	if err != nil {
		return nil, fmt.Errorf("creating vacancies use case: %w", err)
	}
	cleanup = func() error { return nil }
	var mws []gin.HandlerFunc
	if store := c.Cache.NewStore(); store != nil {
		cleanup = store.Close
		ttl := time.Duration(*c.Cache.TTL)
		mws = append(mws, cachemw.New(store, ttl))
	}
	RegisterUseCase(e, uc, mws...)
	return cleanup, nil
}

// RegisterUseCase registers the resources of the uc use case under the
// Prefix path, using the given middlewares for all of them.
func RegisterUseCase(
	e *gin.Engine, uc *vacanciesuc.UseCase, mws ...gin.HandlerFunc,
) {
	r := e.Group(Prefix, mws...)
	companiesrs.Register(r, uc)
	vacanciesrs.Register(r, uc)
}
