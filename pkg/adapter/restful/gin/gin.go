// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine creation and its common
// middlewares, so other adapters (such as the config) may create an
// engine without depending on the gin-gonic packages directly.
// Resources are implemented in the xxxrs sub-packages and are
// registered by the routes sub-package.
package gin

import (
	"log/slog"

	"github.com/FabienMht/ginslog/logger"
	"github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/vacancies/pkg/core/log"
)

// RequestIDHeader is the request and response header which carries
// the request ID.
const RequestIDHeader = "X-Request-ID"

// HandlerFunc is an alias for the gin.HandlerFunc.
type HandlerFunc = gin.HandlerFunc

// Engine is an alias for the gin.Engine.
type Engine = gin.Engine

// New instantiates an Engine using the given middlewares.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which logs the requests using l.
func Logger(l *slog.Logger) HandlerFunc {
	return logger.New(l)
}

// Recovery returns a middleware which recovers from panics, logs them
// using l, and responds with 500 status code.
func Recovery(l *slog.Logger) HandlerFunc {
	return recovery.New(l)
}

// RequestID returns a middleware which reuses the X-Request-ID header
// of the request (if it is a valid UUID) or generates a random one.
// The ID is returned in the response headers and is added to the
// request context, so it is logged by pkg/core/log functions.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Set(RequestIDHeader, id)
		ctx := log.WithAttrs(c.Request.Context(), log.Str("request_id", id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
