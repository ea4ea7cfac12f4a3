// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cachemw provides a gin-gonic middleware which caches the
// successful GET responses in a key/value Store. Successful requests
// with other methods invalidate all cached responses.
package cachemw

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/momeni/vacancies/pkg/core/log"
)

// KeyPrefix is prepended to the request URI of each cached response.
const KeyPrefix = "vcweb:responses:"

// Header reports if a GET response was served from the cache, having
// either of the HIT or MISS values.
const Header = "X-Cache"

// Store is a key/value store with expiring entries, like the
// pkg/adapter/cache/redis.Store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type recorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *recorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// New returns the caching middleware which keeps responses in s for
// ttl. Store failures are logged and the request is served normally.
func New(s Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if c.Request.Method != http.MethodGet {
			c.Next()
			if st := c.Writer.Status(); st < 200 || st >= 300 {
				return
			}
			if err := s.DeletePrefix(ctx, KeyPrefix); err != nil {
				log.Warn(ctx, "invalidating cache", log.Err("error", err))
			}
			return
		}
		key := KeyPrefix + c.Request.URL.RequestURI()
		if e, ok := lookup(ctx, s, key); ok {
			c.Header(Header, "HIT")
			c.Data(e.Status, e.ContentType, e.Body)
			c.Abort()
			return
		}
		rec := &recorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header(Header, "MISS")
		c.Next()
		if rec.Status() != http.StatusOK {
			return
		}
		b, err := json.Marshal(&entry{
			Status:      rec.Status(),
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err == nil {
			err = s.Set(ctx, key, b, ttl)
		}
		if err != nil {
			log.Warn(
				ctx, "caching response",
				log.Str("key", key), log.Err("error", err),
			)
		}
	}
}

func lookup(ctx context.Context, s Store, key string) (*entry, bool) {
	b, ok, err := s.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, "reading cache", log.Str("key", key), log.Err("error", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	e := &entry{}
	if err := json.Unmarshal(b, e); err != nil {
		log.Warn(ctx, "corrupted cache entry", log.Str("key", key), log.Err("error", err))
		return nil, false
	}
	return e, true
}
