// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package redis realizes a key/value store for caching the serialized
// REST responses, using a Redis server through the go-redis client.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanCount is the number of keys which are asked per SCAN call.
const scanCount = 100

// Store keeps byte slices in a Redis database. It is safe for
// concurrent use.
type Store struct {
	client *redis.Client
}

// New creates a Store which connects to the Redis server at the addr
// (host:port) lazily, selecting the `db` database.
func New(addr, password string, db int) *Store {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

// NewWithClient wraps an existing client.
func NewWithClient(c *redis.Client) *Store {
	return &Store{client: c}
}

// Ping checks the connection to the Redis server.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get returns the value of key. The ok is false if key is missing.
func (s *Store) Get(
	ctx context.Context, key string,
) (value []byte, ok bool, err error) {
	value, err = s.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("GET %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value for key which expires after ttl.
func (s *Store) Set(
	ctx context.Context, key string, value []byte, ttl time.Duration,
) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("SET %q: %w", key, err)
	}
	return nil
}

// DeletePrefix deletes all keys which start with prefix.
func (s *Store) DeletePrefix(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", scanCount).Iterator()
	keys := make([]string, 0, scanCount)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("SCAN %q: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("DEL %d keys: %w", len(keys), err)
	}
	return nil
}

// Close closes the client connections.
func (s *Store) Close() error {
	return s.client.Close()
}
