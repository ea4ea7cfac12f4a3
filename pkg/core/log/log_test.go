// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/vacancies/pkg/core/log"
	"github.com/stretchr/testify/require"
)

func TestContextAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	orig := slog.Default()
	defer slog.SetDefault(orig)
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		AddSource: true,
	})))

	ctx := log.WithAttrs(context.Background(), log.Str("request_id", "r1"))
	ctx = log.WithAttrs(ctx, log.Int("attempt", 2))
	log.Info(ctx, "averaged", log.Float("avg", 1.5), log.Err("err", nil))
	log.Debug(ctx, "below the default level")

	rec := map[string]any{}
	r := require.New(t)
	r.NoError(json.Unmarshal(buf.Bytes(), &rec), "one json record")
	r.Equal("averaged", rec["msg"])
	r.Equal("r1", rec["request_id"])
	r.EqualValues(2, rec["attempt"])
	r.EqualValues(1.5, rec["avg"])
	r.Equal("no-error", rec["err"])
	src, ok := rec["source"].(map[string]any)
	r.True(ok, "source must be reported")
	r.Contains(src["file"], "log_test.go", "caller must be this file")

	buf.Reset()
	log.Error(context.Background(), "failed", log.Err("err", errors.New("x")))
	rec = map[string]any{}
	r.NoError(json.Unmarshal(buf.Bytes(), &rec))
	r.Equal("x", rec["err"])
	r.NotContains(rec, "request_id", "plain contexts carry no attrs")
}
