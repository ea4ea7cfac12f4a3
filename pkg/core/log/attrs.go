// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"
)

// Valuer returns an Attr for the given slog.LogValuer value.
func Valuer(key string, value slog.LogValuer) slog.Attr {
	return slog.Any(key, value)
}

// Err returns an Attr for the given error value, resolved by its
// Error method. A nil error is logged as "no-error".
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// Int returns an Attr for an int64 value, such as a row count.
func Int(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

// Float returns an Attr for a float64 value, such as an average.
func Float(key string, value float64) slog.Attr {
	return slog.Float64(key, value)
}

// Str returns an Attr for a string value.
func Str(key, value string) slog.Attr {
	return slog.String(key, value)
}
