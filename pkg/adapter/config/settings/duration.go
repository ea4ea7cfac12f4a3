// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Duration is a specialization of the time.Duration which produces a
// more human-readable representation when marshaled using its Marshal
// method.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler, parsing data
// with time.ParseDuration. The `d` is kept unchanged on errors.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// Marshal returns a string representation of the `d` time duration,
// or nil if d is nil. The time.Duration format is used, e.g., 2h3m4s,
// while the zero trailing components are dropped, so one hour is
// written as 1h instead of 1h0m0s.
// See cfg1.Config.Marshal for its usage.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := (*time.Duration)(d).String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return &s
}

// MarshalText implements encoding.TextMarshaler interface and
// serializes `d` duration using its Marshal method.
// This interface is required for json serialization.
func (d *Duration) MarshalText() ([]byte, error) {
	if s := d.Marshal(); s != nil {
		return []byte(*s), nil
	}
	return nil, errors.New("nil duration")
}

// LogValue implements slog.LogValuer and returns a DurationValue if
// this Duration is not nil, otherwise, it returns a StringValue with
// the constant "nil-duration" value.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
