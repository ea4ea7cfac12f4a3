// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr provides the core errors which classify the use cases
// errors. Each Error wraps a cause and an HTTP status code, so it may
// be detected with errors.As by the REST adapters and reported with a
// meaningful status code, while the use cases are kept unaware of the
// HTTP protocol details (the status code is just an integer tag).
package cerr

import (
	"fmt"
	"net/http"
)

// Error is a classified error, wrapping Err.
type Error struct {
	Err            error
	HTTPStatusCode int
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest indicates that a request argument was invalid.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// Authentication indicates that the caller could not be identified.
func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

// Authorization indicates that the caller lacks some permission.
func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

// NotFound indicates that a resource (or a non-empty dataset which was
// needed for an aggregate) could not be found.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict indicates that the stored data did not permit the operation,
// e.g., salaries could not be compared due to their currencies.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}
