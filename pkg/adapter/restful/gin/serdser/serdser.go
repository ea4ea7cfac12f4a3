// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by the resource packages.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/vacancies/pkg/core/cerr"
	"github.com/momeni/vacancies/pkg/core/log"
)

// Bind deserializes the request into req using the b binding and
// validates it. Failures are responded and false is returned.
// Validation errors are reported as a map from field names to their
// error messages, with the 400 status code.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case nil:
		return true
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends msgs to the name entry of errs, allocating it lazily.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

// Assert adds msgs for the name field if ok is false and returns ok.
func Assert(
	errs *map[string][]string, ok bool, name string, msgs ...string,
) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr responds err using its cerr.Error status code. Unclassified
// errors are logged and responded with the 500 status code.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	log.Error(c.Request.Context(), "request failed", log.Err("error", err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": err.Error(),
	})
}
