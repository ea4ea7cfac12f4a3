// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr_test

import (
	"errors"
	"fmt"

	"github.com/momeni/vacancies/pkg/core/cerr"
	"github.com/momeni/vacancies/pkg/core/model"
)

func ExampleNotFound() {
	err := fmt.Errorf("averaging: %w", cerr.NotFound(model.ErrEmptyDataset))
	var ce *cerr.Error
	fmt.Println(errors.As(err, &ce), ce.HTTPStatusCode)
	fmt.Println(errors.Is(err, model.ErrEmptyDataset))
	fmt.Println(err)
	// Output:
	// true 404
	// true
	// averaging: [404] no vacancies to average
}

func ExampleMismatchingSemVerError() {
	err := &cerr.MismatchingSemVerError{
		model.SemVer{1, 0, 0}, model.SemVer{2, 1, 0},
	}
	fmt.Println(err)
	// Output:
	// expected v1.0.0, but got v2.1.0
}
