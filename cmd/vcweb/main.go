// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// The vcweb serves the companies and vacancies REST APIs and manages
// its database. Run `vcweb --help` for its usage.
package main

import "github.com/momeni/vacancies/cmd/vcweb/command"

func main() {
	command.Execute()
}
