// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemauc

import "github.com/momeni/vacancies/pkg/core/model"

// Seed is an initial vacancy whose company is identified by its index
// in the companies slice, because company IDs are not known before
// their insertion.
type Seed struct {
	Company int
	Vacancy model.Vacancy
}

// DevCompanies returns the companies which fill a development database.
func DevCompanies() []model.Company {
	return []model.Company{
		{Name: "Northwind Labs", URL: "https://northwind.example"},
		{Name: "Contoso Bank", URL: "https://contoso.example"},
		{Name: "Fabrikam Logistics", URL: "https://fabrikam.example"},
	}
}

func salary(n int64) *int64 {
	return &n
}

// DevVacancies returns the vacancies which fill a development database.
// They refer to DevCompanies by index. Some salary bounds are missing,
// so averaging policies can be tried out.
func DevVacancies() []Seed {
	return []Seed{
		{0, model.Vacancy{
			Name:           "Backend Engineer (Go)",
			SalaryFrom:     salary(250000),
			SalaryTo:       salary(350000),
			SalaryCurrency: "RUR",
			Area:           "Moscow",
			Requirement:    "Go, PostgreSQL, 3+ years of experience",
			Responsibility: "Design and maintain the listings API",
			URL:            "https://northwind.example/jobs/1",
		}},
		{0, model.Vacancy{
			Name:           "QA Engineer",
			SalaryFrom:     salary(120000),
			SalaryCurrency: "RUR",
			Area:           "Moscow",
			Requirement:    "Test design, SQL",
			Responsibility: "Automate regression tests",
			URL:            "https://northwind.example/jobs/2",
		}},
		{1, model.Vacancy{
			Name:           "Data Analyst",
			SalaryFrom:     salary(150000),
			SalaryTo:       salary(200000),
			SalaryCurrency: "RUR",
			Area:           "Saint Petersburg",
			Requirement:    "Python, statistics",
			Responsibility: "Build credit risk reports",
			URL:            "https://contoso.example/careers/7",
		}},
		{1, model.Vacancy{
			Name:           "Accountant",
			SalaryTo:       salary(90000),
			SalaryCurrency: "RUR",
			Area:           "Saint Petersburg",
			Requirement:    "1C, tax reporting",
			Responsibility: "Monthly closing",
			URL:            "https://contoso.example/careers/8",
		}},
		{1, model.Vacancy{
			Name:           "Intern",
			Area:           "Kazan",
			Requirement:    "Curiosity",
			Responsibility: "Assist the analytics team",
			URL:            "https://contoso.example/careers/9",
		}},
	}
}
