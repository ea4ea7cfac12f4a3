// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package companiesrs realizes the companies resource, allowing the
// companies listing, creation, and vacancy counting REST APIs to be
// delegated to the vacancies use case.
package companiesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/vacancies/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/vacancies/pkg/core/model"
	"github.com/momeni/vacancies/pkg/core/usecase/vacanciesuc"
)

type resource struct {
	vacancies *vacanciesuc.UseCase
}

// Register instantiates a resource adapting the vacancies use case
// instance with the relevant REST APIs including:
//  1. GET request to companies in order to list all companies,
//  2. POST request to companies in order to create a company,
//  3. GET request to companies/vacancy-counts in order to fetch the
//     number of vacancies of each company.
func Register(r *gin.RouterGroup, uc *vacanciesuc.UseCase) {
	rs := &resource{vacancies: uc}
	r.GET("companies", rs.ListCompanies)
	r.POST("companies", rs.CreateCompany)
	r.GET("companies/vacancy-counts", rs.VacancyCounts)
}

func (rs *resource) ListCompanies(c *gin.Context) {
	companies, err := rs.vacancies.Companies(c.Request.Context())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

type createCompanyReq struct {
	Name string `form:"name" binding:"required"`
	URL  string `form:"url" binding:"omitempty,url"`
}

func (rs *resource) CreateCompany(c *gin.Context) {
	req := &createCompanyReq{}
	if !serdser.Bind(c, req, binding.Form) {
		return
	}
	company, err := rs.vacancies.AddCompany(c.Request.Context(), &model.Company{
		Name: req.Name,
		URL:  req.URL,
	})
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (rs *resource) VacancyCounts(c *gin.Context) {
	cc, err := rs.vacancies.CompanyVacancyCounts(c.Request.Context())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cc)
}
