// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vacanciesrs realizes the vacancies resource, allowing the
// vacancies search, creation, and salary statistics REST APIs to be
// delegated to the vacancies use case.
package vacanciesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/vacancies/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/vacancies/pkg/core/usecase/vacanciesuc"
)

type resource struct {
	vacancies *vacanciesuc.UseCase
}

// Register instantiates a resource adapting the vacancies use case
// instance with the relevant REST APIs including:
//  1. GET request to vacancies with an optional keyword query param
//     in order to search vacancies by their names,
//  2. POST request to vacancies in order to create a vacancy,
//  3. GET request to vacancies/salary/average in order to compute the
//     average salary of all vacancies,
//  4. GET request to vacancies/salary/average-by-currency in order to
//     compute the average salary per currency,
//  5. GET request to vacancies/salary/above-average in order to list
//     vacancies whose salary is not less than the average salary.
func Register(r *gin.RouterGroup, uc *vacanciesuc.UseCase) {
	rs := &resource{vacancies: uc}
	r.GET("vacancies", rs.SearchVacancies)
	r.POST("vacancies", rs.CreateVacancy)
	s := r.Group("vacancies/salary")
	s.GET("average", rs.AverageSalary)
	s.GET("average-by-currency", rs.AverageSalaryByCurrency)
	s.GET("above-average", rs.AboveAverage)
}

func (rs *resource) SearchVacancies(c *gin.Context) {
	req := rs.DserSearchReq(c)
	if req == nil {
		return
	}
	vacancies, err := rs.vacancies.SearchByKeyword(
		c.Request.Context(), req.Keyword,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vacancies)
}

func (rs *resource) CreateVacancy(c *gin.Context) {
	v := rs.DserCreateVacancyReq(c)
	if v == nil {
		return
	}
	created, err := rs.vacancies.AddVacancy(c.Request.Context(), v)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (rs *resource) AverageSalary(c *gin.Context) {
	mean, err := rs.vacancies.AverageSalary(c.Request.Context())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, mean)
}

func (rs *resource) AverageSalaryByCurrency(c *gin.Context) {
	means, err := rs.vacancies.AverageSalaryByCurrency(c.Request.Context())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, means)
}

func (rs *resource) AboveAverage(c *gin.Context) {
	vacancies, err := rs.vacancies.AboveAverage(c.Request.Context())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vacancies)
}
