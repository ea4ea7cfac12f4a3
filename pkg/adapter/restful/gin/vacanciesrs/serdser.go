// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vacanciesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/vacancies/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/vacancies/pkg/core/model"
)

type searchReq struct {
	Keyword string `form:"keyword"`
}

func (rs *resource) DserSearchReq(c *gin.Context) *searchReq {
	req := &searchReq{}
	if !serdser.Bind(c, req, binding.Query) {
		return nil
	}
	return req
}

type rawCreateVacancyReq struct {
	Name           string `form:"name" binding:"required"`
	CompanyID      int64  `form:"company_id" binding:"required,gt=0"`
	SalaryFrom     *int64 `form:"salary_from" binding:"omitempty,gte=0"`
	SalaryTo       *int64 `form:"salary_to" binding:"omitempty,gte=0"`
	SalaryCurrency string `form:"salary_currency" binding:"omitempty,alpha,len=3"`
	Area           string `form:"area"`
	Requirement    string `form:"requirement"`
	Responsibility string `form:"responsibility"`
	URL            string `form:"url" binding:"omitempty,url"`
}

func (rs *resource) DserCreateVacancyReq(c *gin.Context) *model.Vacancy {
	req := &rawCreateVacancyReq{}
	if !serdser.Bind(c, req, binding.Form) {
		return nil
	}
	var errs map[string][]string
	salaried := req.SalaryFrom != nil || req.SalaryTo != nil
	serdser.Assert(
		&errs, !salaried || req.SalaryCurrency != "", "salary_currency",
		"The salary bounds require a currency.",
	)
	serdser.Assert(
		&errs,
		req.SalaryFrom == nil || req.SalaryTo == nil ||
			*req.SalaryFrom <= *req.SalaryTo,
		"salary_from/salary_to",
		"The salary_from may not be greater than salary_to.",
	)
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &model.Vacancy{
		Name:           req.Name,
		CompanyID:      req.CompanyID,
		SalaryFrom:     req.SalaryFrom,
		SalaryTo:       req.SalaryTo,
		SalaryCurrency: model.NormalizeCurrency(req.SalaryCurrency),
		Area:           req.Area,
		Requirement:    req.Requirement,
		Responsibility: req.Responsibility,
		URL:            req.URL,
	}
}
