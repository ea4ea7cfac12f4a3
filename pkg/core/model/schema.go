// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// DataType specifies the storage type of a table column. Although this
// enum is numeric, it is (de)serialized as its SQL type name.
type DataType int

// Valid values for the DataType enum.
const (
	DataTypeInvalid DataType = iota // zero value is invalid

	DataTypeSerial  // auto-incremented integer
	DataTypeInteger // plain integer
	DataTypeVarchar // variable length string
	DataTypeText    // unlimited text
)

// ErrUnknownDataType indicates that a given string may not be parsed
// as a known data type.
var ErrUnknownDataType = errors.New("unknown data type")

// DataTypeError indicates an invalid data type, keeping it as an int.
type DataTypeError int

// Error implements the error interface.
func (e DataTypeError) Error() string {
	return fmt.Sprintf("invalid data type: %d", e)
}

// Validate returns nil if d is valid, or a DataTypeError otherwise.
func (d DataType) Validate() error {
	switch d {
	case DataTypeSerial, DataTypeInteger, DataTypeVarchar, DataTypeText:
		return nil
	default:
		return DataTypeError(d)
	}
}

// String returns the SQL name of d. Invalid data types cause a panic.
func (d DataType) String() string {
	switch d {
	case DataTypeSerial:
		return "SERIAL"
	case DataTypeInteger:
		return "INTEGER"
	case DataTypeVarchar:
		return "VARCHAR"
	case DataTypeText:
		return "TEXT"
	default:
		panic(DataTypeError(d))
	}
}

// ParseDataType parses an SQL type name, as returned by String.
// For unknown names, DataTypeInvalid and ErrUnknownDataType are
// returned.
func ParseDataType(d string) (DataType, error) {
	switch d {
	case "SERIAL":
		return DataTypeSerial, nil
	case "INTEGER":
		return DataTypeInteger, nil
	case "VARCHAR":
		return DataTypeVarchar, nil
	case "TEXT":
		return DataTypeText, nil
	default:
		return DataTypeInvalid, ErrUnknownDataType
	}
}

// ConstraintKind enumerates the supported column constraints.
type ConstraintKind int

// Valid values for the ConstraintKind enum.
const (
	ConstraintPK ConstraintKind = iota + 1 // primary key
	ConstraintFK                           // foreign key
)

// Constraint describes one column constraint. RefTable and RefColumn
// are only meaningful for foreign keys.
type Constraint struct {
	Kind      ConstraintKind
	RefTable  string
	RefColumn string
}

// PrimaryKey returns a primary key constraint.
func PrimaryKey() Constraint {
	return Constraint{Kind: ConstraintPK}
}

// ForeignKey returns a constraint which makes a column refer to the
// column of the table table.
func ForeignKey(table, column string) Constraint {
	return Constraint{
		Kind:      ConstraintFK,
		RefTable:  table,
		RefColumn: column,
	}
}

// Column describes one table column.
type Column struct {
	Name        string
	Type        DataType
	Constraints []Constraint
}

// Table is a declarative description of one database table. The Checks
// are boolean SQL expressions which must hold for every row.
// Tables are consumed by persistence adapters while initializing a
// database, so the entities do not need to carry ORM descriptors.
type Table struct {
	Name    string
	Columns []Column
	Checks  []string
}

// Validate ensures that t has a name and valid column types, and that
// its foreign keys name their referenced table and column.
func (t Table) Validate() error {
	if t.Name == "" {
		return errors.New("table name is empty")
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %q has no columns", t.Name)
	}
	for _, c := range t.Columns {
		if err := c.Type.Validate(); err != nil {
			return fmt.Errorf("column %q of %q: %w", c.Name, t.Name, err)
		}
		for _, cons := range c.Constraints {
			if cons.Kind == ConstraintFK &&
				(cons.RefTable == "" || cons.RefColumn == "") {
				return fmt.Errorf(
					"column %q of %q: incomplete foreign key",
					c.Name, t.Name,
				)
			}
		}
	}
	return nil
}

// CompaniesTable describes the companies table, holding Company rows.
var CompaniesTable = Table{
	Name: "companies",
	Columns: []Column{
		{Name: "company_id", Type: DataTypeSerial, Constraints: []Constraint{
			PrimaryKey(),
		}},
		{Name: "name", Type: DataTypeVarchar},
		{Name: "url", Type: DataTypeVarchar},
	},
}

// VacanciesTable describes the vacancies table, holding Vacancy rows.
// It must be created after the CompaniesTable.
var VacanciesTable = Table{
	Name: "vacancies",
	Columns: []Column{
		{Name: "vacancy_id", Type: DataTypeSerial, Constraints: []Constraint{
			PrimaryKey(),
		}},
		{Name: "name", Type: DataTypeVarchar},
		{Name: "company_id", Type: DataTypeInteger, Constraints: []Constraint{
			ForeignKey("companies", "company_id"),
		}},
		{Name: "salary_from", Type: DataTypeInteger},
		{Name: "salary_to", Type: DataTypeInteger},
		{Name: "salary_currency", Type: DataTypeVarchar},
		{Name: "area", Type: DataTypeVarchar},
		{Name: "requirement", Type: DataTypeText},
		{Name: "responsibility", Type: DataTypeText},
		{Name: "url", Type: DataTypeVarchar},
	},
	Checks: []string{"salary_from <= salary_to"},
}

// Tables returns all tables in their creation order.
func Tables() []Table {
	return []Table{CompaniesTable, VacanciesTable}
}
