// Package employee defines the directory record shown by the table, its
// fixed column schema, and a synthetic data generator.
package employee

import (
	"time"

	"github.com/oakwood-commons/dirtab/internal/grid"
)

// Column ids.
const (
	ColID         = "id"
	ColFirstName  = "firstName"
	ColLastName   = "lastName"
	ColEmail      = "email"
	ColPhone      = "phone"
	ColDepartment = "department"
	ColSalary     = "salary"
	ColHireDate   = "hireDate"
	ColIsActive   = "isActive"
)

// Employee is one row of the directory.
type Employee struct {
	ID         int       `json:"id" yaml:"id" toml:"id"`
	FirstName  string    `json:"firstName" yaml:"firstName" toml:"firstName"`
	LastName   string    `json:"lastName" yaml:"lastName" toml:"lastName"`
	Email      string    `json:"email" yaml:"email" toml:"email"`
	Phone      string    `json:"phone" yaml:"phone" toml:"phone"`
	Department string    `json:"department" yaml:"department" toml:"department"`
	Salary     int       `json:"salary" yaml:"salary" toml:"salary"`
	HireDate   time.Time `json:"hireDate" yaml:"hireDate" toml:"hireDate"`
	IsActive   bool      `json:"isActive" yaml:"isActive" toml:"isActive"`
}

// Field returns the raw value of a column, or nil for unknown ids.
func (e Employee) Field(id string) any {
	switch id {
	case ColID:
		return e.ID
	case ColFirstName:
		return e.FirstName
	case ColLastName:
		return e.LastName
	case ColEmail:
		return e.Email
	case ColPhone:
		return e.Phone
	case ColDepartment:
		return e.Department
	case ColSalary:
		return e.Salary
	case ColHireDate:
		return e.HireDate
	case ColIsActive:
		return e.IsActive
	default:
		return nil
	}
}

// Map returns the record keyed by column id.
func (e Employee) Map() map[string]any {
	out := make(map[string]any, len(schema))
	for _, d := range schema {
		out[d.ID] = e.Field(d.ID)
	}
	return out
}

var schema = []grid.ColumnDef{
	{ID: ColID, Header: "ID", Kind: grid.KindInt},
	{ID: ColFirstName, Header: "First Name", Kind: grid.KindString, Filter: grid.FilterIncludes},
	{ID: ColLastName, Header: "Last Name", Kind: grid.KindString, Filter: grid.FilterIncludes},
	{ID: ColEmail, Header: "Email", Kind: grid.KindString, Filter: grid.FilterIncludes},
	{ID: ColPhone, Header: "Phone", Kind: grid.KindString, Filter: grid.FilterIncludes},
	{ID: ColDepartment, Header: "Department", Kind: grid.KindString, Filter: grid.FilterIncludes},
	{ID: ColSalary, Header: "Salary", Kind: grid.KindCurrency},
	{ID: ColHireDate, Header: "Hire Date", Kind: grid.KindDate},
	{ID: ColIsActive, Header: "Active", Kind: grid.KindBool, Filter: grid.FilterEquals},
}

// Columns returns the table schema in its default order.
func Columns() []grid.ColumnDef {
	out := make([]grid.ColumnDef, len(schema))
	copy(out, schema)
	return out
}

// ColumnIDs returns the schema ids in default order.
func ColumnIDs() []string {
	out := make([]string, len(schema))
	for i, d := range schema {
		out[i] = d.ID
	}
	return out
}
