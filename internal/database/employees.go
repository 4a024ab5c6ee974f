package database

import (
	"context"
	"database/sql"
	"fmt"
)

// EmployeeOrder is a sortable employee column exposed to callers
type EmployeeOrder string

const (
	EmployeeOrderID        EmployeeOrder = "id"
	EmployeeOrderFirstName EmployeeOrder = "first_name"
	EmployeeOrderLastName  EmployeeOrder = "last_name"
	EmployeeOrderCity      EmployeeOrder = "city"
)

// NoLimit makes ListEmployees return every row after the offset
const NoLimit int64 = -1

// employeeQueries holds one literal statement per allowed sort key
var employeeQueries = map[EmployeeOrder]string{
	EmployeeOrderID:        `SELECT EmployeeID, LastName, FirstName, City FROM Employees ORDER BY EmployeeID LIMIT ? OFFSET ?`,
	EmployeeOrderFirstName: `SELECT EmployeeID, LastName, FirstName, City FROM Employees ORDER BY FirstName LIMIT ? OFFSET ?`,
	EmployeeOrderLastName:  `SELECT EmployeeID, LastName, FirstName, City FROM Employees ORDER BY LastName LIMIT ? OFFSET ?`,
	EmployeeOrderCity:      `SELECT EmployeeID, LastName, FirstName, City FROM Employees ORDER BY City LIMIT ? OFFSET ?`,
}

// ParseEmployeeOrder validates a caller supplied sort key.
// The id column is the default only; callers cannot ask for it by name.
func ParseEmployeeOrder(s string) (EmployeeOrder, error) {
	switch order := EmployeeOrder(s); order {
	case EmployeeOrderFirstName, EmployeeOrderLastName, EmployeeOrderCity:
		return order, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
	}
}

// Employee is a row of the Employees table
type Employee struct {
	ID        int64
	LastName  string
	FirstName string
	City      string
}

// EmployeeQuery selects a window of employees
type EmployeeQuery struct {
	Limit  int64
	Offset int64
	Order  EmployeeOrder
}

// DefaultEmployeeQuery returns every employee ordered by id
func DefaultEmployeeQuery() EmployeeQuery {
	return EmployeeQuery{Limit: NoLimit, Offset: 0, Order: EmployeeOrderID}
}

// ListEmployees returns employees sorted ascending by the requested column.
// Any negative limit means unbounded (SQLite LIMIT -1); a negative offset counts as 0.
func (db *DB) ListEmployees(ctx context.Context, q EmployeeQuery) ([]Employee, error) {
	if q.Order == "" {
		q.Order = EmployeeOrderID
	}
	stmt, ok := employeeQueries[q.Order]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, q.Order)
	}
	if q.Limit < 0 {
		q.Limit = NoLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	rows, err := db.query(ctx, stmt, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		var e Employee
		var lastName, firstName, city sql.NullString
		if err := rows.Scan(&e.ID, &lastName, &firstName, &city); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.LastName = nullText(lastName)
		e.FirstName = nullText(firstName)
		e.City = nullText(city)
		employees = append(employees, e)
	}

	return employees, rows.Err()
}
