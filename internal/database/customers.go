package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Customer is a row of the Customers table with its display address
type Customer struct {
	ID          string
	Name        string
	FullAddress string
}

// ListCustomers returns all customers in the table's natural row order
func (db *DB) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := db.query(ctx, `
		SELECT CustomerID, CompanyName, Address, PostalCode, City, Country
		FROM Customers
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		var c Customer
		var name, address, postalCode, city, country sql.NullString
		if err := rows.Scan(&c.ID, &name, &address, &postalCode, &city, &country); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		c.Name = nullText(name)
		c.FullAddress = FullAddress(address, postalCode, city, country)
		customers = append(customers, c)
	}

	return customers, rows.Err()
}
