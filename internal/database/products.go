package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Product is the id and name of a Products row
type Product struct {
	ID   int64
	Name string
}

// ProductExtended is a product with its category and supplier names resolved
type ProductExtended struct {
	ID       int64
	Name     string
	Category string
	Supplier string
}

// GetProduct retrieves a product by id
func (db *DB) GetProduct(ctx context.Context, id int64) (*Product, error) {
	p := &Product{}
	var name sql.NullString
	err := db.queryRow(ctx, "SELECT ProductID, ProductName FROM Products WHERE ProductID = ?", id).
		Scan(&p.ID, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	p.Name = nullText(name)
	return p, nil
}

// ListProductsExtended returns products joined with their category and supplier.
// Products missing either relation are not returned.
func (db *DB) ListProductsExtended(ctx context.Context) ([]ProductExtended, error) {
	rows, err := db.query(ctx, `
		SELECT p.ProductID, p.ProductName, c.CategoryName, s.CompanyName
		FROM Products p
		JOIN Categories c ON c.CategoryID = p.CategoryID
		JOIN Suppliers s ON s.SupplierID = p.SupplierID
		ORDER BY p.ProductID
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list extended products: %w", err)
	}
	defer rows.Close()

	products := make([]ProductExtended, 0)
	for rows.Next() {
		var p ProductExtended
		var name, category, supplier sql.NullString
		if err := rows.Scan(&p.ID, &name, &category, &supplier); err != nil {
			return nil, fmt.Errorf("failed to scan extended product: %w", err)
		}
		p.Name = nullText(name)
		p.Category = nullText(category)
		p.Supplier = nullText(supplier)
		products = append(products, p)
	}

	return products, rows.Err()
}

// productExists reports whether a product row with id exists
func (db *DB) productExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := db.queryRow(ctx, "SELECT 1 FROM Products WHERE ProductID = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check product: %w", err)
	}
	return true, nil
}
