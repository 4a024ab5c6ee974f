package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductOrder is one order line for a product with its discounted total
type ProductOrder struct {
	ID         int64
	Customer   string
	Quantity   int64
	TotalPrice decimal.Decimal
}

// ListProductOrders returns every order line referencing the product.
// A product without order lines yields an empty slice; an unknown product yields ErrNotFound.
func (db *DB) ListProductOrders(ctx context.Context, productID int64) ([]ProductOrder, error) {
	exists, err := db.productExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	rows, err := db.query(ctx, `
		SELECT o.OrderID, c.CompanyName, od.Quantity, od.UnitPrice, od.Discount
		FROM "Order Details" od
		JOIN Orders o ON o.OrderID = od.OrderID
		JOIN Customers c ON c.CustomerID = o.CustomerID
		WHERE od.ProductID = ?
		ORDER BY o.OrderID
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product orders: %w", err)
	}
	defer rows.Close()

	orders := make([]ProductOrder, 0)
	for rows.Next() {
		var o ProductOrder
		var customer sql.NullString
		var unitPrice, discount float64
		if err := rows.Scan(&o.ID, &customer, &o.Quantity, &unitPrice, &discount); err != nil {
			return nil, fmt.Errorf("failed to scan product order: %w", err)
		}
		o.Customer = nullText(customer)
		o.TotalPrice = LineTotal(unitPrice, o.Quantity, discount)
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// LineTotal computes (price*quantity) - (discount*price*quantity) rounded
// half away from zero to 2 decimal places.
func LineTotal(unitPrice float64, quantity int64, discount float64) decimal.Decimal {
	gross := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(quantity))
	return gross.Sub(decimal.NewFromFloat(discount).Mul(gross)).Round(2)
}
