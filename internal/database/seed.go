package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Seed inserts the fixture subset of the Northwind dataset.
// Rows that already exist are kept, so seeding a full Northwind file changes nothing.
func (db *DB) Seed(ctx context.Context) error {
	if err := db.Transaction(ctx, func(tx *sql.Tx) error {
		return execStatements(ctx, tx, seedSQL)
	}); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	log.Info().Str("path", db.path).Msg("Seed dataset loaded")
	return nil
}

const seedSQL = `
	INSERT OR IGNORE INTO Categories (CategoryID, CategoryName, Description) VALUES
		(1, 'Beverages', 'Soft drinks, coffees, teas, beers, and ales'),
		(2, 'Condiments', 'Sweet and savory sauces, relishes, spreads, and seasonings'),
		(3, 'Confections', 'Desserts, candies, and sweet breads'),
		(4, 'Dairy Products', 'Cheeses'),
		(5, 'Grains/Cereals', 'Breads, crackers, pasta, and cereal'),
		(6, 'Meat/Poultry', 'Prepared meats'),
		(7, 'Produce', 'Dried fruit and bean curd'),
		(8, 'Seafood', 'Seaweed and fish');

	INSERT OR IGNORE INTO Suppliers (SupplierID, CompanyName, City, Country) VALUES
		(1, 'Exotic Liquids', 'London', 'UK'),
		(4, 'Tokyo Traders', 'Tokyo', 'Japan');

	INSERT OR IGNORE INTO Products (ProductID, ProductName, SupplierID, CategoryID, UnitPrice) VALUES
		(1, 'Chai', 1, 1, 18),
		(2, 'Chang', 1, 1, 19),
		(10, 'Ikura', 4, 8, 31);

	INSERT OR IGNORE INTO Employees (EmployeeID, LastName, FirstName, Title, City, Country) VALUES
		(1, 'Davolio', 'Nancy', 'Sales Representative', 'Seattle', 'USA'),
		(2, 'Fuller', 'Andrew', 'Vice President, Sales', 'Tacoma', 'USA'),
		(3, 'Leverling', 'Janet', 'Sales Representative', 'Kirkland', 'USA'),
		(4, 'Peacock', 'Margaret', 'Sales Representative', 'Redmond', 'USA'),
		(5, 'Buchanan', 'Steven', 'Sales Manager', 'London', 'UK');

	INSERT OR IGNORE INTO Customers (CustomerID, CompanyName, ContactName, Address, City, Region, PostalCode, Country) VALUES
		('ALFKI', 'Alfreds Futterkiste', 'Maria Anders', 'Obere Str. 57', 'Berlin', NULL, '12209', 'Germany'),
		('ANATR', 'Ana Trujillo Emparedados y helados', 'Ana Trujillo', 'Avda. de la Constitución 2222', 'México D.F.', NULL, '05021', 'Mexico'),
		('HUNGO', 'Hungry Owl All-Night Grocers', 'Patricia McKenna', '8 Johnstown Road', 'Cork', 'Co. Cork', NULL, 'Ireland'),
		('QUICK', 'QUICK-Stop', 'Horst Kloss', 'Taucherstraße 10', 'Cunewalde', NULL, '01307', 'Germany');

	INSERT OR IGNORE INTO Orders (OrderID, CustomerID, EmployeeID, OrderDate, ShipCity, ShipCountry) VALUES
		(10273, 'QUICK', 3, '1996-08-05', 'Cunewalde', 'Germany'),
		(10285, 'QUICK', 1, '1996-08-20', 'Cunewalde', 'Germany');

	INSERT OR IGNORE INTO "Order Details" (OrderID, ProductID, UnitPrice, Quantity, Discount) VALUES
		(10273, 10, 24.8, 24, 0.05),
		(10285, 1, 14.4, 45, 0.2);
`
