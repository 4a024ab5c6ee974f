package database

import (
	"database/sql"
	"strings"
)

// nullText converts a sql.NullString to a string (empty if not valid).
// Invalid UTF-8 sequences are dropped; some Northwind exports carry stray bytes.
func nullText(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return strings.ToValidUTF8(n.String, "")
}

// FullAddress joins the four nullable address parts with single spaces.
// Missing parts become empty strings but keep their separator.
func FullAddress(address, postalCode, city, country sql.NullString) string {
	return strings.Join([]string{
		nullText(address),
		nullText(postalCode),
		nullText(city),
		nullText(country),
	}, " ")
}
