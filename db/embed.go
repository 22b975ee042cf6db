// Package db provides the embedded catalog seed data.
package db

import _ "embed"

// Customers contains the default customer list as JSON.
//
//go:embed seed/customers.json
var Customers []byte

// Products contains the default product catalog as JSON, each product
// with its SKUs.
//
//go:embed seed/products.json
var Products []byte
