// Package catalog holds the reference data every sale order is built
// against: customers, products, and the SKUs that carry price and
// inventory. The catalog is seeded once at startup and mutated only
// through inventory decrements.
package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog lookups.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSKUNotFound      = errors.New("sku not found")
)

// Customer is a buyer account. Read-only reference data from the order
// service's perspective.
type Customer struct {
	ID        int64
	AccountID int64
	Profile   CustomerProfile
}

// CustomerProfile holds the displayable details of a customer.
type CustomerProfile struct {
	Name       string
	Email      string
	PostalCode string
	Location   string
	Tag        string
	ImageURL   string
	TaxID      string
}

// Product is a sellable catalog entry owning one or more SKUs.
type Product struct {
	ID        int64
	DisplayID string
	OwnerID   int64
	Name      string
	Category  string
	Features  string
	Brand     string
	SKUs      []SKU
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SKU is a purchasable variant of a product: one price, package and
// inventory unit. Inventory is a plain counter and may go negative;
// the store performs no availability checks on behalf of its callers.
type SKU struct {
	ID             int64
	SellingPrice   decimal.Decimal
	MaxRetailPrice decimal.Decimal
	Amount         decimal.Decimal
	Unit           string
	Inventory      int64
	ProductID      int64
}

// Store defines read access to the catalog plus the single mutation the
// order flow needs: decrementing a SKU's on-hand inventory.
type Store interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
	ListProducts(ctx context.Context) ([]Product, error)

	// FindCustomer returns ErrCustomerNotFound when no customer has the id.
	FindCustomer(ctx context.Context, id int64) (*Customer, error)

	// ResolveSKU locates a SKU and its owning product.
	// It returns ErrSKUNotFound when no product contains the SKU.
	ResolveSKU(ctx context.Context, skuID int64) (*Product, *SKU, error)

	// DecrementInventory subtracts qty from the SKU's on-hand quantity.
	// The result may go negative. Returns ErrSKUNotFound for unknown SKUs.
	DecrementInventory(ctx context.Context, skuID int64, qty int) error
}
