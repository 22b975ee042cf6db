package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Status selects a payment-state slice of the order list.
type Status string

const (
	// StatusActive selects unpaid orders.
	StatusActive Status = "active"
	// StatusCompleted selects paid orders.
	StatusCompleted Status = "completed"
)

// ErrInvalidStatus is returned by ParseStatus for anything other than
// "active" or "completed".
var ErrInvalidStatus = errors.New(`status must be "active" or "completed"`)

// ParseStatus converts a raw status string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusCompleted:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// UnknownProductName is the display name attached to an order item whose
// SKU reference cannot be resolved against the catalog. Unresolved SKUs
// are deliberately not an error.
const UnknownProductName = "Unknown Product"

// OrderItem is one line of a sale order. Price is captured at order time
// and is independent of the SKU's current selling price. ProductName is
// denormalized for display only.
type OrderItem struct {
	SKUID       int64
	Price       decimal.Decimal
	Quantity    int
	ProductName string
}

// SaleOrder is a customer order composed of SKU-referencing line items.
// TotalPrice always equals the sum of Price*Quantity over Items; it is
// recomputed on every create and update, never mutated independently.
type SaleOrder struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	Items        []OrderItem
	Paid         bool
	InvoiceNo    string
	InvoiceDate  time.Time
	CreatedAt    time.Time
	LastModified time.Time
	TotalPrice   decimal.Decimal
}

// Repository defines persistence operations for sale orders.
type Repository interface {
	// ListByStatus returns the orders matching the payment status, most
	// recently modified first. Ties keep insertion order.
	ListByStatus(ctx context.Context, status Status) ([]SaleOrder, error)

	// GetByID returns an OrderNotFoundError when no order has the id.
	GetByID(ctx context.Context, id int64) (*SaleOrder, error)

	// Insert assigns the next identifier (max existing + 1, starting at 1),
	// sets it on the order, and appends it.
	Insert(ctx context.Context, o *SaleOrder) error

	// Replace overwrites the stored order with o.ID. Returns an
	// OrderNotFoundError when no such order exists.
	Replace(ctx context.Context, o *SaleOrder) error
}

// ErrEmptyItems rejects orders with no line items.
var ErrEmptyItems = errors.New("items required")

// CustomerNotFoundError indicates an order referenced a customer that does
// not exist in the catalog.
type CustomerNotFoundError struct {
	CustomerID int64
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer %d not found", e.CustomerID)
}

// OrderNotFoundError indicates an update or mark-paid targeted an order
// identifier that does not exist.
type OrderNotFoundError struct {
	OrderID int64
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %d not found", e.OrderID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	SKUID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for sku %d", e.SKUID)
}
