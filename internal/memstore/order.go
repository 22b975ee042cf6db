package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/salesdesk/salesdesk/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository keeps the canonical order list in memory, in insertion
// order. Orders are never deleted.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []order.SaleOrder
}

// NewOrderRepository returns an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// ListByStatus returns the orders matching the payment status, sorted by
// LastModified descending. The sort is stable, so orders touched at the
// same instant keep their insertion order.
func (r *OrderRepository) ListByStatus(_ context.Context, status order.Status) ([]order.SaleOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paid := status == order.StatusCompleted
	out := make([]order.SaleOrder, 0, len(r.orders))
	for _, o := range r.orders {
		if o.Paid == paid {
			out = append(out, cloneOrder(o))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	return out, nil
}

// GetByID returns a copy of the order with the given id.
func (r *OrderRepository) GetByID(_ context.Context, id int64) (*order.SaleOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			o := cloneOrder(r.orders[i])
			return &o, nil
		}
	}
	return nil, &order.OrderNotFoundError{OrderID: id}
}

// Insert assigns the next identifier (max existing + 1, defaulting to 1
// on an empty repository) and appends the order.
func (r *OrderRepository) Insert(_ context.Context, o *order.SaleOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for i := range r.orders {
		if r.orders[i].ID > maxID {
			maxID = r.orders[i].ID
		}
	}
	o.ID = maxID + 1
	r.orders = append(r.orders, cloneOrder(*o))
	return nil
}

// Replace overwrites the stored order carrying o.ID in place, keeping its
// position in the insertion-ordered list.
func (r *OrderRepository) Replace(_ context.Context, o *order.SaleOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			r.orders[i] = cloneOrder(*o)
			return nil
		}
	}
	return &order.OrderNotFoundError{OrderID: o.ID}
}

// cloneOrder copies an order deeply enough that callers cannot reach the
// stored item slice.
func cloneOrder(o order.SaleOrder) order.SaleOrder {
	out := o
	out.Items = make([]order.OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return out
}
