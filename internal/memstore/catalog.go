// Package memstore provides the in-memory implementations of the catalog
// store and order repository. State lives for the process lifetime only;
// there is deliberately no durable storage behind it.
package memstore

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/salesdesk/salesdesk/internal/domain/catalog"
)

var _ catalog.Store = (*CatalogStore)(nil)

// CatalogStore holds the seeded customer and product lists. Products are
// the only mutable part, and only through inventory decrements. A
// SKU-to-product index built at construction keeps resolution O(1); the
// index never needs rebuilding because decrements do not move SKUs.
type CatalogStore struct {
	mu        sync.RWMutex
	customers []catalog.Customer
	products  []catalog.Product

	customerIdx map[int64]int // customer ID -> index in customers
	skuIdx      map[int64]int // SKU ID -> index in products
}

// NewCatalogStore creates a store over the seeded catalog data.
func NewCatalogStore(customers []catalog.Customer, products []catalog.Product) *CatalogStore {
	s := &CatalogStore{
		customers:   customers,
		products:    products,
		customerIdx: make(map[int64]int, len(customers)),
		skuIdx:      make(map[int64]int),
	}
	for i, c := range customers {
		s.customerIdx[c.ID] = i
	}
	for i, p := range products {
		for _, sku := range p.SKUs {
			s.skuIdx[sku.ID] = i
		}
	}
	return s
}

// ListCustomers returns a snapshot of the full customer list.
func (s *CatalogStore) ListCustomers(_ context.Context) ([]catalog.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Customer, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

// ListProducts returns a snapshot of the full product list, including
// each product's SKUs with current inventory.
func (s *CatalogStore) ListProducts(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Product, len(s.products))
	for i, p := range s.products {
		out[i] = cloneProduct(p)
	}
	return out, nil
}

// FindCustomer returns the customer with the given id.
func (s *CatalogStore) FindCustomer(_ context.Context, id int64) (*catalog.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.customerIdx[id]
	if !ok {
		return nil, catalog.ErrCustomerNotFound
	}
	c := s.customers[i]
	return &c, nil
}

// ResolveSKU locates a SKU and its owning product through the index.
func (s *CatalogStore) ResolveSKU(_ context.Context, skuID int64) (*catalog.Product, *catalog.SKU, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.skuIdx[skuID]
	if !ok {
		return nil, nil, catalog.ErrSKUNotFound
	}

	p := cloneProduct(s.products[i])
	for j := range p.SKUs {
		if p.SKUs[j].ID == skuID {
			return &p, &p.SKUs[j], nil
		}
	}
	return nil, nil, errors.Errorf("sku index out of sync for sku %d", skuID)
}

// DecrementInventory subtracts qty from the SKU's on-hand quantity in
// place. No floor check is applied: the store trusts its caller and the
// result may go negative. Last writer wins.
func (s *CatalogStore) DecrementInventory(_ context.Context, skuID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.skuIdx[skuID]
	if !ok {
		return catalog.ErrSKUNotFound
	}

	skus := s.products[i].SKUs
	for j := range skus {
		if skus[j].ID == skuID {
			skus[j].Inventory -= int64(qty)
			return nil
		}
	}
	return errors.Errorf("sku index out of sync for sku %d", skuID)
}

// cloneProduct copies a product deeply enough that callers cannot reach
// the store's SKU slice.
func cloneProduct(p catalog.Product) catalog.Product {
	out := p
	out.SKUs = make([]catalog.SKU, len(p.SKUs))
	copy(out.SKUs, p.SKUs)
	return out
}
