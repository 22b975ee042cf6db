package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/salesdesk/internal/domain/catalog"
)

// --- Mock implementations ---

type mockCatalog struct {
	customers  map[int64]catalog.Customer
	products   []catalog.Product
	decrements map[int64]int
}

func (m *mockCatalog) ListCustomers(_ context.Context) ([]catalog.Customer, error) {
	out := make([]catalog.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCatalog) ListProducts(_ context.Context) ([]catalog.Product, error) {
	return m.products, nil
}

func (m *mockCatalog) FindCustomer(_ context.Context, id int64) (*catalog.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, catalog.ErrCustomerNotFound
	}
	return &c, nil
}

func (m *mockCatalog) ResolveSKU(_ context.Context, skuID int64) (*catalog.Product, *catalog.SKU, error) {
	for i := range m.products {
		for j := range m.products[i].SKUs {
			if m.products[i].SKUs[j].ID == skuID {
				return &m.products[i], &m.products[i].SKUs[j], nil
			}
		}
	}
	return nil, nil, catalog.ErrSKUNotFound
}

func (m *mockCatalog) DecrementInventory(_ context.Context, skuID int64, qty int) error {
	if _, _, err := m.ResolveSKU(context.Background(), skuID); err != nil {
		return err
	}
	if m.decrements == nil {
		m.decrements = make(map[int64]int)
	}
	m.decrements[skuID] += qty
	return nil
}

type mockOrderRepo struct {
	orders []SaleOrder
}

func (m *mockOrderRepo) ListByStatus(_ context.Context, status Status) ([]SaleOrder, error) {
	var out []SaleOrder
	for _, o := range m.orders {
		if o.Paid == (status == StatusCompleted) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*SaleOrder, error) {
	for _, o := range m.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, &OrderNotFoundError{OrderID: id}
}

func (m *mockOrderRepo) Insert(_ context.Context, o *SaleOrder) error {
	var maxID int64
	for _, e := range m.orders {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	o.ID = maxID + 1
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockOrderRepo) Replace(_ context.Context, o *SaleOrder) error {
	for i := range m.orders {
		if m.orders[i].ID == o.ID {
			m.orders[i] = *o
			return nil
		}
	}
	return &OrderNotFoundError{OrderID: o.ID}
}

// --- Helpers ---

func newTestCatalog() *mockCatalog {
	return &mockCatalog{
		customers: map[int64]catalog.Customer{
			1: {ID: 1, Profile: catalog.CustomerProfile{Name: "Acme Traders"}},
		},
		products: []catalog.Product{
			{
				ID:   1,
				Name: "Widget",
				SKUs: []catalog.SKU{{
					ID:           10,
					SellingPrice: decimal.NewFromInt(100),
					Inventory:    50,
					ProductID:    1,
				}},
			},
		},
	}
}

func newTestService(cat catalog.Store, repo Repository) *Service {
	svc := NewService(cat, repo)
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func widgetRequest() Request {
	return Request{
		CustomerID: 1,
		Items: []ItemInput{
			{SKUID: 10, Price: decimal.NewFromInt(100), Quantity: 3},
		},
		InvoiceNo:   "INV-1",
		InvoiceDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// --- Tests ---

func TestCreate_EmptyItems(t *testing.T) {
	svc := newTestService(newTestCatalog(), &mockOrderRepo{})

	_, err := svc.Create(context.Background(), Request{CustomerID: 1})
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestCreate_InvalidQuantity(t *testing.T) {
	svc := newTestService(newTestCatalog(), &mockOrderRepo{})

	_, err := svc.Create(context.Background(), Request{
		CustomerID: 1,
		Items:      []ItemInput{{SKUID: 10, Quantity: 0}},
	})

	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, int64(10), iqErr.SKUID)
}

func TestCreate_CustomerNotFound(t *testing.T) {
	svc := newTestService(newTestCatalog(), &mockOrderRepo{})

	req := widgetRequest()
	req.CustomerID = 99
	_, err := svc.Create(context.Background(), req)

	var cnfErr *CustomerNotFoundError
	require.ErrorAs(t, err, &cnfErr)
	assert.Equal(t, int64(99), cnfErr.CustomerID)
}

func TestCreate_WidgetScenario(t *testing.T) {
	cat := newTestCatalog()
	svc := newTestService(cat, &mockOrderRepo{})

	o, err := svc.Create(context.Background(), widgetRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), o.ID)
	assert.True(t, decimal.NewFromInt(300).Equal(o.TotalPrice))
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Widget", o.Items[0].ProductName)
	assert.Equal(t, "Acme Traders", o.CustomerName)
	assert.Equal(t, "INV-1", o.InvoiceNo)
	assert.Equal(t, o.CreatedAt, o.LastModified)
	assert.Equal(t, 3, cat.decrements[10])
}

func TestCreate_TotalAcrossManyItems(t *testing.T) {
	svc := newTestService(newTestCatalog(), &mockOrderRepo{})

	o, err := svc.Create(context.Background(), Request{
		CustomerID: 1,
		Items: []ItemInput{
			{SKUID: 10, Price: decimal.RequireFromString("12.50"), Quantity: 4},
			{SKUID: 77, Price: decimal.RequireFromString("3.25"), Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("56.50").Equal(o.TotalPrice))
}

func TestCreate_UnknownSKULenient(t *testing.T) {
	cat := newTestCatalog()
	svc := newTestService(cat, &mockOrderRepo{})

	req := widgetRequest()
	req.Items = []ItemInput{{SKUID: 404, Price: decimal.NewFromInt(5), Quantity: 1}}
	o, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, UnknownProductName, o.Items[0].ProductName)
	assert.Empty(t, cat.decrements)
}

func TestCreate_IDsMonotonic(t *testing.T) {
	svc := newTestService(newTestCatalog(), &mockOrderRepo{})

	for want := int64(1); want <= 3; want++ {
		o, err := svc.Create(context.Background(), widgetRequest())
		require.NoError(t, err)
		assert.Equal(t, want, o.ID)
	}
}

func TestCreate_GeneratesInvoiceNo(t *testing.T) {
	svc := newTestService(newTestCatalog(), &mockOrderRepo{})

	req := widgetRequest()
	req.InvoiceNo = ""
	o, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Regexp(t, `^INV-[0-9A-F]{8}$`, o.InvoiceNo)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newTestCatalog(), &mockOrderRepo{})

	_, err := svc.Update(context.Background(), 42, widgetRequest())

	var onfErr *OrderNotFoundError
	require.ErrorAs(t, err, &onfErr)
	assert.Equal(t, int64(42), onfErr.OrderID)
}

func TestUpdate_RecomputesWithoutInventoryEffect(t *testing.T) {
	cat := newTestCatalog()
	svc := newTestService(cat, &mockOrderRepo{})

	created, err := svc.Create(context.Background(), widgetRequest())
	require.NoError(t, err)
	require.Equal(t, 3, cat.decrements[10])

	req := widgetRequest()
	req.Items[0].Quantity = 5
	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(500).Equal(updated.TotalPrice))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.LastModified.After(created.LastModified))
	// Update never touches the catalog.
	assert.Equal(t, 3, cat.decrements[10])
}

func TestUpdate_CanUnpay(t *testing.T) {
	svc := newTestService(newTestCatalog(), &mockOrderRepo{})

	req := widgetRequest()
	req.Paid = true
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.True(t, created.Paid)

	req.Paid = false
	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.False(t, updated.Paid)
}

func TestMarkPaid_NotFound(t *testing.T) {
	svc := newTestService(newTestCatalog(), &mockOrderRepo{})

	_, err := svc.MarkPaid(context.Background(), 7)

	var onfErr *OrderNotFoundError
	require.ErrorAs(t, err, &onfErr)
}

func TestMarkPaid(t *testing.T) {
	cat := newTestCatalog()
	repo := &mockOrderRepo{}
	svc := newTestService(cat, repo)

	created, err := svc.Create(context.Background(), widgetRequest())
	require.NoError(t, err)
	require.False(t, created.Paid)

	paid, err := svc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)

	assert.True(t, paid.Paid)
	assert.True(t, paid.LastModified.After(created.LastModified))
	assert.True(t, decimal.NewFromInt(300).Equal(paid.TotalPrice))
	// No further inventory effect.
	assert.Equal(t, 3, cat.decrements[10])

	// Idempotent state-wise, but the timestamp still moves.
	again, err := svc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, again.Paid)
	assert.True(t, again.LastModified.After(paid.LastModified))
}

func TestList_DelegatesStatusFilter(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := newTestService(newTestCatalog(), repo)

	req := widgetRequest()
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	req.Paid = true
	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)

	active, err := svc.List(context.Background(), StatusActive)
	require.NoError(t, err)
	completed, err := svc.List(context.Background(), StatusCompleted)
	require.NoError(t, err)

	require.Len(t, active, 1)
	require.Len(t, completed, 1)
	assert.False(t, active[0].Paid)
	assert.True(t, completed[0].Paid)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("active")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s)

	s, err = ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	_, err = ParseStatus("archived")
	require.ErrorIs(t, err, ErrInvalidStatus)
}
