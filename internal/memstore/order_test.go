package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/salesdesk/internal/domain/order"
)

func testOrder(paid bool, modified time.Time) order.SaleOrder {
	return order.SaleOrder{
		CustomerID:   1,
		CustomerName: "Acme Traders",
		Items: []order.OrderItem{
			{SKUID: 10, Price: decimal.NewFromInt(100), Quantity: 1, ProductName: "Widget"},
		},
		Paid:         paid,
		InvoiceNo:    "INV-1",
		CreatedAt:    modified,
		LastModified: modified,
		TotalPrice:   decimal.NewFromInt(100),
	}
}

func TestOrderRepository_InsertAssignsMonotonicIDs(t *testing.T) {
	r := NewOrderRepository()
	ctx := context.Background()
	now := time.Now()

	for want := int64(1); want <= 4; want++ {
		o := testOrder(false, now)
		require.NoError(t, r.Insert(ctx, &o))
		assert.Equal(t, want, o.ID)
	}
}

func TestOrderRepository_GetByID(t *testing.T) {
	r := NewOrderRepository()
	ctx := context.Background()

	o := testOrder(false, time.Now())
	require.NoError(t, r.Insert(ctx, &o))

	got, err := r.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-1", got.InvoiceNo)

	_, err = r.GetByID(ctx, 99)
	var onfErr *order.OrderNotFoundError
	require.ErrorAs(t, err, &onfErr)
	assert.Equal(t, int64(99), onfErr.OrderID)
}

func TestOrderRepository_ReplaceMissing(t *testing.T) {
	r := NewOrderRepository()

	o := testOrder(false, time.Now())
	o.ID = 5
	var onfErr *order.OrderNotFoundError
	require.ErrorAs(t, r.Replace(context.Background(), &o), &onfErr)
}

func TestOrderRepository_StatusPartition(t *testing.T) {
	r := NewOrderRepository()
	ctx := context.Background()
	now := time.Now()

	for i := range 6 {
		o := testOrder(i%2 == 0, now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, r.Insert(ctx, &o))
	}

	active, err := r.ListByStatus(ctx, order.StatusActive)
	require.NoError(t, err)
	completed, err := r.ListByStatus(ctx, order.StatusCompleted)
	require.NoError(t, err)

	// The two sets partition the full list: no overlap, no omission.
	assert.Len(t, active, 3)
	assert.Len(t, completed, 3)
	seen := make(map[int64]bool)
	for _, o := range active {
		assert.False(t, o.Paid)
		seen[o.ID] = true
	}
	for _, o := range completed {
		assert.True(t, o.Paid)
		assert.False(t, seen[o.ID])
		seen[o.ID] = true
	}
	assert.Len(t, seen, 6)
}

func TestOrderRepository_SortedByLastModifiedDesc(t *testing.T) {
	r := NewOrderRepository()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	// Inserted out of timestamp order on purpose.
	for _, offset := range []time.Duration{2 * time.Hour, time.Hour, 3 * time.Hour} {
		o := testOrder(false, base.Add(offset))
		require.NoError(t, r.Insert(ctx, &o))
	}

	got, err := r.ListByStatus(ctx, order.StatusActive)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i-1].LastModified.Before(got[i].LastModified))
	}
}

func TestOrderRepository_SortTiesKeepInsertionOrder(t *testing.T) {
	r := NewOrderRepository()
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for range 3 {
		o := testOrder(false, now)
		require.NoError(t, r.Insert(ctx, &o))
	}

	got, err := r.ListByStatus(ctx, order.StatusActive)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestOrderRepository_ReplaceKeepsPosition(t *testing.T) {
	r := NewOrderRepository()
	ctx := context.Background()
	now := time.Now()

	first := testOrder(false, now)
	require.NoError(t, r.Insert(ctx, &first))
	second := testOrder(false, now.Add(time.Minute))
	require.NoError(t, r.Insert(ctx, &second))

	first.Paid = true
	first.LastModified = now.Add(2 * time.Minute)
	require.NoError(t, r.Replace(ctx, &first))

	completed, err := r.ListByStatus(ctx, order.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, first.ID, completed[0].ID)

	active, err := r.ListByStatus(ctx, order.StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}
