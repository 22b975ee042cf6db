package order

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salesdesk/salesdesk/internal/domain/catalog"
)

// ItemInput is a single line item as submitted by the operator.
type ItemInput struct {
	SKUID    int64
	Price    decimal.Decimal
	Quantity int
}

// Request holds the operator-submitted fields shared by order creation
// and update.
type Request struct {
	CustomerID  int64
	Items       []ItemInput
	Paid        bool
	InvoiceNo   string
	InvoiceDate time.Time
}

// Service implements the order management rules: validation, SKU
// resolution, total computation, and the inventory side effect of
// order creation.
type Service struct {
	catalog catalog.Store
	orders  Repository

	// now is the clock used for CreatedAt/LastModified stamps.
	now func() time.Time
}

// NewService creates an order Service on top of the catalog store and
// order repository.
func NewService(cat catalog.Store, orders Repository) *Service {
	return &Service{
		catalog: cat,
		orders:  orders,
		now:     time.Now,
	}
}

// Create validates and assembles a new sale order, persists it, and
// decrements catalog inventory by each item's quantity. Inventory is
// touched only here, never on update or mark-paid.
func (s *Service) Create(ctx context.Context, req Request) (*SaleOrder, error) {
	o, err := s.assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	o.CreatedAt = now
	o.LastModified = now

	if err := s.orders.Insert(ctx, o); err != nil {
		return nil, errors.Wrap(err, "insert order")
	}

	s.applyInventory(ctx, o)

	return o, nil
}

// Update replaces an existing order with re-validated, re-assembled data.
// CreatedAt is preserved, LastModified refreshed, and the catalog is left
// untouched. The paid flag is written exactly as submitted, so an update
// may move a completed order back to active.
func (s *Service) Update(ctx context.Context, id int64, req Request) (*SaleOrder, error) {
	existing, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o, err := s.assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	o.ID = existing.ID
	o.CreatedAt = existing.CreatedAt
	o.LastModified = s.now()

	if err := s.orders.Replace(ctx, o); err != nil {
		return nil, errors.Wrap(err, "replace order")
	}
	return o, nil
}

// MarkPaid sets the paid flag and refreshes LastModified, leaving every
// other field untouched. Marking an already-paid order is a no-op
// state-wise but still refreshes LastModified.
func (s *Service) MarkPaid(ctx context.Context, id int64) (*SaleOrder, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Paid = true
	o.LastModified = s.now()

	if err := s.orders.Replace(ctx, o); err != nil {
		return nil, errors.Wrap(err, "replace order")
	}
	return o, nil
}

// List returns the orders in the given payment state, most recently
// modified first.
func (s *Service) List(ctx context.Context, status Status) ([]SaleOrder, error) {
	return s.orders.ListByStatus(ctx, status)
}

// assemble validates the request and builds an unsaved order: customer
// resolved, item product names attached, total computed.
func (s *Service) assemble(ctx context.Context, req Request) (*SaleOrder, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{SKUID: item.SKUID}
		}
	}

	cust, err := s.catalog.FindCustomer(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, catalog.ErrCustomerNotFound) {
			return nil, &CustomerNotFoundError{CustomerID: req.CustomerID}
		}
		return nil, errors.Wrapf(err, "find customer %d", req.CustomerID)
	}

	items := make([]OrderItem, len(req.Items))
	total := decimal.Zero
	for i, item := range req.Items {
		name := UnknownProductName
		p, _, err := s.catalog.ResolveSKU(ctx, item.SKUID)
		switch {
		case err == nil:
			name = p.Name
		case errors.Is(err, catalog.ErrSKUNotFound):
			// Lenient by contract: an unresolved SKU degrades to the
			// sentinel name instead of failing the operation.
		default:
			return nil, errors.Wrapf(err, "resolve sku %d", item.SKUID)
		}

		items[i] = OrderItem{
			SKUID:       item.SKUID,
			Price:       item.Price,
			Quantity:    item.Quantity,
			ProductName: name,
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	invoiceNo := req.InvoiceNo
	if invoiceNo == "" {
		invoiceNo = generateInvoiceNo()
	}

	return &SaleOrder{
		CustomerID:   cust.ID,
		CustomerName: cust.Profile.Name,
		Items:        items,
		Paid:         req.Paid,
		InvoiceNo:    invoiceNo,
		InvoiceDate:  req.InvoiceDate,
		TotalPrice:   total.Round(2),
	}, nil
}

// applyInventory decrements each item's SKU inventory. It runs after the
// order is persisted; a decrement against an unknown SKU follows the same
// lenient rule as name resolution and is only logged.
func (s *Service) applyInventory(ctx context.Context, o *SaleOrder) {
	for _, item := range o.Items {
		err := s.catalog.DecrementInventory(ctx, item.SKUID, item.Quantity)
		if err != nil {
			zctx.From(ctx).Warn("Inventory decrement skipped",
				zap.Int64("order_id", o.ID),
				zap.Int64("sku_id", item.SKUID),
				zap.Error(err),
			)
		}
	}
}

// generateInvoiceNo produces an operator-visible invoice number for
// orders submitted without one.
func generateInvoiceNo() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "INV-" + strings.ToUpper(id[:8])
}
