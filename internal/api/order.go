package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salesdesk/salesdesk/internal/domain/order"
)

type orderItemRequest struct {
	SKUID    int64           `json:"sku_id"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type orderRequest struct {
	CustomerID  int64              `json:"customer_id"`
	Items       []orderItemRequest `json:"items"`
	Paid        bool               `json:"paid"`
	InvoiceNo   string             `json:"invoice_no"`
	InvoiceDate string             `json:"invoice_date"`
}

// toDomain converts the request DTO into a service request.
func (req *orderRequest) toDomain() (order.Request, error) {
	var invoiceDate time.Time
	if req.InvoiceDate != "" {
		var err error
		invoiceDate, err = time.Parse(dateFormat, req.InvoiceDate)
		if err != nil {
			// Also accept full timestamps from clients sending RFC 3339.
			invoiceDate, err = time.Parse(time.RFC3339, req.InvoiceDate)
			if err != nil {
				return order.Request{}, errors.Errorf("invalid invoice_date %q", req.InvoiceDate)
			}
		}
	}

	items := make([]order.ItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.ItemInput{
			SKUID:    item.SKUID,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return order.Request{
		CustomerID:  req.CustomerID,
		Items:       items,
		Paid:        req.Paid,
		InvoiceNo:   req.InvoiceNo,
		InvoiceDate: invoiceDate,
	}, nil
}

// listOrders returns orders filtered by payment status, most recently
// modified first.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	status, err := order.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.orders.List(r.Context(), status)
	if err != nil {
		zctx.From(r.Context()).Error("List orders", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for i := range orders {
				encodeOrder(e, &orders[i])
			}
		})
	})
}

// createOrder creates a sale order and applies its inventory side effect.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	domainReq, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.Create(r.Context(), domainReq)
	if err != nil {
		h.mapOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeOrder(e, o) })
}

// updateOrder replaces an existing order with re-validated data.
func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	domainReq, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.Update(r.Context(), id, domainReq)
	if err != nil {
		h.mapOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeOrder(e, o) })
}

// markOrderPaid completes an order.
func (h *Handler) markOrderPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.MarkPaid(r.Context(), id)
	if err != nil {
		h.mapOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeOrder(e, o) })
}

// mapOrderError converts domain errors to API error responses.
func (h *Handler) mapOrderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, order.ErrEmptyItems) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var iqErr *order.InvalidQuantityError
	if errors.As(err, &iqErr) {
		writeError(w, http.StatusUnprocessableEntity, iqErr.Error())
		return
	}

	var cnfErr *order.CustomerNotFoundError
	if errors.As(err, &cnfErr) {
		writeError(w, http.StatusNotFound, cnfErr.Error())
		return
	}

	var onfErr *order.OrderNotFoundError
	if errors.As(err, &onfErr) {
		writeError(w, http.StatusNotFound, onfErr.Error())
		return
	}

	zctx.From(r.Context()).Error("Order operation", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
