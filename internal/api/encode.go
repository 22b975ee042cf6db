package api

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"

	"github.com/salesdesk/salesdesk/internal/domain/catalog"
	"github.com/salesdesk/salesdesk/internal/domain/order"
)

const dateFormat = "2006-01-02"

// writeJSON encodes a response body with jx and writes it with the given
// status code.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	e := &jx.Encoder{}
	encode(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the standard {code, message} error body.
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(code) })
			e.Field("message", func(e *jx.Encoder) { e.Str(message) })
		})
	})
}

func encodeOrder(e *jx.Encoder, o *order.SaleOrder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(o.ID) })
		e.Field("customer_id", func(e *jx.Encoder) { e.Int64(o.CustomerID) })
		e.Field("customer_name", func(e *jx.Encoder) { e.Str(o.CustomerName) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range o.Items {
					encodeOrderItem(e, &o.Items[i])
				}
			})
		})
		e.Field("paid", func(e *jx.Encoder) { e.Bool(o.Paid) })
		e.Field("invoice_no", func(e *jx.Encoder) { e.Str(o.InvoiceNo) })
		e.Field("invoice_date", func(e *jx.Encoder) {
			if o.InvoiceDate.IsZero() {
				e.Null()
				return
			}
			e.Str(o.InvoiceDate.Format(dateFormat))
		})
		e.Field("created_at", func(e *jx.Encoder) { e.Str(o.CreatedAt.Format(time.RFC3339Nano)) })
		e.Field("last_modified", func(e *jx.Encoder) { e.Str(o.LastModified.Format(time.RFC3339Nano)) })
		e.Field("total_price", func(e *jx.Encoder) { e.Float64(o.TotalPrice.InexactFloat64()) })
	})
}

func encodeOrderItem(e *jx.Encoder, item *order.OrderItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("sku_id", func(e *jx.Encoder) { e.Int64(item.SKUID) })
		e.Field("price", func(e *jx.Encoder) { e.Float64(item.Price.InexactFloat64()) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
		e.Field("product_name", func(e *jx.Encoder) { e.Str(item.ProductName) })
	})
}

func encodeCustomer(e *jx.Encoder, c *catalog.Customer) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(c.ID) })
		e.Field("account_id", func(e *jx.Encoder) { e.Int64(c.AccountID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(c.Profile.Name) })
		e.Field("email", func(e *jx.Encoder) { e.Str(c.Profile.Email) })
		e.Field("postal_code", func(e *jx.Encoder) { e.Str(c.Profile.PostalCode) })
		e.Field("location", func(e *jx.Encoder) { e.Str(c.Profile.Location) })
		e.Field("tag", func(e *jx.Encoder) { e.Str(c.Profile.Tag) })
		e.Field("image_url", func(e *jx.Encoder) { e.Str(c.Profile.ImageURL) })
		e.Field("tax_id", func(e *jx.Encoder) { e.Str(c.Profile.TaxID) })
	})
}

func encodeProduct(e *jx.Encoder, p *catalog.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(p.ID) })
		e.Field("display_id", func(e *jx.Encoder) { e.Str(p.DisplayID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("category", func(e *jx.Encoder) { e.Str(p.Category) })
		e.Field("features", func(e *jx.Encoder) { e.Str(p.Features) })
		e.Field("brand", func(e *jx.Encoder) { e.Str(p.Brand) })
		e.Field("skus", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range p.SKUs {
					encodeSKU(e, &p.SKUs[i])
				}
			})
		})
		e.Field("created_at", func(e *jx.Encoder) { e.Str(p.CreatedAt.Format(time.RFC3339Nano)) })
		e.Field("updated_at", func(e *jx.Encoder) { e.Str(p.UpdatedAt.Format(time.RFC3339Nano)) })
	})
}

func encodeSKU(e *jx.Encoder, s *catalog.SKU) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(s.ID) })
		e.Field("selling_price", func(e *jx.Encoder) { e.Float64(s.SellingPrice.InexactFloat64()) })
		e.Field("mrp", func(e *jx.Encoder) { e.Float64(s.MaxRetailPrice.InexactFloat64()) })
		e.Field("amount", func(e *jx.Encoder) { e.Float64(s.Amount.InexactFloat64()) })
		e.Field("unit", func(e *jx.Encoder) { e.Str(s.Unit) })
		e.Field("inventory", func(e *jx.Encoder) { e.Int64(s.Inventory) })
	})
}
