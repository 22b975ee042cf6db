// Package seed parses catalog seed data into domain entities. By default
// the embedded dataset is used; either list can be overridden with an
// external JSON file, optionally gzip-compressed.
package seed

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/salesdesk/salesdesk/db"
	"github.com/salesdesk/salesdesk/internal/domain/catalog"
)

// Source selects where seed data comes from. Empty fields fall back to
// the embedded dataset.
type Source struct {
	CustomersFile string
	ProductsFile  string
}

type customerJSON struct {
	ID         int64  `json:"id"`
	AccountID  int64  `json:"account_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	PostalCode string `json:"postal_code"`
	Location   string `json:"location"`
	Tag        string `json:"tag"`
	ImageURL   string `json:"image_url"`
	TaxID      string `json:"tax_id"`
}

type skuJSON struct {
	ID             int64           `json:"id"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	MaxRetailPrice decimal.Decimal `json:"mrp"`
	Amount         decimal.Decimal `json:"amount"`
	Unit           string          `json:"unit"`
	Inventory      int64           `json:"inventory"`
}

type productJSON struct {
	ID        int64     `json:"id"`
	DisplayID string    `json:"display_id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Features  string    `json:"features"`
	Brand     string    `json:"brand"`
	SKUs      []skuJSON `json:"skus"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Load reads and parses both seed lists concurrently.
func Load(ctx context.Context, src Source) ([]catalog.Customer, []catalog.Product, error) {
	var (
		customers []catalog.Customer
		products  []catalog.Product
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = loadCustomers(src.CustomersFile)
		return errors.Wrap(err, "customers")
	})
	g.Go(func() error {
		var err error
		products, err = loadProducts(src.ProductsFile)
		return errors.Wrap(err, "products")
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return customers, products, nil
}

func loadCustomers(path string) ([]catalog.Customer, error) {
	data, err := readSource(path, db.Customers)
	if err != nil {
		return nil, err
	}

	var raw []customerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	out := make([]catalog.Customer, len(raw))
	for i, c := range raw {
		out[i] = catalog.Customer{
			ID:        c.ID,
			AccountID: c.AccountID,
			Profile: catalog.CustomerProfile{
				Name:       c.Name,
				Email:      c.Email,
				PostalCode: c.PostalCode,
				Location:   c.Location,
				Tag:        c.Tag,
				ImageURL:   c.ImageURL,
				TaxID:      c.TaxID,
			},
		}
	}
	return out, nil
}

func loadProducts(path string) ([]catalog.Product, error) {
	data, err := readSource(path, db.Products)
	if err != nil {
		return nil, err
	}

	var raw []productJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	out := make([]catalog.Product, len(raw))
	for i, p := range raw {
		if len(p.SKUs) == 0 {
			return nil, errors.Errorf("product %d has no skus", p.ID)
		}
		skus := make([]catalog.SKU, len(p.SKUs))
		for j, s := range p.SKUs {
			skus[j] = catalog.SKU{
				ID:             s.ID,
				SellingPrice:   s.SellingPrice,
				MaxRetailPrice: s.MaxRetailPrice,
				Amount:         s.Amount,
				Unit:           s.Unit,
				Inventory:      s.Inventory,
				ProductID:      p.ID,
			}
		}
		out[i] = catalog.Product{
			ID:        p.ID,
			DisplayID: p.DisplayID,
			OwnerID:   p.OwnerID,
			Name:      p.Name,
			Category:  p.Category,
			Features:  p.Features,
			Brand:     p.Brand,
			SKUs:      skus,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
	}
	return out, nil
}

// readSource returns the embedded fallback when path is empty, otherwise
// the file contents, transparently gunzipping *.gz files.
func readSource(path string, embedded []byte) ([]byte, error) {
	if path == "" {
		return embedded, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "gzip")
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	return data, nil
}
