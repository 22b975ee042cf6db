package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	customers, products, err := Load(context.Background(), Source{})
	require.NoError(t, err)

	require.NotEmpty(t, customers)
	require.NotEmpty(t, products)

	for _, c := range customers {
		assert.NotZero(t, c.ID)
		assert.NotEmpty(t, c.Profile.Name)
	}
	for _, p := range products {
		require.NotEmpty(t, p.SKUs, "product %d", p.ID)
		for _, sku := range p.SKUs {
			assert.Equal(t, p.ID, sku.ProductID)
			assert.True(t, sku.SellingPrice.IsPositive())
			assert.False(t, sku.MaxRetailPrice.LessThan(sku.SellingPrice))
		}
	}
}

func TestLoad_ExternalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "customers.json")
	body := `[{"id": 9, "account_id": 90, "name": "File Customer", "tax_id": "X"}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	customers, _, err := Load(context.Background(), Source{CustomersFile: path})
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "File Customer", customers[0].Profile.Name)
}

func TestLoad_GzippedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "customers.json.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(`[{"id": 3, "account_id": 30, "name": "Gz Customer", "tax_id": "Y"}]`))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	customers, _, err := Load(context.Background(), Source{CustomersFile: path})
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Gz Customer", customers[0].Profile.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(context.Background(), Source{ProductsFile: "does/not/exist.json"})
	require.Error(t, err)
}

func TestLoad_ProductWithoutSKUs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	body := `[{"id": 1, "name": "No SKUs", "skus": []}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, _, err := Load(context.Background(), Source{ProductsFile: path})
	require.ErrorContains(t, err, "no skus")
}
