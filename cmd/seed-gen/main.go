// Command seed-gen writes gzipped catalog seed fixtures that the API
// server can load via --seed-customers / --seed-products. By default it
// exports the embedded dataset; --customers / --products select external
// JSON files instead. Inputs are validated by a full parse before export.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"

	"github.com/salesdesk/salesdesk/db"
	"github.com/salesdesk/salesdesk/internal/seed"
)

func main() {
	var (
		customersFile string
		productsFile  string
		outDir        string
	)

	flag.StringVar(&customersFile, "customers", "", "customers JSON file (default: embedded dataset)")
	flag.StringVar(&productsFile, "products", "", "products JSON file (default: embedded dataset)")
	flag.StringVar(&outDir, "out", "seed-out", "output directory for .json.gz fixtures")
	flag.Parse()

	if err := run(customersFile, productsFile, outDir); err != nil {
		slog.Error("seed generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed fixtures written", slog.String("dir", outDir))
}

func run(customersFile, productsFile, outDir string) error {
	// Parse through the seed loader so broken fixtures never ship.
	customers, products, err := seed.Load(context.Background(), seed.Source{
		CustomersFile: customersFile,
		ProductsFile:  productsFile,
	})
	if err != nil {
		return errors.Wrap(err, "validate seed data")
	}
	slog.Info("seed data validated",
		slog.Int("customers", len(customers)),
		slog.Int("products", len(products)),
	)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}

	customersJSON, err := readInput(customersFile, db.Customers)
	if err != nil {
		return errors.Wrap(err, "read customers")
	}
	productsJSON, err := readInput(productsFile, db.Products)
	if err != nil {
		return errors.Wrap(err, "read products")
	}

	if err := writeGz(filepath.Join(outDir, "customers.json.gz"), customersJSON); err != nil {
		return errors.Wrap(err, "write customers")
	}
	if err := writeGz(filepath.Join(outDir, "products.json.gz"), productsJSON); err != nil {
		return errors.Wrap(err, "write products")
	}
	return nil
}

func readInput(path string, embedded []byte) ([]byte, error) {
	if path == "" {
		return embedded, nil
	}
	return os.ReadFile(path)
}

func writeGz(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := pgzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return f.Close()
}
