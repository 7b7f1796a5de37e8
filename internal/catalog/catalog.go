// Package catalog holds the fixed, ordered product list shown by the page.
// A Catalog is built once at startup and never changes afterwards; every
// search runs against the full original list.
package catalog

import (
	"context"
	"fmt"

	"github.com/pkordes/catalog-filter/internal/domain"
)

// Source is anything that can supply the catalog's products in order.
// repo.ProductRepo satisfies it.
type Source interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// Catalog is an immutable, ordered sequence of products.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	products []domain.Product
}

// New returns a Catalog holding a copy of records, so later changes to the
// caller's slice are not visible through the Catalog.
func New(records []domain.Product) *Catalog {
	products := make([]domain.Product, len(records))
	copy(products, records)
	return &Catalog{products: products}
}

// Load reads every product from src once and freezes them into a Catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	products, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}
	return New(products), nil
}

// All returns every product in catalog order.
// The returned slice is a copy; callers may modify it freely.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Search returns the products whose category or color contains query,
// case-insensitively, in catalog order. It always starts from the full
// catalog, never from a previous search result.
func (c *Catalog) Search(query string) []domain.Product {
	return domain.Filter(c.products, query)
}
