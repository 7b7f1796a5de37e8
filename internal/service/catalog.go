// Package service wires the catalog page's two events to the catalog and the
// renderer: the initial page load shows every product, and each filter
// trigger shows the products matching the submitted query.
// No HTTP lives here — handlers depend on the methods below, not on net/http.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkordes/catalog-filter/internal/catalog"
	"github.com/pkordes/catalog-filter/internal/domain"
	"github.com/pkordes/catalog-filter/internal/render"
)

// CatalogService renders the catalog page for both UI events.
// The catalog and the template page are read-only after construction, so one
// CatalogService serves concurrent requests; every call works on its own
// clone of the page.
type CatalogService struct {
	catalog *catalog.Catalog
	page    *render.Page
	log     *slog.Logger
}

// NewCatalogService constructs a CatalogService. page is used as a template
// and never mutated. A nil logger falls back to slog.Default().
func NewCatalogService(c *catalog.Catalog, page *render.Page, log *slog.Logger) *CatalogService {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogService{catalog: c, page: page, log: log}
}

// Load renders the page as first shown: every product, empty query box.
func (s *CatalogService) Load(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("service.CatalogService.Load: %w", err)
	}

	p := s.page.Clone()
	p.Display(s.catalog.All())

	s.log.DebugContext(ctx, "catalog page loaded", "shown", s.catalog.Len())

	if err := p.Render(w); err != nil {
		return fmt.Errorf("service.CatalogService.Load: %w", err)
	}
	return nil
}

// Trigger renders the page after the filter button is pressed with query in
// the input. The filter always runs against the full catalog, never against
// whatever a previous trigger displayed. Zero matches render an empty list.
func (s *CatalogService) Trigger(ctx context.Context, w io.Writer, query string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("service.CatalogService.Trigger: %w", err)
	}

	matches := s.catalog.Search(query)

	p := s.page.Clone()
	p.SetQuery(query)
	p.Display(matches)

	s.log.DebugContext(ctx, "catalog filtered",
		"query", query,
		"matched", len(matches),
		"total", s.catalog.Len(),
	)

	if err := p.Render(w); err != nil {
		return fmt.Errorf("service.CatalogService.Trigger: %w", err)
	}
	return nil
}

// Search returns the products matching query in catalog order, without
// rendering anything. An empty query returns the whole catalog.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("service.CatalogService.Search: %w", err)
	}
	return s.catalog.Search(query), nil
}
