// Package handler implements the HTTP surface of the catalog filter.
// All handlers are methods on Server. Methods are split into files by
// resource (page.go, products.go, health.go) but share the Server struct so
// they can reach its dependencies.
package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/catalog-filter/internal/domain"
	"github.com/pkordes/catalog-filter/spec"
)

// CatalogServicer defines the catalog operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without building a real page or catalog.
type CatalogServicer interface {
	Load(ctx context.Context, w io.Writer) error
	Trigger(ctx context.Context, w io.Writer, query string) error
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	catalog CatalogServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(catalog CatalogServicer) *Server {
	return &Server{catalog: catalog}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil)
}

// Handler returns a chi router with every route registered on s.
// Global middleware (request IDs, logging, CORS) is applied by the caller.
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.GetPage)
	r.Post("/", s.PostFilter)
	r.Get("/products", s.ListProducts)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	//nolint:errcheck — nothing useful to do if the client disconnects.
	w.Write(spec.OpenAPI)
}
