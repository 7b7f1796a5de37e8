// Package handler — products.go implements GET /products.
// Returns the products matching ?q= as JSON (default) or CSV (?format=csv).
package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/catalog-filter/internal/domain"
)

// ProductFormat is the representation requested via ?format=.
type ProductFormat string

// Supported ProductFormat values.
const (
	FormatJSON ProductFormat = "json"
	FormatCSV  ProductFormat = "csv"
)

// ListProductsParams holds the bound query parameters of GET /products.
type ListProductsParams struct {
	// Q is the search text; nil or empty lists every product.
	Q *string `form:"q,omitempty" json:"q,omitempty"`
	// Format selects JSON or CSV; nil means JSON.
	Format *ProductFormat `form:"format,omitempty" json:"format,omitempty"`
}

// Product is the JSON representation of a domain.Product.
type Product struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
	ImageRef string `json:"image_ref"`
}

// ProductList is the JSON body of GET /products.
type ProductList struct {
	Query string    `json:"query"`
	Total int       `json:"total"`
	Data  []Product `json:"data"`
}

// csvHeaders defines the column names written as the first row of a CSV list.
var csvHeaders = []string{"name", "category", "color", "image_ref"}

// ListProducts handles GET /products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, err := bindListProductsParams(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	var query string
	if params.Q != nil {
		query = *params.Q
	}

	products, err := s.catalog.Search(r.Context(), query)
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	if params.Format != nil && *params.Format == FormatCSV {
		writeCSV(w, products)
		return
	}
	writeJSON(w, http.StatusOK, buildProductList(query, products))
}

// bindListProductsParams reads ?q= and ?format= the way generated OpenAPI
// servers do, and rejects formats other than json and csv.
func bindListProductsParams(r *http.Request) (ListProductsParams, error) {
	var params ListProductsParams

	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q); err != nil {
		return params, fmt.Errorf("%w: invalid q: %v", domain.ErrValidation, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &params.Format); err != nil {
		return params, fmt.Errorf("%w: invalid format: %v", domain.ErrValidation, err)
	}
	if params.Format != nil {
		switch *params.Format {
		case FormatJSON, FormatCSV:
		default:
			return params, fmt.Errorf("%w: unsupported format %q (want json or csv)", domain.ErrValidation, *params.Format)
		}
	}
	return params, nil
}

// buildProductList converts domain products to the JSON response.
// Data is always an array, never null.
func buildProductList(query string, products []domain.Product) ProductList {
	data := make([]Product, 0, len(products))
	for _, p := range products {
		data = append(data, Product(p))
	}
	return ProductList{Query: query, Total: len(data), Data: data}
}

// writeCSV encodes products as CSV with a header row.
func writeCSV(w http.ResponseWriter, products []domain.Product) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, p := range products {
		//nolint:errcheck
		cw.Write([]string{p.Name, p.Category, p.Color, p.ImageRef})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		writeJSON(w, http.StatusInternalServerError, internalBody())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
}
