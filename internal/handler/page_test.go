package handler_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catalog-filter/internal/catalog"
	"github.com/pkordes/catalog-filter/internal/domain"
	"github.com/pkordes/catalog-filter/internal/handler"
	"github.com/pkordes/catalog-filter/internal/middleware"
	"github.com/pkordes/catalog-filter/internal/render"
	"github.com/pkordes/catalog-filter/internal/service"
)

// mockCatalogServicer is a test double for handler.CatalogServicer.
// Set only the method fields your test needs.
type mockCatalogServicer struct {
	load    func(ctx context.Context, w io.Writer) error
	trigger func(ctx context.Context, w io.Writer, query string) error
	search  func(ctx context.Context, query string) ([]domain.Product, error)
}

func (m *mockCatalogServicer) Load(ctx context.Context, w io.Writer) error {
	return m.load(ctx, w)
}
func (m *mockCatalogServicer) Trigger(ctx context.Context, w io.Writer, query string) error {
	return m.trigger(ctx, w, query)
}
func (m *mockCatalogServicer) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return m.search(ctx, query)
}

// compile-time check: mockCatalogServicer must satisfy handler.CatalogServicer.
var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func newHTTPHandler(svc handler.CatalogServicer) http.Handler {
	return handler.Handler(handler.NewServer(svc))
}

// newRealHTTPHandler wires the real service, catalog and page the way main.go does.
func newRealHTTPHandler(t *testing.T) http.Handler {
	t.Helper()
	page, err := render.NewPage()
	require.NoError(t, err)
	svc := service.NewCatalogService(catalog.New(catalog.Seed()), page, nil)
	return newHTTPHandler(svc)
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func shownTitles(t *testing.T, body io.Reader) []string {
	t.Helper()
	p, err := render.ParsePage(body)
	require.NoError(t, err)
	var titles []string
	for _, v := range p.Products() {
		titles = append(titles, v.Title)
	}
	return titles
}

// ---- GET / -----------------------------------------------------------------

func TestGetPage_200(t *testing.T) {
	svc := &mockCatalogServicer{
		load: func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<html>page</html>")
			return err
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "<html>page</html>", rec.Body.String())
}

func TestGetPage_500_ServiceError(t *testing.T) {
	svc := &mockCatalogServicer{
		load: func(_ context.Context, w io.Writer) error {
			// Partial output must not reach the client.
			_, _ = io.WriteString(w, "<html>half")
			return errors.New("render exploded")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "half")
	assert.NotContains(t, rec.Body.String(), "exploded")
}

func TestGetPage_InitialLoadShowsAllFive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	newRealHTTPHandler(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		[]string{"Zapato negro", "Zapato azul", "Bota negra", "Bota azul", "Zapato rojo"},
		shownTitles(t, rec.Body))
}

// ---- POST / ----------------------------------------------------------------

func TestPostFilter_PassesQueryToService(t *testing.T) {
	var got string
	svc := &mockCatalogServicer{
		trigger: func(_ context.Context, _ io.Writer, query string) error {
			got = query
			return nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, formRequest(url.Values{render.QueryField: {"NEGRO"}}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NEGRO", got)
}

func TestPostFilter_MissingFieldIsEmptyQuery(t *testing.T) {
	got := "unset"
	svc := &mockCatalogServicer{
		trigger: func(_ context.Context, _ io.Writer, query string) error {
			got = query
			return nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, formRequest(url.Values{}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", got)
}

func TestPostFilter_500_ServiceError(t *testing.T) {
	svc := &mockCatalogServicer{
		trigger: func(_ context.Context, _ io.Writer, _ string) error {
			return fmt.Errorf("service.CatalogService.Trigger: %w", context.DeadlineExceeded)
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, formRequest(url.Values{render.QueryField: {"bota"}}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, decodeJSON(rec.Body, &resp))
	assert.Equal(t, "internal_error", resp.Error.Code)
}

func TestPostFilter_400_MalformedForm(t *testing.T) {
	svc := &mockCatalogServicer{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("q=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostFilter_413_BodyTooLarge(t *testing.T) {
	svc := &mockCatalogServicer{}
	h := middleware.NewMaxBodySizeHandler(16)(newHTTPHandler(svc))

	req := formRequest(url.Values{render.QueryField: {strings.Repeat("x", 64)}})
	req.ContentLength = -1 // force the streaming path through MaxBytesReader
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestPostFilter_Scenarios(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"negro", []string{"Zapato negro", "Bota negra"}},
		{"zapato", []string{"Zapato negro", "Zapato azul", "Zapato rojo"}},
		{"verde", nil},
		{"", []string{"Zapato negro", "Zapato azul", "Bota negra", "Bota azul", "Zapato rojo"}},
	}
	h := newRealHTTPHandler(t)
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, formRequest(url.Values{render.QueryField: {tc.query}}))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, shownTitles(t, rec.Body))
		})
	}
}
