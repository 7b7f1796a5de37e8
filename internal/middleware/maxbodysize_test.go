package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catalog-filter/internal/middleware"
)

// readAllHandler reads the whole body like ParseForm does and reports a
// *http.MaxBytesError as 413.
var readAllHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, err := io.ReadAll(r.Body)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func postBody(size int, contentLength int64) *httptest.ResponseRecorder {
	h := middleware.NewMaxBodySizeHandler(32)(readAllHandler)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("q", size)))
	req.ContentLength = contentLength
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMaxBodySizeHandler_WithinLimit(t *testing.T) {
	rec := postBody(32, 32)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMaxBodySizeHandler_DeclaredLengthOverLimit(t *testing.T) {
	rec := postBody(64, 64)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "request_too_large")
}

func TestMaxBodySizeHandler_StreamedBodyOverLimit(t *testing.T) {
	rec := postBody(64, -1)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMaxBodySizeHandler_NoBody(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(32)(readAllHandler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
