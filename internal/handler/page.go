package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/pkordes/catalog-filter/internal/render"
)

// GetPage handles GET /, the initial page load: every product is shown.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.catalog.Load(r.Context(), &buf); err != nil {
		writeInternal(w, r, err)
		return
	}
	writeHTML(w, &buf)
}

// PostFilter handles POST /, sent when the filter button is pressed.
// The query is read from the form field the page's input submits
// (render.QueryField). A missing field is the empty query and shows every
// product.
func (s *Server) PostFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, tooLargeBody())
			return
		}
		writeJSON(w, http.StatusBadRequest, requestBody("malformed form body"))
		return
	}

	query := r.PostForm.Get(render.QueryField)

	var buf bytes.Buffer
	if err := s.catalog.Trigger(r.Context(), &buf, query); err != nil {
		writeInternal(w, r, err)
		return
	}
	writeHTML(w, &buf)
}

// writeHTML sends a fully rendered page. Rendering into a buffer first means
// a render failure can still produce a clean 500.
func writeHTML(w http.ResponseWriter, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck — the status line is already sent; nothing to recover.
	buf.WriteTo(w)
}
