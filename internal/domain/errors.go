package domain

import "errors"

// ErrElementNotFound is returned when the page document is missing one of the
// elements the catalog view is wired to (the product container, the query
// input, or the filter button). It is a startup failure, never a request one.
var ErrElementNotFound = errors.New("element not found")

// ErrValidation is returned when request input cannot be interpreted
// (e.g. an unsupported export format).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
