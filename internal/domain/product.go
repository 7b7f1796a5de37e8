// Package domain contains the core data types for the catalog filter.
// This package has zero external dependencies and is imported by every other
// internal package (repo, catalog, render, service, handler).
package domain

import "strings"

// Product is a single catalog entry.
// Products have no identity beyond their position in the catalog, so two
// records with identical fields are distinct entries.
type Product struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
	ImageRef string `json:"image_ref"` // relative path handed to the page as-is
}

// Matches reports whether query is a case-insensitive substring of the
// product's Category or Color. An empty query matches every product.
func (p Product) Matches(query string) bool {
	return matchesFolded(p, strings.ToLower(query))
}

// Filter returns the products in records that match query, preserving their
// relative order. The input slice is never modified; the result is always a
// new, non-nil slice.
func Filter(records []Product, query string) []Product {
	q := strings.ToLower(query)
	out := make([]Product, 0, len(records))
	for _, p := range records {
		if matchesFolded(p, q) {
			out = append(out, p)
		}
	}
	return out
}

// matchesFolded expects q to be lowercased already.
func matchesFolded(p Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(p.Color), q)
}
