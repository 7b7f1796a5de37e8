// Package repo contains the catalog sources for the catalog filter.
// Each source implements ProductRepo; the Postgres one reads the products
// table, the memory one serves a fixed list compiled into the binary.
// No filtering lives here — only loading and type mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/catalog-filter/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductRepo supplies the catalog's products.
// The catalog package depends on this behaviour, not on a concrete source.
type ProductRepo interface {
	// List returns every product in catalog order (position ascending).
	// An empty catalog is not an error.
	List(ctx context.Context) ([]domain.Product, error)
}

// pgProductRepo is the Postgres implementation of ProductRepo.
type pgProductRepo struct {
	db db
}

// NewProductRepo constructs a ProductRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewProductRepo(db db) ProductRepo {
	return &pgProductRepo{db: db}
}

// List returns all products ordered by position.
func (r *pgProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
		SELECT name, category, color, image_ref
		FROM products
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ProductRepo.List: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ProductRepo.List: scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ProductRepo.List: rows: %w", err)
	}

	return products, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var p domain.Product
	if err := s.Scan(&p.Name, &p.Category, &p.Color, &p.ImageRef); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// memoryProductRepo serves a fixed product list held in memory.
type memoryProductRepo struct {
	products []domain.Product
}

// NewMemoryProductRepo returns a ProductRepo that always lists a copy of
// products. Use it with catalog.Seed() when no database is configured.
func NewMemoryProductRepo(products []domain.Product) ProductRepo {
	cp := make([]domain.Product, len(products))
	copy(cp, products)
	return &memoryProductRepo{products: cp}
}

// List returns a copy of the held products in their original order.
func (r *memoryProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repo.memoryProductRepo.List: %w", err)
	}
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}
