package catalog

import "github.com/pkordes/catalog-filter/internal/domain"

// Seed returns the built-in product list, in display order.
// migrations/00001_create_products.sql inserts the same rows for the
// Postgres source; keep the two in sync.
func Seed() []domain.Product {
	return []domain.Product{
		{Name: "Zapato negro", Category: "zapato", Color: "negro", ImageRef: "./assets/images/taco-negro.jpg"},
		{Name: "Zapato azul", Category: "zapato", Color: "azul", ImageRef: "./assets/images/taco-azul.jpg"},
		{Name: "Bota negra", Category: "bota", Color: "negro", ImageRef: "./assets/images/bota-negra.jpg"},
		{Name: "Bota azul", Category: "bota", Color: "azul", ImageRef: "./assets/images/bota-azul.jpg"},
		{Name: "Zapato rojo", Category: "zapato", Color: "rojo", ImageRef: "./assets/images/zapato-rojo.jpg"},
	}
}
