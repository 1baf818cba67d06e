package catalog

import "junglepets/models"

// Catalog is the read-only product reference data. Cart operations resolve
// product IDs against it; nothing in this module mutates it.
type Catalog struct {
	products []models.Product
	byID     map[int]models.Product
}

func New(products ...models.Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[int]models.Product, len(products)),
	}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

// Default returns the seeded store catalog.
func Default() *Catalog {
	return New(
		models.Product{
			ID:          1,
			Name:        "Nutripássaros Mistura P/ Calopsita Mel 500gr",
			UnitPrice:   6.50,
			Image:       "imagens/nutripassaros.jpg",
			Description: "Alimentação para Calopsitas, agapornis e Rose faces.",
			Category:    "food",
		},
		models.Product{
			ID:          2,
			Name:        "Ração Para Répteis Reptolife Alcon – 75g",
			UnitPrice:   37.99,
			Image:       "imagens/reptolife.jpg",
			Description: "Indicado para répteis; Ideal para tartaruga aquática; Proporciona proteínas e minerais; Vitaminas do complexo B, A, D3 e E.",
			Category:    "food",
		},
	)
}

// Find looks up a product by ID.
func (c *Catalog) Find(id int) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns every product in catalog order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}
