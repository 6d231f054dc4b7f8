package service

import (
	"sort"
	"sync"

	"github.com/alimikegami/food-rater/internal/domain"
	"github.com/alimikegami/food-rater/internal/dto"
)

// Catalog is the in-memory product list served by GET /products. It is
// written through after every successful product write and reconciled by
// Replace, so it never drifts on its own.
type Catalog struct {
	mu         sync.RWMutex
	products   map[string]dto.ProductResponse
	generation uint64
	// written holds the generation of the last Put per product id.
	written map[string]uint64
}

func NewCatalog() *Catalog {
	return &Catalog{
		products: make(map[string]dto.ProductResponse),
		written:  make(map[string]uint64),
	}
}

func (c *Catalog) Put(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.products[p.ID] = dto.ToProductResponse(p)
	c.written[p.ID] = c.generation
}

// Generation must be read before the store snapshot handed to Replace.
func (c *Catalog) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.generation
}

// Replace installs a store snapshot taken after since was read. Entries put
// after since are newer than the snapshot and are kept.
func (c *Catalog) Replace(products []domain.Product, since uint64) {
	fresh := make(map[string]dto.ProductResponse, len(products))
	for _, p := range products {
		fresh[p.ID] = dto.ToProductResponse(p)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for id, gen := range c.written {
		if gen <= since {
			delete(c.written, id)
			continue
		}
		fresh[id] = c.products[id]
	}
	c.products = fresh
}

// List returns the cached products ordered by id.
func (c *Catalog) List() []dto.ProductResponse {
	c.mu.RLock()
	list := make([]dto.ProductResponse, 0, len(c.products))
	for _, p := range c.products {
		list = append(list, p)
	}
	c.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	return list
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.products)
}
