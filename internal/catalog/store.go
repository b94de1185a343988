package catalog

import "sort"

// Store is the in-memory holder of the full product and category
// lists, the source of truth for all derived views. It performs no
// network calls and is deliberately not safe for concurrent use: the
// Dashboard serializes every access under its own lock.
type Store struct {
	products   []Product
	categories []Category
	loaded     bool
}

// NewStore returns an empty, unloaded store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the full product and category lists. Empty lists are
// accepted; the store still counts as loaded.
func (s *Store) Load(products []Product, categories []Category) {
	s.products = make([]Product, len(products))
	copy(s.products, products)
	s.categories = make([]Category, len(categories))
	copy(s.categories, categories)
	s.loaded = true
}

// Loaded reports whether an initial load has completed, distinguishing
// "not yet loaded" from an empty catalog.
func (s *Store) Loaded() bool {
	return s.loaded
}

// Products returns the ordered product list. The slice is shared;
// callers must not mutate it.
func (s *Store) Products() []Product {
	return s.products
}

// Categories returns the category reference list.
func (s *Store) Categories() []Category {
	return s.categories
}

// Len returns the total catalog size.
func (s *Store) Len() int {
	return len(s.products)
}

// Get returns the product with the given id, or a NotFoundError.
func (s *Store) Get(id int) (Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, &NotFoundError{ID: id}
}

// Upsert reconciles a record returned by the remote API into the
// store. An existing record with the same id is replaced by the merge
// of existing and incoming fields, incoming fields winning; an unknown
// id is inserted at the head so the newest record displays first.
func (s *Store) Upsert(p Product) {
	for i, existing := range s.products {
		if existing.ID == p.ID {
			s.products[i] = merge(existing, p)
			return
		}
	}
	s.products = append([]Product{p}, s.products...)
}

// merge overlays incoming onto existing. The remote API always returns
// id, title and price; optional fields absent from the response keep
// their previous values.
func merge(existing, incoming Product) Product {
	out := incoming
	if out.Description == "" {
		out.Description = existing.Description
	}
	if out.Category == nil {
		out.Category = existing.Category
	}
	if len(out.Images) == 0 {
		out.Images = existing.Images
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = existing.CreatedAt
	}
	return out
}

// SortNewestFirst orders the product list by id descending. Applied
// after the initial load and after a create with no explicit sort, so
// the newest products surface without an active sort key.
func (s *Store) SortNewestFirst() {
	sort.SliceStable(s.products, func(i, j int) bool {
		return s.products[i].ID > s.products[j].ID
	})
}
