package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// prod builds a minimal product for store and query tests.
func prod(id int, title, price string) Product {
	return Product{
		ID:    id,
		Title: title,
		Price: decimal.RequireFromString(price),
	}
}

func TestStoreLoad(t *testing.T) {
	s := NewStore()

	if s.Loaded() {
		t.Error("new store should not report loaded")
	}

	products := []Product{prod(1, "Phone", "99.99"), prod(2, "Laptop", "499")}
	categories := []Category{{ID: 1, Name: "Electronics"}}
	s.Load(products, categories)

	if !s.Loaded() {
		t.Error("store should report loaded after Load")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if len(s.Categories()) != 1 {
		t.Errorf("Categories() length = %d, want 1", len(s.Categories()))
	}

	// Load copies its input; mutating the caller's slice must not leak in.
	products[0].Title = "changed"
	got, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get(1) error = %v", err)
	}
	if got.Title != "Phone" {
		t.Errorf("Get(1).Title = %q, want %q", got.Title, "Phone")
	}
}

func TestStoreLoad_EmptyCatalog(t *testing.T) {
	s := NewStore()
	s.Load(nil, nil)

	if !s.Loaded() {
		t.Error("empty load should still count as loaded")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStoreGet_NotFound(t *testing.T) {
	s := NewStore()
	s.Load([]Product{prod(1, "Phone", "99.99")}, nil)

	_, err := s.Get(42)
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("Get(42) error = %v, want *NotFoundError", err)
	}
	if nferr.ID != 42 {
		t.Errorf("NotFoundError.ID = %d, want 42", nferr.ID)
	}
}

func TestStoreUpsert_NewIDInsertsAtHead(t *testing.T) {
	s := NewStore()
	s.Load([]Product{prod(2, "Laptop", "499"), prod(1, "Phone", "99.99")}, nil)

	s.Upsert(prod(3, "Tablet", "199"))

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.Products()[0].ID != 3 {
		t.Errorf("head product ID = %d, want 3", s.Products()[0].ID)
	}
}

func TestStoreUpsert_MergeKeepsOptionalFields(t *testing.T) {
	s := NewStore()
	existing := Product{
		ID:          1,
		Title:       "Phone",
		Price:       decimal.RequireFromString("99.99"),
		Description: "A solid phone",
		Category:    &Category{ID: 1, Name: "Electronics"},
		Images:      []string{"https://img.example/phone.jpg"},
		CreatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	s.Load([]Product{existing}, nil)

	// The write response carries only the fields the remote echoes back.
	s.Upsert(prod(1, "Phone Pro", "149.99"))

	got, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get(1) error = %v", err)
	}
	if got.Title != "Phone Pro" {
		t.Errorf("Title = %q, want %q", got.Title, "Phone Pro")
	}
	if got.Price.String() != "149.99" {
		t.Errorf("Price = %s, want 149.99", got.Price)
	}
	if got.Description != "A solid phone" {
		t.Errorf("Description = %q, want the existing description kept", got.Description)
	}
	if got.Category == nil || got.Category.Name != "Electronics" {
		t.Errorf("Category = %v, want the existing category kept", got.Category)
	}
	if len(got.Images) != 1 {
		t.Errorf("Images length = %d, want the existing images kept", len(got.Images))
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should keep the existing timestamp")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (replace, not insert)", s.Len())
	}
}

func TestStoreUpsert_IncomingFieldsWin(t *testing.T) {
	s := NewStore()
	s.Load([]Product{{
		ID:          1,
		Title:       "Phone",
		Price:       decimal.RequireFromString("99.99"),
		Description: "old",
		Category:    &Category{ID: 1, Name: "Electronics"},
	}}, nil)

	s.Upsert(Product{
		ID:          1,
		Title:       "Phone",
		Price:       decimal.RequireFromString("99.99"),
		Description: "new",
		Category:    &Category{ID: 2, Name: "Clearance"},
	})

	got, _ := s.Get(1)
	if got.Description != "new" {
		t.Errorf("Description = %q, want %q", got.Description, "new")
	}
	if got.Category.Name != "Clearance" {
		t.Errorf("Category.Name = %q, want %q", got.Category.Name, "Clearance")
	}
}

func TestStoreSortNewestFirst(t *testing.T) {
	s := NewStore()
	s.Load([]Product{prod(1, "a", "1"), prod(3, "b", "1"), prod(2, "c", "1")}, nil)

	s.SortNewestFirst()

	want := []int{3, 2, 1}
	for i, id := range want {
		if s.Products()[i].ID != id {
			t.Errorf("Products()[%d].ID = %d, want %d", i, s.Products()[i].ID, id)
		}
	}
}
