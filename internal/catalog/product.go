// Package catalog provides the business logic for the product catalog
// dashboard: the in-memory catalog store, the query engine that derives
// the displayed page from the current view state, the mutation
// coordinator that submits creates and updates to the remote store API,
// and the CSV export formatter. This package has no HTTP or UI
// dependencies and can be driven by any frontend.
package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The remote store API expects price as a JSON number, not a string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category is immutable reference data loaded once at startup. It
// populates selection inputs and resolves a product's category name
// for display and sorting.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product is a single catalog record as returned by the remote store
// API. Category, Description, Images and CreatedAt may be absent.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    *Category       `json:"category,omitempty"`
	Images      []string        `json:"images"`
	CreatedAt   time.Time       `json:"creationAt"`
}

// CategoryName returns the product's category name, or the fallback
// label used everywhere a category is absent.
func (p Product) CategoryName() string {
	if p.Category != nil && p.Category.Name != "" {
		return p.Category.Name
	}
	return DefaultCategoryName
}

// DefaultCategoryName labels products without a category.
const DefaultCategoryName = "Other"

// ProductInput is the caller-supplied payload for create and update
// operations. It mirrors the remote API's write body shape.
type ProductInput struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CategoryID  int             `json:"categoryId"`
	Images      []string        `json:"images"`
}

// normalize trims free-text fields and image URLs in place, matching
// what the edit forms submit.
func (in *ProductInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	for i, img := range in.Images {
		in.Images[i] = strings.TrimSpace(img)
	}
}

// MinTitleLength is the minimum trimmed title length accepted by the
// mutation coordinator.
const MinTitleLength = 3

// validate checks the input before any network call. requireImage is
// set for create, where the primary image URL is mandatory.
func (in ProductInput) validate(requireImage bool) error {
	if len(in.Title) < MinTitleLength {
		return &ValidationError{
			Field:   "title",
			Value:   in.Title,
			Message: "title must be at least 3 characters",
		}
	}
	if in.Price.Sign() <= 0 {
		return &ValidationError{
			Field:   "price",
			Value:   in.Price.String(),
			Message: "price must be greater than 0",
		}
	}
	if requireImage {
		if len(in.Images) == 0 || in.Images[0] == "" {
			return &ValidationError{
				Field:   "image",
				Message: "image URL is required",
			}
		}
		if !hasURLScheme(in.Images[0]) {
			return &ValidationError{
				Field:   "image",
				Value:   in.Images[0],
				Message: "image URL must start with http:// or https://",
			}
		}
	}
	return nil
}

// hasURLScheme reports whether s starts with a recognized URL scheme.
func hasURLScheme(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// DefaultCategories is the built-in category list used when the remote
// categories endpoint is unavailable at startup. The dashboard stays
// usable with these; only category assignment on new products is
// limited to the fixed set.
var DefaultCategories = []Category{
	{ID: 1, Name: "Phones"},
	{ID: 2, Name: "Computers"},
	{ID: 3, Name: "Accessories"},
	{ID: 4, Name: "Home Appliances"},
}
