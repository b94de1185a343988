package catalog

import (
	"sort"
	"strings"
)

// SortKey identifies a sortable column.
type SortKey string

const (
	SortNone     SortKey = ""
	SortID       SortKey = "id"
	SortTitle    SortKey = "title"
	SortPrice    SortKey = "price"
	SortCategory SortKey = "category"
)

// ValidSortKey reports whether key names a sortable column.
func ValidSortKey(key SortKey) bool {
	switch key {
	case SortID, SortTitle, SortPrice, SortCategory:
		return true
	}
	return false
}

// SortDir is a sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// DefaultPageSize is used when the caller supplies no page size.
const DefaultPageSize = 10

// ViewState holds the current search, sort and pagination parameters.
// It is transient and mutated by every user interaction that changes
// what is displayed.
type ViewState struct {
	SearchTerm string
	SortKey    SortKey
	SortDir    SortDir
	Page       int
	PageSize   int
}

// NewViewState returns a view state on page 1 with no search or sort.
func NewViewState(pageSize int) ViewState {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return ViewState{Page: 1, PageSize: pageSize}
}

// SetSearch replaces the search term and resets to page 1.
func (v *ViewState) SetSearch(term string) {
	v.SearchTerm = strings.TrimSpace(term)
	v.Page = 1
}

// SortBy selects a sort column. Selecting the already-active key
// toggles the direction; selecting a new key resets to ascending.
func (v *ViewState) SortBy(key SortKey) {
	if v.SortKey == key {
		if v.SortDir == SortAsc {
			v.SortDir = SortDesc
		} else {
			v.SortDir = SortAsc
		}
		return
	}
	v.SortKey = key
	v.SortDir = SortAsc
}

// SetPage requests a page. The value is clamped into the valid range
// at derive time, once the filtered count is known.
func (v *ViewState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.Page = page
}

// SetPageSize changes the page size and resets to page 1.
func (v *ViewState) SetPageSize(size int) {
	if size < 1 {
		size = DefaultPageSize
	}
	v.PageSize = size
	v.Page = 1
}

// View is the derived, display-ready slice of the catalog: the
// products matching the current search, in the current sort order,
// cut to the current page. CatalogTotal carries the unfiltered count
// so a consumer can tell "no products at all" from "no match for the
// active search term".
type View struct {
	Items        []Product `json:"items"`
	TotalItems   int       `json:"totalItems"`
	TotalPages   int       `json:"totalPages"`
	Page         int       `json:"page"`
	PageSize     int       `json:"pageSize"`
	CatalogTotal int       `json:"catalogTotal"`
	SearchTerm   string    `json:"searchTerm"`
	SortKey      SortKey   `json:"sortKey"`
	SortDir      SortDir   `json:"sortDir"`
}

// Empty reports whether the filtered result set has no items.
func (v View) Empty() bool {
	return v.TotalItems == 0
}

// Derive computes the view for the given products and state. It is a
// pure function of its inputs except that it clamps state.Page into
// [1, totalPages] whenever the filtered count has made the requested
// page unreachable.
func Derive(products []Product, state *ViewState) View {
	filtered := filterByTitle(products, state.SearchTerm)

	if state.SortKey != SortNone {
		filtered = sortProducts(filtered, state.SortKey, state.SortDir)
	}

	totalPages := (len(filtered) + state.PageSize - 1) / state.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if state.Page < 1 {
		state.Page = 1
	}
	if state.Page > totalPages {
		state.Page = totalPages
	}

	start := (state.Page - 1) * state.PageSize
	end := start + state.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return View{
		Items:        filtered[start:end],
		TotalItems:   len(filtered),
		TotalPages:   totalPages,
		Page:         state.Page,
		PageSize:     state.PageSize,
		CatalogTotal: len(products),
		SearchTerm:   state.SearchTerm,
		SortKey:      state.SortKey,
		SortDir:      state.SortDir,
	}
}

// filterByTitle returns the products whose title contains term
// case-insensitively. An empty term matches everything.
func filterByTitle(products []Product, term string) []Product {
	if term == "" {
		out := make([]Product, len(products))
		copy(out, products)
		return out
	}
	lower := strings.ToLower(term)
	var out []Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), lower) {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts returns a sorted copy. The sort is stable: ties keep
// their original relative order regardless of direction, because desc
// flips the comparison outcome rather than reversing the slice.
func sortProducts(products []Product, key SortKey, dir SortDir) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	less := comparator(key)
	if dir == SortDesc {
		asc := less
		less = func(a, b Product) bool { return asc(b, a) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

// comparator returns the ascending less function for a sort key.
func comparator(key SortKey) func(a, b Product) bool {
	switch key {
	case SortTitle:
		return func(a, b Product) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortPrice:
		return func(a, b Product) bool {
			return a.Price.Cmp(b.Price) < 0
		}
	case SortCategory:
		return func(a, b Product) bool {
			return strings.ToLower(categorySortName(a)) < strings.ToLower(categorySortName(b))
		}
	default: // SortID
		return func(a, b Product) bool {
			return a.ID < b.ID
		}
	}
}

// categorySortName treats a missing category as the empty string so
// uncategorized products sort before named categories ascending.
func categorySortName(p Product) string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
