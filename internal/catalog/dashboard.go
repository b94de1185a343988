package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RemoteClient is the remote store API surface the dashboard consumes.
// Implemented by internal/remote; faked in tests.
type RemoteClient interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CreateProduct(ctx context.Context, in ProductInput) (Product, error)
	UpdateProduct(ctx context.Context, id int, in ProductInput) (Product, error)
}

// Dashboard is the coordinating component that owns the catalog store
// and the view state. All reads and mutations go through its methods;
// a single mutex serializes state access, the Go analogue of the
// browser's single event loop. Remote round trips happen outside the
// lock, so two in-flight writes to the same id resolve in completion
// order: the last response to arrive wins.
type Dashboard struct {
	mu       sync.Mutex
	client   RemoteClient
	store    *Store
	state    ViewState
	pageSize int
	loadErr  error
}

// NewDashboard creates a dashboard with an empty, unloaded store.
func NewDashboard(client RemoteClient, pageSize int) *Dashboard {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Dashboard{
		client:   client,
		store:    NewStore(),
		state:    NewViewState(pageSize),
		pageSize: pageSize,
	}
}

// Load fetches the full product and category lists from the remote API
// and replaces the store contents. A products failure is fatal to the
// load: the dashboard stays (or becomes) unloaded and the error is
// both recorded and returned, so views surface it until a retry
// succeeds. A categories failure is non-fatal: the built-in category
// list substitutes and the load proceeds.
//
// Load is also the retry path: callers re-invoke it on user request.
func (d *Dashboard) Load(ctx context.Context) error {
	products, err := d.client.ListProducts(ctx)
	if err != nil {
		d.mu.Lock()
		d.loadErr = err
		d.mu.Unlock()
		return err
	}

	categories, err := d.client.ListCategories(ctx)
	if err != nil {
		slog.Warn("categories fetch failed, using built-in list", "error", err)
		categories = DefaultCategories
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.store.Load(products, categories)
	d.store.SortNewestFirst()
	d.state = NewViewState(d.pageSize)
	d.loadErr = nil
	return nil
}

// View returns the current derived view.
func (d *Dashboard) View() (View, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deriveLocked()
}

// Search replaces the search term (resetting to page 1) and returns
// the re-derived view.
func (d *Dashboard) Search(term string) (View, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.SetSearch(term)
	return d.deriveLocked()
}

// SortBy toggles or selects the sort column and returns the re-derived
// view. Unknown keys are rejected before any state change.
func (d *Dashboard) SortBy(key SortKey) (View, error) {
	if !ValidSortKey(key) {
		return View{}, &ValidationError{
			Field:   "sort",
			Value:   string(key),
			Message: "unknown sort key",
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.SortBy(key)
	return d.deriveLocked()
}

// SetPage requests a page (clamped at derive time) and returns the
// re-derived view.
func (d *Dashboard) SetPage(page int) (View, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.SetPage(page)
	return d.deriveLocked()
}

// SetPageSize changes the page size (resetting to page 1) and returns
// the re-derived view.
func (d *Dashboard) SetPageSize(size int) (View, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.SetPageSize(size)
	return d.deriveLocked()
}

// Categories returns the category reference list for form selects.
func (d *Dashboard) Categories() []Category {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Category, len(d.store.Categories()))
	copy(out, d.store.Categories())
	return out
}

// Product returns a single product for display, or a NotFoundError for
// a stale id.
func (d *Dashboard) Product(id int) (Product, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Get(id)
}

// Loaded reports whether the catalog has been loaded successfully.
func (d *Dashboard) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Loaded() && d.loadErr == nil
}

// Create validates the input, submits it to the remote API and merges
// the returned record into the store. Validation failures return
// before any network call with nothing mutated; remote failures leave
// the store untouched. On success the page resets to 1 and, with no
// explicit sort active, the id-descending default ordering is applied
// so the new record is visible; search and sort are otherwise kept.
func (d *Dashboard) Create(ctx context.Context, in ProductInput) (Product, View, error) {
	in.normalize()
	if err := in.validate(true); err != nil {
		return Product{}, View{}, err
	}

	created, err := d.client.CreateProduct(ctx, in)
	if err != nil {
		return Product{}, View{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.store.Upsert(created)
	d.state.Page = 1
	if d.state.SortKey == SortNone {
		d.store.SortNewestFirst()
	}
	view, derr := d.deriveLocked()
	return created, view, derr
}

// Update validates the input, submits it to the remote API keyed by
// id and merges the returned record into the store. The local store is
// not a write precondition: an id absent locally still round-trips and
// is merged in as a new record. View state (search, sort and page) is
// preserved, page clamped if the filtered count changed.
func (d *Dashboard) Update(ctx context.Context, id int, in ProductInput) (Product, View, error) {
	in.normalize()
	if err := in.validate(false); err != nil {
		return Product{}, View{}, err
	}

	updated, err := d.client.UpdateProduct(ctx, id, in)
	if err != nil {
		return Product{}, View{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.store.Upsert(updated)
	view, derr := d.deriveLocked()
	return updated, view, derr
}

// ExportPage serializes the current page as CSV and returns the bytes
// with a dated attachment filename. Empty pages return
// ErrNothingToExport.
func (d *Dashboard) ExportPage() ([]byte, string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	view, err := d.deriveLocked()
	if err != nil {
		return nil, "", err
	}

	data, err := Export(view.Items)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("products_%s.csv", time.Now().Format("2006-01-02"))
	return data, filename, nil
}

// deriveLocked recomputes the view. Callers hold d.mu.
func (d *Dashboard) deriveLocked() (View, error) {
	if !d.store.Loaded() {
		if d.loadErr != nil {
			return View{}, d.loadErr
		}
		return View{}, ErrNotLoaded
	}
	return Derive(d.store.Products(), &d.state), nil
}
