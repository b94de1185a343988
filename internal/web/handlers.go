package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/minhtran/catalog-admin/internal/catalog"
	"github.com/minhtran/catalog-admin/internal/logging"
)

// MaxBodySize caps create/update request bodies (1MB).
const MaxBodySize = 1 << 20

// handleHealth reports liveness and whether the catalog has loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status": "ok",
		"loaded": s.dash.Loaded(),
	})
}

// handleView returns the current derived view. Optional query
// parameters mutate the view state first: search replaces the search
// term (resetting to page 1), size changes the page size (resetting to
// page 1), page requests a page (clamped to the available range).
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		view catalog.View
		err  error
	)

	switch {
	case q.Has("search"):
		view, err = s.dash.Search(q.Get("search"))
	case q.Has("size"):
		view, err = s.dash.SetPageSize(parseIntParam(r, "size", catalog.DefaultPageSize))
	case q.Has("page"):
		view, err = s.dash.SetPage(parseIntParam(r, "page", 1))
	default:
		view, err = s.dash.View()
	}

	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, view)
}

// handleSort toggles or selects the sort column and returns the
// re-derived view.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	view, err := s.dash.SortBy(catalog.SortKey(key))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, view)
}

// handleCategories returns the category list for form selects.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.dash.Categories())
}

// handleGetProduct returns a single product for the edit view.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := s.dash.Product(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, product)
}

// mutationResponse pairs the written record with the re-derived view
// so the front-end can render both in one round trip.
type mutationResponse struct {
	Product catalog.Product `json:"product"`
	View    catalog.View    `json:"view"`
}

// handleCreateProduct validates and submits a new product to the
// remote API, then returns the created record and the refreshed view.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeInput(w, r)
	if !ok {
		return
	}

	product, view, err := s.dash.Create(r.Context(), input)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logger := logging.WithFields(r.Context(), "product_id", product.ID)
	logger.Info("product created", "title", product.Title)

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, mutationResponse{Product: product, View: view})
}

// handleUpdateProduct validates and submits a product update to the
// remote API, then returns the updated record and the refreshed view.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	input, ok := s.decodeInput(w, r)
	if !ok {
		return
	}

	product, view, err := s.dash.Update(r.Context(), id, input)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logger := logging.WithFields(r.Context(), "product_id", product.ID)
	logger.Info("product updated", "title", product.Title)

	writeJSON(w, mutationResponse{Product: product, View: view})
}

// decodeInput reads a ProductInput body, rejecting oversized or
// malformed payloads.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (catalog.ProductInput, bool) {
	var input catalog.ProductInput

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return catalog.ProductInput{}, false
	}
	return input, true
}

// handleExport downloads the current page as a CSV attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, filename, err := s.dash.ExportPage()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info("page exported", "filename", filename, "bytes", len(data))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}

// handleReload re-fetches the catalog from the remote API on user
// request, the retry path for a failed startup load.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.Load(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}

	view, err := s.dash.View()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("catalog reloaded", "products", view.CatalogTotal)
	writeJSON(w, view)
}

// parseIntParam parses an integer query parameter with a default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
