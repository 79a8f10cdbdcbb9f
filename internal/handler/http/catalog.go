package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/catalog"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/httputil"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/pagination"
)

// CatalogHandler serves the product catalog.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(c *catalog.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, logger: logger}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := catalog.Filter{
		Category: domain.Category(q.Get("category")),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}
	if f.Category != "" && !f.Category.Valid() {
		httputil.WriteError(w, r, apperrors.InvalidInput("unknown category: "+q.Get("category")), h.logger)
		return
	}
	if v := q.Get("in_stock"); v != "" {
		inStock, err := strconv.ParseBool(v)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("in_stock must be true or false"), h.logger)
			return
		}
		f.InStockOnly = inStock
	}
	if !catalog.ValidSort(f.Sort) {
		httputil.WriteError(w, r, apperrors.InvalidInput("unknown sort: "+q.Get("sort")), h.logger)
		return
	}

	products := h.catalog.Query(f)
	p := pagination.FromRequest(r)
	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(pagination.Slice(products, p), len(products), p.Page, p.PerPage))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	product, found := h.catalog.ByID(id)
	if !found {
		httputil.WriteError(w, r, apperrors.NotFound("product", strconv.Itoa(id)), h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, product)
}

// Featured handles GET /api/v1/products/featured
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.catalog.Featured())
}

// Bestsellers handles GET /api/v1/products/bestsellers
func (h *CatalogHandler) Bestsellers(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.catalog.Bestsellers())
}

// Categories handles GET /api/v1/products/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.catalog.Categories())
}
