package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/platform/httpx"
)

const defaultPageSize = 50

// Handler exposes read-only catalog lookups for the POS product picker.
type Handler struct {
	logger *slog.Logger
	repo   Repository
}

func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers the catalog endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/api/catalog/products", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/{productID}", h.HandleGet)
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 || perPage > 500 {
		perPage = defaultPageSize
	}

	products, err := h.repo.List(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		h.logger.Error("catalog list failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "failed to list products")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"products": products,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "product id must be a positive integer")
		return
	}

	product, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "no such product")
			return
		}
		h.logger.Error("catalog get failed", slog.Int64("product_id", id), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "failed to load product")
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}
