package pos

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/catalog"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/platform/httpx"
)

// AddItemRequest identifies the product to add to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// Handler wires the POS cart endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers the POS session endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/api/pos/sessions", func(r chi.Router) {
		r.Post("/", h.HandleStart)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Delete("/", h.HandleReset)
			r.Post("/items", h.HandleAdd)
			r.Post("/items/{productID}/increment", h.HandleIncrement)
			r.Post("/items/{productID}/decrement", h.HandleDecrement)
			r.Delete("/items/{productID}", h.HandleRemove)
			r.Post("/submit", h.HandleSubmit)
		})
	})
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.StartSession(r.Context())
	if err != nil {
		h.logger.Error("start pos session", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, cart)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cart)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	cart, err := h.service.AddProduct(r.Context(), chi.URLParam(r, "sessionID"), req.ProductID)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cart)
}

func (h *Handler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.IncrementLine)
}

func (h *Handler) HandleDecrement(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.DecrementLine)
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.RemoveLine)
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.ResetCart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cart)
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.Submit(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payload)
}

type lineMutation func(ctx context.Context, sessionID string, productID int64) (CartView, error)

func (h *Handler) mutateLine(w http.ResponseWriter, r *http.Request, fn lineMutation) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "invalid product id")
		return
	}
	cart, err := fn(r.Context(), chi.URLParam(r, "sessionID"), productID)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cart)
}

// respondErr maps POS conditions onto problem responses. Stock
// rejections surface the exact reason so the cashier sees the ceiling
// immediately.
func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	var stockErr *StockError
	switch {
	case errors.As(err, &stockErr):
		httpx.Problem(w, http.StatusConflict, "Stock Violation", stockErr.Reason)
	case errors.Is(err, ErrSessionNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrLineNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error("pos request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
