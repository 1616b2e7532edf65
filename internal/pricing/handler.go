package pricing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/platform/httpx"
)

// PreviewRequest carries the raw line items of a document being edited.
// Currency and locale only affect the display strings in the response.
type PreviewRequest struct {
	Currency string     `json:"currency,omitempty" validate:"omitempty,max=8"`
	Locale   string     `json:"locale,omitempty" validate:"omitempty,max=16"`
	Lines    []LineItem `json:"lines" validate:"required,min=1"`
}

// DisplayTotals holds locale-formatted figures for direct rendering.
type DisplayTotals struct {
	Subtotal   string `json:"subtotal"`
	Discount   string `json:"discount"`
	Tax        string `json:"tax"`
	GrandTotal string `json:"grand_total"`
}

// PreviewResponse returns priced lines, raw totals, display strings and
// the ready-to-submit persistence payload.
type PreviewResponse struct {
	Lines   []PricedLine      `json:"lines"`
	Totals  DocumentTotals    `json:"totals"`
	Display DisplayTotals     `json:"display"`
	Payload SubmissionPayload `json:"payload"`
}

// Handler exposes the pricing preview endpoint used by order, return
// and invoice forms for live recomputation while editing.
type Handler struct {
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger, validate: validator.New()}
}

// MountRoutes registers the pricing endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/api/pricing/preview", h.HandlePreview)
}

func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := ValidateLines(req.Lines); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	symbol := req.Currency
	if symbol == "" {
		symbol = "$"
	}
	locale := req.Locale
	if locale == "" {
		locale = "en"
	}

	lines := make([]PricedLine, 0, len(req.Lines))
	for _, item := range req.Lines {
		lines = append(lines, PriceLine(item))
	}
	totals := Aggregate(req.Lines)

	resp := PreviewResponse{
		Lines:  lines,
		Totals: totals,
		Display: DisplayTotals{
			Subtotal:   FormatAmount(totals.Subtotal, symbol, locale),
			Discount:   FormatAmount(totals.Discount, symbol, locale),
			Tax:        FormatAmount(totals.Tax, symbol, locale),
			GrandTotal: FormatAmount(totals.GrandTotal, symbol, locale),
		},
		Payload: BuildSubmissionPayload(req.Lines),
	}

	h.logger.Debug("pricing preview", slog.Int("lines", len(lines)),
		slog.String("grand_total", totals.GrandTotal.String()))
	httpx.JSON(w, http.StatusOK, resp)
}
