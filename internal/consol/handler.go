package consol

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/platform/httpx"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

// ReportEnqueuer schedules a background report build and returns the
// cache key the finished report will be stored under.
type ReportEnqueuer interface {
	EnqueueReportBuild(ctx context.Context, refs []DocumentRef) (string, error)
}

// PreviewRequest carries already-resolved documents for direct
// consolidation, e.g. when the client holds unsaved order lines.
type PreviewRequest struct {
	Documents [][]pricing.LineItem `json:"documents" validate:"required"`
}

// Handler wires the consolidation endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	cache     *Cache
	enqueuer  ReportEnqueuer
	validate  *validator.Validate
	rateLimit func(http.Handler) http.Handler
}

func NewHandler(logger *slog.Logger, service *Service, cache *Cache, enqueuer ReportEnqueuer) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		cache:     cache,
		enqueuer:  enqueuer,
		validate:  validator.New(),
		rateLimit: httprate.LimitByIP(60, time.Minute),
	}
}

// MountRoutes registers the consolidation endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/api/consol", func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Post("/preview", h.HandlePreview)
		r.Get("/report", h.HandleReport)
		r.Post("/report-jobs", h.HandleEnqueueReport)
	})
}

// HandlePreview consolidates documents supplied inline in the request.
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
	for i, doc := range req.Documents {
		if err := pricing.ValidateLines(doc); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed",
				"document "+strconv.Itoa(i+1)+": "+err.Error())
			return
		}
	}

	result := Consolidate(req.Documents)
	h.logger.Debug("consolidation preview",
		slog.Int("documents", len(req.Documents)),
		slog.Int("groups", len(result.Lines)))
	httpx.JSON(w, http.StatusOK, result)
}

// HandleReport resolves persisted documents and returns the merged
// report, served from cache when the same document set was recently
// built.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	refs, errMsg := parseRefs(r)
	if errMsg != "" {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", errMsg)
		return
	}

	key := CacheKey(refs)
	if report, ok := h.cache.Get(r.Context(), key); ok {
		httpx.JSON(w, http.StatusOK, report)
		return
	}

	report, err := h.service.BuildReport(r.Context(), refs)
	if err != nil {
		h.logger.Error("build consolidation report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	// Only fully resolved reports are cached; a partial one should be
	// retried on the next request.
	if len(report.Warnings) == 0 {
		h.cache.Set(r.Context(), key, report)
	}
	httpx.JSON(w, http.StatusOK, report)
}

// HandleEnqueueReport schedules a background build for large document
// sets and returns the cache key to poll.
func (h *Handler) HandleEnqueueReport(w http.ResponseWriter, r *http.Request) {
	if h.enqueuer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "background builds are not configured")
		return
	}
	refs, errMsg := parseRefs(r)
	if errMsg != "" {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", errMsg)
		return
	}
	key, err := h.enqueuer.EnqueueReportBuild(r.Context(), refs)
	if err != nil {
		h.logger.Error("enqueue consolidation report", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"cache_key": key})
}

func parseRefs(r *http.Request) ([]DocumentRef, string) {
	docType := DocumentType(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("type"))))
	if !docType.Valid() {
		return nil, "unknown document type"
	}
	rawIDs := strings.Split(r.URL.Query().Get("ids"), ",")
	refs := make([]DocumentRef, 0, len(rawIDs))
	for _, raw := range rawIDs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, "invalid document id " + raw
		}
		refs = append(refs, DocumentRef{Type: docType, ID: id})
	}
	if len(refs) == 0 {
		return nil, "at least one document id is required"
	}
	return refs, ""
}
