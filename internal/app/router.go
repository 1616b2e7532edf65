package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/catalog"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/consol"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/observability"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pos"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Metrics        *observability.Metrics
	PricingHandler *pricing.Handler
	ConsolHandler  *consol.Handler
	POSHandler     *pos.Handler
	CatalogHandler *catalog.Handler
}

// NewRouter constructs the chi.Router with engine defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	if params.PricingHandler != nil {
		params.PricingHandler.MountRoutes(r)
	}
	if params.ConsolHandler != nil {
		params.ConsolHandler.MountRoutes(r)
	}
	if params.POSHandler != nil {
		params.POSHandler.MountRoutes(r)
	}
	if params.CatalogHandler != nil {
		params.CatalogHandler.MountRoutes(r)
	}

	return r
}
