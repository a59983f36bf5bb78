package httptransport

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"enrollhub/internal/platform/metrics"
	"enrollhub/internal/platform/middleware"
	"enrollhub/pkg/platform/httputil"
)

// Registrar is anything that can mount routes onto the router. Every
// feature handler implements it.
type Registrar interface {
	Register(r chi.Router)
}

// Config carries the router's cross-cutting pieces.
type Config struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	DB      *sql.DB

	RequestTimeout time.Duration
}

// NewRouter assembles the middleware chain and mounts every feature
// handler. The chain order matters: identity and clock context first, then
// recovery around everything that can panic, then logging and latency so
// they observe the final status.
func NewRouter(cfg Config, handlers ...Registrar) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Actor)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Latency(cfg.Metrics))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/healthz", healthHandler(cfg.DB))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				status["status"] = "degraded"
				status["database"] = "unreachable"
				code = http.StatusServiceUnavailable
			}
		}
		httputil.WriteJSON(w, code, status)
	}
}
