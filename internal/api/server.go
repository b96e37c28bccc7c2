package api

import (
	"net/http"
	"time"

	"github.com/homewise/affordability/internal/config"
	"go.uber.org/zap"
)

// NewRouter registers the routes and wraps them in the middleware stack:
// request id, access log, CORS, then rate limiting.
func NewRouter(h *Handler, cfg config.ServerConfig, logger *zap.Logger, metrics *Metrics) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/calculate-buying-power", h.CalculateBuyingPower)
	mux.HandleFunc("/api/scenario", h.EvaluateScenario)
	mux.HandleFunc("/api/stamp-duty", h.StampDuty)
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /readyz", h.Ready)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	return Chain(mux,
		RequestID(),
		AccessLog(logger, metrics),
		CORS(cfg.CORSOrigins),
		RateLimit(NewLimiter(cfg.RateLimitPerMinute), logger),
	)
}

// NewServer builds the HTTP server for cfg.Port.
func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
