package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Regen/internal/simulator"
)

func NewRouter(svc *simulator.Service, requestsPerMinute int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(requestsPerMinute))

	cat := NewCatalogHandler(svc.Catalog())
	sims := NewSimulationsHandler(svc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/technologies", cat.Technologies)
		r.Get("/damage-types", cat.DamageTypes)
		r.Get("/constants", cat.Constants)

		r.Post("/simulations", sims.Create)
		r.Get("/simulations", sims.List)
		r.Get("/simulations/{id}", sims.Get)
		r.Get("/simulations/{id}/export", sims.Export)
		r.Get("/simulations/{id}/explain", sims.Explain)
		r.Delete("/simulations/{id}", sims.Delete)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
