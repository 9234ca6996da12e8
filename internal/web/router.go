// Package web wires the HTTP API over the in-memory Unicode dataset.
package web

import (
	"log/slog"
	"net/http"

	"github.com/jusunglee/unicodeutil/internal/dataset"
	"github.com/jusunglee/unicodeutil/internal/db"
	"github.com/jusunglee/unicodeutil/internal/web/handlers"
	"github.com/jusunglee/unicodeutil/internal/web/middleware"
)

type Router struct {
	ds   *dataset.Dataset
	repo db.Repository
	log  *slog.Logger
}

// NewRouter builds a router over the loaded dataset. repo may be nil,
// in which case query logging is disabled and /api/v1/recent is empty.
func NewRouter(ds *dataset.Dataset, repo db.Repository, log *slog.Logger) *Router {
	return &Router{
		ds:   ds,
		repo: repo,
		log:  log,
	}
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	characterHandler := handlers.NewCharacterHandler(r.ds, r.repo, r.log)
	casefoldHandler := handlers.NewCasefoldHandler(r.ds.Folds, r.repo, r.log)
	blocksHandler := handlers.NewBlocksHandler(r.ds, r.log)
	recentHandler := handlers.NewRecentHandler(r.repo, r.log)

	rateLimiter := middleware.NewRateLimiter(30, 60)

	mux.Handle("GET /api/v1/ucd/{codepoint}",
		middleware.Chain(
			http.HandlerFunc(characterHandler.Get),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=3600, max-age=60"),
		),
	)

	mux.Handle("GET /api/v1/search",
		middleware.Chain(
			http.HandlerFunc(characterHandler.Search),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=3600, max-age=60"),
		),
	)

	mux.Handle("POST /api/v1/casefold",
		middleware.Chain(
			http.HandlerFunc(casefoldHandler.Fold),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
		),
	)

	mux.Handle("GET /api/v1/blocks",
		middleware.Chain(
			http.HandlerFunc(blocksHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=3600, max-age=60"),
		),
	)

	mux.Handle("GET /api/v1/blocks/{slug}",
		middleware.Chain(
			http.HandlerFunc(blocksHandler.Members),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=3600, max-age=60"),
		),
	)

	mux.Handle("GET /api/v1/recent",
		middleware.Chain(
			http.HandlerFunc(recentHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
		),
	)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return middleware.CORS(mux)
}
