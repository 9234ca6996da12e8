package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jusunglee/unicodeutil/internal/db"
	"github.com/samber/lo"
)

type RecentHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewRecentHandler(repo db.Repository, log *slog.Logger) *RecentHandler {
	return &RecentHandler{repo: repo, log: log}
}

type recentQueryResponse struct {
	Kind      string `json:"kind"`
	Query     string `json:"query"`
	CreatedAt string `json:"created_at"`
}

// List serves GET /api/v1/recent.
func (h *RecentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeJSON(w, http.StatusOK, []recentQueryResponse{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 25
	}

	recent, err := h.repo.RecentQueries(r.Context(), int32(limit))
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing recent queries", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(recent, func(rec db.QueryRecord, _ int) recentQueryResponse {
		return recentQueryResponse{
			Kind:      rec.Kind,
			Query:     rec.Query,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		}
	}))
}
