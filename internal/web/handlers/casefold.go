package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jusunglee/unicodeutil/internal/casefold"
	"github.com/jusunglee/unicodeutil/internal/db"
	"github.com/jusunglee/unicodeutil/internal/metrics"
)

type CasefoldHandler struct {
	table *casefold.Table
	repo  db.Repository
	log   *slog.Logger
}

func NewCasefoldHandler(table *casefold.Table, repo db.Repository, log *slog.Logger) *CasefoldHandler {
	return &CasefoldHandler{table: table, repo: repo, log: log}
}

type casefoldRequest struct {
	InputString      string `json:"input_string"`
	FullCasefold     *bool  `json:"fullcasefold,omitempty"`
	UseTurkicMapping bool   `json:"useturkicmapping,omitempty"`
}

type casefoldResponse struct {
	Input  string `json:"input"`
	Result string `json:"result"`
}

// Fold serves POST /api/v1/casefold. Full case folding is the default;
// fullcasefold=false selects simple one-to-one folding.
func (h *CasefoldHandler) Fold(w http.ResponseWriter, r *http.Request) {
	var req casefoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.InputString == "" {
		writeError(w, http.StatusBadRequest, "input_string is required")
		return
	}

	opts := casefold.Options{Turkic: req.UseTurkicMapping}
	variant := "full"
	if req.FullCasefold != nil && !*req.FullCasefold {
		opts.Simple = true
		variant = "simple"
	}
	if opts.Turkic {
		variant += "_turkic"
	}

	metrics.CasefoldRequestsTotal.WithLabelValues(variant).Inc()
	logQuery(r.Context(), h.repo, h.log, db.KindCasefold, req.InputString)
	writeJSON(w, http.StatusOK, casefoldResponse{
		Input:  req.InputString,
		Result: h.table.Fold(req.InputString, opts),
	})
}
