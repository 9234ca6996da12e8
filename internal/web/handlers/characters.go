package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jusunglee/unicodeutil/internal/dataset"
	"github.com/jusunglee/unicodeutil/internal/db"
	"github.com/jusunglee/unicodeutil/internal/metrics"
	"github.com/jusunglee/unicodeutil/internal/ucd"
	"github.com/samber/lo"
)

type CharacterHandler struct {
	ds   *dataset.Dataset
	repo db.Repository
	log  *slog.Logger
}

func NewCharacterHandler(ds *dataset.Dataset, repo db.Repository, log *slog.Logger) *CharacterHandler {
	return &CharacterHandler{ds: ds, repo: repo, log: log}
}

type decompositionResponse struct {
	Tag        string   `json:"tag,omitempty"`
	Codepoints []string `json:"codepoints"`
}

type characterResponse struct {
	Codepoint     string                 `json:"codepoint"`
	Char          string                 `json:"char"`
	Name          string                 `json:"name"`
	Category      string                 `json:"category"`
	Combining     int                    `json:"combining"`
	Bidi          string                 `json:"bidi"`
	Decomposition *decompositionResponse `json:"decomposition,omitempty"`
	Decimal       *int                   `json:"decimal,omitempty"`
	Digit         *int                   `json:"digit,omitempty"`
	Numeric       *string                `json:"numeric,omitempty"`
	Mirrored      bool                   `json:"mirrored"`
	Unicode1Name  string                 `json:"unicode_1_name,omitempty"`
	ISOComment    string                 `json:"iso_comment,omitempty"`
	Uppercase     string                 `json:"uppercase,omitempty"`
	Lowercase     string                 `json:"lowercase,omitempty"`
	Titlecase     string                 `json:"titlecase,omitempty"`
	Block         string                 `json:"block,omitempty"`
}

func formatCodepoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

func (h *CharacterHandler) toResponse(c ucd.Character) characterResponse {
	resp := characterResponse{
		Codepoint:    formatCodepoint(c.Codepoint),
		Char:         string(c.Codepoint),
		Name:         c.Name,
		Category:     c.Category,
		Combining:    c.Combining,
		Bidi:         c.Bidi,
		Mirrored:     c.Mirrored,
		Unicode1Name: c.Unicode1Name,
		ISOComment:   c.ISOComment,
	}
	if !c.Decomposition.IsZero() {
		resp.Decomposition = &decompositionResponse{
			Tag:        c.Decomposition.Tag,
			Codepoints: lo.Map(c.Decomposition.Runes, func(r rune, _ int) string { return formatCodepoint(r) }),
		}
	}
	if c.Decimal != ucd.NoValue {
		d := c.Decimal
		resp.Decimal = &d
	}
	if c.Digit != ucd.NoValue {
		d := c.Digit
		resp.Digit = &d
	}
	if c.Numeric != nil {
		n := c.Numeric.RatString()
		resp.Numeric = &n
	}
	if c.Upper != 0 {
		resp.Uppercase = formatCodepoint(c.Upper)
	}
	if c.Lower != 0 {
		resp.Lowercase = formatCodepoint(c.Lower)
	}
	if c.Title != 0 {
		resp.Titlecase = formatCodepoint(c.Title)
	}
	if name, err := h.ds.Blocks.ByCodepoint(c.Codepoint); err == nil {
		resp.Block = name
	}
	return resp
}

// Get serves GET /api/v1/ucd/{codepoint}.
func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	param := r.PathValue("codepoint")
	cp, err := parseCodepointParam(param)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid codepoint")
		return
	}

	c, err := h.ds.Chars.ByCodepoint(cp)
	switch {
	case errors.Is(err, ucd.ErrInvalidCodePoint):
		metrics.CharacterLookupsTotal.WithLabelValues(db.KindCodepoint, "invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid codepoint")
		return
	case errors.Is(err, ucd.ErrNotFound):
		metrics.CharacterLookupsTotal.WithLabelValues(db.KindCodepoint, "miss").Inc()
		writeError(w, http.StatusNotFound, "character not found")
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "codepoint lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.CharacterLookupsTotal.WithLabelValues(db.KindCodepoint, "hit").Inc()
	logQuery(r.Context(), h.repo, h.log, db.KindCodepoint, formatCodepoint(cp))
	writeJSON(w, http.StatusOK, h.toResponse(c))
}

type searchResponse struct {
	Query   string              `json:"query"`
	Matches []characterResponse `json:"matches"`
}

// Search serves GET /api/v1/search?q=NAME[&partial=true]. Without
// partial, the name is resolved with UAX44-LM2 loose matching; with
// partial, every record whose name contains the fragment is returned.
func (h *CharacterHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q parameter is required")
		return
	}

	if r.URL.Query().Get("partial") == "true" {
		matches := h.ds.Chars.ByPartialName(q)
		metrics.CharacterLookupsTotal.WithLabelValues(db.KindPartial, lo.Ternary(len(matches) > 0, "hit", "miss")).Inc()
		logQuery(r.Context(), h.repo, h.log, db.KindPartial, q)
		writeJSON(w, http.StatusOK, searchResponse{
			Query:   q,
			Matches: lo.Map(matches, func(c ucd.Character, _ int) characterResponse { return h.toResponse(c) }),
		})
		return
	}

	c, err := h.ds.Chars.ByName(q)
	if err != nil {
		metrics.CharacterLookupsTotal.WithLabelValues(db.KindName, "miss").Inc()
		writeError(w, http.StatusNotFound, "no character with that name")
		return
	}
	metrics.CharacterLookupsTotal.WithLabelValues(db.KindName, "hit").Inc()
	logQuery(r.Context(), h.repo, h.log, db.KindName, q)
	writeJSON(w, http.StatusOK, searchResponse{
		Query:   q,
		Matches: []characterResponse{h.toResponse(c)},
	})
}
