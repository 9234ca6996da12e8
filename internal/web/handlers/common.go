// Package handlers implements the JSON API over the parsed Unicode
// tables.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jusunglee/unicodeutil/internal/db"
	"github.com/jusunglee/unicodeutil/internal/metrics"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// parseCodepointParam accepts "U+200C", "0x200C", or bare "200C".
func parseCodepointParam(s string) (rune, error) {
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "U+") || strings.HasPrefix(upper, "0X") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > 0x10FFFF {
		return 0, fmt.Errorf("invalid codepoint %q", s)
	}
	return rune(v), nil
}

// logQuery records an API query best-effort; a failing query log never
// fails the request.
func logQuery(ctx context.Context, repo db.Repository, log *slog.Logger, kind, query string) {
	if repo == nil {
		return
	}
	if err := repo.LogQuery(ctx, kind, query); err != nil {
		metrics.QueryLogErrors.Inc()
		log.WarnContext(ctx, "writing query log", "kind", kind, "error", err)
	}
}
