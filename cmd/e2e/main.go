// e2e is an end-to-end smoke test of the web API. It loads the real
// UCD tables, serves the API over a loopback listener backed by a
// temporary SQLite query log, and verifies every route with live
// requests. Run via `UCD_DIR=data go run cmd/e2e/main.go`.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jusunglee/unicodeutil/internal/dataset"
	"github.com/jusunglee/unicodeutil/internal/db/sqlite"
	"github.com/jusunglee/unicodeutil/internal/logger"
	"github.com/jusunglee/unicodeutil/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("E2E FAILED", "error", err)
		os.Exit(1)
	}
	slog.Info("E2E PASSED")
}

func run() error {
	_ = godotenv.Load()

	ucdDir := os.Getenv("UCD_DIR")
	if ucdDir == "" {
		ucdDir = "data"
	}

	log := logger.New()
	ctx := context.Background()

	// Phase 1: Load the UCD tables and set up a throwaway query log
	log.Info("Phase 1: Loading UCD tables...", "dir", ucdDir)
	ds, err := dataset.Load(ctx, ucdDir)
	if err != nil {
		return fmt.Errorf("loading UCD tables: %w", err)
	}
	log.Info("tables loaded", "characters", ds.Chars.Count(), "blocks", len(ds.Blocks.All()))

	dbPath := fmt.Sprintf("/tmp/unicodeutil-e2e-%d.db", time.Now().UnixNano())
	defer os.Remove(dbPath)

	repo, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("creating temp SQLite: %w", err)
	}
	defer repo.Close()

	// Phase 2: Serve the API on a loopback listener
	log.Info("Phase 2: Starting server...")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listening: %w", err)
	}
	server := &http.Server{Handler: web.NewRouter(ds, repo, log).Handler()}
	go server.Serve(ln)
	defer server.Close()

	base := "http://" + ln.Addr().String()
	log.Info("server up", "addr", base)

	// Phase 3: Character lookups
	log.Info("Phase 3: Character lookups...")

	var ch struct {
		Codepoint string `json:"codepoint"`
		Name      string `json:"name"`
		Block     string `json:"block"`
	}
	if err := getJSON(base+"/api/v1/ucd/U+00DF", &ch); err != nil {
		return err
	}
	if ch.Name != "LATIN SMALL LETTER SHARP S" {
		return fmt.Errorf("U+00DF has unexpected name %q", ch.Name)
	}
	if ch.Block != "Latin-1 Supplement" {
		return fmt.Errorf("U+00DF has unexpected block %q", ch.Block)
	}

	// Generated Hangul syllable name
	if err := getJSON(base+"/api/v1/ucd/D4DB", &ch); err != nil {
		return err
	}
	if ch.Name != "HANGUL SYLLABLE PWILH" {
		return fmt.Errorf("U+D4DB has unexpected name %q", ch.Name)
	}

	if status, err := getStatus(base + "/api/v1/ucd/D800"); err != nil || status != http.StatusBadRequest {
		return fmt.Errorf("surrogate lookup: status=%d err=%v", status, err)
	}

	// Phase 4: Name search, loose and partial
	log.Info("Phase 4: Name search...")

	var search struct {
		Matches []struct {
			Codepoint string `json:"codepoint"`
		} `json:"matches"`
	}
	if err := getJSON(base+"/api/v1/search?q=latin_small%20letter%20sharp-s", &search); err != nil {
		return err
	}
	if len(search.Matches) != 1 || search.Matches[0].Codepoint != "U+00DF" {
		return fmt.Errorf("loose name search returned %+v", search.Matches)
	}

	if err := getJSON(base+"/api/v1/search?q=SHARP%20S&partial=true", &search); err != nil {
		return err
	}
	if len(search.Matches) == 0 {
		return fmt.Errorf("partial search returned no matches")
	}
	log.Info("partial search ok", "matches", len(search.Matches))

	// Phase 5: Case folding
	log.Info("Phase 5: Case folding...")

	var fold struct {
		Result string `json:"result"`
	}
	if err := postJSON(base+"/api/v1/casefold", `{"input_string":"weiß"}`, &fold); err != nil {
		return err
	}
	if fold.Result != "weiss" {
		return fmt.Errorf("full casefold of weiß = %q", fold.Result)
	}
	if err := postJSON(base+"/api/v1/casefold", `{"input_string":"LİMANI","useturkicmapping":true}`, &fold); err != nil {
		return err
	}
	if fold.Result != "limanı" {
		return fmt.Errorf("turkic casefold of LİMANI = %q", fold.Result)
	}

	// Phase 6: Blocks
	log.Info("Phase 6: Blocks...")

	var blockList []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := getJSON(base+"/api/v1/blocks", &blockList); err != nil {
		return err
	}
	if len(blockList) == 0 || blockList[0].Name != "Basic Latin" {
		return fmt.Errorf("unexpected block list head: %+v", blockList[:min(len(blockList), 1)])
	}

	var members struct {
		Block   string `json:"block"`
		Members []struct {
			Codepoint string `json:"codepoint"`
		} `json:"members"`
	}
	if err := getJSON(base+"/api/v1/blocks/basic-latin", &members); err != nil {
		return err
	}
	if members.Block != "Basic Latin" || len(members.Members) == 0 {
		return fmt.Errorf("unexpected block members: %s (%d)", members.Block, len(members.Members))
	}

	// Phase 7: Recent queries reflect the traffic above
	log.Info("Phase 7: Recent queries...")

	var recent []struct {
		Kind  string `json:"kind"`
		Query string `json:"query"`
	}
	if err := getJSON(base+"/api/v1/recent", &recent); err != nil {
		return err
	}
	if len(recent) == 0 {
		return fmt.Errorf("query log is empty after traffic")
	}
	if recent[0].Kind != "casefold" {
		return fmt.Errorf("newest logged query should be the casefold, got %+v", recent[0])
	}

	log.Info("all verifications passed",
		"characters", ds.Chars.Count(),
		"blocks", len(blockList),
		"logged_queries", len(recent),
	)

	return nil
}

func getStatus(url string) (int, error) {
	resp, err := http.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func getJSON(url string, v any) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: decoding: %w", url, err)
	}
	return nil
}

func postJSON(url, body string, v any) error {
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		return fmt.Errorf("POST %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: status %d: %s", url, resp.StatusCode, b)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("POST %s: decoding: %w", url, err)
	}
	return nil
}
