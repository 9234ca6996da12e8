// web serves the Unicode Character Database JSON API. The UCD tables
// are parsed once at startup into immutable in-memory indices; an
// optional SQLite or PostgreSQL backend records recent queries.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jusunglee/unicodeutil/internal/dataset"
	"github.com/jusunglee/unicodeutil/internal/db"
	"github.com/jusunglee/unicodeutil/internal/db/postgres"
	"github.com/jusunglee/unicodeutil/internal/db/sqlite"
	"github.com/jusunglee/unicodeutil/internal/logger"
	"github.com/jusunglee/unicodeutil/internal/metrics"
	"github.com/jusunglee/unicodeutil/internal/web"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("unicodeutil-web")

	var (
		port        = fs_.Int64Long("port", 3000, "HTTP server port")
		ucdDir      = fs_.StringLong("ucd-dir", "data", "directory containing UnicodeData.txt, Blocks.txt, CaseFolding.txt")
		databaseURL = fs_.StringLong("database-url", "", "query log backend: sqlite path or postgres:// URL (empty disables the log)")
	)

	if err := ff.Parse(fs_, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	start := time.Now()
	ds, err := dataset.Load(ctx, *ucdDir)
	if err != nil {
		return fmt.Errorf("loading UCD tables: %w", err)
	}
	metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	log.InfoContext(ctx, "loaded UCD tables",
		"dir", *ucdDir,
		"characters", ds.Chars.Count(),
		"blocks", len(ds.Blocks.All()),
		"elapsed", time.Since(start).Round(time.Millisecond))

	var repo db.Repository
	switch {
	case *databaseURL == "":
		log.InfoContext(ctx, "no database-url, query log disabled")
	case strings.HasPrefix(*databaseURL, "postgres://"), strings.HasPrefix(*databaseURL, "postgresql://"):
		pgRepo, err := postgres.New(ctx, *databaseURL)
		if err != nil {
			return fmt.Errorf("creating PostgreSQL connection: %w", err)
		}
		defer pgRepo.Close()
		repo = pgRepo
		log.InfoContext(ctx, "connected to PostgreSQL query log")

		// Periodically export pgxpool stats as Prometheus gauges
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					s := pgRepo.PoolStats()
					metrics.DBPoolTotalConns.Set(float64(s.TotalConns()))
					metrics.DBPoolIdleConns.Set(float64(s.IdleConns()))
					metrics.DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
					metrics.DBPoolMaxConns.Set(float64(s.MaxConns()))
				case <-ctx.Done():
					return
				}
			}
		}()
	default:
		repo, err = sqlite.New(ctx, strings.TrimPrefix(*databaseURL, "sqlite://"))
		if err != nil {
			return fmt.Errorf("opening SQLite query log: %w", err)
		}
		defer repo.Close()
		log.InfoContext(ctx, "opened SQLite query log", "path", *databaseURL)
	}

	router := web.NewRouter(ds, repo, log)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
		cancel(errors.New("signal received"))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "server shutdown error", "error", err)
		}
	}()

	log.InfoContext(ctx, "starting web server", "port", *port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
