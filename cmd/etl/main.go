// Command etl normalizes a directory of messy 1925 Latvian station files
// into one merged, sorted CSV.
//
// Usage:
//
//	etl -dir /data/meteo -out /data/latvia_meteo_1925_clean.csv
//	etl -paths riga_university_1925_p1.txt,liepaja_1925.txt
//	etl -dir /data/meteo -out /data/clean.csv -watch 5m
//
// Without -out the merged corpus is previewed on stdout. With -watch the
// process stays up, re-runs on the given interval, and serves health and
// metrics endpoints on HTTP_ADDR.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/meteo-archive-etl/internal/adapter/archive"
	"github.com/couchcryptid/meteo-archive-etl/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/meteo-archive-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/meteo-archive-etl/internal/adapter/kafka"
	"github.com/couchcryptid/meteo-archive-etl/internal/config"
	"github.com/couchcryptid/meteo-archive-etl/internal/observability"
	"github.com/couchcryptid/meteo-archive-etl/internal/pipeline"
)

func main() {
	dir := flag.String("dir", "", "directory with messy .txt station files")
	paths := flag.String("paths", "", "explicit comma-separated list of file paths (overrides -dir)")
	out := flag.String("out", "", "output CSV path (omit to preview on stdout)")
	watch := flag.Duration("watch", 0, "re-run on this interval and serve health/metrics (0 = one-shot)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var source pipeline.Source
	switch {
	case *paths != "":
		source = archive.PathSource(splitPaths(*paths))
	case *dir != "":
		source = archive.DirSource{Dir: *dir}
	default:
		flag.Usage()
		logger.Error("provide either -dir or -paths")
		os.Exit(1)
	}

	var sinks []pipeline.Sink
	if *out != "" {
		sinks = append(sinks, csvfile.FileSink{Path: *out, Logger: logger})
	} else {
		sinks = append(sinks, csvfile.PreviewSink{W: os.Stdout, Limit: cfg.PreviewRows})
	}

	var publisher *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, publisher)
		logger.Info("kafka publisher enabled", "topic", cfg.KafkaSinkTopic)
	}

	runner := pipeline.New(source, sinks, logger, metrics, clockwork.NewRealClock())

	code := 0
	if *watch > 0 {
		code = runWatch(runner, cfg, logger, *watch)
	} else if _, err := runner.Run(context.Background()); err != nil {
		logger.Error("run failed", "error", err)
		code = 1
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	os.Exit(code)
}

// runWatch runs the pipeline on an interval with health/metrics endpoints
// until interrupted.
func runWatch(runner *pipeline.Runner, cfg *config.Config, logger *slog.Logger, interval time.Duration) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpadapter.NewServer(cfg.HTTPAddr, runner, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if err := runner.Watch(ctx, interval); err != nil {
		logger.Error("watcher error", "error", err)
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
		return 1
	}
	return 0
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
