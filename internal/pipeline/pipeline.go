package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/meteo-archive-etl/internal/domain"
	"github.com/couchcryptid/meteo-archive-etl/internal/observability"
)

// Source resolves the ordered list of input file paths for a run. The order
// matters: it decides which of two duplicate (station, timestamp) records
// comes first in the merged corpus.
type Source interface {
	Resolve(ctx context.Context) ([]string, error)
}

// Sink consumes the finished corpus.
type Sink interface {
	Write(ctx context.Context, corpus []domain.Record) error
}

// Result summarizes one completed run.
type Result struct {
	Files       int
	Records     int
	Dropped     int
	GeneratedAt time.Time
}

// Runner orchestrates one extract-normalize-merge-write cycle over the
// archive. Files are processed sequentially; each file's intermediate table
// is owned exclusively until handed to Merge.
type Runner struct {
	source  Source
	sinks   []Sink
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	ready   atomic.Bool
}

// New creates a Runner with the given collaborators and observability.
func New(source Source, sinks []Sink, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Runner {
	return &Runner{
		source:  source,
		sinks:   sinks,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// CheckReadiness returns nil once at least one run has completed.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no completed run yet")
	}
	return nil
}

// Run executes one full pipeline cycle. A file without a schema declaration
// aborts the run; malformed rows never do: they surface as missing-valued
// records, and records with no parseable timestamp are dropped at the merge.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	start := r.clock.Now()

	paths, err := r.source.Resolve(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("resolve inputs: %w", err)
	}
	if len(paths) == 0 {
		return Result{}, errors.New("no input files")
	}

	tables := make([]FileTable, 0, len(paths))
	total := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		table, err := LoadFile(path)
		if err != nil {
			r.metrics.FileFailures.Inc()
			return Result{}, err
		}
		r.metrics.FilesProcessed.Inc()
		r.metrics.RowsParsed.Add(float64(table.Stats.RowsParsed))
		r.metrics.RowsFolded.Add(float64(table.Stats.RowsFolded))
		r.metrics.RowsPadded.Add(float64(table.Stats.RowsPadded))
		r.logger.Debug("file loaded",
			"path", path,
			"station", table.Station,
			"rows", table.Stats.RowsParsed,
			"folded", table.Stats.RowsFolded,
			"padded", table.Stats.RowsPadded,
		)
		total += len(table.Records)
		tables = append(tables, table)
	}

	corpus := Merge(tables)
	dropped := total - len(corpus)
	r.metrics.RecordsDropped.Add(float64(dropped))
	r.metrics.RecordsEmitted.Add(float64(len(corpus)))

	for _, sink := range r.sinks {
		if err := sink.Write(ctx, corpus); err != nil {
			return Result{}, fmt.Errorf("write corpus: %w", err)
		}
	}

	r.metrics.RunDuration.Observe(r.clock.Since(start).Seconds())
	r.ready.Store(true)

	res := Result{
		Files:       len(paths),
		Records:     len(corpus),
		Dropped:     dropped,
		GeneratedAt: start,
	}
	r.logger.Info("run complete",
		"files", res.Files,
		"records", res.Records,
		"dropped_no_timestamp", res.Dropped,
	)
	return res, nil
}

// Watch re-runs the pipeline on a fixed interval until the context is
// cancelled. A failed run is logged and retried on the next tick; the
// archive may be mid-edit when a tick fires.
func (r *Runner) Watch(ctx context.Context, interval time.Duration) error {
	r.metrics.WatcherRunning.Set(1)
	defer r.metrics.WatcherRunning.Set(0)
	r.logger.Info("watching archive", "interval", interval)

	for {
		if _, err := r.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.logger.Error("run failed", "error", err)
		}
		select {
		case <-ctx.Done():
			r.logger.Info("watcher stopping", "reason", ctx.Err())
			return nil
		case <-r.clock.After(interval):
		}
	}
}
