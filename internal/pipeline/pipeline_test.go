package pipeline_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/meteo-archive-etl/internal/adapter/archive"
	"github.com/couchcryptid/meteo-archive-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/meteo-archive-etl/internal/domain"
	"github.com/couchcryptid/meteo-archive-etl/internal/observability"
	"github.com/couchcryptid/meteo-archive-etl/internal/pipeline"
)

// memorySink captures every corpus written to it.
type memorySink struct {
	mu     sync.Mutex
	writes [][]domain.Record
}

func (s *memorySink) Write(_ context.Context, corpus []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, corpus)
	return nil
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}

func (s *memorySink) last() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[len(s.writes)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeTwoStationArchive lays out the two-file end-to-end fixture: one
// TAB-separated file with [date, t_max_c] and one semicolon-separated file
// with [date, precip_24h_mm].
func writeTwoStationArchive(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "riga_1925.txt"), []byte(
		"# fields=date\tt_max_c\n"+
			"1925-06-01\t21.5\n"+
			"not-a-date\t19.0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "liepaja_1925.txt"), []byte(
		"# station_name=Liepaja\n"+
			"# fields=date;precip_24h_mm\n"+
			"02.06.1925;4,0 mm\n"), 0o644))
	return dir
}

func newRunner(source pipeline.Source, sinks ...pipeline.Sink) (*pipeline.Runner, clockwork.Clock) {
	clock := clockwork.NewFakeClock()
	return pipeline.New(source, sinks, discardLogger(), observability.NewMetricsForTesting(), clock), clock
}

func TestRunnerRun(t *testing.T) {
	t.Run("two-file corpus merged and sorted", func(t *testing.T) {
		dir := writeTwoStationArchive(t)
		sink := &memorySink{}
		runner, _ := newRunner(archive.DirSource{Dir: dir}, sink)

		res, err := runner.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, res.Files)
		assert.Equal(t, 2, res.Records)
		assert.Equal(t, 1, res.Dropped, "the unparseable-date row is excluded")

		corpus := sink.last()
		require.Len(t, corpus, 2)

		// "Liepaja" sorts before the fallback label "riga_1925".
		first, second := corpus[0], corpus[1]
		assert.Equal(t, "Liepaja", first.Station)
		require.NotNil(t, first.Timestamp)
		assert.Equal(t, time.Date(1925, time.June, 2, 0, 0, 0, 0, time.UTC), *first.Timestamp)
		require.NotNil(t, first.Precip24hMM)
		assert.Equal(t, 4.0, *first.Precip24hMM)
		assert.Nil(t, first.TMaxC, "column absent from this file's schema")

		assert.Equal(t, "riga_1925", second.Station)
		require.NotNil(t, second.TMaxC)
		assert.Equal(t, 21.5, *second.TMaxC)
		assert.Nil(t, second.Precip24hMM)
	})

	t.Run("readiness flips after the first completed run", func(t *testing.T) {
		dir := writeTwoStationArchive(t)
		runner, _ := newRunner(archive.DirSource{Dir: dir}, &memorySink{})

		require.Error(t, runner.CheckReadiness(context.Background()))
		_, err := runner.Run(context.Background())
		require.NoError(t, err)
		require.NoError(t, runner.CheckReadiness(context.Background()))
	})

	t.Run("file without schema declaration aborts the run", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.txt")
		require.NoError(t, os.WriteFile(path, []byte("1925-03-04,3.5\n"), 0o644))

		runner, _ := newRunner(archive.PathSource{path}, &memorySink{})
		_, err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.txt")
		assert.Error(t, runner.CheckReadiness(context.Background()))
	})

	t.Run("no input files", func(t *testing.T) {
		runner, _ := newRunner(archive.DirSource{Dir: t.TempDir()}, &memorySink{})
		_, err := runner.Run(context.Background())
		require.Error(t, err)
	})

	t.Run("rerun produces byte-identical output", func(t *testing.T) {
		dir := writeTwoStationArchive(t)
		sink := &memorySink{}
		runner, _ := newRunner(archive.DirSource{Dir: dir}, sink)

		ctx := context.Background()
		_, err := runner.Run(ctx)
		require.NoError(t, err)
		_, err = runner.Run(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, sink.count())

		var a, b bytes.Buffer
		require.NoError(t, csvfile.Encode(&a, sink.writes[0]))
		require.NoError(t, csvfile.Encode(&b, sink.writes[1]))
		assert.Equal(t, a.Bytes(), b.Bytes())
	})
}

func TestRunnerWatch(t *testing.T) {
	dir := writeTwoStationArchive(t)
	sink := &memorySink{}
	clock := clockwork.NewFakeClock()
	runner := pipeline.New(archive.DirSource{Dir: dir}, []pipeline.Sink{sink},
		discardLogger(), observability.NewMetricsForTesting(), clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Watch(ctx, time.Minute) }()

	// First run fires immediately; the watcher then parks on the timer.
	clock.BlockUntil(1)
	assert.Equal(t, 1, sink.count())
	require.NoError(t, runner.CheckReadiness(ctx))

	clock.Advance(time.Minute)
	clock.BlockUntil(1)
	assert.Equal(t, 2, sink.count())

	cancel()
	require.NoError(t, <-done)
}
