// Package csvfile serializes the merged corpus as delimited text. It is a
// sink only; no parsing logic lives here.
package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/meteo-archive-etl/internal/domain"
)

// FileSink writes the corpus as a CSV file with a header row, creating
// parent directories as needed.
type FileSink struct {
	Path   string
	Logger *slog.Logger
}

// Write serializes the corpus to the configured path.
func (s FileSink) Write(_ context.Context, corpus []domain.Record) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := Encode(f, corpus); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("wrote corpus", "rows", len(corpus), "path", s.Path)
	}
	return nil
}

// Encode writes the corpus to w as CSV: the ten canonical columns in fixed
// order, missing values as empty cells. Output is deterministic: identical
// corpora encode to identical bytes.
func Encode(w io.Writer, corpus []domain.Record) error {
	bw := bufio.NewWriterSize(w, 1<<20)
	cw := csv.NewWriter(bw)

	if err := cw.Write(domain.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range corpus {
		if err := cw.Write(encodeRecord(corpus[i])); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return bw.Flush()
}

// PreviewSink renders the first Limit rows as an aligned text table,
// the short-preview mode of the CLI when no output path is given.
type PreviewSink struct {
	W     io.Writer
	Limit int
}

// Write renders up to Limit rows of the corpus to W.
func (s PreviewSink) Write(_ context.Context, corpus []domain.Record) error {
	tw := tabwriter.NewWriter(s.W, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(domain.Columns, "\t"))

	n := len(corpus)
	if s.Limit > 0 && n > s.Limit {
		n = s.Limit
	}
	for i := 0; i < n; i++ {
		fmt.Fprintln(tw, strings.Join(encodeRecord(corpus[i]), "\t"))
	}
	if n < len(corpus) {
		fmt.Fprintf(tw, "... %d more rows\n", len(corpus)-n)
	}
	return tw.Flush()
}

func encodeRecord(rec domain.Record) []string {
	return []string{
		rec.Station,
		formatTimestamp(rec),
		rec.DateOnly(),
		rec.TimeOnly(),
		formatFloat(rec.TMaxC),
		formatFloat(rec.TMinC),
		formatFloat(rec.Precip24hMM),
		deref(rec.PrecipType),
		formatInt(rec.PresentWeatherCode),
		deref(rec.Notes),
	}
}

func formatTimestamp(rec domain.Record) string {
	if rec.Timestamp == nil {
		return ""
	}
	return rec.Timestamp.Format("2006-01-02 15:04:05")
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
