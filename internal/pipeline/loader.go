package pipeline

import (
	"bufio"
	"fmt"
	"os"

	"github.com/couchcryptid/meteo-archive-etl/internal/domain"
)

// LoadStats counts the row-shape adjustments made while reading one file.
type LoadStats struct {
	RowsParsed int
	RowsFolded int
	RowsPadded int
}

// FileTable is the normalized output of one input file.
type FileTable struct {
	Station string
	Records []domain.Record
	Stats   LoadStats
}

// cellFn extracts one canonical attribute from a raw row. Canonical columns
// the file never declared get a constant-missing extractor, so per-file
// schema differences stay out of the row loop.
type cellFn func(row []string) (string, bool)

// LoadFile reads one station file into a FileTable. The whole file is
// materialized; input files are small station archives. The only hard
// failure is an unreadable file or a missing fields directive; malformed
// rows surface as missing-valued records instead.
func LoadFile(path string) (FileTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileTable{}, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return FileTable{}, fmt.Errorf("read %s: %w", path, err)
	}

	hdr, err := domain.ParseHeader(lines, path)
	if err != nil {
		return FileTable{}, err
	}
	return buildTable(hdr, lines), nil
}

func readLines(f *os.File) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func buildTable(hdr domain.Header, lines []string) FileTable {
	cell := columnExtractors(hdr)
	table := FileTable{Station: hdr.Station}

	for _, line := range lines {
		if domain.IsComment(line) {
			continue
		}
		row, shape := domain.SplitRow(line, hdr.Separator, len(hdr.Columns))
		switch shape {
		case domain.RowFolded:
			table.Stats.RowsFolded++
		case domain.RowPadded:
			table.Stats.RowsPadded++
		}
		table.Stats.RowsParsed++
		table.Records = append(table.Records, normalizeRow(hdr.Station, cell, row))
	}
	return table
}

// columnExtractors maps each canonical raw column name to its position in
// this file's declared schema. Undeclared columns yield a never-present
// extractor; sentinel missing tokens are mapped out here, before any
// parsing.
func columnExtractors(hdr domain.Header) map[string]cellFn {
	index := make(map[string]int, len(hdr.Columns))
	for i, name := range hdr.Columns {
		index[name] = i
	}

	fns := make(map[string]cellFn)
	for _, name := range []string{"date", "t_max_c", "t_min_c", "precip_24h_mm", "precip_type", "present_weather_code", "notes"} {
		i, declared := index[name]
		if !declared {
			fns[name] = func([]string) (string, bool) { return "", false }
			continue
		}
		fns[name] = func(row []string) (string, bool) {
			v := row[i]
			if domain.IsMissing(v) {
				return "", false
			}
			return v, true
		}
	}
	return fns
}

func normalizeRow(station string, cell map[string]cellFn, row []string) domain.Record {
	rec := domain.Record{Station: station}

	if v, ok := cell["date"](row); ok {
		if ts, ok := domain.ParseDateAny(v); ok {
			rec.Timestamp = &ts
		}
	}
	if v, ok := cell["t_max_c"](row); ok {
		if f, ok := domain.ParseFloatPlain(v); ok {
			rec.TMaxC = &f
		}
	}
	if v, ok := cell["t_min_c"](row); ok {
		if f, ok := domain.ParseFloatPlain(v); ok {
			rec.TMinC = &f
		}
	}
	if v, ok := cell["precip_24h_mm"](row); ok {
		if f, ok := domain.ParseFloatMessy(v); ok {
			rec.Precip24hMM = &f
		}
	}
	if v, ok := cell["precip_type"](row); ok {
		rec.PrecipType = &v
	}
	if v, ok := cell["present_weather_code"](row); ok {
		if n, ok := domain.ParseIntCode(v); ok {
			rec.PresentWeatherCode = &n
		}
	}
	if v, ok := cell["notes"](row); ok {
		rec.Notes = &v
	}
	return rec
}
