package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	commentPrefix    = "#"
	fieldsDirective  = "# fields="
	stationDirective = "station_name="
)

// Header describes one input file: the station it reports for, the field
// separator, and the declared column order. Column order is file-specific
// and need not match the canonical output order.
type Header struct {
	Station   string
	Separator string
	Columns   []string
}

// ParseHeader scans the leading comment lines of an input file for header
// directives. Scanning stops at the first "# fields=" line (the schema
// declaration) or at the first data line; directives appearing after the
// schema declaration belong to the data region and are never read.
//
// The station label falls back to the file's base name without extension
// when no "# station_name=" directive is present. A file with no schema
// declaration cannot be interpreted and yields an error naming the file.
func ParseHeader(lines []string, path string) (Header, error) {
	var station, fieldsLine string
	for _, line := range lines {
		if !strings.HasPrefix(line, commentPrefix) {
			break
		}
		if i := strings.Index(line, stationDirective); i >= 0 {
			station = strings.TrimSpace(line[i+len(stationDirective):])
		}
		if strings.HasPrefix(line, fieldsDirective) {
			fieldsLine = strings.TrimSpace(line)
			break
		}
	}
	if fieldsLine == "" {
		return Header{}, fmt.Errorf("missing %q header in %s", fieldsDirective, path)
	}

	payload := strings.SplitN(fieldsLine, "fields=", 2)[1]
	sep := detectSeparator(payload)

	cols := strings.Split(payload, sep)
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	if station == "" {
		base := filepath.Base(path)
		station = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return Header{Station: station, Separator: sep, Columns: cols}, nil
}

// detectSeparator infers the field separator from the "fields=" payload.
// TAB wins outright; otherwise "|", ";", "," are tested in that order and
// the first one present wins. Comma is tested last because field names may
// themselves contain literal commas inside a ";"- or "|"-delimited list;
// committing to comma early would misread those.
func detectSeparator(payload string) string {
	payload = strings.TrimSpace(payload)
	if strings.Contains(payload, "\t") {
		return "\t"
	}
	for _, sep := range []string{"|", ";", ","} {
		if strings.Contains(payload, sep) {
			return sep
		}
	}
	return ","
}
