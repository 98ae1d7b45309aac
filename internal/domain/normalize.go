package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// missingTokens are the sentinel raw values that mean "no data", matched
// exactly before any parsing: empty cell, NA, em-dash, and the legacy
// -999 filler.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"—":    {},
	"-999": {},
}

// wordZero is the Latvian numeral word for zero as it appears in
// precipitation cells.
const wordZero = "nulle"

var (
	// numberRe extracts the first signed decimal-number substring found
	// anywhere in a messy value: optional sign, integer part, optional
	// fractional part.
	numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

	// clockRe finds an embedded H:MM or HH:MM reading anywhere in the time
	// portion of a date cell.
	clockRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// dateLayouts are tried in order against the date portion of a cell. The
// single-digit layout forms accept both padded and unpadded components.
// Day-first forms precede month-first forms, which resolves the ambiguity
// of "04-03-1925" in favor of day-first.
var dateLayouts = []string{
	"2006-1-2",
	"2.1.2006",
	"2006/1/2",
	"2-1-2006",
	"1-2-2006",
	"2006.1.2",
	"1/2/2006",
}

// IsMissing reports whether a raw cell is one of the sentinel missing tokens.
func IsMissing(s string) bool {
	_, ok := missingTokens[s]
	return ok
}

// ParseDateAny parses a messy date cell, optionally carrying a time of day.
//
// The substring before the first space is the date portion; the remainder,
// if any, is the time portion. The date portion is tried against each layout
// in dateLayouts; no match means no timestamp. A time portion is searched
// for an embedded clock reading which overrides the hour and minute; a time
// portion with no recognizable reading (or an out-of-range one) is ignored
// and the date stands at midnight.
func ParseDateAny(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	datePart, timePart := s, ""
	if i := strings.IndexByte(s, ' '); i >= 0 {
		datePart, timePart = s[:i], s[i+1:]
	}

	var ts time.Time
	var ok bool
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, datePart); err == nil {
			ts, ok = t, true
			break
		}
	}
	if !ok {
		return time.Time{}, false
	}

	if timePart != "" {
		if m := clockRe.FindStringSubmatch(timePart); m != nil {
			hour, _ := strconv.Atoi(m[1])
			minute, _ := strconv.Atoi(m[2])
			if hour <= 23 && minute <= 59 {
				ts = time.Date(ts.Year(), ts.Month(), ts.Day(), hour, minute, 0, 0, time.UTC)
			}
		}
	}
	return ts, true
}

// ParseFloatMessy normalizes a precipitation-style cell: sentinel missing
// tokens first, then the Latvian word zero, then unit-suffix stripping and
// decimal-comma conversion, and finally extraction of the first decimal
// number found anywhere in what remains. No number means missing; a
// garbled cell never yields a truncated value.
func ParseFloatMessy(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return 0, false
	}
	if strings.EqualFold(s, wordZero) {
		return 0.0, true
	}
	s = strings.ReplaceAll(s, " mm", "")
	s = strings.ReplaceAll(s, " MM", "")
	s = strings.ReplaceAll(s, ",", ".")
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFloatPlain parses a temperature-style cell: decimal comma converted
// to a point, then a straight float parse. Failure means missing.
func ParseFloatPlain(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseIntCode coerces a weather-code cell to a whole number: general
// numeric parse, then rounding to the nearest integer. Non-numeric input
// means missing; the attribute is optional precisely so files without the
// column stay representable.
func ParseIntCode(s string) (int64, bool) {
	v, ok := ParseFloatPlain(s)
	if !ok {
		return 0, false
	}
	return int64(math.Round(v)), true
}
