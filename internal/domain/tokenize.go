package domain

import (
	"regexp"
	"strings"
)

// decimalCommaRe matches a comma sitting strictly between two digits, the
// signature of a locale-written decimal number ("12,5") inside a
// comma-separated row.
var decimalCommaRe = regexp.MustCompile(`(\d),(\d)`)

// RowShape reports how SplitRow reconciled a line with the declared
// column count.
type RowShape int

const (
	RowExact  RowShape = iota // token count matched the declared columns
	RowFolded                 // surplus tokens folded into the last column
	RowPadded                 // short row right-padded with empty cells
)

// IsComment reports whether a line is a comment; comment lines in the data
// region are skipped, not tokenized.
func IsComment(line string) bool {
	return strings.HasPrefix(line, commentPrefix)
}

// SplitRow tokenizes one data line into exactly n cells.
//
// For comma-separated files a pre-pass rewrites decimal commas into decimal
// points so that "12,5" survives the split as one number. The rewrite cannot
// represent two adjacent bare-integer columns in a comma-separated file;
// the source corpus never writes that shape.
//
// A line splitting into more than n tokens is treated as spillover in the
// final declared column: the tail tokens are rejoined with the separator
// (free-text trailing fields legitimately contain it). A line splitting
// into fewer is right-padded with empty cells.
func SplitRow(line, sep string, n int) ([]string, RowShape) {
	if sep == "," {
		line = rewriteDecimalCommas(line)
	}
	parts := strings.Split(line, sep)
	switch {
	case len(parts) == n:
		return parts, RowExact
	case len(parts) > n:
		folded := append(parts[:n-1:n-1], strings.Join(parts[n-1:], sep))
		return folded, RowFolded
	default:
		for len(parts) < n {
			parts = append(parts, "")
		}
		return parts, RowPadded
	}
}

// rewriteDecimalCommas replaces every digit-comma-digit occurrence with a
// decimal point. Matches can overlap ("1,2,3" shares the middle digit), so
// the replacement loops until a fixed point instead of relying on a single
// regexp pass.
func rewriteDecimalCommas(line string) string {
	for {
		next := decimalCommaRe.ReplaceAllString(line, "$1.$2")
		if next == line {
			return line
		}
		line = next
	}
}
