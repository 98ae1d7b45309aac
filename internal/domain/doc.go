// Package domain models the 1925 Latvian meteorological archive files and
// the rules for normalizing them.
//
// # Data source
//
// Each input file is a hand-maintained tabular text file for one observation
// station. Files begin with comment directives:
//
//	# station_name=<label>        optional; falls back to the file's base name
//	# fields=<separated names>    mandatory; terminates header scanning
//
// Everything after the fields directive is data, one record per line, in the
// declared column order. Lines starting with "#" in the data region are
// comments and are skipped.
//
// # Separator inference
//
// The separator is inferred from the fields payload itself: TAB if present,
// otherwise the first of "|", ";", "," found, defaulting to ",". Comma is
// tested last because a ";"- or "|"-delimited field list may contain literal
// commas inside field names.
//
// # Row shape tolerance
//
// Rows are reconciled with the declared column count rather than rejected:
// surplus tokens fold into the last declared column (trailing free-text
// fields legitimately contain the separator), short rows are right-padded
// with empty cells. In comma-separated files a digit,digit comma is first
// rewritten to a decimal point so locale-written numbers ("12,5") survive
// the split. That rewrite cannot represent two adjacent bare-integer columns
// in a comma-separated file; the corpus never writes that shape.
//
// # Value conventions
//
// Missing sentinels (matched exactly, before any parsing):
//
//	""  NA  —  -999
//
// Dates appear in seven formats, tried in order with day-first forms
// preferred: YYYY-MM-DD, DD.MM.YYYY, YYYY/MM/DD, DD-MM-YYYY, MM-DD-YYYY,
// YYYY.MM.DD, MM/DD/YYYY. An optional time of day follows the date after a
// space; an embedded H:MM or HH:MM reading anywhere in it overrides the
// parsed hour and minute, otherwise the date stands at midnight.
//
// Precipitation cells mix decimal commas, the unit suffix "mm", and the
// Latvian numeral word "nulle" (zero). Normalization strips the suffix,
// converts the comma, and extracts the first decimal-number substring found
// anywhere in the text; a cell with no extractable number is missing, never
// a truncated value.
//
// Every normalizer is total: unparseable input becomes an explicit missing
// value and processing continues. Only a file without a fields directive is
// a hard error, because without a column list no row can be interpreted.
package domain
