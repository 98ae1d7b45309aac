package domain

import "time"

// Columns is the canonical output schema, in order. Every record exposes
// exactly these ten attributes regardless of which subset of raw columns the
// source file declared.
var Columns = []string{
	"station",
	"timestamp",
	"date",
	"time",
	"t_max_c",
	"t_min_c",
	"precip_24h_mm",
	"precip_type",
	"present_weather_code",
	"notes",
}

// Record is one normalized observation. Pointer fields are nil when the
// source file omitted the column or the raw value could not be parsed.
type Record struct {
	Station            string     `json:"station"`
	Timestamp          *time.Time `json:"timestamp,omitempty"`
	TMaxC              *float64   `json:"t_max_c,omitempty"`
	TMinC              *float64   `json:"t_min_c,omitempty"`
	Precip24hMM        *float64   `json:"precip_24h_mm,omitempty"`
	PrecipType         *string    `json:"precip_type,omitempty"`
	PresentWeatherCode *int64     `json:"present_weather_code,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
}

// DateOnly returns the date projection of the timestamp ("1925-03-04"),
// or "" when the timestamp is absent.
func (r Record) DateOnly() string {
	if r.Timestamp == nil {
		return ""
	}
	return r.Timestamp.Format("2006-01-02")
}

// TimeOnly returns the time-of-day projection of the timestamp ("14:30:00"),
// or "" when the timestamp is absent.
func (r Record) TimeOnly() string {
	if r.Timestamp == nil {
		return ""
	}
	return r.Timestamp.Format("15:04:05")
}
