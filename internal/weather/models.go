package weather

import (
	"errors"
	"time"

	"github.com/jmadata/jma-data-mcp/internal/observation"
)

// Weather errors.
var (
	ErrInvalidInterval = errors.New("invalid interval")
	ErrInvalidHours    = errors.New("invalid hours")
)

// Series limits.
const (
	MinHours = 1
	MaxHours = 168
)

// ValidIntervals are the accepted time-series spacings in minutes.
var ValidIntervals = []int{10, 30, 60}

// Stamp carries an observation time in both rendered forms.
type Stamp struct {
	ObservationTime    string `json:"observation_time"`
	ObservationTimeJST string `json:"observation_time_jst"`
}

// NewStamp renders t.
func NewStamp(t time.Time) Stamp {
	return Stamp{
		ObservationTime:    FormatISO(t),
		ObservationTimeJST: FormatJST(t),
	}
}

// Snapshot is one decoded AMeDAS map. Stations absent upstream are absent
// here.
type Snapshot struct {
	Stamp
	Time     time.Time                                 `json:"-"`
	Stations map[string]observation.StationObservation `json:"stations"`
}

// Reading is a single station at a single historical time. Data is nil and
// Error set when the map has no entry for the station.
type Reading struct {
	Stamp
	Time        time.Time                       `json:"-"`
	StationCode string                          `json:"station_code"`
	Data        *observation.StationObservation `json:"data,omitempty"`
	Error       string                          `json:"error,omitempty"`
}

// Point is one entry of a time series.
type Point struct {
	Stamp
	Time time.Time                      `json:"-"`
	Data observation.StationObservation `json:"data"`
}

// Series is a station's observations, newest first. DataPoints may be less
// than the requested span when individual fetches fail.
type Series struct {
	StationCode     string  `json:"station_code"`
	Hours           int     `json:"hours"`
	IntervalMinutes int     `json:"interval_minutes"`
	DataPoints      int     `json:"data_points"`
	Points          []Point `json:"time_series"`
}
