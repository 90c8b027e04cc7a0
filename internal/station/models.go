// Package station provides the AMeDAS station directory: lookup, name and
// type filtering, and great-circle radius search.
package station

import (
	"errors"
)

// Directory errors.
var (
	ErrDuplicateStation   = errors.New("duplicate station code")
	ErrUnknownStationType = errors.New("unknown station type")
	ErrEmptyStationCode   = errors.New("empty station code")
)

// Type is the JMA station category.
type Type string

const (
	TypeStaffed         Type = "A" // staffed observatory
	TypeSpecialRegional Type = "B" // special regional weather station
	TypeAMeDAS          Type = "C" // standard AMeDAS station
	TypeRainGauge       Type = "D" // rain gauge only
	TypeSnowDepth       Type = "E" // snow depth only
	TypeRegionalRain    Type = "F" // regional rain gauge
)

// Types lists every station type in display order.
var Types = []Type{
	TypeStaffed,
	TypeSpecialRegional,
	TypeAMeDAS,
	TypeRainGauge,
	TypeSnowDepth,
	TypeRegionalRain,
}

// Valid reports whether t is one of the six JMA station categories.
func (t Type) Valid() bool {
	switch t {
	case TypeStaffed, TypeSpecialRegional, TypeAMeDAS, TypeRainGauge, TypeSnowDepth, TypeRegionalRain:
		return true
	default:
		return false
	}
}

// Description returns a short English label for the type.
func (t Type) Description() string {
	switch t {
	case TypeStaffed:
		return "Staffed"
	case TypeSpecialRegional:
		return "Special Regional"
	case TypeAMeDAS:
		return "AMeDAS"
	case TypeRainGauge:
		return "Rain Gauge"
	case TypeSnowDepth:
		return "Snow Depth"
	case TypeRegionalRain:
		return "Regional Rain"
	default:
		return ""
	}
}

// Name holds the station's display names.
type Name struct {
	Ja   string `json:"ja"`
	Kana string `json:"kana"`
	En   string `json:"en"`
}

// Location is a WGS84-style coordinate in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Station is one AMeDAS station record.
type Station struct {
	Code     string   `json:"code"`
	Name     Name     `json:"name"`
	Location Location `json:"location"`
	Type     Type     `json:"type"`
}

// NearbyStation is a station annotated with its distance from a query point.
type NearbyStation struct {
	Station
	DistanceKm float64 `json:"distance_km"`
}

// Page is one slice of the directory.
type Page struct {
	Total  int       `json:"total"`
	Offset int       `json:"offset"`
	Limit  int       `json:"limit"`
	Items  []Station `json:"stations"`
}
