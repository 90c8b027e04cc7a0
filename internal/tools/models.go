package tools

import (
	"encoding/json"

	"github.com/jmadata/jma-data-mcp/internal/observation"
	"github.com/jmadata/jma-data-mcp/internal/station"
	"github.com/jmadata/jma-data-mcp/internal/weather"
)

// Defaults for optional operation arguments.
const (
	DefaultListLimit     = 100
	DefaultSeriesHours   = 24
	DefaultSeriesMinutes = 60
	LocationRadiusKm     = 100.0
)

// StationList is the result of a name search.
type StationList struct {
	Count    int               `json:"count"`
	Stations []station.Station `json:"stations"`
}

// Coordinates is a query point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NearbyList is the result of a radius search.
type NearbyList struct {
	Count        int                     `json:"count"`
	SearchCenter Coordinates             `json:"search_center"`
	RadiusKm     float64                 `json:"radius_km"`
	Stations     []station.NearbyStation `json:"stations"`
}

// TypeList is the result of a type filter.
type TypeList struct {
	Count    int               `json:"count"`
	Type     station.Type      `json:"type"`
	Stations []station.Station `json:"stations"`
}

// StationPage is one page of the directory.
type StationPage struct {
	Total    int               `json:"total"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
	Count    int               `json:"count"`
	Stations []station.Station `json:"stations"`
}

// StationWeather is the latest observation of one known station.
type StationWeather struct {
	weather.Stamp
	StationInfo station.Station                `json:"station_info"`
	Weather     observation.StationObservation `json:"weather"`
}

// LocationWeather is the latest observation of the station nearest a point.
// Weather is an empty object when the station is missing from the map.
type LocationWeather struct {
	weather.Stamp
	Station station.NearbyStation `json:"station"`
	Weather any                   `json:"weather"`
}

// ForecastResult wraps the upstream forecast document.
type ForecastResult struct {
	Prefecture string          `json:"prefecture"`
	AreaCode   string          `json:"area_code"`
	Forecast   json.RawMessage `json:"forecast"`
}

// PrefectureList is the forecast area table.
type PrefectureList struct {
	Prefectures weather.AreaTable `json:"prefectures"`
}

// HistoricalWeather is a single-point reading with station metadata when
// the code is known.
type HistoricalWeather struct {
	*weather.Reading
	StationInfo *station.Station `json:"station_info,omitempty"`
}

// TimeSeries is a series with station metadata when the code is known.
type TimeSeries struct {
	*weather.Series
	StationInfo *station.Station `json:"station_info,omitempty"`
}
