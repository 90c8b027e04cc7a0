package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmadata/jma-data-mcp/internal/station"
	"github.com/jmadata/jma-data-mcp/internal/weather"
)

// WeatherService is the observation and forecast source.
type WeatherService interface {
	Latest(ctx context.Context, code string) (*weather.Snapshot, error)
	At(ctx context.Context, code string, t time.Time) (*weather.Reading, error)
	TimeSeries(ctx context.Context, code string, hours, intervalMinutes int) (*weather.Series, error)
	Forecast(ctx context.Context, areaCode string) (json.RawMessage, error)
}

// ServiceConfig holds configuration for the tools service.
type ServiceConfig struct {
	// Directory is the station directory.
	Directory *station.Directory

	// Weather fetches observations and forecasts.
	Weather WeatherService

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service exposes every named operation. Station operations never fail;
// weather operations return an error only for upstream failures.
type Service struct {
	directory *station.Directory
	weather   WeatherService
	logger    zerolog.Logger
}

// NewService creates a new tools service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		directory: cfg.Directory,
		weather:   cfg.Weather,
		logger:    cfg.Logger,
	}
}

// GetStation looks up one station by code.
func (s *Service) GetStation(code string) Result {
	st, ok := s.directory.Get(code)
	if !ok {
		return NotFound(Problem{Message: fmt.Sprintf("Station with code '%s' not found.", code)})
	}
	return OK(st)
}

// SearchStations matches name against the Japanese, kana and English names.
func (s *Service) SearchStations(name string) Result {
	stations := s.directory.SearchByName(name)
	return OK(StationList{Count: len(stations), Stations: stations})
}

// SearchNearbyStations lists stations within radiusKm of a point, nearest
// first.
func (s *Service) SearchNearbyStations(lat, lon, radiusKm float64) Result {
	stations := s.directory.SearchNearby(lat, lon, radiusKm)
	return OK(NearbyList{
		Count:        len(stations),
		SearchCenter: Coordinates{Lat: lat, Lon: lon},
		RadiusKm:     radiusKm,
		Stations:     stations,
	})
}

// StationsOfType lists stations of one category.
func (s *Service) StationsOfType(stationType string) Result {
	t := station.Type(stationType)
	if !t.Valid() {
		return Invalid(Problem{
			Message: fmt.Sprintf("Invalid station type: %s. Must be A, B, C, D, E, or F.", stationType),
		})
	}
	stations := s.directory.SearchByType(t)
	return OK(TypeList{Count: len(stations), Type: t, Stations: stations})
}

// ListStations pages through the directory.
func (s *Service) ListStations(limit, offset int) Result {
	page := s.directory.List(limit, offset)
	return OK(StationPage{
		Total:    page.Total,
		Offset:   page.Offset,
		Limit:    page.Limit,
		Count:    len(page.Items),
		Stations: page.Items,
	})
}

// CurrentWeather returns the latest map. For a known code present in the map
// the result is that station's observation with its metadata; otherwise it
// is the (possibly filtered, possibly empty) snapshot.
func (s *Service) CurrentWeather(ctx context.Context, code string) (Result, error) {
	snap, err := s.weather.Latest(ctx, code)
	if err != nil {
		return Result{}, err
	}

	if code != "" {
		st, known := s.directory.Get(code)
		obs, present := snap.Stations[code]
		if known && present {
			return OK(StationWeather{Stamp: snap.Stamp, StationInfo: st, Weather: obs}), nil
		}
	}
	return OK(snap), nil
}

// WeatherByLocation returns the latest observation of the nearest station
// within LocationRadiusKm.
func (s *Service) WeatherByLocation(ctx context.Context, lat, lon float64) (Result, error) {
	nearest, ok := s.directory.Nearest(lat, lon, LocationRadiusKm)
	if !ok {
		return NotFound(Problem{Message: "No stations found within 100km of the specified location"}), nil
	}

	snap, err := s.weather.Latest(ctx, nearest.Code)
	if err != nil {
		return Result{}, err
	}

	var obs any = struct{}{}
	if o, present := snap.Stations[nearest.Code]; present {
		obs = o
	}

	return OK(LocationWeather{Stamp: snap.Stamp, Station: nearest, Weather: obs}), nil
}

// Forecast returns the upstream forecast for a prefecture key.
func (s *Service) Forecast(ctx context.Context, prefecture string) (Result, error) {
	areaCode, ok := weather.LookupArea(prefecture)
	if !ok {
		return NotFound(Problem{
			Message:   fmt.Sprintf("Unknown prefecture: %s", prefecture),
			Available: weather.AreaKeys(),
		}), nil
	}

	doc, err := s.weather.Forecast(ctx, areaCode)
	if err != nil {
		return Result{}, err
	}

	return OK(ForecastResult{Prefecture: prefecture, AreaCode: areaCode, Forecast: doc}), nil
}

// ListPrefectures returns the forecast area table.
func (s *Service) ListPrefectures() Result {
	return OK(PrefectureList{Prefectures: weather.Areas()})
}

// HistoricalWeather returns one station at a past time given as text.
func (s *Service) HistoricalWeather(ctx context.Context, code, datetime string) (Result, error) {
	t, err := ParseDateTime(datetime)
	if err != nil {
		return Invalid(Problem{
			Message: fmt.Sprintf("Invalid datetime format: %s", err),
			Hint:    DateTimeHint,
		}), nil
	}

	reading, err := s.weather.At(ctx, code, t)
	if err != nil {
		return Result{}, err
	}

	return OK(HistoricalWeather{Reading: reading, StationInfo: s.stationInfo(code)}), nil
}

// WeatherTimeSeries returns a station's recent observations, newest first.
func (s *Service) WeatherTimeSeries(ctx context.Context, code string, hours, intervalMinutes int) (Result, error) {
	series, err := s.weather.TimeSeries(ctx, code, hours, intervalMinutes)
	switch {
	case errors.Is(err, weather.ErrInvalidInterval):
		return Invalid(Problem{
			Message: fmt.Sprintf("Invalid interval: %d. Must be 10, 30, or 60.", intervalMinutes),
		}), nil
	case errors.Is(err, weather.ErrInvalidHours):
		return Invalid(Problem{
			Message: fmt.Sprintf("Invalid hours: %d. Must be between %d and %d.", hours, weather.MinHours, weather.MaxHours),
		}), nil
	case err != nil:
		return Result{}, err
	}

	if series.DataPoints == 0 {
		s.logger.Warn().
			Str("station_code", code).
			Int("hours", hours).
			Int("interval_minutes", intervalMinutes).
			Msg("time series returned no data points")
	}

	return OK(TimeSeries{Series: series, StationInfo: s.stationInfo(code)}), nil
}

func (s *Service) stationInfo(code string) *station.Station {
	if st, ok := s.directory.Get(code); ok {
		return &st
	}
	return nil
}
