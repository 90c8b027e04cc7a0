package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jmadata/jma-data-mcp/internal/station"
	"github.com/jmadata/jma-data-mcp/internal/tools"
)

type GetStationInfoInput struct {
	Code string `json:"code" jsonschema:"station code, e.g. '44132' for Tokyo"`
}

type SearchStationsInput struct {
	Name string `json:"name" jsonschema:"station name to search in Japanese, kana or English"`
}

type SearchNearbyStationsInput struct {
	Lat      float64  `json:"lat" jsonschema:"latitude in decimal degrees"`
	Lon      float64  `json:"lon" jsonschema:"longitude in decimal degrees"`
	RadiusKm *float64 `json:"radius_km,omitempty" jsonschema:"search radius in kilometers (default: 50)"`
}

type GetStationsOfTypeInput struct {
	StationType string `json:"station_type" jsonschema:"station type: A (Staffed), B (Special Regional), C (AMeDAS), D (Rain Gauge), E (Snow Depth), F (Regional Rain)"`
}

type ListStationsInput struct {
	Limit  *int `json:"limit,omitempty" jsonschema:"maximum number of stations to return (default: 100)"`
	Offset *int `json:"offset,omitempty" jsonschema:"number of stations to skip (default: 0)"`
}

type GetCurrentWeatherInput struct {
	StationCode string `json:"station_code,omitempty" jsonschema:"station code, e.g. '44132' for Tokyo; omit for all stations"`
}

type GetWeatherByLocationInput struct {
	Lat float64 `json:"lat" jsonschema:"latitude in decimal degrees"`
	Lon float64 `json:"lon" jsonschema:"longitude in decimal degrees"`
}

type GetForecastInput struct {
	Prefecture string `json:"prefecture" jsonschema:"prefecture key in English, e.g. 'tokyo', 'osaka', 'hokkaido_sapporo'"`
}

type GetHistoricalWeatherInput struct {
	StationCode    string `json:"station_code" jsonschema:"station code, e.g. '44132' for Tokyo"`
	TargetDatetime string `json:"target_datetime" jsonschema:"target time in ISO format (e.g. '2025-12-01T12:00:00') or 'YYYY-MM-DD HH:MM'; naive times are JST"`
}

type GetWeatherTimeSeriesInput struct {
	StationCode     string `json:"station_code" jsonschema:"station code, e.g. '44132' for Tokyo"`
	Hours           *int   `json:"hours,omitempty" jsonschema:"number of hours to fetch (default: 24, max: 168)"`
	IntervalMinutes *int   `json:"interval_minutes,omitempty" jsonschema:"minutes between data points: 10, 30 or 60 (default: 60)"`
}

func orDefault[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func (s *Server) register() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_station_info",
		Description: "Get AMeDAS station information (name, location, type) by station code.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in GetStationInfoInput) (*mcp.CallToolResult, any, error) {
		return s.result("get_station_info", time.Now(), s.tools.GetStation(in.Code))
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_stations",
		Description: "Search AMeDAS stations by name (Japanese, kana, or English).",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in SearchStationsInput) (*mcp.CallToolResult, any, error) {
		return s.result("search_stations", time.Now(), s.tools.SearchStations(in.Name))
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_nearby_stations",
		Description: "Search AMeDAS stations within a radius of the given coordinates, nearest first.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in SearchNearbyStationsInput) (*mcp.CallToolResult, any, error) {
		radius := orDefault(in.RadiusKm, station.DefaultRadiusKm)
		return s.result("search_nearby_stations", time.Now(), s.tools.SearchNearbyStations(in.Lat, in.Lon, radius))
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_stations_of_type",
		Description: "Get all AMeDAS stations of one type (A to F).",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in GetStationsOfTypeInput) (*mcp.CallToolResult, any, error) {
		return s.result("get_stations_of_type", time.Now(), s.tools.StationsOfType(in.StationType))
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_stations",
		Description: "List AMeDAS stations with pagination.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in ListStationsInput) (*mcp.CallToolResult, any, error) {
		limit := orDefault(in.Limit, tools.DefaultListLimit)
		return s.result("list_stations", time.Now(), s.tools.ListStations(limit, orDefault(in.Offset, 0)))
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_current_weather",
		Description: "Get the latest AMeDAS observations for one station or for all stations.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in GetCurrentWeatherInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		r, err := s.tools.CurrentWeather(ctx, in.StationCode)
		if err != nil {
			return s.failure("get_current_weather", start, err)
		}
		return s.result("get_current_weather", start, r)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_weather_by_location",
		Description: "Get the latest observation from the AMeDAS station nearest the given coordinates (within 100 km).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in GetWeatherByLocationInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		r, err := s.tools.WeatherByLocation(ctx, in.Lat, in.Lon)
		if err != nil {
			return s.failure("get_weather_by_location", start, err)
		}
		return s.result("get_weather_by_location", start, r)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_forecast",
		Description: "Get the JMA weather forecast for a prefecture.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in GetForecastInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		r, err := s.tools.Forecast(ctx, in.Prefecture)
		if err != nil {
			return s.failure("get_forecast", start, err)
		}
		return s.result("get_forecast", start, r)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_prefectures",
		Description: "List the prefecture keys and area codes accepted by get_forecast.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		return s.result("list_prefectures", time.Now(), s.tools.ListPrefectures())
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_historical_weather",
		Description: "Get one station's observation at a past time. Data covers roughly the past one to two weeks.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in GetHistoricalWeatherInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		r, err := s.tools.HistoricalWeather(ctx, in.StationCode, in.TargetDatetime)
		if err != nil {
			return s.failure("get_historical_weather", start, err)
		}
		return s.result("get_historical_weather", start, r)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_weather_time_series",
		Description: "Get a station's observations over recent hours at a fixed interval, newest first.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in GetWeatherTimeSeriesInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		hours := orDefault(in.Hours, tools.DefaultSeriesHours)
		interval := orDefault(in.IntervalMinutes, tools.DefaultSeriesMinutes)
		r, err := s.tools.WeatherTimeSeries(ctx, in.StationCode, hours, interval)
		if err != nil {
			return s.failure("get_weather_time_series", start, err)
		}
		return s.result("get_weather_time_series", start, r)
	})
}
