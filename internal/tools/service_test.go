package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmadata/jma-data-mcp/internal/observation"
	"github.com/jmadata/jma-data-mcp/internal/station"
	"github.com/jmadata/jma-data-mcp/internal/tools"
	"github.com/jmadata/jma-data-mcp/internal/weather"
)

// stubProvider returns the same map for every time unless err is set.
type stubProvider struct {
	snapshot observation.RawSnapshot
	forecast json.RawMessage
	err      error
	lastArea string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchObservations(_ context.Context, _ time.Time) (observation.RawSnapshot, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.snapshot, nil
}

func (p *stubProvider) FetchForecast(_ context.Context, areaCode string) (json.RawMessage, error) {
	p.lastArea = areaCode
	if p.err != nil {
		return nil, p.err
	}
	return p.forecast, nil
}

var frozen = time.Date(2025, 12, 1, 12, 47, 0, 0, weather.JST)

func newService(t *testing.T, provider *stubProvider) *tools.Service {
	t.Helper()

	dir, err := station.Bundled()
	require.NoError(t, err)

	if provider.snapshot == nil {
		require.NoError(t, json.Unmarshal([]byte(`{
			"44132": {"temp": [15.2, 0], "wind": [3.1, 0], "windDirection": [16, 0]},
			"62078": {"temp": [17.0, 0]}
		}`), &provider.snapshot))
	}

	return tools.NewService(tools.ServiceConfig{
		Directory: dir,
		Weather: weather.NewService(weather.ServiceConfig{
			Provider: provider,
			Logger:   zerolog.Nop(),
			Clock:    func() time.Time { return frozen },
		}),
		Logger: zerolog.Nop(),
	})
}

// payload renders a result the way surfaces do.
func payload(t *testing.T, r tools.Result) map[string]any {
	t.Helper()
	b, err := json.Marshal(r.Payload())
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestGetStation(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r := svc.GetStation("44132")
	assert.Equal(t, tools.KindOK, r.Kind)
	out := payload(t, r)
	assert.Equal(t, "44132", out["code"])
	assert.Equal(t, "A", out["type"])

	r = svc.GetStation("00000")
	assert.Equal(t, tools.KindNotFound, r.Kind)
	assert.Equal(t, map[string]any{"error": "Station with code '00000' not found."}, payload(t, r))
}

func TestSearchStations(t *testing.T) {
	svc := newService(t, &stubProvider{})

	out := payload(t, svc.SearchStations("tokyo"))
	assert.Equal(t, 1.0, out["count"])
	assert.Len(t, out["stations"], 1)

	out = payload(t, svc.SearchStations("no such place"))
	assert.Equal(t, 0.0, out["count"])
	assert.Equal(t, []any{}, out["stations"])
}

func TestSearchNearbyStations(t *testing.T) {
	svc := newService(t, &stubProvider{})

	out := payload(t, svc.SearchNearbyStations(35.6812, 139.7671, 50))

	assert.Equal(t, map[string]any{"lat": 35.6812, "lon": 139.7671}, out["search_center"])
	assert.Equal(t, 50.0, out["radius_km"])

	stations := out["stations"].([]any)
	require.NotEmpty(t, stations)
	assert.Equal(t, float64(len(stations)), out["count"])
	first := stations[0].(map[string]any)
	assert.Equal(t, "44132", first["code"])
	assert.Contains(t, first, "distance_km")
}

func TestStationsOfType(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r := svc.StationsOfType("C")
	require.Equal(t, tools.KindOK, r.Kind)
	out := payload(t, r)
	assert.Equal(t, "C", out["type"])
	for _, s := range out["stations"].([]any) {
		assert.Equal(t, "C", s.(map[string]any)["type"])
	}

	r = svc.StationsOfType("G")
	assert.Equal(t, tools.KindInvalid, r.Kind)
	assert.Equal(t, "Invalid station type: G. Must be A, B, C, D, E, or F.", payload(t, r)["error"])
}

func TestListStations(t *testing.T) {
	svc := newService(t, &stubProvider{})

	out := payload(t, svc.ListStations(5, 2))
	assert.Equal(t, 18.0, out["total"])
	assert.Equal(t, 2.0, out["offset"])
	assert.Equal(t, 5.0, out["limit"])
	assert.Equal(t, 5.0, out["count"])

	out = payload(t, svc.ListStations(10, 2000))
	assert.Equal(t, 0.0, out["count"])
	assert.Equal(t, []any{}, out["stations"])
}

func TestCurrentWeather_KnownStation(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.CurrentWeather(context.Background(), "44132")
	require.NoError(t, err)

	out := payload(t, r)
	assert.Equal(t, "2025-12-01T12:00:00+09:00", out["observation_time"])
	assert.Equal(t, "2025-12-01 12:00 JST", out["observation_time_jst"])
	assert.Equal(t, "44132", out["station_info"].(map[string]any)["code"])

	w := out["weather"].(map[string]any)
	assert.Equal(t, "N", w["wind"].(map[string]any)["direction"])
	assert.NotContains(t, out, "stations")
}

func TestCurrentWeather_AllStations(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.CurrentWeather(context.Background(), "")
	require.NoError(t, err)

	out := payload(t, r)
	assert.Len(t, out["stations"], 2)
	assert.NotContains(t, out, "station_info")
}

func TestCurrentWeather_StationMissingUpstream(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.CurrentWeather(context.Background(), "11001")
	require.NoError(t, err)

	out := payload(t, r)
	assert.Equal(t, map[string]any{}, out["stations"])
	assert.NotContains(t, out, "weather")
}

func TestCurrentWeather_UpstreamError(t *testing.T) {
	svc := newService(t, &stubProvider{err: errors.New("connection reset")})

	_, err := svc.CurrentWeather(context.Background(), "44132")
	assert.ErrorContains(t, err, "connection reset")
}

func TestWeatherByLocation(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.WeatherByLocation(context.Background(), 34.70, 135.50)
	require.NoError(t, err)
	require.Equal(t, tools.KindOK, r.Kind)

	out := payload(t, r)
	assert.Equal(t, "62078", out["station"].(map[string]any)["code"])
	assert.Equal(t, "62078", out["weather"].(map[string]any)["code"])
}

func TestWeatherByLocation_StationAbsentUpstream(t *testing.T) {
	svc := newService(t, &stubProvider{})

	// Nearest is Kagoshima, which the stub map lacks.
	r, err := svc.WeatherByLocation(context.Background(), 31.55, 130.55)
	require.NoError(t, err)

	out := payload(t, r)
	assert.Equal(t, "88317", out["station"].(map[string]any)["code"])
	assert.Equal(t, map[string]any{}, out["weather"])
}

func TestWeatherByLocation_NoneInRange(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.WeatherByLocation(context.Background(), 0, -160)
	require.NoError(t, err)
	assert.Equal(t, tools.KindNotFound, r.Kind)
	assert.Equal(t, map[string]any{"error": "No stations found within 100km of the specified location"}, payload(t, r))
}

func TestForecast(t *testing.T) {
	provider := &stubProvider{forecast: json.RawMessage(`[{"publishingOffice":"気象庁"}]`)}
	svc := newService(t, provider)

	r, err := svc.Forecast(context.Background(), "tokyo")
	require.NoError(t, err)

	out := payload(t, r)
	assert.Equal(t, "tokyo", out["prefecture"])
	assert.Equal(t, "130000", out["area_code"])
	assert.Equal(t, []any{map[string]any{"publishingOffice": "気象庁"}}, out["forecast"])
	assert.Equal(t, "130000", provider.lastArea)
}

func TestForecast_UnknownPrefecture(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.Forecast(context.Background(), "atlantis")
	require.NoError(t, err)
	assert.Equal(t, tools.KindNotFound, r.Kind)

	out := payload(t, r)
	assert.Equal(t, "Unknown prefecture: atlantis", out["error"])
	available := out["available"].([]any)
	assert.Len(t, available, 47)
	assert.Equal(t, "hokkaido_sapporo", available[0])
}

func TestListPrefectures(t *testing.T) {
	svc := newService(t, &stubProvider{})

	out := payload(t, svc.ListPrefectures())
	prefectures := out["prefectures"].(map[string]any)
	assert.Len(t, prefectures, 47)
	assert.Equal(t, "130000", prefectures["tokyo"])
}

func TestHistoricalWeather(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.HistoricalWeather(context.Background(), "44132", "2025-11-30T09:15:00")
	require.NoError(t, err)
	require.Equal(t, tools.KindOK, r.Kind)

	out := payload(t, r)
	assert.Equal(t, "2025-11-30T09:10:00+09:00", out["observation_time"])
	assert.Equal(t, "44132", out["station_code"])
	assert.Contains(t, out, "data")
	assert.NotContains(t, out, "error")
	assert.Equal(t, "Tokyo", out["station_info"].(map[string]any)["name"].(map[string]any)["en"])
}

func TestHistoricalWeather_UnknownStation(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.HistoricalWeather(context.Background(), "00000", "2025-11-30 09:10")
	require.NoError(t, err)

	out := payload(t, r)
	assert.Equal(t, "No data found for station 00000 at 2025-11-30 09:10 JST", out["error"])
	assert.NotContains(t, out, "data")
	assert.NotContains(t, out, "station_info")
}

func TestHistoricalWeather_BadDateTime(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.HistoricalWeather(context.Background(), "44132", "yesterday")
	require.NoError(t, err)
	assert.Equal(t, tools.KindInvalid, r.Kind)

	out := payload(t, r)
	assert.Equal(t, "Invalid datetime format: could not parse datetime: yesterday", out["error"])
	assert.Equal(t, tools.DateTimeHint, out["hint"])
}

func TestWeatherTimeSeries(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.WeatherTimeSeries(context.Background(), "44132", 3, 60)
	require.NoError(t, err)

	out := payload(t, r)
	assert.Equal(t, "44132", out["station_code"])
	assert.Equal(t, 3.0, out["hours"])
	assert.Equal(t, 60.0, out["interval_minutes"])
	assert.Equal(t, 3.0, out["data_points"])
	assert.Len(t, out["time_series"], 3)
	assert.Contains(t, out, "station_info")
}

func TestWeatherTimeSeries_Validation(t *testing.T) {
	svc := newService(t, &stubProvider{})

	r, err := svc.WeatherTimeSeries(context.Background(), "44132", 3, 15)
	require.NoError(t, err)
	assert.Equal(t, tools.KindInvalid, r.Kind)
	assert.Equal(t, "Invalid interval: 15. Must be 10, 30, or 60.", payload(t, r)["error"])

	r, err = svc.WeatherTimeSeries(context.Background(), "44132", 200, 60)
	require.NoError(t, err)
	assert.Equal(t, tools.KindInvalid, r.Kind)
	assert.Equal(t, "Invalid hours: 200. Must be between 1 and 168.", payload(t, r)["error"])
}

func TestWeatherTimeSeries_AllPointsFail(t *testing.T) {
	svc := newService(t, &stubProvider{err: errors.New("down")})

	r, err := svc.WeatherTimeSeries(context.Background(), "44132", 1, 30)
	require.NoError(t, err)

	out := payload(t, r)
	assert.Equal(t, 0.0, out["data_points"])
	assert.Equal(t, []any{}, out["time_series"])
}

func TestResult_Payload(t *testing.T) {
	ok := tools.OK("data")
	assert.Equal(t, "data", ok.Payload())
	assert.Equal(t, "ok", ok.Kind.String())

	nf := tools.NotFound(tools.Problem{Message: "missing"})
	assert.Equal(t, &tools.Problem{Message: "missing"}, nf.Payload())
	assert.Equal(t, "not_found", nf.Kind.String())
	assert.Equal(t, "invalid", tools.Invalid(tools.Problem{}).Kind.String())
}
