package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmadata/jma-data-mcp/internal/tools"
	"github.com/jmadata/jma-data-mcp/internal/weather"
)

func newWeatherCommand(rt Runtime) *cobra.Command {
	cmd := group("weather", "Read the latest AMeDAS observations")

	var code string
	current := &cobra.Command{
		Use:   "current",
		Short: "Latest observations for one station, or for all stations",
		Args:  cobra.NoArgs,
		RunE: operation(rt, func(ctx context.Context, svc *tools.Service) (tools.Result, error) {
			return svc.CurrentWeather(ctx, code)
		}),
	}
	current.Flags().StringVar(&code, "station-code", "", "station code; omit for every station")

	var lat, lon float64
	byLocation := &cobra.Command{
		Use:   "by-location",
		Short: "Latest observation from the station nearest a point",
		Args:  cobra.NoArgs,
		RunE: operation(rt, func(ctx context.Context, svc *tools.Service) (tools.Result, error) {
			return svc.WeatherByLocation(ctx, lat, lon)
		}),
	}
	byLocation.Flags().Float64Var(&lat, "lat", 0, "latitude in decimal degrees")
	byLocation.Flags().Float64Var(&lon, "lon", 0, "longitude in decimal degrees")
	mustRequire(byLocation, "lat", "lon")

	cmd.AddCommand(current, byLocation)
	return cmd
}

func newForecastCommand(rt Runtime) *cobra.Command {
	cmd := group("forecast", "Read prefecture forecasts")

	var prefecture string
	get := &cobra.Command{
		Use:   "get",
		Short: "Forecast for a prefecture key, e.g. tokyo",
		Args:  cobra.NoArgs,
		RunE: operation(rt, func(ctx context.Context, svc *tools.Service) (tools.Result, error) {
			return svc.Forecast(ctx, prefecture)
		}),
	}
	get.Flags().StringVar(&prefecture, "prefecture", "", "prefecture key")
	mustRequire(get, "prefecture")

	list := &cobra.Command{
		Use:   "list-prefectures",
		Short: "List prefecture keys and their forecast area codes",
		Args:  cobra.NoArgs,
		RunE: operation(rt, func(_ context.Context, svc *tools.Service) (tools.Result, error) {
			return svc.ListPrefectures(), nil
		}),
	}

	cmd.AddCommand(get, list)
	return cmd
}

func newHistoryCommand(rt Runtime) *cobra.Command {
	cmd := group("history", "Read past observations")

	var (
		code     string
		datetime string
	)
	get := &cobra.Command{
		Use:   "get",
		Short: "One station at a past time (JST)",
		Args:  cobra.NoArgs,
		RunE: operation(rt, func(ctx context.Context, svc *tools.Service) (tools.Result, error) {
			return svc.HistoricalWeather(ctx, code, datetime)
		}),
	}
	get.Flags().StringVar(&code, "station-code", "", "station code")
	get.Flags().StringVar(&datetime, "target-datetime", "", "time in JST, e.g. 2025-12-01T12:00:00 or '2025-12-01 12:00'")
	mustRequire(get, "station-code", "target-datetime")

	var (
		seriesCode string
		hours      int
		interval   int
	)
	seriesRun := operation(rt, func(ctx context.Context, svc *tools.Service) (tools.Result, error) {
		return svc.WeatherTimeSeries(ctx, seriesCode, hours, interval)
	})
	series := &cobra.Command{
		Use:   "series",
		Short: "A station's recent observations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(weather.ValidIntervals, interval) {
				return fmt.Errorf("invalid argument \"%d\" for \"--interval-minutes\" flag: must be one of %v",
					interval, weather.ValidIntervals)
			}
			return seriesRun(cmd, args)
		},
	}
	series.Flags().StringVar(&seriesCode, "station-code", "", "station code")
	series.Flags().IntVar(&hours, "hours", tools.DefaultSeriesHours, "hours of history")
	series.Flags().IntVar(&interval, "interval-minutes", tools.DefaultSeriesMinutes, "spacing: 10, 30 or 60")
	mustRequire(series, "station-code")

	cmd.AddCommand(get, series)
	return cmd
}
