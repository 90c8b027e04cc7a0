package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmadata/jma-data-mcp/internal/station"
	"github.com/jmadata/jma-data-mcp/internal/tools"
)

func newStationCommand(rt Runtime) *cobra.Command {
	cmd := group("station", "Look up AMeDAS observation stations")
	cmd.AddCommand(
		newStationGetCommand(rt),
		newStationSearchCommand(rt),
		newStationNearbyCommand(rt),
		newStationTypeCommand(rt),
		newStationListCommand(rt),
		newStationSyncCommand(rt),
	)
	return cmd
}

func newStationGetCommand(rt Runtime) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one station by code",
		Args:  cobra.NoArgs,
		RunE: operation(rt, func(_ context.Context, svc *tools.Service) (tools.Result, error) {
			return svc.GetStation(code), nil
		}),
	}
	cmd.Flags().StringVar(&code, "code", "", "station code, e.g. 44132")
	mustRequire(cmd, "code")
	return cmd
}

func newStationSearchCommand(rt Runtime) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find stations by Japanese, kana or English name",
		Args:  cobra.NoArgs,
		RunE: operation(rt, func(_ context.Context, svc *tools.Service) (tools.Result, error) {
			return svc.SearchStations(name), nil
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "name or part of a name")
	mustRequire(cmd, "name")
	return cmd
}

func newStationNearbyCommand(rt Runtime) *cobra.Command {
	var lat, lon, radius float64
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List stations within a radius, nearest first",
		Args:  cobra.NoArgs,
		RunE: operation(rt, func(_ context.Context, svc *tools.Service) (tools.Result, error) {
			return svc.SearchNearbyStations(lat, lon, radius), nil
		}),
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in decimal degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in decimal degrees")
	cmd.Flags().Float64Var(&radius, "radius-km", station.DefaultRadiusKm, "search radius in kilometres")
	mustRequire(cmd, "lat", "lon")
	return cmd
}

func newStationTypeCommand(rt Runtime) *cobra.Command {
	var stationType string
	run := operation(rt, func(_ context.Context, svc *tools.Service) (tools.Result, error) {
		return svc.StationsOfType(stationType), nil
	})

	cmd := &cobra.Command{
		Use:   "type",
		Short: "List stations of one type (A-F)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !station.Type(stationType).Valid() {
				return fmt.Errorf("invalid argument %q for \"--station-type\" flag: must be one of %s",
					stationType, typeChoices())
			}
			return run(cmd, args)
		},
	}
	cmd.Flags().StringVar(&stationType, "station-type", "", "station type: "+typeChoices())
	mustRequire(cmd, "station-type")
	return cmd
}

func typeChoices() string {
	names := make([]string, len(station.Types))
	for i, t := range station.Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func newStationListCommand(rt Runtime) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Page through every station",
		Args:  cobra.NoArgs,
		RunE: operation(rt, func(_ context.Context, svc *tools.Service) (tools.Result, error) {
			return svc.ListStations(limit, offset), nil
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", tools.DefaultListLimit, "maximum stations to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "stations to skip")
	return cmd
}

// SyncSummary reports a station sync.
type SyncSummary struct {
	Out      string   `json:"out"`
	Stations int      `json:"stations"`
	Skipped  []string `json:"skipped"`
}

func newStationSyncCommand(rt Runtime) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download the JMA station table and write it as a station dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := rt.StationTable(cmd.Context())
			if err != nil {
				return err
			}

			stations, skipped := station.FromTable(table)
			if err := writeDataset(out, stations); err != nil {
				return err
			}

			if skipped == nil {
				skipped = []string{}
			}
			return writeJSON(cmd.OutOrStdout(), SyncSummary{
				Out:      out,
				Stations: len(stations),
				Skipped:  skipped,
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "dataset file to write")
	mustRequire(cmd, "out")
	return cmd
}

// writeDataset replaces path only once the whole dataset is on disk.
func writeDataset(path string, stations []station.Station) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".stations-*.json")
	if err != nil {
		return fmt.Errorf("creating dataset: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := station.Write(f, stations); err != nil {
		f.Close()
		return fmt.Errorf("writing dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}
