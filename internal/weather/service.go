package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jmadata/jma-data-mcp/internal/observation"
)

// Provider defines the upstream the service reads from.
type Provider interface {
	// FetchObservations fetches the AMeDAS map for t.
	FetchObservations(ctx context.Context, t time.Time) (observation.RawSnapshot, error)

	// FetchForecast fetches the forecast document for an area code.
	FetchForecast(ctx context.Context, areaCode string) (json.RawMessage, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the upstream data source.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Clock returns the current time (default: time.Now).
	Clock func() time.Time

	// Concurrency bounds parallel fetches in TimeSeries (default: 6).
	Concurrency int
}

// Service reads and decodes observations. It keeps no state between calls.
type Service struct {
	provider    Provider
	logger      zerolog.Logger
	clock       func() time.Time
	concurrency int
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 6
	}

	return &Service{
		provider:    cfg.Provider,
		logger:      cfg.Logger,
		clock:       clock,
		concurrency: concurrency,
	}
}

// LatestTime is the newest map time expected to exist now.
func (s *Service) LatestTime() time.Time {
	return LatestDataTime(s.clock())
}

// Snapshot fetches and decodes the map at t, floored to the 10-minute grid.
// A non-empty code limits the result to that station.
func (s *Service) Snapshot(ctx context.Context, t time.Time, code string) (*Snapshot, error) {
	t = Floor(t)

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Time("observation_time", t).
		Str("station_code", code).
		Msg("fetching observations")

	raw, err := s.provider.FetchObservations(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("fetching observations for %s: %w", FormatAPITime(t), err)
	}

	return &Snapshot{
		Stamp:    NewStamp(t),
		Time:     t,
		Stations: observation.DecodeSnapshot(raw, code),
	}, nil
}

// Latest returns the most recent published snapshot.
func (s *Service) Latest(ctx context.Context, code string) (*Snapshot, error) {
	return s.Snapshot(ctx, s.LatestTime(), code)
}

// At returns one station's observation at t. A station missing from the map
// is reported in Reading.Error rather than as an error.
func (s *Service) At(ctx context.Context, code string, t time.Time) (*Reading, error) {
	snap, err := s.Snapshot(ctx, t, code)
	if err != nil {
		return nil, err
	}

	reading := &Reading{
		Stamp:       snap.Stamp,
		Time:        snap.Time,
		StationCode: code,
	}
	if obs, ok := snap.Stations[code]; ok {
		reading.Data = &obs
	} else {
		reading.Error = fmt.Sprintf("No data found for station %s at %s", code, snap.ObservationTimeJST)
	}
	return reading, nil
}

// TimeSeries collects a station's observations over the last hours at the
// given interval, newest first. Points that fail to fetch or lack the
// station are dropped; an empty series is not an error.
func (s *Service) TimeSeries(ctx context.Context, code string, hours, intervalMinutes int) (*Series, error) {
	if !slices.Contains(ValidIntervals, intervalMinutes) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, intervalMinutes)
	}
	if hours < MinHours || hours > MaxHours {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHours, hours)
	}

	count := (hours*60 + intervalMinutes - 1) / intervalMinutes
	times := SeriesTimes(s.LatestTime(), count, time.Duration(intervalMinutes)*time.Minute)
	slots := make([]*Point, len(times))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, t := range times {
		g.Go(func() error {
			raw, err := s.provider.FetchObservations(ctx, t)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("station_code", code).
					Time("observation_time", t).
					Msg("dropping time-series point")
				return nil
			}

			blob := raw[code]
			if blob == nil {
				return nil
			}
			slots[i] = &Point{
				Stamp: NewStamp(t),
				Time:  t,
				Data:  observation.Decode(code, blob),
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // tasks never fail

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(slots))
	for _, p := range slots {
		if p != nil {
			points = append(points, *p)
		}
	}

	s.logger.Debug().
		Str("station_code", code).
		Int("requested", count).
		Int("returned", len(points)).
		Msg("assembled time series")

	return &Series{
		StationCode:     code,
		Hours:           hours,
		IntervalMinutes: intervalMinutes,
		DataPoints:      len(points),
		Points:          points,
	}, nil
}

// Forecast returns the upstream forecast document for an area code
// unmodified.
func (s *Service) Forecast(ctx context.Context, areaCode string) (json.RawMessage, error) {
	doc, err := s.provider.FetchForecast(ctx, areaCode)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast for %s: %w", areaCode, err)
	}
	return doc, nil
}
