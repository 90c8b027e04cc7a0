package station

import (
	"fmt"
	"sort"
	"strings"
)

// Directory is an immutable, ordered table of stations keyed by code.
// All methods are safe for concurrent use; nothing mutates a Directory after
// NewDirectory returns.
type Directory struct {
	stations []Station
	byCode   map[string]int
}

// NewDirectory builds a directory from stations in the given order.
// Codes must be unique and every type must be one of A-F.
func NewDirectory(stations []Station) (*Directory, error) {
	d := &Directory{
		stations: make([]Station, 0, len(stations)),
		byCode:   make(map[string]int, len(stations)),
	}

	for _, s := range stations {
		if s.Code == "" {
			return nil, ErrEmptyStationCode
		}
		if _, exists := d.byCode[s.Code]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStation, s.Code)
		}
		if !s.Type.Valid() {
			return nil, fmt.Errorf("%w: %q for station %s", ErrUnknownStationType, s.Type, s.Code)
		}
		d.byCode[s.Code] = len(d.stations)
		d.stations = append(d.stations, s)
	}

	return d, nil
}

// Len returns the number of stations.
func (d *Directory) Len() int {
	return len(d.stations)
}

// Partial reports whether the directory holds fewer stations than JMA's
// complete table.
func (d *Directory) Partial() bool {
	return len(d.stations) < FullDatasetSize
}

// Get returns the station with the given code.
func (d *Directory) Get(code string) (Station, bool) {
	i, ok := d.byCode[code]
	if !ok {
		return Station{}, false
	}
	return d.stations[i], true
}

// All returns every station in directory order.
func (d *Directory) All() []Station {
	result := make([]Station, len(d.stations))
	copy(result, d.stations)
	return result
}

// SearchByName matches query as a substring of the Japanese or kana name
// (case-sensitive) or of the English name (case-insensitive).
func (d *Directory) SearchByName(query string) []Station {
	lower := strings.ToLower(query)
	result := make([]Station, 0)

	for _, s := range d.stations {
		if strings.Contains(s.Name.Ja, query) ||
			strings.Contains(s.Name.Kana, query) ||
			strings.Contains(strings.ToLower(s.Name.En), lower) {
			result = append(result, s)
		}
	}

	return result
}

// SearchByType returns all stations of type t. A type outside A-F matches
// nothing.
func (d *Directory) SearchByType(t Type) []Station {
	result := make([]Station, 0)
	for _, s := range d.stations {
		if s.Type == t {
			result = append(result, s)
		}
	}
	return result
}

// SearchNearby returns the stations within radiusKm of (lat, lon), nearest
// first. Distances are rounded to two decimals; equal distances keep
// directory order.
func (d *Directory) SearchNearby(lat, lon, radiusKm float64) []NearbyStation {
	result := make([]NearbyStation, 0)

	for _, s := range d.stations {
		dist := HaversineKm(lat, lon, s.Location.Lat, s.Location.Lon)
		if dist <= radiusKm {
			result = append(result, NearbyStation{
				Station:    s,
				DistanceKm: roundKm(dist),
			})
		}
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].DistanceKm < result[b].DistanceKm
	})

	return result
}

// Nearest returns the closest station within radiusKm, if any.
func (d *Directory) Nearest(lat, lon, radiusKm float64) (NearbyStation, bool) {
	nearby := d.SearchNearby(lat, lon, radiusKm)
	if len(nearby) == 0 {
		return NearbyStation{}, false
	}
	return nearby[0], true
}

// List returns up to limit stations starting at offset. Negative arguments
// are treated as zero and an offset past the end yields an empty page.
func (d *Directory) List(limit, offset int) Page {
	limit = max(limit, 0)
	offset = max(offset, 0)

	start := min(offset, len(d.stations))
	end := start + min(limit, len(d.stations)-start)

	items := make([]Station, end-start)
	copy(items, d.stations[start:end])

	return Page{
		Total:  len(d.stations),
		Offset: offset,
		Limit:  limit,
		Items:  items,
	}
}
