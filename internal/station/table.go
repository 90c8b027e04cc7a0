package station

import (
	"math"
	"sort"
)

// TableEntry is one record of JMA's amedastable.json. Coordinates are given
// as [degrees, minutes].
type TableEntry struct {
	Type   string     `json:"type"`
	Elems  string     `json:"elems"`
	Lat    [2]float64 `json:"lat"`
	Lon    [2]float64 `json:"lon"`
	Alt    float64    `json:"alt"`
	KjName string     `json:"kjName"`
	KnName string     `json:"knName"`
	EnName string     `json:"enName"`
}

// FromTable converts an amedastable document into directory records ordered
// by code. Entries with a type outside A-F are returned in skipped.
func FromTable(table map[string]TableEntry) (stations []Station, skipped []string) {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	stations = make([]Station, 0, len(codes))
	for _, code := range codes {
		e := table[code]
		t := Type(e.Type)
		if !t.Valid() {
			skipped = append(skipped, code)
			continue
		}
		stations = append(stations, Station{
			Code: code,
			Name: Name{
				Ja:   e.KjName,
				Kana: e.KnName,
				En:   e.EnName,
			},
			Location: Location{
				Lat: degreesMinutes(e.Lat),
				Lon: degreesMinutes(e.Lon),
			},
			Type: t,
		})
	}

	return stations, skipped
}

// degreesMinutes converts [deg, min] to decimal degrees rounded to 4 places.
func degreesMinutes(dm [2]float64) float64 {
	return math.Round((dm[0]+dm[1]/60)*10000) / 10000
}
