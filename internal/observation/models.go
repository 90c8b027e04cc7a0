// Package observation decodes raw AMeDAS observation blobs into unit-tagged
// records.
package observation

import (
	"encoding/json"
	"strconv"
)

// Value is a decoded channel value. The zero Value encodes as JSON null.
type Value struct {
	v     float64
	valid bool
}

// Float returns a non-null Value.
func Float(f float64) Value {
	return Value{v: f, valid: true}
}

// Float64 returns the value and whether it is non-null.
func (v Value) Float64() (float64, bool) {
	return v.v, v.valid
}

// Valid reports whether the value is non-null.
func (v Value) Valid() bool {
	return v.valid
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*v = Float(f)
	return nil
}

// Quantity is a scalar channel with its unit.
type Quantity struct {
	Value Value  `json:"value"`
	Unit  string `json:"unit"`
}

// Wind groups speed and compass direction. Every field is always emitted.
type Wind struct {
	Speed         Value   `json:"speed"`
	SpeedUnit     string  `json:"speed_unit"`
	Direction     *string `json:"direction"`
	DirectionJa   *string `json:"direction_ja"`
	DirectionCode Value   `json:"direction_code"`
}

// Precipitation groups the rolling precipitation windows. A nil member was
// not reported by the station.
type Precipitation struct {
	TenMinutes      *Value `json:"10min,omitempty"`
	OneHour         *Value `json:"1h,omitempty"`
	ThreeHours      *Value `json:"3h,omitempty"`
	TwentyFourHours *Value `json:"24h,omitempty"`
	Unit            string `json:"unit"`
}

// Sunshine is the sunshine duration over the last hour.
type Sunshine struct {
	OneHour Value  `json:"1h"`
	Unit    string `json:"unit"`
}

// Snow groups snow depth and the rolling snowfall windows.
type Snow struct {
	Depth           *Value `json:"depth,omitempty"`
	OneHour         *Value `json:"1h,omitempty"`
	SixHours        *Value `json:"6h,omitempty"`
	TwelveHours     *Value `json:"12h,omitempty"`
	TwentyFourHours *Value `json:"24h,omitempty"`
	Unit            string `json:"unit"`
}

// StationObservation is one station's decoded observation. A nil channel was
// not reported.
type StationObservation struct {
	Code             string         `json:"code"`
	Temperature      *Quantity      `json:"temperature,omitempty"`
	Humidity         *Quantity      `json:"humidity,omitempty"`
	Pressure         *Quantity      `json:"pressure,omitempty"`
	SeaLevelPressure *Quantity      `json:"sea_level_pressure,omitempty"`
	Wind             *Wind          `json:"wind,omitempty"`
	Precipitation    *Precipitation `json:"precipitation,omitempty"`
	Sunshine         *Sunshine      `json:"sunshine,omitempty"`
	Snow             *Snow          `json:"snow,omitempty"`
}

// RawStation is one station's entry in an AMeDAS map document: channel key
// to a [value, qualityFlag] tuple.
type RawStation map[string]json.RawMessage

// RawSnapshot is a full AMeDAS map document keyed by station code.
type RawSnapshot map[string]RawStation
