package observation

import (
	"encoding/json"
)

// ParseValue decodes a raw [value, qualityFlag] tuple. The result is null
// when the tuple is malformed, either element is null, or the value is not
// a number. The quality flag only gates presence.
func ParseValue(raw json.RawMessage) Value {
	var tuple []json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) < 2 {
		return Value{}
	}
	if isNull(tuple[1]) {
		return Value{}
	}

	var f *float64
	if err := json.Unmarshal(tuple[0], &f); err != nil || f == nil {
		return Value{}
	}
	return Float(*f)
}

// Decode turns one station's raw blob into a StationObservation. Channels
// missing from raw are left nil; unknown keys are ignored.
func Decode(code string, raw RawStation) StationObservation {
	obs := StationObservation{Code: code}
	for _, c := range channels {
		v, ok := raw[c.key]
		if !ok {
			continue
		}
		c.set(&obs, ParseValue(v))
	}
	return obs
}

// DecodeSnapshot decodes every station in a map document. When only is
// non-empty the result holds at most that station. Null entries are skipped.
func DecodeSnapshot(raw RawSnapshot, only string) map[string]StationObservation {
	out := make(map[string]StationObservation)

	if only != "" {
		if blob := raw[only]; blob != nil {
			out[only] = Decode(only, blob)
		}
		return out
	}

	for code, blob := range raw {
		if blob == nil {
			continue
		}
		out[code] = Decode(code, blob)
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
