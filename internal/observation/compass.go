package observation

import "math"

// 16-point compass, indexed by JMA direction code 1-16 (clockwise from NNE).
var (
	compassEn = [16]string{
		"NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S",
		"SSW", "SW", "WSW", "W", "WNW", "NW", "NNW", "N",
	}
	compassJa = [16]string{
		"北北東", "北東", "東北東", "東", "東南東", "南東", "南南東", "南",
		"南南西", "南西", "西南西", "西", "西北西", "北西", "北北西", "北",
	}
)

// Compass returns the English and Japanese labels for a wind direction
// code. Null, fractional and out-of-range codes have no labels.
func Compass(code Value) (en, ja *string) {
	f, ok := code.Float64()
	if !ok || f != math.Trunc(f) || f < 1 || f > 16 {
		return nil, nil
	}
	i := int(f) - 1
	e, j := compassEn[i], compassJa[i]
	return &e, &j
}
