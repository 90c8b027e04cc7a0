package observation

// Units attached to decoded channels.
const (
	UnitCelsius      = "℃"
	UnitPercent      = "%"
	UnitHectopascal  = "hPa"
	UnitMetresPerSec = "m/s"
	UnitMillimetres  = "mm"
	UnitHours        = "hours"
	UnitCentimetres  = "cm"
)

// Raw channel keys used by the AMeDAS map documents.
const (
	KeyTemperature      = "temp"
	KeyHumidity         = "humidity"
	KeyPressure         = "pressure"
	KeySeaLevelPressure = "normalPressure"
	KeyWindSpeed        = "wind"
	KeyWindDirection    = "windDirection"
	KeyPrecip10m        = "precipitation10m"
	KeyPrecip1h         = "precipitation1h"
	KeyPrecip3h         = "precipitation3h"
	KeyPrecip24h        = "precipitation24h"
	KeySunshine1h       = "sun1h"
	KeySnowDepth        = "snow"
	KeySnow1h           = "snow1h"
	KeySnow6h           = "snow6h"
	KeySnow12h          = "snow12h"
	KeySnow24h          = "snow24h"
)

// channel binds a raw key to its unit and the field it fills.
type channel struct {
	key  string
	unit string
	set  func(o *StationObservation, v Value)
}

var channels = []channel{
	{KeyTemperature, UnitCelsius, func(o *StationObservation, v Value) {
		o.Temperature = &Quantity{Value: v, Unit: UnitCelsius}
	}},
	{KeyHumidity, UnitPercent, func(o *StationObservation, v Value) {
		o.Humidity = &Quantity{Value: v, Unit: UnitPercent}
	}},
	{KeyPressure, UnitHectopascal, func(o *StationObservation, v Value) {
		o.Pressure = &Quantity{Value: v, Unit: UnitHectopascal}
	}},
	{KeySeaLevelPressure, UnitHectopascal, func(o *StationObservation, v Value) {
		o.SeaLevelPressure = &Quantity{Value: v, Unit: UnitHectopascal}
	}},
	{KeyWindSpeed, UnitMetresPerSec, func(o *StationObservation, v Value) {
		wind(o).Speed = v
	}},
	{KeyWindDirection, "", func(o *StationObservation, v Value) {
		w := wind(o)
		w.DirectionCode = v
		w.Direction, w.DirectionJa = Compass(v)
	}},
	{KeyPrecip10m, UnitMillimetres, func(o *StationObservation, v Value) {
		precipitation(o).TenMinutes = &v
	}},
	{KeyPrecip1h, UnitMillimetres, func(o *StationObservation, v Value) {
		precipitation(o).OneHour = &v
	}},
	{KeyPrecip3h, UnitMillimetres, func(o *StationObservation, v Value) {
		precipitation(o).ThreeHours = &v
	}},
	{KeyPrecip24h, UnitMillimetres, func(o *StationObservation, v Value) {
		precipitation(o).TwentyFourHours = &v
	}},
	{KeySunshine1h, UnitHours, func(o *StationObservation, v Value) {
		o.Sunshine = &Sunshine{OneHour: v, Unit: UnitHours}
	}},
	{KeySnowDepth, UnitCentimetres, func(o *StationObservation, v Value) {
		snow(o).Depth = &v
	}},
	{KeySnow1h, UnitCentimetres, func(o *StationObservation, v Value) {
		snow(o).OneHour = &v
	}},
	{KeySnow6h, UnitCentimetres, func(o *StationObservation, v Value) {
		snow(o).SixHours = &v
	}},
	{KeySnow12h, UnitCentimetres, func(o *StationObservation, v Value) {
		snow(o).TwelveHours = &v
	}},
	{KeySnow24h, UnitCentimetres, func(o *StationObservation, v Value) {
		snow(o).TwentyFourHours = &v
	}},
}

// ChannelUnit returns the unit for a raw channel key. Wind direction is a
// compass code and has no unit.
func ChannelUnit(key string) (string, bool) {
	for _, c := range channels {
		if c.key == key {
			return c.unit, true
		}
	}
	return "", false
}

// ChannelKeys lists the raw keys the decoder understands, in decode order.
func ChannelKeys() []string {
	keys := make([]string, len(channels))
	for i, c := range channels {
		keys[i] = c.key
	}
	return keys
}

func wind(o *StationObservation) *Wind {
	if o.Wind == nil {
		o.Wind = &Wind{SpeedUnit: UnitMetresPerSec}
	}
	return o.Wind
}

func precipitation(o *StationObservation) *Precipitation {
	if o.Precipitation == nil {
		o.Precipitation = &Precipitation{Unit: UnitMillimetres}
	}
	return o.Precipitation
}

func snow(o *StationObservation) *Snow {
	if o.Snow == nil {
		o.Snow = &Snow{Unit: UnitCentimetres}
	}
	return o.Snow
}
