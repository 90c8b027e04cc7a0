package weather

import (
	"bytes"
	"encoding/json"
)

// Area is a forecast region: a prefecture key and its JMA area code.
type Area struct {
	Key  string
	Code string
}

// One forecast office per prefecture, in JIS prefecture order.
var areas = []Area{
	{"hokkaido_sapporo", "016000"},
	{"aomori", "020000"},
	{"iwate", "030000"},
	{"miyagi", "040000"},
	{"akita", "050000"},
	{"yamagata", "060000"},
	{"fukushima", "070000"},
	{"ibaraki", "080000"},
	{"tochigi", "090000"},
	{"gunma", "100000"},
	{"saitama", "110000"},
	{"chiba", "120000"},
	{"tokyo", "130000"},
	{"kanagawa", "140000"},
	{"niigata", "150000"},
	{"toyama", "160000"},
	{"ishikawa", "170000"},
	{"fukui", "180000"},
	{"yamanashi", "190000"},
	{"nagano", "200000"},
	{"gifu", "210000"},
	{"shizuoka", "220000"},
	{"aichi", "230000"},
	{"mie", "240000"},
	{"shiga", "250000"},
	{"kyoto", "260000"},
	{"osaka", "270000"},
	{"hyogo", "280000"},
	{"nara", "290000"},
	{"wakayama", "300000"},
	{"tottori", "310000"},
	{"shimane", "320000"},
	{"okayama", "330000"},
	{"hiroshima", "340000"},
	{"yamaguchi", "350000"},
	{"tokushima", "360000"},
	{"kagawa", "370000"},
	{"ehime", "380000"},
	{"kochi", "390000"},
	{"fukuoka", "400000"},
	{"saga", "410000"},
	{"nagasaki", "420000"},
	{"kumamoto", "430000"},
	{"oita", "440000"},
	{"miyazaki", "450000"},
	{"kagoshima", "460000"},
	{"okinawa", "470000"},
}

var areaIndex = func() map[string]string {
	m := make(map[string]string, len(areas))
	for _, a := range areas {
		m[a.Key] = a.Code
	}
	return m
}()

// LookupArea returns the area code for a prefecture key. Keys are matched
// exactly.
func LookupArea(key string) (string, bool) {
	code, ok := areaIndex[key]
	return code, ok
}

// AreaKeys lists every prefecture key in table order.
func AreaKeys() []string {
	keys := make([]string, len(areas))
	for i, a := range areas {
		keys[i] = a.Key
	}
	return keys
}

// AreaTable is the prefecture table. It encodes as a JSON object that keeps
// table order.
type AreaTable []Area

// Areas returns a copy of the prefecture table.
func Areas() AreaTable {
	out := make(AreaTable, len(areas))
	copy(out, areas)
	return out
}

// MarshalJSON implements json.Marshaler.
func (t AreaTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Key)
		if err != nil {
			return nil, err
		}
		code, err := json.Marshal(a.Code)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(code)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
