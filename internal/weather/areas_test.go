package weather_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmadata/jma-data-mcp/internal/weather"
)

func TestLookupArea(t *testing.T) {
	tests := map[string]string{
		"hokkaido_sapporo": "016000",
		"tokyo":            "130000",
		"osaka":            "270000",
		"okinawa":          "470000",
	}
	for key, want := range tests {
		code, ok := weather.LookupArea(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, code, key)
	}

	_, ok := weather.LookupArea("Tokyo")
	assert.False(t, ok, "keys are exact")
	_, ok = weather.LookupArea("atlantis")
	assert.False(t, ok)
}

func TestAreaKeys(t *testing.T) {
	keys := weather.AreaKeys()

	require.Len(t, keys, 47)
	assert.Equal(t, "hokkaido_sapporo", keys[0])
	assert.Equal(t, "okinawa", keys[46])

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

func TestAreaTable_MarshalJSON_KeepsOrder(t *testing.T) {
	b, err := json.Marshal(weather.Areas())
	require.NoError(t, err)

	doc := string(b)
	assert.True(t, strings.HasPrefix(doc, `{"hokkaido_sapporo":"016000","aomori":"020000"`), doc)
	assert.True(t, strings.HasSuffix(doc, `"okinawa":"470000"}`), doc)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Len(t, decoded, 47)
}

func TestAreas_ReturnsCopy(t *testing.T) {
	a := weather.Areas()
	a[0].Code = "000000"

	code, _ := weather.LookupArea("hokkaido_sapporo")
	assert.Equal(t, "016000", code)
	assert.Equal(t, "016000", weather.Areas()[0].Code)
}
