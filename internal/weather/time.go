package weather

import "time"

// JST is Japan Standard Time. It has no daylight saving.
var JST = time.FixedZone("JST", 9*60*60)

const (
	// PublicationLag is how far behind real time AMeDAS maps are published.
	PublicationLag = 40 * time.Minute

	// Step is the AMeDAS observation cadence.
	Step = 10 * time.Minute

	apiTimeLayout = "20060102150405"
	jstLayout     = "2006-01-02 15:04 JST"
)

// Floor truncates t to the 10-minute boundary at or before it, in JST, with
// seconds and sub-seconds zeroed.
func Floor(t time.Time) time.Time {
	t = t.In(JST)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()-t.Minute()%10, 0, 0, JST)
}

// LatestDataTime is the newest map expected to be published at now.
func LatestDataTime(now time.Time) time.Time {
	return Floor(now.In(JST).Add(-PublicationLag))
}

// FormatAPITime renders t as the YYYYMMDDHHMM00 path segment of the map URL.
func FormatAPITime(t time.Time) string {
	return Floor(t).Format(apiTimeLayout)
}

// FormatISO renders t as RFC 3339 in JST, e.g. 2025-12-01T12:00:00+09:00.
func FormatISO(t time.Time) string {
	return t.In(JST).Format(time.RFC3339)
}

// FormatJST renders t as "2006-01-02 15:04 JST".
func FormatJST(t time.Time) string {
	return t.In(JST).Format(jstLayout)
}

// SeriesTimes returns count timestamps descending from anchor by interval.
func SeriesTimes(anchor time.Time, count int, interval time.Duration) []time.Time {
	times := make([]time.Time, count)
	for i := range times {
		times[i] = anchor.Add(-time.Duration(i) * interval)
	}
	return times
}
