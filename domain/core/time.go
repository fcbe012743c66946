package core

import (
	"time"
)

// Timestamp is the creation instant stamped on assembled results, always
// recorded in UTC.
type Timestamp time.Time

// Now returns the current timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().UTC())
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// Season is a meteorological season label.
type Season string

const (
	SeasonDJF Season = "DJF"
	SeasonMAM Season = "MAM"
	SeasonJJA Season = "JJA"
	SeasonSON Season = "SON"
)

// Seasons is the canonical season ordering used for all seasonal outputs.
var Seasons = []Season{SeasonDJF, SeasonMAM, SeasonJJA, SeasonSON}

// SeasonOf maps a month to its meteorological season.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return SeasonDJF
	case time.March, time.April, time.May:
		return SeasonMAM
	case time.June, time.July, time.August:
		return SeasonJJA
	default:
		return SeasonSON
	}
}

// CeilHour rounds a timestamp up to the next whole hour. Timestamps already
// on a whole hour are returned unchanged.
func CeilHour(t time.Time) time.Time {
	truncated := t.Truncate(time.Hour)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(time.Hour)
}

// String renders the timestamp in RFC 3339.
func (t Timestamp) String() string { return t.Time().Format(time.RFC3339) }
