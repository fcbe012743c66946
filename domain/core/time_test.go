package core

import (
	"testing"
	"time"
)

func TestNowRendersRFC3339(t *testing.T) {
	ts := Now()
	parsed, err := time.Parse(time.RFC3339, ts.String())
	if err != nil {
		t.Fatalf("Timestamp.String must render RFC 3339: %v", err)
	}
	if parsed.Location() != time.UTC {
		t.Fatalf("timestamps are recorded in UTC, got %v", parsed.Location())
	}
	if d := time.Since(ts.Time()); d < 0 || d > time.Minute {
		t.Fatalf("Now drifted by %v", d)
	}
}

func TestSeasonOf(t *testing.T) {
	cases := map[time.Month]Season{
		time.December:  SeasonDJF,
		time.January:   SeasonDJF,
		time.February:  SeasonDJF,
		time.March:     SeasonMAM,
		time.May:       SeasonMAM,
		time.June:      SeasonJJA,
		time.August:    SeasonJJA,
		time.September: SeasonSON,
		time.November:  SeasonSON,
	}
	for month, want := range cases {
		if got := SeasonOf(month); got != want {
			t.Fatalf("SeasonOf(%v) = %v, want %v", month, got, want)
		}
	}
	if len(Seasons) != 4 || Seasons[0] != SeasonDJF || Seasons[3] != SeasonSON {
		t.Fatalf("canonical season order broken: %v", Seasons)
	}
}

func TestCeilHour(t *testing.T) {
	whole := time.Date(2015, 6, 1, 12, 0, 0, 0, time.UTC)
	if got := CeilHour(whole); !got.Equal(whole) {
		t.Fatalf("whole hour must be unchanged, got %v", got)
	}
	frac := time.Date(2015, 6, 1, 12, 30, 0, 0, time.UTC)
	want := time.Date(2015, 6, 1, 13, 0, 0, 0, time.UTC)
	if got := CeilHour(frac); !got.Equal(want) {
		t.Fatalf("CeilHour(%v) = %v, want %v", frac, got, want)
	}
}
