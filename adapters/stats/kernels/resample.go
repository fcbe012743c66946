package kernels

import (
	"fmt"
	"strings"
	"time"

	"climstat/domain/core"
)

// ParseFreq splits a resample token such as "1D" or "3H" into a multiplier
// and unit. Months and years are approximated as 30 and 365 day multiples
// and quarters as 90 days; this deliberately trades calendar accuracy for a
// fixed-width bucket model.
func ParseFreq(token string) (count int, unit string, err error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, "", fmt.Errorf("%w: empty token", core.ErrBadResampleToken)
	}
	i := 0
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		count = count*10 + int(token[i]-'0')
		i++
	}
	if count == 0 {
		count = 1
	}
	unit = token[i:]
	switch unit {
	case "M":
		return count * 30, "D", nil
	case "Y":
		return count * 365, "D", nil
	case "S", "T", "min", "H", "D", "W":
		return count, unit, nil
	default:
		if strings.HasPrefix(unit, "Q") {
			return 90, "D", nil
		}
		return 0, "", fmt.Errorf("%w: %q", core.ErrBadResampleToken, token)
	}
}

// FreqDuration converts a resample token to a fixed bucket width.
func FreqDuration(token string) (time.Duration, error) {
	count, unit, err := ParseFreq(token)
	if err != nil {
		return 0, err
	}
	var step time.Duration
	switch unit {
	case "S":
		step = time.Second
	case "T", "min":
		step = time.Minute
	case "H":
		step = time.Hour
	case "D":
		step = 24 * time.Hour
	case "W":
		step = 7 * 24 * time.Hour
	}
	return time.Duration(count) * step, nil
}

// ResampleBuckets assigns every timestamp to a fixed-width bucket of the
// requested resolution. Returned bucket labels are the bucket start times in
// ascending order; index maps each sample to its bucket position.
func ResampleBuckets(times []time.Time, token string) (labels []time.Time, index []int, err error) {
	width, err := FreqDuration(token)
	if err != nil {
		return nil, nil, err
	}
	index = make([]int, len(times))
	var last time.Time
	for i, t := range times {
		start := t.UTC().Truncate(width)
		if len(labels) == 0 || !start.Equal(last) {
			labels = append(labels, start)
			last = start
		}
		index[i] = len(labels) - 1
	}
	return labels, index, nil
}

// ReduceBuckets applies the reduction per bucket over the series. Buckets
// with no valid values reduce to NaN.
func ReduceBuckets(series []float64, index []int, nbuckets int, reduce ReduceFunc) []float64 {
	grouped := make([][]float64, nbuckets)
	for i, v := range series {
		b := index[i]
		grouped[b] = append(grouped[b], v)
	}
	out := make([]float64, nbuckets)
	for b, g := range grouped {
		out[b] = reduce(g)
	}
	return out
}
