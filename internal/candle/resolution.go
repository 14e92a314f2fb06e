package candle

import (
	"fmt"
	"time"
)

// Resolution is a fixed candle width with its chart code. The zero value is
// not valid; use ParseResolution or one of the package variables.
type Resolution struct {
	Code    string
	Minutes int
}

var (
	ResM1  = Resolution{"1", 1}
	ResM5  = Resolution{"5", 5}
	ResM15 = Resolution{"15", 15}
	ResM30 = Resolution{"30", 30}
	ResH1  = Resolution{"60", 60}
	ResH4  = Resolution{"240", 240}
	ResD1  = Resolution{"D", 1440}
	ResW1  = Resolution{"W", 10080}
)

var resolutions = []Resolution{ResM1, ResM5, ResM15, ResM30, ResH1, ResH4, ResD1, ResW1}

// ParseResolution resolves a chart code ("1", "60", "D", ...) to its
// Resolution.
func ParseResolution(code string) (Resolution, error) {
	for _, r := range resolutions {
		if r.Code == code {
			return r, nil
		}
	}
	return Resolution{}, fmt.Errorf("unknown resolution: %s", code)
}

// Span returns the bucket width as a duration.
func (r Resolution) Span() time.Duration {
	return time.Duration(r.Minutes) * time.Minute
}

// Align truncates t to the start of its bucket, in UTC. Weekly buckets start
// on the most recent Monday midnight; daily at midnight; hourly multiples on
// the hour floored to the multiple; sub-hourly on the minute floored to the
// multiple.
func (r Resolution) Align(t time.Time) time.Time {
	t = t.UTC()

	switch {
	case r.Minutes >= 10080:
		daysSinceMonday := (int(t.Weekday()) + 6) % 7
		t = t.AddDate(0, 0, -daysSinceMonday)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case r.Minutes >= 1440:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case r.Minutes >= 60:
		hours := r.Minutes / 60
		hour := (t.Hour() / hours) * hours
		return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, time.UTC)
	default:
		minute := (t.Minute() / r.Minutes) * r.Minutes
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, time.UTC)
	}
}

// Buckets enumerates every bucket start from the one containing first to the
// one containing last, inclusive, so charting consumers always receive an
// evenly spaced axis.
func (r Resolution) Buckets(first, last time.Time) []time.Time {
	start := r.Align(first)
	end := r.Align(last)

	buckets := make([]time.Time, 0)
	for cur := start; !cur.After(end); cur = cur.Add(r.Span()) {
		buckets = append(buckets, cur)
	}
	return buckets
}
