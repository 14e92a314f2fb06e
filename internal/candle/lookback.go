package candle

import (
	"fmt"
	"time"
)

// Lookback is a trailing history window. Minutes of zero is the "all"
// sentinel and disables the cutoff entirely.
type Lookback struct {
	Label   string
	Minutes int
}

var (
	LookbackH1  = Lookback{"1h", 60}
	LookbackH4  = Lookback{"4h", 240}
	LookbackH12 = Lookback{"12h", 720}
	LookbackD1  = Lookback{"1d", 1440}
	LookbackD3  = Lookback{"3d", 4320}
	LookbackW1  = Lookback{"1w", 10080}
	LookbackW2  = Lookback{"2w", 20160}
	LookbackM1  = Lookback{"1m", 43200}
	LookbackM3  = Lookback{"3m", 129600}
	LookbackAll = Lookback{"all", 0}
)

var lookbacks = []Lookback{
	LookbackH1, LookbackH4, LookbackH12, LookbackD1, LookbackD3,
	LookbackW1, LookbackW2, LookbackM1, LookbackM3, LookbackAll,
}

// ParseLookback resolves a label ("1h", "1w", "all", ...) to its Lookback.
func ParseLookback(label string) (Lookback, error) {
	for _, lb := range lookbacks {
		if lb.Label == label {
			return lb, nil
		}
	}
	return Lookback{}, fmt.Errorf("unknown lookback: %s", label)
}

// Cutoff returns the inclusive lower bound of the window ending at now.
// ok is false for the "all" sentinel.
func (lb Lookback) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	if lb.Minutes <= 0 {
		return time.Time{}, false
	}
	return now.Add(-time.Duration(lb.Minutes) * time.Minute), true
}
