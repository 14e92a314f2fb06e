package candle

import (
	"sort"
	"time"

	"walletScope/internal/model"
)

// FilterPriceCandles trims an externally sourced OHLCV series to the
// lookback window and returns it in chronological order. Values pass
// through unchanged.
func FilterPriceCandles(candles []model.PriceCandle, lb Lookback, now time.Time) []model.PriceCandle {
	out := make([]model.PriceCandle, 0, len(candles))
	cutoff, bounded := lb.Cutoff(now)
	for _, c := range candles {
		if bounded && c.Time < cutoff.Unix() {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
