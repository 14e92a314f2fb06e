package candle

import (
	"sort"

	"walletScope/internal/model"
)

// BuildVolumeCandles buckets lending events into per-resolution volume
// candles. Only buckets with activity are emitted; volumes are not carried
// forward into empty buckets.
func BuildVolumeCandles(events []model.LendingEvent, res Resolution) []model.VolumeCandle {
	byBucket := make(map[int64]*model.VolumeCandle)
	for _, e := range events {
		key := res.Align(e.Timestamp).Unix()
		c := byBucket[key]
		if c == nil {
			c = &model.VolumeCandle{Time: key}
			byBucket[key] = c
		}
		switch e.Side {
		case model.SideLend:
			c.LendVolume += e.Amount
			c.LendCount++
		case model.SideBorrow:
			c.BorrowVolume += e.Amount
			c.BorrowCount++
		}
	}

	candles := make([]model.VolumeCandle, 0, len(byBucket))
	for _, c := range byBucket {
		c.NetFlow = c.LendVolume - c.BorrowVolume
		c.TotalVolume = c.LendVolume + c.BorrowVolume
		candles = append(candles, *c)
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time < candles[j].Time })
	return candles
}
