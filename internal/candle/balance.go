package candle

import (
	"math"
	"sort"
	"time"

	"walletScope/internal/model"
)

// FlowEvent is one signed balance movement: positive for inbound, negative
// for outbound transfers.
type FlowEvent struct {
	Time   time.Time
	Amount float64
}

// BalanceFlows projects reference-token transfer events onto signed flows.
func BalanceFlows(events []model.TransferEvent) []FlowEvent {
	flows := make([]FlowEvent, 0, len(events))
	for _, e := range events {
		switch e.Direction {
		case model.DirectionIn:
			flows = append(flows, FlowEvent{Time: e.Timestamp, Amount: e.Amount})
		case model.DirectionOut:
			flows = append(flows, FlowEvent{Time: e.Timestamp, Amount: -e.Amount})
		}
	}
	return flows
}

// BuildBalanceCandles buckets signed flows into a contiguous, gap-filled
// OHLC series ending no earlier than now. endingBalance anchors the series:
// the opening balance is derived as endingBalance minus the net sum of all
// flows, so a wider event window never shifts balances at later times.
// Empty buckets carry the previous close forward. OHLC values are clamped
// to zero after computation; an empty event list yields an empty series.
func BuildBalanceCandles(flows []FlowEvent, endingBalance float64, res Resolution, now time.Time) []model.BalanceCandle {
	if len(flows) == 0 {
		return nil
	}

	sorted := make([]FlowEvent, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	var net float64
	buckets := make(map[int64][]FlowEvent)
	for _, f := range sorted {
		net += f.Amount
		key := res.Align(f.Time).Unix()
		buckets[key] = append(buckets[key], f)
	}

	last := sorted[len(sorted)-1].Time
	if now.After(last) {
		last = now
	}

	running := endingBalance - net
	candles := make([]model.BalanceCandle, 0)

	for _, bucketStart := range res.Buckets(sorted[0].Time, last) {
		bucketFlows := buckets[bucketStart.Unix()]

		open := running
		high := running
		low := running
		var volume, netChange float64

		for _, f := range bucketFlows {
			running += f.Amount
			netChange += f.Amount
			volume += math.Abs(f.Amount)
			if running > high {
				high = running
			}
			if running < low {
				low = running
			}
		}

		candles = append(candles, model.BalanceCandle{
			Time:      bucketStart.Unix(),
			Open:      clampZero(open),
			High:      clampZero(high),
			Low:       clampZero(low),
			Close:     clampZero(running),
			Volume:    volume,
			TxCount:   len(bucketFlows),
			NetChange: netChange,
		})
	}

	return candles
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
