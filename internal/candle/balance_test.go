package candle

import (
	"reflect"
	"testing"
	"time"

	"walletScope/internal/model"
)

func TestBuildBalanceCandlesEmpty(t *testing.T) {
	now := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)
	if got := BuildBalanceCandles(nil, 100, ResH1, now); got != nil {
		t.Fatalf("expected empty series, got %+v", got)
	}
}

func TestBuildBalanceCandlesGapFill(t *testing.T) {
	now := time.Date(2025, 3, 6, 11, 30, 0, 0, time.UTC)
	flows := []FlowEvent{
		{Time: time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC), Amount: 10},
		{Time: time.Date(2025, 3, 6, 11, 0, 0, 0, time.UTC), Amount: -4},
	}

	got := BuildBalanceCandles(flows, 6, ResH1, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 candles, got %d", len(got))
	}

	tenAM := got[1]
	wantTen := model.BalanceCandle{
		Time: time.Date(2025, 3, 6, 10, 0, 0, 0, time.UTC).Unix(),
		Open: 10, High: 10, Low: 10, Close: 10,
	}
	if !reflect.DeepEqual(tenAM, wantTen) {
		t.Fatalf("10:00 candle mismatch: %+v != %+v", tenAM, wantTen)
	}

	elevenAM := got[2]
	wantEleven := model.BalanceCandle{
		Time: time.Date(2025, 3, 6, 11, 0, 0, 0, time.UTC).Unix(),
		Open: 10, High: 10, Low: 6, Close: 6,
		Volume: 4, TxCount: 1, NetChange: -4,
	}
	if !reflect.DeepEqual(elevenAM, wantEleven) {
		t.Fatalf("11:00 candle mismatch: %+v != %+v", elevenAM, wantEleven)
	}
}

func TestBuildBalanceCandlesDeterminism(t *testing.T) {
	now := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)
	flows := []FlowEvent{
		{Time: time.Date(2025, 3, 6, 9, 5, 0, 0, time.UTC), Amount: 10},
		{Time: time.Date(2025, 3, 6, 9, 40, 0, 0, time.UTC), Amount: -3},
		{Time: time.Date(2025, 3, 6, 11, 0, 0, 0, time.UTC), Amount: 7},
	}

	first := BuildBalanceCandles(flows, 14, ResH1, now)
	second := BuildBalanceCandles(flows, 14, ResH1, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different series")
	}
}

func TestBuildBalanceCandlesMonotonicExtension(t *testing.T) {
	now := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)

	window := []FlowEvent{
		{Time: time.Date(2025, 3, 6, 10, 0, 0, 0, time.UTC), Amount: 5},
		{Time: time.Date(2025, 3, 6, 11, 0, 0, 0, time.UTC), Amount: -2},
	}
	wider := append([]FlowEvent{
		{Time: time.Date(2025, 3, 6, 7, 0, 0, 0, time.UTC), Amount: 20},
		{Time: time.Date(2025, 3, 6, 8, 0, 0, 0, time.UTC), Amount: -20},
	}, window...)

	narrow := BuildBalanceCandles(window, 50, ResH1, now)
	wide := BuildBalanceCandles(wider, 50, ResH1, now)

	// Wider input may only prepend candles, never change ones inside the
	// original window.
	offset := len(wide) - len(narrow)
	if offset < 0 {
		t.Fatalf("wider input produced fewer candles")
	}
	for i, want := range narrow {
		if !reflect.DeepEqual(wide[offset+i], want) {
			t.Fatalf("candle %d changed under extension: %+v != %+v", i, wide[offset+i], want)
		}
	}
}

func TestBuildBalanceCandlesNeverNegative(t *testing.T) {
	now := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)
	flows := []FlowEvent{
		{Time: time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC), Amount: -500},
		{Time: time.Date(2025, 3, 6, 10, 0, 0, 0, time.UTC), Amount: 100},
	}

	got := BuildBalanceCandles(flows, 10, ResH1, now)
	for _, c := range got {
		if c.Open < 0 || c.High < 0 || c.Low < 0 || c.Close < 0 {
			t.Fatalf("negative candle value: %+v", c)
		}
	}
}

func TestBuildBalanceCandlesExtendsToNow(t *testing.T) {
	now := time.Date(2025, 3, 6, 14, 0, 0, 0, time.UTC)
	flows := []FlowEvent{
		{Time: time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC), Amount: 10},
	}

	got := BuildBalanceCandles(flows, 10, ResH1, now)
	if len(got) != 6 {
		t.Fatalf("expected candles through 14:00, got %d", len(got))
	}
	last := got[len(got)-1]
	if last.Close != 10 || last.TxCount != 0 {
		t.Fatalf("trailing gap fill mismatch: %+v", last)
	}
}

func TestBalanceFlows(t *testing.T) {
	ts := time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC)
	events := []model.TransferEvent{
		{Timestamp: ts, Direction: model.DirectionIn, Amount: 5},
		{Timestamp: ts, Direction: model.DirectionOut, Amount: 3},
		{Timestamp: ts, Direction: model.DirectionInternal, Amount: 100},
	}

	got := BalanceFlows(events)
	want := []FlowEvent{{Time: ts, Amount: 5}, {Time: ts, Amount: -3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("flows mismatch: %+v != %+v", got, want)
	}
}
