package candle

import (
	"reflect"
	"testing"
	"time"

	"walletScope/internal/model"
)

func TestBuildVolumeCandlesActiveBucketsOnly(t *testing.T) {
	events := []model.LendingEvent{
		{Timestamp: time.Date(2025, 3, 6, 9, 10, 0, 0, time.UTC), Side: model.SideLend, Amount: 100},
		{Timestamp: time.Date(2025, 3, 6, 9, 50, 0, 0, time.UTC), Side: model.SideBorrow, Amount: 30},
		// Nothing at 10:00; activity resumes at 11:00.
		{Timestamp: time.Date(2025, 3, 6, 11, 5, 0, 0, time.UTC), Side: model.SideLend, Amount: 40},
	}

	got := BuildVolumeCandles(events, ResH1)
	if len(got) != 2 {
		t.Fatalf("expected 2 active buckets, got %d", len(got))
	}

	want := model.VolumeCandle{
		Time:         time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC).Unix(),
		LendVolume:   100,
		BorrowVolume: 30,
		LendCount:    1,
		BorrowCount:  1,
		NetFlow:      70,
		TotalVolume:  130,
	}
	if !reflect.DeepEqual(got[0], want) {
		t.Fatalf("9:00 bucket mismatch: %+v != %+v", got[0], want)
	}

	if got[1].Time != time.Date(2025, 3, 6, 11, 0, 0, 0, time.UTC).Unix() {
		t.Fatalf("second bucket mismatch: %+v", got[1])
	}
}

func TestBuildVolumeCandlesSorted(t *testing.T) {
	events := []model.LendingEvent{
		{Timestamp: time.Date(2025, 3, 6, 15, 0, 0, 0, time.UTC), Side: model.SideLend, Amount: 1},
		{Timestamp: time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC), Side: model.SideLend, Amount: 1},
		{Timestamp: time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC), Side: model.SideBorrow, Amount: 1},
	}

	got := BuildVolumeCandles(events, ResH1)
	for i := 1; i < len(got); i++ {
		if got[i].Time <= got[i-1].Time {
			t.Fatalf("candles out of order: %+v", got)
		}
	}
}

func TestBuildVolumeCandlesEmpty(t *testing.T) {
	if got := BuildVolumeCandles(nil, ResH1); len(got) != 0 {
		t.Fatalf("expected empty series, got %+v", got)
	}
}

func TestFilterPriceCandles(t *testing.T) {
	now := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)
	candles := []model.PriceCandle{
		{Time: now.Add(-2 * time.Hour).Unix(), Close: 1.0},
		{Time: now.Add(-30 * time.Hour).Unix(), Close: 0.9},
		{Time: now.Add(-1 * time.Hour).Unix(), Close: 1.1},
	}

	got := FilterPriceCandles(candles, LookbackD1, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 candles inside window, got %d", len(got))
	}
	if got[0].Close != 1.0 || got[1].Close != 1.1 {
		t.Fatalf("order mismatch: %+v", got)
	}

	all := FilterPriceCandles(candles, LookbackAll, now)
	if len(all) != 3 {
		t.Fatalf("all lookback must keep everything, got %d", len(all))
	}
}
