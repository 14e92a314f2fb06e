package candle

import (
	"testing"
	"time"
)

func TestParseResolution(t *testing.T) {
	res, err := ParseResolution("240")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Minutes != 240 {
		t.Fatalf("minutes mismatch: %d", res.Minutes)
	}

	if _, err := ParseResolution("7"); err == nil {
		t.Fatalf("expected error for unknown code")
	}
}

func TestAlignWeeklyToMonday(t *testing.T) {
	// 2025-03-06 is a Thursday.
	ts := time.Date(2025, 3, 6, 15, 42, 7, 0, time.UTC)
	got := ResW1.Align(ts)

	want := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("weekly align mismatch: %v != %v", got, want)
	}
	if got.Weekday() != time.Monday {
		t.Fatalf("weekly bucket must start Monday, got %v", got.Weekday())
	}
}

func TestAlignWeeklyOnMonday(t *testing.T) {
	ts := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	want := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if got := ResW1.Align(ts); !got.Equal(want) {
		t.Fatalf("monday align mismatch: %v != %v", got, want)
	}
}

func TestAlignDaily(t *testing.T) {
	ts := time.Date(2025, 3, 6, 23, 59, 59, 0, time.UTC)
	want := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)
	if got := ResD1.Align(ts); !got.Equal(want) {
		t.Fatalf("daily align mismatch: %v != %v", got, want)
	}
}

func TestAlignFourHour(t *testing.T) {
	ts := time.Date(2025, 3, 6, 15, 30, 0, 0, time.UTC)
	want := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)
	if got := ResH4.Align(ts); !got.Equal(want) {
		t.Fatalf("4h align mismatch: %v != %v", got, want)
	}
}

func TestAlignFifteenMinute(t *testing.T) {
	ts := time.Date(2025, 3, 6, 15, 44, 59, 0, time.UTC)
	want := time.Date(2025, 3, 6, 15, 30, 0, 0, time.UTC)
	if got := ResM15.Align(ts); !got.Equal(want) {
		t.Fatalf("15m align mismatch: %v != %v", got, want)
	}
}

func TestBucketsInclusive(t *testing.T) {
	first := time.Date(2025, 3, 6, 9, 10, 0, 0, time.UTC)
	last := time.Date(2025, 3, 6, 11, 5, 0, 0, time.UTC)

	buckets := ResH1.Buckets(first, last)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	if buckets[0].Hour() != 9 || buckets[2].Hour() != 11 {
		t.Fatalf("bucket range mismatch: %v", buckets)
	}
}

func TestParseLookback(t *testing.T) {
	lb, err := ParseLookback("1w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lb.Minutes != 10080 {
		t.Fatalf("minutes mismatch: %d", lb.Minutes)
	}

	if _, err := ParseLookback("5y"); err == nil {
		t.Fatalf("expected error for unknown label")
	}
}

func TestLookbackCutoff(t *testing.T) {
	now := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)

	cutoff, ok := LookbackD1.Cutoff(now)
	if !ok || !cutoff.Equal(now.Add(-24*time.Hour)) {
		t.Fatalf("cutoff mismatch: %v %v", cutoff, ok)
	}

	if _, ok := LookbackAll.Cutoff(now); ok {
		t.Fatalf("all lookback must be unbounded")
	}
}
