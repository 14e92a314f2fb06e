package lending

import (
	"math"
	"testing"
	"time"

	"walletScope/internal/model"
)

func TestComputeAPR(t *testing.T) {
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	maturity := created.AddDate(0, 0, 73)

	apr, days := ComputeAPR(0.98, created, maturity)
	if math.Abs(days-73) > 1e-9 {
		t.Fatalf("days to maturity mismatch: %v", days)
	}
	// (1 - 0.98) * 365 / 73 * 100 = 10.
	if math.Abs(apr-10) > 1e-9 {
		t.Fatalf("apr mismatch: %v", apr)
	}
}

func TestComputeAPRDegenerate(t *testing.T) {
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	if apr, _ := ComputeAPR(0.98, created, created); apr != 0 {
		t.Fatalf("maturity at creation must yield zero apr, got %v", apr)
	}
	if apr, _ := ComputeAPR(0, created, created.AddDate(0, 1, 0)); apr != 0 {
		t.Fatalf("zero price must yield zero apr, got %v", apr)
	}
}

func TestBuildStats(t *testing.T) {
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []model.LendingEvent{
		{Timestamp: ts, Side: model.SideLend, Amount: 100, APR: 8},
		{Timestamp: ts, Side: model.SideLend, Amount: 200, APR: 12},
		{Timestamp: ts, Side: model.SideBorrow, Amount: 50, APR: 6},
	}

	stats := BuildStats(events)
	if !stats.HasActivity {
		t.Fatalf("expected activity")
	}
	if stats.LendCount != 2 || stats.BorrowCount != 1 {
		t.Fatalf("counts mismatch: %+v", stats)
	}
	if stats.LendVolume != 300 || stats.BorrowVolume != 50 {
		t.Fatalf("volumes mismatch: %+v", stats)
	}
	if stats.AvgLendAPR != 10 || stats.AvgBorrowAPR != 6 {
		t.Fatalf("apr averages mismatch: %+v", stats)
	}
	if stats.NetPosition != 250 {
		t.Fatalf("net position mismatch: %v", stats.NetPosition)
	}
}

func TestBuildStatsEmpty(t *testing.T) {
	stats := BuildStats(nil)
	if stats.HasActivity {
		t.Fatalf("expected no activity")
	}
	if stats.AvgLendAPR != 0 || stats.AvgBorrowAPR != 0 || stats.NetPosition != 0 {
		t.Fatalf("empty stats not zero: %+v", stats)
	}
}
