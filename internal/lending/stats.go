// Package lending derives fixed-rate lending statistics from subgraph
// transaction records.
package lending

import (
	"time"

	"walletScope/internal/model"
)

const secondsPerDay = 86400

// ComputeAPR derives the implied annualized rate from a zero-coupon
// execution price and the time left to maturity. Prices at or below zero,
// or maturities not strictly after creation, yield zero.
func ComputeAPR(executionPrice float64, created, maturity time.Time) (apr, daysToMaturity float64) {
	if !maturity.After(created) {
		return 0, 0
	}
	daysToMaturity = maturity.Sub(created).Seconds() / secondsPerDay
	if executionPrice <= 0 || daysToMaturity <= 0 {
		return 0, daysToMaturity
	}
	apr = (1 - executionPrice) * 365 / daysToMaturity * 100
	return apr, daysToMaturity
}

// BuildStats aggregates lending events into per-side counts, volumes and
// mean APRs. Volumes are future values, so NetPosition is the face amount
// lent minus the face amount borrowed.
func BuildStats(events []model.LendingEvent) model.LendingStats {
	stats := model.LendingStats{HasActivity: len(events) > 0}

	var lendAPRSum, borrowAPRSum float64
	for _, e := range events {
		switch e.Side {
		case model.SideLend:
			stats.LendCount++
			stats.LendVolume += e.Amount
			lendAPRSum += e.APR
		case model.SideBorrow:
			stats.BorrowCount++
			stats.BorrowVolume += e.Amount
			borrowAPRSum += e.APR
		}
	}

	if stats.LendCount > 0 {
		stats.AvgLendAPR = lendAPRSum / float64(stats.LendCount)
	}
	if stats.BorrowCount > 0 {
		stats.AvgBorrowAPR = borrowAPRSum / float64(stats.BorrowCount)
	}
	stats.NetPosition = stats.LendVolume - stats.BorrowVolume
	return stats
}
