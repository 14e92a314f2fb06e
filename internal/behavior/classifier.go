// Package behavior scores a wallet along several independent dimensions
// and derives human-readable tags from the same thresholds.
package behavior

import (
	"strings"
	"time"

	"walletScope/internal/model"
)

// Inputs carries the aggregates the classifier scores on. All fields are
// plain counts or values so callers can assemble them from any source.
type Inputs struct {
	SwapCount              int
	LendingTxCount         int
	RouterInteractionCount int
	RoutersUsed            []string
	BalanceSeriesLength    int
	UniqueTokenCount       int
	CurrentBalance         float64
	HasTransfers           bool
	MostRecentTransferAge  time.Duration
}

const day = 24 * time.Hour

// Classify maps the inputs onto fixed score ladders. Scores default to
// zero; tags accumulate in ladder order with "Casual User" as the fallback
// when nothing else applies.
func Classify(in Inputs) model.BehaviorReport {
	var scores model.BehaviorScores
	var tags []string

	switch {
	case in.SwapCount > 20:
		scores.Trader = 100
		tags = append(tags, "Active Trader")
	case in.SwapCount > 10:
		scores.Trader = 70
		tags = append(tags, "Trader")
	case in.SwapCount > 5:
		scores.Trader = 40
	case in.SwapCount > 0:
		scores.Trader = 20
	}

	switch {
	case in.LendingTxCount > 10 || in.RouterInteractionCount > 5:
		scores.DeFi = 100
		tags = append(tags, "DeFi Power User")
	case in.LendingTxCount > 5 || in.RouterInteractionCount > 2:
		scores.DeFi = 70
		tags = append(tags, "Active DeFi User")
	case in.LendingTxCount > 0 || in.RouterInteractionCount > 0:
		scores.DeFi = 40
		tags = append(tags, "DeFi User")
	}

	switch {
	case in.BalanceSeriesLength > 50:
		scores.Holder = 80
		tags = append(tags, "Long-term User")
	case in.BalanceSeriesLength > 20:
		scores.Holder = 50
	}

	if in.CurrentBalance > 0 {
		tags = append(tags, "Current Holder")
	}

	switch {
	case in.CurrentBalance > 50000:
		scores.Whale = 100
		tags = append(tags, "Whale")
	case in.CurrentBalance > 10000:
		scores.Whale = 70
		tags = append(tags, "Large Holder")
	case in.CurrentBalance > 1000:
		scores.Whale = 40
	}

	if in.HasTransfers {
		switch {
		case in.MostRecentTransferAge < 7*day:
			scores.Activity = 100
			tags = append(tags, "Recently Active")
		case in.MostRecentTransferAge < 30*day:
			scores.Activity = 70
		case in.MostRecentTransferAge < 90*day:
			scores.Activity = 40
		default:
			tags = append(tags, "Inactive")
		}
	}

	switch {
	case in.UniqueTokenCount > 5:
		scores.Diversity = 100
		tags = append(tags, "Multi-Token User")
	case in.UniqueTokenCount > 3:
		scores.Diversity = 70
	case in.UniqueTokenCount > 1:
		scores.Diversity = 40
	}

	for _, r := range in.RoutersUsed {
		if strings.Contains(strings.ToLower(r), "squid") {
			tags = append(tags, "Cross-Chain User")
			break
		}
	}

	if len(tags) == 0 {
		tags = append(tags, "Casual User")
	}

	return model.BehaviorReport{Scores: scores, Tags: tags}
}
