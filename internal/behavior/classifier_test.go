package behavior

import (
	"testing"
	"time"
)

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func TestTraderLadderBoundaries(t *testing.T) {
	active := Classify(Inputs{SwapCount: 21})
	if active.Scores.Trader != 100 || !hasTag(active.Tags, "Active Trader") {
		t.Fatalf("21 swaps: %+v", active)
	}

	trader := Classify(Inputs{SwapCount: 20})
	if trader.Scores.Trader != 70 || !hasTag(trader.Tags, "Trader") {
		t.Fatalf("20 swaps: %+v", trader)
	}

	mid := Classify(Inputs{SwapCount: 6})
	if mid.Scores.Trader != 40 {
		t.Fatalf("6 swaps: %+v", mid)
	}

	low := Classify(Inputs{SwapCount: 1})
	if low.Scores.Trader != 20 {
		t.Fatalf("1 swap: %+v", low)
	}
}

func TestDeFiLadder(t *testing.T) {
	power := Classify(Inputs{LendingTxCount: 11})
	if power.Scores.DeFi != 100 || !hasTag(power.Tags, "DeFi Power User") {
		t.Fatalf("11 lending txs: %+v", power)
	}

	viaRouters := Classify(Inputs{RouterInteractionCount: 6})
	if viaRouters.Scores.DeFi != 100 {
		t.Fatalf("6 router calls: %+v", viaRouters)
	}

	casualDeFi := Classify(Inputs{LendingTxCount: 1})
	if casualDeFi.Scores.DeFi != 40 || !hasTag(casualDeFi.Tags, "DeFi User") {
		t.Fatalf("1 lending tx: %+v", casualDeFi)
	}
}

func TestWhaleLadder(t *testing.T) {
	whale := Classify(Inputs{CurrentBalance: 50001})
	if whale.Scores.Whale != 100 || !hasTag(whale.Tags, "Whale") {
		t.Fatalf("whale: %+v", whale)
	}
	if !hasTag(whale.Tags, "Current Holder") {
		t.Fatalf("positive balance must tag holder: %+v", whale)
	}

	large := Classify(Inputs{CurrentBalance: 10001})
	if large.Scores.Whale != 70 || !hasTag(large.Tags, "Large Holder") {
		t.Fatalf("large holder: %+v", large)
	}
}

func TestActivityLadder(t *testing.T) {
	recent := Classify(Inputs{HasTransfers: true, MostRecentTransferAge: 3 * 24 * time.Hour})
	if recent.Scores.Activity != 100 || !hasTag(recent.Tags, "Recently Active") {
		t.Fatalf("recent: %+v", recent)
	}

	stale := Classify(Inputs{HasTransfers: true, MostRecentTransferAge: 120 * 24 * time.Hour})
	if stale.Scores.Activity != 0 || !hasTag(stale.Tags, "Inactive") {
		t.Fatalf("stale: %+v", stale)
	}

	none := Classify(Inputs{})
	if none.Scores.Activity != 0 || hasTag(none.Tags, "Inactive") {
		t.Fatalf("no transfers must not be tagged inactive: %+v", none)
	}
}

func TestDiversityAndHolderLadders(t *testing.T) {
	multi := Classify(Inputs{UniqueTokenCount: 6})
	if multi.Scores.Diversity != 100 || !hasTag(multi.Tags, "Multi-Token User") {
		t.Fatalf("multi-token: %+v", multi)
	}

	longTerm := Classify(Inputs{BalanceSeriesLength: 51})
	if longTerm.Scores.Holder != 80 || !hasTag(longTerm.Tags, "Long-term User") {
		t.Fatalf("long-term: %+v", longTerm)
	}

	medium := Classify(Inputs{BalanceSeriesLength: 21})
	if medium.Scores.Holder != 50 {
		t.Fatalf("medium series: %+v", medium)
	}
}

func TestCrossChainTag(t *testing.T) {
	got := Classify(Inputs{RoutersUsed: []string{"Squid Router Proxy"}})
	if !hasTag(got.Tags, "Cross-Chain User") {
		t.Fatalf("squid router must tag cross-chain: %+v", got)
	}
}

func TestCasualUserFallback(t *testing.T) {
	got := Classify(Inputs{})
	if len(got.Tags) != 1 || got.Tags[0] != "Casual User" {
		t.Fatalf("fallback mismatch: %+v", got.Tags)
	}
}
