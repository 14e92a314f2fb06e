package candle

import (
	"strings"
	"time"

	"walletScope/internal/model"
)

// Operation types recognized from transaction method names.
const (
	OpOpenTrove       = "open_trove"
	OpAdjustTrove     = "adjust_trove"
	OpCloseTrove      = "close_trove"
	OpClaimCollateral = "claim_collateral"
	OpProvideSP       = "provide_sp"
	OpWithdrawSP      = "withdraw_sp"
	OpSwap            = "swap"
	OpBridge          = "bridge"
	OpApprove         = "approve"
	OpTransfer        = "transfer"
	OpMint            = "mint"
	OpRedeem          = "redeem"
	OpLiquidate       = "liquidate"
	OpUnknown         = "unknown"
)

type methodRule struct {
	substr    string
	operation string
	label     string
	color     string
}

// Rules are checked in order; the first substring match wins.
var methodRules = []methodRule{
	{"opentrove", OpOpenTrove, "Open", "#22c55e"},
	{"adjusttrove", OpAdjustTrove, "Adjust", "#3b82f6"},
	{"closetrove", OpCloseTrove, "Close", "#ef4444"},
	{"claimcollateral", OpClaimCollateral, "Claim", "#f59e0b"},
	{"providetosp", OpProvideSP, "SP+", "#22c55e"},
	{"withdrawfromsp", OpWithdrawSP, "SP-", "#ef4444"},
	{"snwap", OpSwap, "Swap", "#8b5cf6"},
	{"swap", OpSwap, "Swap", "#8b5cf6"},
	{"bridgecall", OpBridge, "Bridge", "#06b6d4"},
	{"callbridgecall", OpBridge, "Bridge", "#06b6d4"},
	{"fundandrunmulticall", OpBridge, "Bridge", "#06b6d4"},
	{"approve", OpApprove, "Approve", "#6b7280"},
	{"transfer", OpTransfer, "Transfer", "#6b7280"},
	{"mint", OpMint, "Mint", "#22c55e"},
	{"redeem", OpRedeem, "Redeem", "#ef4444"},
	{"liquidate", OpLiquidate, "Liquidate", "#dc2626"},
}

// ClassifyOperation maps a raw method name to an operation type, a short
// chart label and a marker color. Matching is case-insensitive and ignores
// underscores, so "openTrove", "open_trove" and "OpenTrove" all resolve the
// same way.
func ClassifyOperation(method string) (operation, label, color string) {
	m := strings.ReplaceAll(strings.ToLower(method), "_", "")
	for _, r := range methodRules {
		if strings.Contains(m, r.substr) {
			return r.operation, r.label, r.color
		}
	}
	return OpUnknown, "?", "#6b7280"
}

// BuildMarkers converts transactions inside the lookback window into chart
// overlay markers, in input order. Transactions with a zero timestamp are
// skipped.
func BuildMarkers(txs []model.RawTransaction, lb Lookback, now time.Time) []model.OperationMarker {
	cutoff, bounded := lb.Cutoff(now)

	markers := make([]model.OperationMarker, 0, len(txs))
	for _, tx := range txs {
		if tx.Timestamp.IsZero() {
			continue
		}
		if bounded && tx.Timestamp.Before(cutoff) {
			continue
		}
		method := tx.Method
		if method == "" {
			method = OpUnknown
		}
		op, label, color := ClassifyOperation(method)
		markers = append(markers, model.OperationMarker{
			Time:      tx.Timestamp.Unix(),
			Operation: op,
			Amount:    tx.Value,
			TxHash:    tx.Hash,
			Label:     label,
			Color:     color,
		})
	}
	return markers
}

// MarkerBreakdown counts markers per operation type.
func MarkerBreakdown(markers []model.OperationMarker) map[string]int {
	counts := make(map[string]int, len(markers))
	for _, m := range markers {
		counts[m.Operation]++
	}
	return counts
}
