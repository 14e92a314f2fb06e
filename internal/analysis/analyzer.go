// Package analysis assembles the per-address report from already-fetched
// inputs. It is pure computation so that the pipeline can be exercised in
// tests without any network or database access.
package analysis

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"walletScope/internal/balance"
	"walletScope/internal/behavior"
	"walletScope/internal/lending"
	"walletScope/internal/model"
	"walletScope/internal/swaps"
)

// Inputs carries everything the analyzer needs to build one report.
// Transfers must already be normalized against the subject address;
// TransfersComplete is false when the source truncated the history.
type Inputs struct {
	Address           string
	Now               time.Time
	CurrentBalance    float64
	Transfers         []model.TransferEvent
	TransfersComplete bool
	Pages             int
	RouterCalls       []model.RouterInteraction
	InternalTxCount   int
	LendingEvents     []model.LendingEvent
	LendingTxCount    int
	LendingOrderCount int
	FetchDuration     time.Duration
}

// Analyzer computes AddressAnalysis reports for one reference token.
type Analyzer struct {
	referenceToken  string
	referenceSymbol string
	classifier      *swaps.Classifier
	reconstructor   *balance.Reconstructor
	log             *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger replaces the default no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

// New builds an Analyzer for the given reference token. baseAssetSymbol is
// the stand-in counter asset for single-leg pool swaps.
func New(referenceToken, referenceSymbol, baseAssetSymbol string, opts ...Option) *Analyzer {
	a := &Analyzer{
		referenceToken:  strings.ToLower(referenceToken),
		referenceSymbol: referenceSymbol,
		classifier: swaps.NewClassifier(swaps.Config{
			ReferenceSymbol:  referenceSymbol,
			ReferenceAddress: referenceToken,
			BaseAssetSymbol:  baseAssetSymbol,
		}),
		reconstructor: balance.NewReconstructor(referenceToken),
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze derives the full report for one address. It never fails: missing
// or truncated inputs degrade to incomplete flags on the relevant sections.
func (a *Analyzer) Analyze(in Inputs) model.AddressAnalysis {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	swapEvents := a.classifier.Classify(in.Transfers, in.RouterCalls)
	swapStats := a.classifier.Stats(swapEvents)

	recon := a.reconstructor.Reconstruct(now, in.CurrentBalance, in.Transfers, in.TransfersComplete)

	lendStats := lending.BuildStats(in.LendingEvents)
	lendStats.TotalTxCount = in.LendingTxCount
	lendStats.TotalOrderNum = in.LendingOrderCount

	report := behavior.Classify(behavior.Inputs{
		SwapCount:              len(swapEvents),
		LendingTxCount:         lendStats.LendCount + lendStats.BorrowCount,
		RouterInteractionCount: len(in.RouterCalls),
		RoutersUsed:            routersFrom(in.RouterCalls, swapStats.RoutersUsed),
		BalanceSeriesLength:    len(recon.Points),
		UniqueTokenCount:       len(tokensUsed(in.Transfers)),
		CurrentBalance:         in.CurrentBalance,
		HasTransfers:           len(in.Transfers) > 0,
		MostRecentTransferAge:  mostRecentAge(in.Transfers, now),
	})

	a.log.Info("analysis complete",
		zap.String("address", in.Address),
		zap.Int("transfers", len(in.Transfers)),
		zap.Int("swaps", len(swapEvents)),
		zap.Int("balance_points", len(recon.Points)),
		zap.Strings("tags", report.Tags),
	)

	return model.AddressAnalysis{
		Address:        strings.ToLower(in.Address),
		GeneratedAt:    now,
		FetchDuration:  in.FetchDuration,
		CurrentBalance: in.CurrentBalance,
		IsHolder:       in.CurrentBalance > 0,
		Balance: model.BalanceHistory{
			Points:       recon.Points,
			DataComplete: recon.Complete,
			Pages:        in.Pages,
			MinBalance:   minBalance(recon.Points),
			MaxBalance:   maxBalance(recon.Points),
		},
		Transfers: a.summarize(in.Transfers),
		Swaps:     swapEvents,
		SwapStats: swapStats,
		Lending:   lendStats,
		Volume24h: VolumeByTimeRange(in.Transfers, a.referenceToken, 24, now),
		Volume7d:  VolumeByTimeRange(in.Transfers, a.referenceToken, 168, now),
		Volume30d: VolumeByTimeRange(in.Transfers, a.referenceToken, 720, now),
		Holding: model.HoldingAnalysis{
			TotalHoldingDays:   recon.TotalHoldingDays,
			CurrentHoldingDays: recon.CurrentHoldingDays,
			Intervals:          recon.Intervals,
		},
		Behavior:        report,
		InternalTxCount: in.InternalTxCount,
		RouterCalls:     in.RouterCalls,
	}
}

func (a *Analyzer) summarize(events []model.TransferEvent) model.TransferSummary {
	summary := model.TransferSummary{TotalTransfers: len(events)}
	for _, e := range events {
		if strings.ToLower(e.TokenAddress) == a.referenceToken {
			summary.ReferenceTransfers++
		} else {
			summary.OtherTransfers++
		}
	}
	summary.TokensUsed = tokensUsed(events)
	return summary
}

func tokensUsed(events []model.TransferEvent) []string {
	seen := make(map[string]struct{})
	for _, e := range events {
		if e.TokenSymbol != "" {
			seen[e.TokenSymbol] = struct{}{}
		}
	}
	tokens := make([]string, 0, len(seen))
	for sym := range seen {
		tokens = append(tokens, sym)
	}
	sort.Strings(tokens)
	return tokens
}

func routersFrom(calls []model.RouterInteraction, fromSwaps []string) []string {
	seen := make(map[string]struct{}, len(fromSwaps))
	routers := make([]string, 0, len(fromSwaps))
	for _, name := range fromSwaps {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			routers = append(routers, name)
		}
	}
	for _, c := range calls {
		if c.Router == "" {
			continue
		}
		if _, ok := seen[c.Router]; !ok {
			seen[c.Router] = struct{}{}
			routers = append(routers, c.Router)
		}
	}
	sort.Strings(routers)
	return routers
}

func mostRecentAge(events []model.TransferEvent, now time.Time) time.Duration {
	var latest time.Time
	for _, e := range events {
		if e.Timestamp.After(latest) {
			latest = e.Timestamp
		}
	}
	if latest.IsZero() {
		return 0
	}
	return now.Sub(latest)
}

func minBalance(points []model.BalancePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	min := points[0].Balance
	for _, p := range points[1:] {
		if p.Balance < min {
			min = p.Balance
		}
	}
	return min
}

func maxBalance(points []model.BalancePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	max := points[0].Balance
	for _, p := range points[1:] {
		if p.Balance > max {
			max = p.Balance
		}
	}
	return max
}
