package swaps

import (
	"sort"
	"strings"

	"walletScope/internal/model"
)

// Config identifies the reference token used for buy/sell determination and
// the base asset substituted for the unknown counter-leg of pool-fallback
// swaps.
type Config struct {
	ReferenceSymbol  string
	ReferenceAddress string
	BaseAssetSymbol  string
}

// Classifier derives de-duplicated SwapEvents from normalized transfers and
// independently detected router interactions.
type Classifier struct {
	cfg Config
}

func NewClassifier(cfg Config) *Classifier {
	if cfg.BaseAssetSymbol == "" {
		cfg.BaseAssetSymbol = "WFIL"
	}
	cfg.ReferenceAddress = strings.ToLower(cfg.ReferenceAddress)
	return &Classifier{cfg: cfg}
}

// Classify applies three ordered heuristics, each skipping transactions
// already resolved by a prior step:
//  1. multi-token netting over transactions with both in and out legs,
//  2. router_interaction placeholders for unmatched router calls,
//  3. single-leg pool-fallback synthesis.
//
// The result contains at most one SwapEvent per tx hash.
func (c *Classifier) Classify(events []model.TransferEvent, routerCalls []model.RouterInteraction) []model.SwapEvent {
	resolved := make(map[string]struct{})
	swaps := make([]model.SwapEvent, 0)

	swaps = c.netMultiToken(events, resolved, swaps)
	swaps = c.orphanRouterCalls(routerCalls, resolved, swaps)
	swaps = c.poolFallback(events, resolved, swaps)

	return swaps
}

// netMultiToken resolves transactions carrying at least one inbound and one
// outbound leg. The primary leg on each side is the one with the maximum
// amount, so incidental fee/dust transfers are not mistaken for the
// principal leg.
func (c *Classifier) netMultiToken(events []model.TransferEvent, resolved map[string]struct{}, swaps []model.SwapEvent) []model.SwapEvent {
	groups := make(map[string][]model.TransferEvent)
	order := make([]string, 0)
	for _, e := range events {
		if e.TxHash == "" {
			continue
		}
		if _, seen := groups[e.TxHash]; !seen {
			order = append(order, e.TxHash)
		}
		groups[e.TxHash] = append(groups[e.TxHash], e)
	}

	for _, txHash := range order {
		group := groups[txHash]
		if len(group) < 2 {
			continue
		}

		var ins, outs []model.TransferEvent
		for _, e := range group {
			switch e.Direction {
			case model.DirectionIn:
				ins = append(ins, e)
			case model.DirectionOut:
				outs = append(outs, e)
			}
		}
		if len(ins) == 0 || len(outs) == 0 {
			continue
		}

		primaryIn := maxByAmount(ins)
		primaryOut := maxByAmount(outs)

		swapType := model.SwapOther
		if c.anyReference(outs) {
			swapType = model.SwapSell
		} else if c.anyReference(ins) {
			swapType = model.SwapBuy
		}

		router := ""
		for _, e := range group {
			if e.Counterparty.IsRouter() {
				router = e.Counterparty.Name()
				break
			}
		}

		swaps = append(swaps, model.SwapEvent{
			Timestamp: primaryOut.Timestamp,
			TxHash:    txHash,
			SwapType:  swapType,
			TokenIn:   primaryIn.TokenSymbol,
			TokenOut:  primaryOut.TokenSymbol,
			AmountIn:  primaryIn.Amount,
			AmountOut: primaryOut.Amount,
			Router:    router,
		})
		resolved[txHash] = struct{}{}
	}

	return swaps
}

// orphanRouterCalls emits placeholders for router calls whose legs could not
// be reconstructed from transfer logs, so swap-capable activity is never
// silently lost.
func (c *Classifier) orphanRouterCalls(routerCalls []model.RouterInteraction, resolved map[string]struct{}, swaps []model.SwapEvent) []model.SwapEvent {
	for _, call := range routerCalls {
		if call.TxHash == "" {
			continue
		}
		if _, ok := resolved[call.TxHash]; ok {
			continue
		}
		swaps = append(swaps, model.SwapEvent{
			Timestamp: call.Timestamp,
			TxHash:    call.TxHash,
			SwapType:  model.SwapRouterInteraction,
			TokenIn:   "UNKNOWN",
			TokenOut:  "UNKNOWN",
			Router:    call.Router,
		})
		resolved[call.TxHash] = struct{}{}
	}
	return swaps
}

// poolFallback synthesizes single-leg swaps from transfers touching a known
// pool. The counter-leg asset cannot be recovered from a single transfer, so
// the configured base asset stands in for it.
func (c *Classifier) poolFallback(events []model.TransferEvent, resolved map[string]struct{}, swaps []model.SwapEvent) []model.SwapEvent {
	for _, e := range events {
		if e.TxHash == "" || !e.Counterparty.IsPool() {
			continue
		}
		if _, ok := resolved[e.TxHash]; ok {
			continue
		}

		swap := model.SwapEvent{
			Timestamp: e.Timestamp,
			TxHash:    e.TxHash,
			Pool:      e.Counterparty.Name(),
		}
		if e.Direction == model.DirectionIn {
			swap.SwapType = model.SwapBuy
			swap.TokenIn = e.TokenSymbol
			swap.TokenOut = c.cfg.BaseAssetSymbol
			swap.AmountIn = e.Amount
		} else {
			swap.SwapType = model.SwapSell
			swap.TokenIn = c.cfg.BaseAssetSymbol
			swap.TokenOut = e.TokenSymbol
			swap.AmountOut = e.Amount
		}

		swaps = append(swaps, swap)
		resolved[e.TxHash] = struct{}{}
	}
	return swaps
}

func (c *Classifier) isReference(e model.TransferEvent) bool {
	if c.cfg.ReferenceAddress != "" && e.TokenAddress != "" {
		return strings.ToLower(e.TokenAddress) == c.cfg.ReferenceAddress
	}
	return e.TokenSymbol == c.cfg.ReferenceSymbol
}

func (c *Classifier) anyReference(events []model.TransferEvent) bool {
	for _, e := range events {
		if c.isReference(e) {
			return true
		}
	}
	return false
}

func maxByAmount(events []model.TransferEvent) model.TransferEvent {
	best := events[0]
	for _, e := range events[1:] {
		if e.Amount > best.Amount {
			best = e
		}
	}
	return best
}

// Stats summarizes a classified swap set relative to the reference token.
func (c *Classifier) Stats(swaps []model.SwapEvent) model.SwapStats {
	stats := model.SwapStats{TotalSwaps: len(swaps)}
	routers := make(map[string]struct{})

	for _, s := range swaps {
		switch s.SwapType {
		case model.SwapBuy:
			stats.BuyCount++
			if s.TokenIn == c.cfg.ReferenceSymbol {
				stats.BuyVolume += s.AmountIn
			}
		case model.SwapSell:
			stats.SellCount++
			if s.TokenOut == c.cfg.ReferenceSymbol {
				stats.SellVolume += s.AmountOut
			}
		case model.SwapRouterInteraction:
			stats.RouterInteractions++
		}
		if s.Router != "" {
			routers[s.Router] = struct{}{}
		}
	}

	stats.RoutersUsed = make([]string, 0, len(routers))
	for name := range routers {
		stats.RoutersUsed = append(stats.RoutersUsed, name)
	}
	sort.Strings(stats.RoutersUsed)
	return stats
}
