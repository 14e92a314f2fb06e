package model

import "time"

// SwapType classifies a swap relative to the reference token.
type SwapType string

const (
	SwapBuy               SwapType = "buy"
	SwapSell              SwapType = "sell"
	SwapOther             SwapType = "other"
	SwapRouterInteraction SwapType = "router_interaction"
)

// SwapEvent is one classified swap. The classifier emits at most one
// SwapEvent per tx hash.
type SwapEvent struct {
	Timestamp time.Time `json:"timestamp"`
	TxHash    string    `json:"tx_hash"`
	SwapType  SwapType  `json:"swap_type"`
	TokenIn   string    `json:"token_in"`
	TokenOut  string    `json:"token_out"`
	AmountIn  float64   `json:"amount_in"`
	AmountOut float64   `json:"amount_out"`
	Router    string    `json:"router,omitempty"`
	Pool      string    `json:"pool,omitempty"`
}

// SwapStats summarizes a classified swap set.
type SwapStats struct {
	TotalSwaps         int      `json:"total_swaps"`
	BuyCount           int      `json:"buy_count"`
	SellCount          int      `json:"sell_count"`
	RouterInteractions int      `json:"router_interactions"`
	BuyVolume          float64  `json:"buy_volume"`
	SellVolume         float64  `json:"sell_volume"`
	RoutersUsed        []string `json:"routers_used"`
}
