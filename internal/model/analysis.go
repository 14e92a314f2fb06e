package model

import "time"

// VolumeWindow reports reference-token in/out volume over a trailing window.
type VolumeWindow struct {
	InVolume    float64 `json:"in_volume"`
	OutVolume   float64 `json:"out_volume"`
	TotalVolume float64 `json:"total_volume"`
	TxCount     int     `json:"tx_count"`
	Hours       int     `json:"hours"`
}

// TransferSummary counts transfers by token family.
type TransferSummary struct {
	TotalTransfers     int      `json:"total_transfers"`
	ReferenceTransfers int      `json:"reference_transfers"`
	OtherTransfers     int      `json:"other_token_transfers"`
	TokensUsed         []string `json:"tokens_used"`
}

// HoldingAnalysis reports holding intervals and totals in days.
type HoldingAnalysis struct {
	TotalHoldingDays   float64           `json:"total_holding_days"`
	CurrentHoldingDays float64           `json:"current_holding_days"`
	Intervals          []HoldingInterval `json:"holding_periods"`
}

// BalanceHistory is the reconstructed balance series with its trust flag.
type BalanceHistory struct {
	Points       []BalancePoint `json:"history"`
	DataComplete bool           `json:"data_complete"`
	Pages        int            `json:"pages"`
	MinBalance   float64        `json:"min_balance"`
	MaxBalance   float64        `json:"max_balance"`
}

// AddressAnalysis is the full per-address report assembled by one pass of
// the analysis pipeline.
type AddressAnalysis struct {
	Address         string              `json:"address"`
	GeneratedAt     time.Time           `json:"generated_at"`
	FetchDuration   time.Duration       `json:"fetch_duration"`
	CurrentBalance  float64             `json:"current_balance"`
	IsHolder        bool                `json:"is_holder"`
	Balance         BalanceHistory      `json:"balance_history"`
	Transfers       TransferSummary     `json:"transfer_summary"`
	Swaps           []SwapEvent         `json:"swaps"`
	SwapStats       SwapStats           `json:"swap_stats"`
	Lending         LendingStats        `json:"lending"`
	Volume24h       VolumeWindow        `json:"volume_24h"`
	Volume7d        VolumeWindow        `json:"volume_7d"`
	Volume30d       VolumeWindow        `json:"volume_30d"`
	Holding         HoldingAnalysis     `json:"holding_analysis"`
	Behavior        BehaviorReport      `json:"behavior"`
	InternalTxCount int                 `json:"internal_tx_count"`
	RouterCalls     []RouterInteraction `json:"router_interactions"`
}
