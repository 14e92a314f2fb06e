package model

import "time"

// BalancePoint is one reconstructed balance observation. The point reported
// for "now" carries EventLabel "current".
type BalancePoint struct {
	Timestamp    time.Time `json:"timestamp"`
	Balance      float64   `json:"balance"`
	EventLabel   string    `json:"event"`
	DataComplete bool      `json:"data_complete"`
}

// HoldingInterval is a maximal span during which the reconstructed balance
// stayed strictly positive. End is nil only for the interval still open at
// evaluation time.
type HoldingInterval struct {
	Start        time.Time  `json:"start"`
	End          *time.Time `json:"end,omitempty"`
	DurationDays float64    `json:"days"`
}
