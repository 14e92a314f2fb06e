package model

import "time"

// LendingSide distinguishes lend from borrow legs.
type LendingSide string

const (
	SideLend   LendingSide = "lend"
	SideBorrow LendingSide = "borrow"
)

// LendingEvent is one lending-protocol transaction for the subject address.
type LendingEvent struct {
	Timestamp      time.Time   `json:"timestamp"`
	Side           LendingSide `json:"side"`
	Amount         float64     `json:"future_value"`
	ExecutionPrice float64     `json:"execution_price"`
	APR            float64     `json:"apr"`
	Maturity       time.Time   `json:"maturity"`
	DaysToMaturity float64     `json:"days_to_maturity"`
}

// LendingStats aggregates lending activity.
type LendingStats struct {
	LendCount     int     `json:"lend_tx_count"`
	BorrowCount   int     `json:"borrow_tx_count"`
	LendVolume    float64 `json:"total_lend_volume"`
	BorrowVolume  float64 `json:"total_borrow_volume"`
	AvgLendAPR    float64 `json:"avg_lend_apr"`
	AvgBorrowAPR  float64 `json:"avg_borrow_apr"`
	NetPosition   float64 `json:"net_position"`
	HasActivity   bool    `json:"has_activity"`
	TotalTxCount  int     `json:"total_tx_count"`
	TotalOrderNum int     `json:"total_order_count"`
}
