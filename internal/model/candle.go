package model

// BalanceCandle is one bucket of the reconstructed balance series. Time is
// the bucket start in whole unix seconds; OHLC values are never negative.
type BalanceCandle struct {
	Time      int64   `json:"time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	TxCount   int     `json:"tx_count"`
	NetChange float64 `json:"net_change"`
}

// VolumeCandle is one bucket of lending/borrowing volume.
type VolumeCandle struct {
	Time         int64   `json:"time"`
	LendVolume   float64 `json:"lend_volume"`
	BorrowVolume float64 `json:"borrow_volume"`
	LendCount    int     `json:"lend_count"`
	BorrowCount  int     `json:"borrow_count"`
	NetFlow      float64 `json:"net_flow"`
	TotalVolume  float64 `json:"total_volume"`
}

// PriceCandle is a standard OHLCV candle passed through from an external
// pre-bucketed price source.
type PriceCandle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// OperationMarker annotates one transaction for chart overlay.
type OperationMarker struct {
	Time      int64   `json:"time"`
	Operation string  `json:"operation"`
	Amount    float64 `json:"amount"`
	TxHash    string  `json:"tx_hash"`
	Label     string  `json:"label"`
	Color     string  `json:"color"`
}
