package model

import "time"

// Direction is the flow of a transfer relative to the subject address.
type Direction string

const (
	DirectionIn       Direction = "in"
	DirectionOut      Direction = "out"
	DirectionInternal Direction = "internal"
)

// CounterpartyTag marks a transfer endpoint matched against the registry.
// Values are "none", "pool:<name>" or "router:<name>".
type CounterpartyTag string

const TagNone CounterpartyTag = "none"

// IsPool reports whether the tag names a known pool.
func (t CounterpartyTag) IsPool() bool {
	return len(t) > 5 && t[:5] == "pool:"
}

// IsRouter reports whether the tag names a known router.
func (t CounterpartyTag) IsRouter() bool {
	return len(t) > 7 && t[:7] == "router:"
}

// Name returns the pool/router name without the prefix, or "" for TagNone.
func (t CounterpartyTag) Name() string {
	if t.IsPool() {
		return string(t[5:])
	}
	if t.IsRouter() {
		return string(t[7:])
	}
	return ""
}

// RawTransfer is a parsed transfer record as delivered by the data source,
// before normalization against a subject address.
type RawTransfer struct {
	Timestamp    time.Time `json:"timestamp"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Amount       float64   `json:"amount"`
	TokenSymbol  string    `json:"token_symbol"`
	TokenAddress string    `json:"token_address"`
	TxHash       string    `json:"tx_hash"`
	BlockNumber  uint64    `json:"block_number"`
}

// TransferEvent is the canonical transfer record scoped to one subject
// address. Immutable once constructed; direction carries the sign, Amount
// is always non-negative.
type TransferEvent struct {
	Timestamp    time.Time       `json:"timestamp"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Amount       float64         `json:"amount"`
	TokenSymbol  string          `json:"token_symbol"`
	TokenAddress string          `json:"token_address"`
	TxHash       string          `json:"tx_hash"`
	BlockNumber  uint64          `json:"block_number"`
	Direction    Direction       `json:"direction"`
	Counterparty CounterpartyTag `json:"counterparty"`
}

// RouterInteraction records a call to a known swap/bridge router contract,
// detected from plain transaction history independently of transfer logs.
type RouterInteraction struct {
	TxHash    string    `json:"tx_hash"`
	Router    string    `json:"router"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
}
