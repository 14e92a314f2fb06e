package model

import "time"

// RawTransaction is a top-level transaction initiated by or targeting the
// subject address, as reported by the explorer.
type RawTransaction struct {
	Timestamp    time.Time `json:"timestamp"`
	Hash         string    `json:"hash"`
	To           string    `json:"to"`
	Method       string    `json:"method"`
	ContractName string    `json:"contract_name"`
	Value        float64   `json:"value"`
}
