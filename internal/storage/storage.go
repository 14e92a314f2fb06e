package storage

import (
	"context"

	"walletScope/internal/model"
)

// Storage defines a sink for completed address analyses.
type Storage interface {
	PutAnalysis(ctx context.Context, analysis model.AddressAnalysis) error
}
