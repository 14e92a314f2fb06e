package normalize

import (
	"strings"

	"walletScope/internal/model"
	"walletScope/internal/registry"
)

// Normalizer converts raw transfer records into canonical TransferEvents
// scoped to one subject address.
type Normalizer struct {
	subject string
	reg     *registry.Registry
}

func New(subject string, reg *registry.Registry) *Normalizer {
	return &Normalizer{
		subject: strings.ToLower(strings.TrimSpace(subject)),
		reg:     reg,
	}
}

// Normalize converts one raw record. It returns false when the record is
// missing a required field (timestamp or tx hash); such records are dropped
// softly, never failing the batch.
func (n *Normalizer) Normalize(raw model.RawTransfer) (model.TransferEvent, bool) {
	if raw.Timestamp.IsZero() || raw.TxHash == "" {
		return model.TransferEvent{}, false
	}

	amount := raw.Amount
	if amount < 0 {
		amount = -amount
	}

	return model.TransferEvent{
		Timestamp:    raw.Timestamp,
		From:         raw.From,
		To:           raw.To,
		Amount:       amount,
		TokenSymbol:  raw.TokenSymbol,
		TokenAddress: raw.TokenAddress,
		TxHash:       raw.TxHash,
		BlockNumber:  raw.BlockNumber,
		Direction:    n.direction(raw.From, raw.To),
		Counterparty: n.reg.Tag(raw.From, raw.To),
	}, true
}

// NormalizeBatch converts a batch, dropping malformed records and reporting
// how many were dropped.
func (n *Normalizer) NormalizeBatch(raws []model.RawTransfer) ([]model.TransferEvent, int) {
	events := make([]model.TransferEvent, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		event, ok := n.Normalize(raw)
		if !ok {
			dropped++
			continue
		}
		events = append(events, event)
	}
	return events, dropped
}

func (n *Normalizer) direction(from, to string) model.Direction {
	if strings.ToLower(strings.TrimSpace(to)) == n.subject {
		return model.DirectionIn
	}
	if strings.ToLower(strings.TrimSpace(from)) == n.subject {
		return model.DirectionOut
	}
	return model.DirectionInternal
}
