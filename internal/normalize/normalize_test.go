package normalize

import (
	"testing"
	"time"

	"walletScope/internal/model"
	"walletScope/internal/registry"
)

const (
	subject = "0x1111111111111111111111111111111111111111"
	other   = "0x2222222222222222222222222222222222222222"
	pool    = "0x4e07447bd38e60b94176764133788be1a0736b30"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	reg, err := registry.New(map[string]string{"usdfc_wfil": pool}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return New(subject, reg)
}

func TestNormalizeDirections(t *testing.T) {
	n := newTestNormalizer(t)
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	in, ok := n.Normalize(model.RawTransfer{Timestamp: ts, From: other, To: subject, Amount: 5, TxHash: "0xa"})
	if !ok || in.Direction != model.DirectionIn {
		t.Fatalf("expected in direction, got %+v ok=%v", in, ok)
	}

	out, ok := n.Normalize(model.RawTransfer{Timestamp: ts, From: "0x1111111111111111111111111111111111111111", To: other, Amount: 5, TxHash: "0xb"})
	if !ok || out.Direction != model.DirectionOut {
		t.Fatalf("expected out direction, got %+v ok=%v", out, ok)
	}

	internal, ok := n.Normalize(model.RawTransfer{Timestamp: ts, From: other, To: other, Amount: 5, TxHash: "0xc"})
	if !ok || internal.Direction != model.DirectionInternal {
		t.Fatalf("expected internal direction, got %+v ok=%v", internal, ok)
	}
}

func TestNormalizeAbsoluteAmount(t *testing.T) {
	n := newTestNormalizer(t)
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	event, ok := n.Normalize(model.RawTransfer{Timestamp: ts, From: other, To: subject, Amount: -7.5, TxHash: "0xa"})
	if !ok || event.Amount != 7.5 {
		t.Fatalf("amount not normalized: %+v", event)
	}
}

func TestNormalizeTagsPoolCounterparty(t *testing.T) {
	n := newTestNormalizer(t)
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	event, ok := n.Normalize(model.RawTransfer{Timestamp: ts, From: pool, To: subject, Amount: 1, TxHash: "0xa"})
	if !ok || !event.Counterparty.IsPool() {
		t.Fatalf("expected pool counterparty, got %+v", event)
	}
}

func TestNormalizeBatchDropsMalformed(t *testing.T) {
	n := newTestNormalizer(t)
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	raws := []model.RawTransfer{
		{Timestamp: ts, From: other, To: subject, Amount: 1, TxHash: "0xa"},
		{From: other, To: subject, Amount: 1, TxHash: "0xb"},
		{Timestamp: ts, From: other, To: subject, Amount: 1},
	}

	events, dropped := n.NormalizeBatch(raws)
	if len(events) != 1 || dropped != 2 {
		t.Fatalf("batch mismatch: events=%d dropped=%d", len(events), dropped)
	}
}
