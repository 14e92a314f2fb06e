package analysis

import (
	"strings"
	"time"

	"walletScope/internal/model"
)

// VolumeByTimeRange sums reference-token transfer volume over a trailing
// window of whole hours ending at now. Transfers in other tokens and
// internal-direction transfers are excluded; the tx count reports how many
// reference-token transfers fell inside the window.
func VolumeByTimeRange(events []model.TransferEvent, referenceToken string, hours int, now time.Time) model.VolumeWindow {
	cutoff := now.Add(-time.Duration(hours) * time.Hour)
	ref := strings.ToLower(referenceToken)

	w := model.VolumeWindow{Hours: hours}
	for _, e := range events {
		if !e.Timestamp.After(cutoff) {
			continue
		}
		if strings.ToLower(e.TokenAddress) != ref {
			continue
		}
		switch e.Direction {
		case model.DirectionIn:
			w.InVolume += e.Amount
		case model.DirectionOut:
			w.OutVolume += e.Amount
		default:
			continue
		}
		w.TxCount++
	}
	w.TotalVolume = w.InVolume + w.OutVolume
	return w
}
