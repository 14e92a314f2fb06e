package balance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"walletScope/internal/model"
)

// negativeTolerance absorbs float rounding when the backward replay dips
// below zero. Anything past it signals a missing upstream event, not a
// protocol that allowed negative balances.
const negativeTolerance = 0.01

const secondsPerDay = 86400.0

// Result is a reconstructed balance series with its derived holding
// intervals. Complete is false when the input window was truncated or the
// replay detected a missing event.
type Result struct {
	Points             []model.BalancePoint
	Intervals          []model.HoldingInterval
	TotalHoldingDays   float64
	CurrentHoldingDays float64
	Complete           bool
}

// Reconstructor derives a historical balance series for one token by
// undoing transfers backward from a known current balance.
type Reconstructor struct {
	referenceToken string
}

// NewReconstructor takes the reference token address used to filter the
// event list.
func NewReconstructor(referenceToken string) *Reconstructor {
	return &Reconstructor{referenceToken: strings.ToLower(referenceToken)}
}

// Reconstruct replays currentBalance backward over the subject's
// reference-token transfers to find the series opening, then forward again
// so every point reports the balance that held from its event until the
// next one. The final point is always the authoritative current balance
// labeled "current". isComplete says whether the event list is a known-full
// history; a negative excursion beyond tolerance also marks points
// incomplete.
func (r *Reconstructor) Reconstruct(now time.Time, currentBalance float64, events []model.TransferEvent, isComplete bool) Result {
	refEvents := make([]model.TransferEvent, 0, len(events))
	for _, e := range events {
		if strings.ToLower(e.TokenAddress) != r.referenceToken {
			continue
		}
		// A transfer touching neither endpoint never changed this balance.
		if e.Direction == model.DirectionInternal {
			continue
		}
		refEvents = append(refEvents, e)
	}

	currentPoint := model.BalancePoint{
		Timestamp:    now,
		Balance:      clamp(currentBalance),
		EventLabel:   "current",
		DataComplete: isComplete,
	}

	if len(refEvents) == 0 {
		return buildResult([]model.BalancePoint{currentPoint}, now, currentBalance, isComplete)
	}

	sort.SliceStable(refEvents, func(i, j int) bool {
		return refEvents[i].Timestamp.Before(refEvents[j].Timestamp)
	})

	// Backward pass: undo each transfer starting from the current balance.
	// complete[i] records whether the replay was still non-negative when
	// event i was undone.
	running := currentBalance
	complete := make([]bool, len(refEvents))
	wentNegative := false
	for i := len(refEvents) - 1; i >= 0; i-- {
		if refEvents[i].Direction == model.DirectionOut {
			running += refEvents[i].Amount
		} else {
			running -= refEvents[i].Amount
		}
		complete[i] = running >= -negativeTolerance
		if !complete[i] {
			wentNegative = true
		}
	}

	seriesComplete := isComplete && !wentNegative

	// Forward pass from the clamped opening: each point carries the balance
	// immediately after its event.
	points := make([]model.BalancePoint, 0, len(refEvents)+1)
	running = clamp(running)
	for i, e := range refEvents {
		label := "received"
		if e.Direction == model.DirectionOut {
			running -= e.Amount
			label = "sent"
		} else {
			running += e.Amount
		}
		running = clamp(running)

		points = append(points, model.BalancePoint{
			Timestamp:    e.Timestamp,
			Balance:      running,
			EventLabel:   fmt.Sprintf("%s %.2f", label, e.Amount),
			DataComplete: complete[i] && isComplete,
		})
	}

	points = append(points, currentPoint)

	return buildResult(points, now, currentBalance, seriesComplete)
}

func buildResult(points []model.BalancePoint, now time.Time, currentBalance float64, complete bool) Result {
	res := Result{Points: points, Complete: complete}

	var openStart *time.Time
	for _, p := range points {
		switch {
		case p.Balance > 0 && openStart == nil:
			start := p.Timestamp
			openStart = &start
		case p.Balance == 0 && openStart != nil:
			end := p.Timestamp
			days := end.Sub(*openStart).Seconds() / secondsPerDay
			res.Intervals = append(res.Intervals, model.HoldingInterval{
				Start:        *openStart,
				End:          &end,
				DurationDays: days,
			})
			res.TotalHoldingDays += days
			openStart = nil
		}
	}

	if currentBalance > 0 && openStart != nil {
		days := now.Sub(*openStart).Seconds() / secondsPerDay
		res.Intervals = append(res.Intervals, model.HoldingInterval{
			Start:        *openStart,
			DurationDays: days,
		})
		res.CurrentHoldingDays = days
		res.TotalHoldingDays += days
	}

	return res
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
