// Package ledger holds the pure bookkeeping rules for janken rounds: how a
// submitted outcome turns into participation rows and counter updates, and
// how statistics are recomputed from the full participation history.
//
// Everything here is side-effect free; persistence lives in internal/storage.
package ledger

import (
	"fmt"
)

// Outcome is one participant's submitted result for a round.
type Outcome struct {
	ParticipantID string
	Won           bool
	PaidAmount    int64
}

// CounterDelta is the incremental update to one participant's cached
// counters caused by recording a round.
type CounterDelta struct {
	ParticipantID      string
	TotalParticipation int64
	WinCount           int64
	LossCount          int64
	TotalPaid          int64
	TotalExpected      int64
}

// RoundRow is a participation row to be written, paired with the counter
// delta it implies.
type RoundRow struct {
	ParticipantID  string
	Attended       bool
	Won            bool
	PaidAmount     int64
	ExpectedAmount int64
}

// FairShare returns the per-head expected amount for a round: the event
// total divided by the participant count, floored to whole yen.
func FairShare(totalAmount int64, participantCount int) int64 {
	if participantCount <= 0 {
		return 0
	}
	return totalAmount / int64(participantCount)
}

// ValidateOutcomes rejects an empty batch, a missing or duplicate
// participant id, and a negative paid amount. It reports whether any outcome
// carries a winner.
func ValidateOutcomes(outcomes []Outcome) (hasWinner bool, err error) {
	if len(outcomes) == 0 {
		return false, fmt.Errorf("outcome batch is empty")
	}
	seen := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		if o.ParticipantID == "" {
			return false, fmt.Errorf("outcome is missing a participant id")
		}
		if seen[o.ParticipantID] {
			return false, fmt.Errorf("participant %s appears twice in the batch", o.ParticipantID)
		}
		seen[o.ParticipantID] = true
		if o.PaidAmount < 0 {
			return false, fmt.Errorf("paid amount for participant %s must be non-negative, got %d", o.ParticipantID, o.PaidAmount)
		}
		if o.Won {
			hasWinner = true
		}
	}
	return hasWinner, nil
}

// BuildRound converts a full round submission into participation rows and
// counter deltas. The winner (designated payer) is charged the event total;
// everyone else pays nothing. It reports whether any outcome carries a
// winner so the caller can decide the event's result flag.
func BuildRound(totalAmount int64, outcomes []Outcome) (rows []RoundRow, deltas []CounterDelta, hasWinner bool, err error) {
	if totalAmount < 0 {
		return nil, nil, false, fmt.Errorf("total amount must be non-negative, got %d", totalAmount)
	}
	hasWinner, err = ValidateOutcomes(outcomes)
	if err != nil {
		return nil, nil, false, err
	}

	expected := FairShare(totalAmount, len(outcomes))

	rows = make([]RoundRow, 0, len(outcomes))
	deltas = make([]CounterDelta, 0, len(outcomes))
	for _, o := range outcomes {
		paid := o.PaidAmount
		if o.Won {
			// The payer covers the whole bill in the standard flow.
			paid = totalAmount
		}

		rows = append(rows, RoundRow{
			ParticipantID:  o.ParticipantID,
			Attended:       true,
			Won:            o.Won,
			PaidAmount:     paid,
			ExpectedAmount: expected,
		})

		d := CounterDelta{
			ParticipantID:      o.ParticipantID,
			TotalParticipation: 1,
			TotalPaid:          paid,
			TotalExpected:      expected,
		}
		if o.Won {
			d.WinCount = 1
		} else {
			d.LossCount = 1
		}
		deltas = append(deltas, d)
	}

	return rows, deltas, hasWinner, nil
}
