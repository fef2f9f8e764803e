package ledger

import (
	"sort"

	"github.com/info-mnml/Otokogi/internal/models"
)

// ParticipantStat is the recomputed statistics view for one participant.
type ParticipantStat struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TotalGames    int64   `json:"totalGames"`
	WinCount      int64   `json:"winCount"`
	LossCount     int64   `json:"lossCount"`
	WinRate       float64 `json:"winRate"`
	TotalPaid     int64   `json:"totalPaid"`
	TotalExpected int64   `json:"totalExpected"`
	// Balance is expected minus paid: positive means this participant has
	// historically paid less than their fair share.
	Balance int64 `json:"balance"`
}

// EventStat is the aggregate view over all of an owner's events.
type EventStat struct {
	TotalEvents   int64 `json:"totalEvents"`
	TotalAmount   int64 `json:"totalAmount"`
	AverageAmount int64 `json:"averageAmount"`
}

// RoundResult summarizes one event's recorded round.
type RoundResult struct {
	EventID      string                  `json:"eventId"`
	Name         string                  `json:"name"`
	Date         int64                   `json:"date"`
	Amount       int64                   `json:"amount"`
	Participants []*models.Participation `json:"participants"`
	// WinnerID is the payer's participant id, empty when no winner was
	// recorded.
	WinnerID string `json:"winnerId,omitempty"`
}

// ParticipantStats recomputes every participant's statistics from scratch
// using only participation rows, ignoring the cached counters. Rows whose
// participant no longer exists are skipped. The result is sorted descending
// by balance, i.e. the historically luckiest participant first.
func ParticipantStats(participants []*models.Participant, participations []*models.Participation) []ParticipantStat {
	byParticipant := make(map[string][]*models.Participation)
	for _, p := range participations {
		byParticipant[p.ParticipantID] = append(byParticipant[p.ParticipantID], p)
	}

	stats := make([]ParticipantStat, 0, len(participants))
	for _, pt := range participants {
		stat := ParticipantStat{ID: pt.ID, Name: pt.Name}
		for _, row := range byParticipant[pt.ID] {
			if !row.Attended {
				continue
			}
			if row.Won {
				stat.WinCount++
			} else {
				stat.LossCount++
			}
			stat.TotalPaid += row.PaidAmount
			stat.TotalExpected += row.ExpectedAmount
		}
		stat.TotalGames = stat.WinCount + stat.LossCount
		if stat.TotalGames > 0 {
			stat.WinRate = float64(stat.WinCount) / float64(stat.TotalGames)
		}
		stat.Balance = stat.TotalExpected - stat.TotalPaid
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Balance > stats[j].Balance
	})
	return stats
}

// EventStats aggregates counts and totals over events. AverageAmount is
// rounded to the nearest yen and 0 when there are no events.
func EventStats(events []*models.Event) EventStat {
	stat := EventStat{TotalEvents: int64(len(events))}
	for _, e := range events {
		stat.TotalAmount += e.TotalAmount
	}
	if stat.TotalEvents > 0 {
		stat.AverageAmount = (stat.TotalAmount + stat.TotalEvents/2) / stat.TotalEvents
	}
	return stat
}

// HasWinner reports whether any row marks a winner. This is the canonical
// definition of an event having a round result; any stored flag is a cache.
func HasWinner(participations []*models.Participation) bool {
	for _, p := range participations {
		if p.Won {
			return true
		}
	}
	return false
}

// RoundResults builds a summary for every event whose rows include a winner.
func RoundResults(events []*models.Event, participations []*models.Participation) []RoundResult {
	byEvent := make(map[string][]*models.Participation)
	for _, p := range participations {
		byEvent[p.EventID] = append(byEvent[p.EventID], p)
	}

	var results []RoundResult
	for _, e := range events {
		rows := byEvent[e.ID]
		if !HasWinner(rows) {
			continue
		}
		result := RoundResult{
			EventID:      e.ID,
			Name:         e.Name,
			Date:         e.Date,
			Amount:       e.TotalAmount,
			Participants: rows,
		}
		for _, row := range rows {
			if row.Won {
				result.WinnerID = row.ParticipantID
				break
			}
		}
		results = append(results, result)
	}
	return results
}
