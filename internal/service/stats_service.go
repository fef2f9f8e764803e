package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/info-mnml/Otokogi/internal/ledger"
	"github.com/info-mnml/Otokogi/internal/storage"
)

// StatsService recomputes statistics from participation rows on every call.
// Cached counters and flags are never trusted as authoritative; where a
// cache disagrees with the recomputed truth it is corrected in place and
// the disagreement logged.
type StatsService struct {
	store storage.Store
}

// NewStatsService creates a StatsService with the given storage backend.
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store}
}

// ParticipantStats recomputes every participant's win/loss record, amounts
// and balance from scratch, sorted descending by balance. Participation rows
// whose participant has been deleted are ignored here (orphan-tolerant
// read).
func (s *StatsService) ParticipantStats(ctx context.Context, ownerID string) ([]ledger.ParticipantStat, error) {
	participants, err := s.store.ListParticipants(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	participations, err := s.store.ListParticipationsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ledger.ParticipantStats(participants, participations), nil
}

// EventStats aggregates event counts, the total spent across all events and
// the rounded average per event.
func (s *StatsService) EventStats(ctx context.Context, ownerID string) (ledger.EventStat, error) {
	events, err := s.store.ListEvents(ctx, ownerID)
	if err != nil {
		return ledger.EventStat{}, err
	}
	return ledger.EventStats(events), nil
}

// HasResult reports whether the event has a recorded round with a winner.
// The canonical answer comes from the participation rows; the event's cached
// flag is reconciled against it, never trusted. A disagreement is logged as
// a warning and the flag corrected, but the read itself never fails over it.
func (s *StatsService) HasResult(ctx context.Context, ownerID, eventID string) (bool, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return false, err
	}
	if event.OwnerID != ownerID {
		return false, fmt.Errorf("event %s: %w", eventID, ErrForbidden)
	}

	participations, err := s.store.ListParticipationsByEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	hasResult := ledger.HasWinner(participations)

	if event.HasResult != hasResult {
		slog.Warn("event result flag disagrees with participation rows, correcting",
			"event_id", eventID,
			"stored_flag", event.HasResult,
			"recomputed", hasResult,
		)
		if err := s.store.SetEventHasResult(ctx, eventID, hasResult); err != nil {
			// The answer is still the recomputed one; the stale flag just
			// survives until the next read.
			slog.Error("failed to correct event result flag", "event_id", eventID, "error", err)
		}
	}

	return hasResult, nil
}

// AllRoundResults summarizes every owned event whose round produced a
// winner, with its full participation set.
func (s *StatsService) AllRoundResults(ctx context.Context, ownerID string) ([]ledger.RoundResult, error) {
	events, err := s.store.ListEvents(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	participations, err := s.store.ListParticipationsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ledger.RoundResults(events, participations), nil
}
