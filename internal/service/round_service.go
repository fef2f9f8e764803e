package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/info-mnml/Otokogi/internal/ledger"
	"github.com/info-mnml/Otokogi/internal/models"
	"github.com/info-mnml/Otokogi/internal/storage"
)

// RoundService records janken round outcomes against events.
type RoundService struct {
	store storage.Store
}

// NewRoundService creates a RoundService with the given storage backend.
func NewRoundService(store storage.Store) *RoundService {
	return &RoundService{store: store}
}

// ownedEvent loads the event and checks the caller owns it.
func (s *RoundService) ownedEvent(ctx context.Context, ownerID, eventID string) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return nil, err
	}
	if event.OwnerID != ownerID {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrForbidden)
	}
	return event, nil
}

// checkParticipants verifies every referenced participant exists and belongs
// to the caller.
func (s *RoundService) checkParticipants(ctx context.Context, ownerID string, outcomes []ledger.Outcome) error {
	for _, o := range outcomes {
		participant, err := s.store.GetParticipant(ctx, o.ParticipantID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("participant %s: %w", o.ParticipantID, ErrNotFound)
			}
			return err
		}
		if participant.OwnerID != ownerID {
			return fmt.Errorf("participant %s: %w", o.ParticipantID, ErrForbidden)
		}
	}
	return nil
}

// RecordRound upserts one participation row per outcome for the event,
// keeping the paid amounts the caller supplied, then recomputes the event's
// total amount as the sum over all of its rows. Rows for participants
// previously in the event but absent from this batch are left untouched,
// and an updated row keeps the fair share computed when the roster was set.
//
// The upserts and the total recompute run in a single transaction so the
// event total is never observed stale relative to its rows.
func (s *RoundService) RecordRound(ctx context.Context, ownerID, eventID string, outcomes []ledger.Outcome) ([]*models.Participation, error) {
	hasWinner, err := ledger.ValidateOutcomes(outcomes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if _, err := s.ownedEvent(ctx, ownerID, eventID); err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, ownerID, outcomes); err != nil {
		return nil, err
	}
	if !hasWinner {
		slog.Warn("round recorded without a winner", "event_id", eventID)
	}

	rows := make([]*models.Participation, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, &models.Participation{
			EventID:       eventID,
			ParticipantID: o.ParticipantID,
			Attended:      true,
			Won:           o.Won,
			PaidAmount:    o.PaidAmount,
		})
	}

	if err := s.store.RecordOutcomes(ctx, eventID, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	return rows, nil
}

// ReplaceRoundParticipants swaps the event's entire participation set for
// the new batch: prior rows are discarded, not merged. Each new row gets a
// recomputed fair share (event total divided by batch size, floored), the
// winner is charged the full event total, and every participant's running
// counters are advanced. The event's result flag is set only when the batch
// names a winner; a batch without one is accepted but logged as a warning.
func (s *RoundService) ReplaceRoundParticipants(ctx context.Context, ownerID, eventID string, outcomes []ledger.Outcome) ([]*models.Participation, error) {
	event, err := s.ownedEvent(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}

	rows, deltas, hasWinner, err := ledger.BuildRound(event.TotalAmount, outcomes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := s.checkParticipants(ctx, ownerID, outcomes); err != nil {
		return nil, err
	}
	if !hasWinner {
		slog.Warn("round replaced without a winner, result flag stays unset", "event_id", eventID)
	}

	participations := make([]*models.Participation, 0, len(rows))
	for _, row := range rows {
		participations = append(participations, &models.Participation{
			EventID:        eventID,
			ParticipantID:  row.ParticipantID,
			Attended:       row.Attended,
			Won:            row.Won,
			PaidAmount:     row.PaidAmount,
			ExpectedAmount: row.ExpectedAmount,
		})
	}

	if err := s.store.ReplaceRound(ctx, eventID, participations, deltas, hasWinner); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	slog.Info("round replaced",
		"event_id", eventID,
		"participants", len(participations),
		"has_winner", hasWinner,
	)
	return participations, nil
}
