package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/info-mnml/Otokogi/internal/models"
	"github.com/info-mnml/Otokogi/internal/storage"
)

// ParticipantService provides owner-scoped CRUD over participants.
type ParticipantService struct {
	store storage.Store
}

// NewParticipantService creates a ParticipantService with the given storage
// backend.
func NewParticipantService(store storage.Store) *ParticipantService {
	return &ParticipantService{store: store}
}

// CreateParticipant creates a participant owned by the caller with zeroed
// counters.
func (s *ParticipantService) CreateParticipant(ctx context.Context, ownerID, name string) (*models.Participant, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrInvalidArgument)
	}
	participant := &models.Participant{
		OwnerID: ownerID,
		Name:    name,
	}
	if err := s.store.CreateParticipant(ctx, participant); err != nil {
		return nil, err
	}
	slog.Info("participant created", "participant_id", participant.ID, "owner_id", ownerID)
	return participant, nil
}

// ListParticipants returns the caller's participants with their cached
// counters. The cached values may lag the participation history; clients
// needing exact numbers use the statistics endpoints, which recompute.
func (s *ParticipantService) ListParticipants(ctx context.Context, ownerID string) ([]*models.Participant, error) {
	return s.store.ListParticipants(ctx, ownerID)
}

// DeleteParticipant removes an owned participant. Their participation rows
// are intentionally kept: history for past events stays intact, and
// statistics reads tolerate the dangling references.
func (s *ParticipantService) DeleteParticipant(ctx context.Context, ownerID, participantID string) error {
	participant, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("participant %s: %w", participantID, ErrNotFound)
		}
		return err
	}
	if participant.OwnerID != ownerID {
		return fmt.Errorf("participant %s: %w", participantID, ErrForbidden)
	}
	return s.store.DeleteParticipant(ctx, participantID)
}
