package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/info-mnml/Otokogi/internal/models"
	"github.com/info-mnml/Otokogi/internal/storage"
)

// MigrationService imports a legacy client-local snapshot into the store.
type MigrationService struct {
	store storage.Store
}

// NewMigrationService creates a MigrationService with the given storage
// backend.
func NewMigrationService(store storage.Store) *MigrationService {
	return &MigrationService{store: store}
}

// Migrate imports the snapshot under the owner in a single all-or-nothing
// transaction. Snapshot-local ids are remapped to fresh store ids in two
// phases: participants and events are mapped first, then participations are
// linked through both maps. A participation whose event or participant is
// missing from the snapshot is skipped rather than aborting the batch; any
// store failure rolls the entire import back.
func (s *MigrationService) Migrate(ctx context.Context, ownerID string, snapshot *models.Snapshot) (models.MigrationStats, error) {
	if snapshot == nil {
		return models.MigrationStats{}, fmt.Errorf("%w: snapshot is required", ErrInvalidArgument)
	}

	now := time.Now().Unix()

	participantIDs := make(map[string]string, len(snapshot.Participants))
	participants := make([]*models.Participant, 0, len(snapshot.Participants))
	for _, local := range snapshot.Participants {
		participant := &models.Participant{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			Name:      local.Name,
			CreatedAt: now,
		}
		participantIDs[local.ID] = participant.ID
		participants = append(participants, participant)
	}

	eventIDs := make(map[string]string, len(snapshot.Events))
	events := make([]*models.Event, 0, len(snapshot.Events))
	for _, local := range snapshot.Events {
		date, err := parseSnapshotDate(local.Date)
		if err != nil {
			return models.MigrationStats{}, fmt.Errorf("%w: event %s: %v", ErrInvalidArgument, local.ID, err)
		}
		event := &models.Event{
			ID:          uuid.New().String(),
			OwnerID:     ownerID,
			Name:        local.Name,
			Date:        date,
			Location:    local.Location,
			Description: local.Description,
			TotalAmount: local.TotalAmount,
			CreatedAt:   now,
		}
		eventIDs[local.ID] = event.ID
		events = append(events, event)
	}

	// Both maps must be complete before any participation is linked.
	var participations []*models.Participation
	skipped := 0
	for _, local := range snapshot.Participations {
		eventID, okEvent := eventIDs[local.EventID]
		participantID, okParticipant := participantIDs[local.ParticipantID]
		if !okEvent || !okParticipant {
			// Dangling reference inside the snapshot itself; tolerated
			// per-row.
			skipped++
			continue
		}
		participations = append(participations, &models.Participation{
			ID:            uuid.New().String(),
			EventID:       eventID,
			ParticipantID: participantID,
			Attended:      true,
			Won:           local.IsWinner,
			PaidAmount:    local.PaidAmount,
		})
	}

	if err := s.store.ImportLedger(ctx, events, participants, participations); err != nil {
		return models.MigrationStats{}, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	stats := models.MigrationStats{
		ParticipantsCount:   len(participants),
		EventsCount:         len(events),
		ParticipationsCount: len(participations),
	}
	slog.Info("legacy snapshot migrated",
		"owner_id", ownerID,
		"participants", stats.ParticipantsCount,
		"events", stats.EventsCount,
		"participations", stats.ParticipationsCount,
		"skipped", skipped,
	)
	return stats, nil
}

// parseSnapshotDate accepts the formats the legacy client produced: RFC 3339
// timestamps and bare calendar dates.
func parseSnapshotDate(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, fmt.Errorf("unparseable date %q", value)
}
