package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/info-mnml/Otokogi/internal/models"
	"github.com/info-mnml/Otokogi/internal/storage"
)

// CreateParticipant persists a new participant, assigning an ID and creation
// time when they are unset. Counters start at zero.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.CreatedAt == 0 {
		participant.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO participants
		 (id, owner_id, name, total_participation, win_count, loss_count, total_paid, total_expected, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		participant.ID, participant.OwnerID, participant.Name,
		participant.TotalParticipation, participant.WinCount, participant.LossCount,
		participant.TotalPaid, participant.TotalExpected, participant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by ID.
func (s *SQLiteStore) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	participant := &models.Participant{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, total_participation, win_count, loss_count, total_paid, total_expected, created_at
		 FROM participants WHERE id = ?`, id,
	).Scan(&participant.ID, &participant.OwnerID, &participant.Name,
		&participant.TotalParticipation, &participant.WinCount, &participant.LossCount,
		&participant.TotalPaid, &participant.TotalExpected, &participant.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("participant %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

// ListParticipants retrieves all participants owned by the user, oldest
// first.
func (s *SQLiteStore) ListParticipants(ctx context.Context, ownerID string) ([]*models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, name, total_participation, win_count, loss_count, total_paid, total_expected, created_at
		 FROM participants WHERE owner_id = ? ORDER BY created_at, id`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		participant := &models.Participant{}
		if err := rows.Scan(&participant.ID, &participant.OwnerID, &participant.Name,
			&participant.TotalParticipation, &participant.WinCount, &participant.LossCount,
			&participant.TotalPaid, &participant.TotalExpected, &participant.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// DeleteParticipant removes a participant. Their participation rows are kept
// on purpose; readers tolerate the dangling references.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return requireRow(res, "participant", id)
}
