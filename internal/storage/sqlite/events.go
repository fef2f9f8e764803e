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

// CreateEvent persists a new event, assigning an ID and creation time when
// they are unset.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, owner_id, name, date, location, description, total_amount, has_result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.OwnerID, event.Name, event.Date,
		nullable(event.Location), nullable(event.Description),
		event.TotalAmount, boolToInt(event.HasResult), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLiteStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, date, location, description, total_amount, has_result, created_at
		 FROM events WHERE id = ?`, id,
	)
	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// ListEvents retrieves all events owned by the user, newest date first.
func (s *SQLiteStore) ListEvents(ctx context.Context, ownerID string) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, name, date, location, description, total_amount, has_result, created_at
		 FROM events WHERE owner_id = ? ORDER BY date DESC, created_at DESC`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// UpdateEvent overwrites the event's editable fields.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET name = ?, date = ?, location = ?, description = ?, total_amount = ?
		 WHERE id = ?`,
		event.Name, event.Date, nullable(event.Location), nullable(event.Description),
		event.TotalAmount, event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRow(res, "event", event.ID)
}

// DeleteEvent removes an event; the foreign key cascades to its
// participations.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRow(res, "event", id)
}

// SetEventHasResult updates only the cached result flag, used when a reader
// reconciles the flag against the recomputed truth.
func (s *SQLiteStore) SetEventHasResult(ctx context.Context, id string, hasResult bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE events SET has_result = ? WHERE id = ?", boolToInt(hasResult), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set event result flag: %w", err)
	}
	return requireRow(res, "event", id)
}

// scanEvent reads one event from a row scanner, mapping NULL text columns to
// empty strings.
func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	event := &models.Event{}
	var location, description sql.NullString
	var hasResult int
	err := row.Scan(&event.ID, &event.OwnerID, &event.Name, &event.Date,
		&location, &description, &event.TotalAmount, &hasResult, &event.CreatedAt)
	if err != nil {
		return nil, err
	}
	event.Location = location.String
	event.Description = description.String
	event.HasResult = hasResult != 0
	return event, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
