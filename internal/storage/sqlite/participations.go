package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/info-mnml/Otokogi/internal/ledger"
	"github.com/info-mnml/Otokogi/internal/models"
)

const participationColumns = "id, event_id, participant_id, attended, won, paid_amount, expected_amount"

// ListParticipationsByEvent retrieves every participation row for one event.
func (s *SQLiteStore) ListParticipationsByEvent(ctx context.Context, eventID string) ([]*models.Participation, error) {
	return s.listParticipations(ctx,
		`SELECT `+participationColumns+` FROM participations WHERE event_id = ? ORDER BY id`, eventID)
}

// ListParticipationsByOwner retrieves every participation row belonging to
// the owner's events, including rows whose participant has been deleted.
func (s *SQLiteStore) ListParticipationsByOwner(ctx context.Context, ownerID string) ([]*models.Participation, error) {
	return s.listParticipations(ctx,
		`SELECT p.id, p.event_id, p.participant_id, p.attended, p.won, p.paid_amount, p.expected_amount
		 FROM participations p
		 JOIN events e ON e.id = p.event_id
		 WHERE e.owner_id = ? ORDER BY p.id`, ownerID)
}

func (s *SQLiteStore) listParticipations(ctx context.Context, query string, arg any) ([]*models.Participation, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	for rows.Next() {
		p := &models.Participation{}
		var attended, won int
		if err := rows.Scan(&p.ID, &p.EventID, &p.ParticipantID, &attended, &won,
			&p.PaidAmount, &p.ExpectedAmount); err != nil {
			return nil, fmt.Errorf("failed to scan participation: %w", err)
		}
		p.Attended = attended != 0
		p.Won = won != 0
		participations = append(participations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participations: %w", err)
	}
	return participations, nil
}

// RecordOutcomes upserts the given rows for the event and recomputes the
// event's total amount from the full set of its rows, in one transaction.
// The recompute always runs because any subset of rows may have changed.
// An existing row keeps its attended and expected_amount values; only the
// outcome fields are overwritten, so correcting a result never disturbs the
// fair shares computed when the roster was set.
func (s *SQLiteStore) RecordOutcomes(ctx context.Context, eventID string, rows []*models.Participation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		if row.ID == "" {
			row.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO participations (`+participationColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (event_id, participant_id) DO UPDATE SET
			   won = excluded.won,
			   paid_amount = excluded.paid_amount`,
			row.ID, eventID, row.ParticipantID,
			boolToInt(row.Attended), boolToInt(row.Won),
			row.PaidAmount, row.ExpectedAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert participation: %w", err)
		}
	}

	if err := recomputeEventTotal(ctx, tx, eventID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceRound swaps the event's full participation set for a new batch,
// applies the counter deltas to the participants, recomputes the event total
// and sets the result flag, all in one transaction.
func (s *SQLiteStore) ReplaceRound(ctx context.Context, eventID string, rows []*models.Participation, deltas []ledger.CounterDelta, hasResult bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM participations WHERE event_id = ?", eventID); err != nil {
		return fmt.Errorf("failed to clear prior participations: %w", err)
	}

	for _, row := range rows {
		if row.ID == "" {
			row.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO participations (`+participationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			row.ID, eventID, row.ParticipantID,
			boolToInt(row.Attended), boolToInt(row.Won),
			row.PaidAmount, row.ExpectedAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participation: %w", err)
		}
	}

	for _, d := range deltas {
		_, err = tx.ExecContext(ctx,
			`UPDATE participants SET
			   total_participation = total_participation + ?,
			   win_count = win_count + ?,
			   loss_count = loss_count + ?,
			   total_paid = total_paid + ?,
			   total_expected = total_expected + ?
			 WHERE id = ?`,
			d.TotalParticipation, d.WinCount, d.LossCount,
			d.TotalPaid, d.TotalExpected, d.ParticipantID,
		)
		if err != nil {
			return fmt.Errorf("failed to update participant counters: %w", err)
		}
	}

	if err := recomputeEventTotal(ctx, tx, eventID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE events SET has_result = ? WHERE id = ?", boolToInt(hasResult), eventID); err != nil {
		return fmt.Errorf("failed to set event result flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ImportLedger inserts a migrated dataset in one all-or-nothing transaction.
// Callers preassign every id; any constraint violation rolls back the whole
// import.
func (s *SQLiteStore) ImportLedger(ctx context.Context, events []*models.Event, participants []*models.Participant, participations []*models.Participation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range participants {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO participants
			 (id, owner_id, name, total_participation, win_count, loss_count, total_paid, total_expected, created_at)
			 VALUES (?, ?, ?, 0, 0, 0, 0, 0, ?)`,
			p.ID, p.OwnerID, p.Name, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import participant: %w", err)
		}
	}

	for _, e := range events {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (id, owner_id, name, date, location, description, total_amount, has_result, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.OwnerID, e.Name, e.Date,
			nullable(e.Location), nullable(e.Description),
			e.TotalAmount, boolToInt(e.HasResult), e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import event: %w", err)
		}
	}

	for _, row := range participations {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO participations (`+participationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			row.ID, row.EventID, row.ParticipantID,
			boolToInt(row.Attended), boolToInt(row.Won),
			row.PaidAmount, row.ExpectedAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to import participation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// recomputeEventTotal rewrites the event's total as the sum of its rows'
// paid amounts.
func recomputeEventTotal(ctx context.Context, tx *sql.Tx, eventID string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE events SET total_amount =
		   (SELECT COALESCE(SUM(paid_amount), 0) FROM participations WHERE event_id = ?)
		 WHERE id = ?`, eventID, eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to recompute event total: %w", err)
	}
	return nil
}
