package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/info-mnml/Otokogi/internal/ledger"
	"github.com/info-mnml/Otokogi/internal/models"
	"github.com/info-mnml/Otokogi/internal/storage"
	"github.com/info-mnml/Otokogi/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedEvent(t *testing.T, store storage.Store, ownerID string, total int64) *models.Event {
	t.Helper()
	event := &models.Event{OwnerID: ownerID, Name: "nomikai", TotalAmount: total}
	if err := store.CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return event
}

func seedParticipant(t *testing.T, store storage.Store, ownerID, name string) *models.Participant {
	t.Helper()
	participant := &models.Participant{OwnerID: ownerID, Name: name}
	if err := store.CreateParticipant(context.Background(), participant); err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}
	return participant
}

func TestReplaceRoundParticipants(t *testing.T) {
	store := newTestStore(t)
	svc := NewRoundService(store)
	ctx := context.Background()

	event := seedEvent(t, store, "owner", 3000)
	a := seedParticipant(t, store, "owner", "Aoki")
	b := seedParticipant(t, store, "owner", "Baba")
	c := seedParticipant(t, store, "owner", "Chiba")

	rows, err := svc.ReplaceRoundParticipants(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: a.ID, Won: true},
		{ParticipantID: b.ID},
		{ParticipantID: c.ID},
	})
	if err != nil {
		t.Fatalf("ReplaceRoundParticipants failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// 3000 yen, 3 people: the loser of janken covers the whole bill, the
	// others owe 1000 each on paper.
	for _, row := range rows {
		if row.ExpectedAmount != 1000 {
			t.Errorf("participant %s: expected amount = %d, want 1000", row.ParticipantID, row.ExpectedAmount)
		}
		if row.ParticipantID == a.ID {
			if !row.Won || row.PaidAmount != 3000 {
				t.Errorf("winner row = %+v", row)
			}
		} else if row.Won || row.PaidAmount != 0 {
			t.Errorf("non-winner row = %+v", row)
		}
	}

	got, err := store.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if !got.HasResult {
		t.Error("expected result flag to be set")
	}

	winner, err := store.GetParticipant(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetParticipant failed: %v", err)
	}
	if winner.TotalParticipation != 1 || winner.WinCount != 1 || winner.TotalPaid != 3000 || winner.TotalExpected != 1000 {
		t.Errorf("winner counters = %+v", winner)
	}
	loser, err := store.GetParticipant(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetParticipant failed: %v", err)
	}
	if loser.LossCount != 1 || loser.TotalPaid != 0 || loser.TotalExpected != 1000 {
		t.Errorf("loser counters = %+v", loser)
	}
}

func TestReplaceRoundParticipantsTwice(t *testing.T) {
	store := newTestStore(t)
	svc := NewRoundService(store)
	ctx := context.Background()

	event := seedEvent(t, store, "owner", 2000)
	a := seedParticipant(t, store, "owner", "Aoki")
	b := seedParticipant(t, store, "owner", "Baba")
	c := seedParticipant(t, store, "owner", "Chiba")

	_, err := svc.ReplaceRoundParticipants(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: a.ID, Won: true},
		{ParticipantID: b.ID},
		{ParticipantID: c.ID},
	})
	if err != nil {
		t.Fatalf("first replace failed: %v", err)
	}

	_, err = svc.ReplaceRoundParticipants(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: b.ID, Won: true},
		{ParticipantID: c.ID},
	})
	if err != nil {
		t.Fatalf("second replace failed: %v", err)
	}

	rows, err := store.ListParticipationsByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListParticipationsByEvent failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 rows after replace, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ParticipantID == a.ID {
			t.Error("row for dropped participant survived the replace")
		}
		if row.ExpectedAmount != 1000 {
			t.Errorf("expected amount = %d, want 1000", row.ExpectedAmount)
		}
	}
}

func TestReplaceRoundNoWinner(t *testing.T) {
	store := newTestStore(t)
	svc := NewRoundService(store)
	ctx := context.Background()

	event := seedEvent(t, store, "owner", 1000)
	a := seedParticipant(t, store, "owner", "Aoki")

	// A batch without a winner is accepted; the result flag stays unset.
	rows, err := svc.ReplaceRoundParticipants(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: a.ID},
	})
	if err != nil {
		t.Fatalf("ReplaceRoundParticipants failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	got, err := store.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.HasResult {
		t.Error("result flag should stay unset without a winner")
	}
}

func TestRecordRound(t *testing.T) {
	store := newTestStore(t)
	svc := NewRoundService(store)
	ctx := context.Background()

	event := seedEvent(t, store, "owner", 0)
	a := seedParticipant(t, store, "owner", "Aoki")
	b := seedParticipant(t, store, "owner", "Baba")

	_, err := svc.RecordRound(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: a.ID, Won: true, PaidAmount: 4000},
		{ParticipantID: b.ID},
	})
	if err != nil {
		t.Fatalf("RecordRound failed: %v", err)
	}

	got, err := store.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.TotalAmount != 4000 {
		t.Errorf("event total = %d, want 4000", got.TotalAmount)
	}

	// Recording a partial batch only touches the named participants.
	_, err = svc.RecordRound(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: a.ID, PaidAmount: 500},
	})
	if err != nil {
		t.Fatalf("second RecordRound failed: %v", err)
	}

	rows, err := store.ListParticipationsByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListParticipationsByEvent failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	got, err = store.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.TotalAmount != 500 {
		t.Errorf("event total = %d, want 500", got.TotalAmount)
	}
}

func TestRecordRoundKeepsFairShares(t *testing.T) {
	store := newTestStore(t)
	svc := NewRoundService(store)
	stats := NewStatsService(store)
	ctx := context.Background()

	event := seedEvent(t, store, "owner", 3000)
	a := seedParticipant(t, store, "owner", "Aoki")
	b := seedParticipant(t, store, "owner", "Baba")
	c := seedParticipant(t, store, "owner", "Chiba")

	// Set the roster first, which computes each row's fair share.
	_, err := svc.ReplaceRoundParticipants(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: a.ID, Won: true},
		{ParticipantID: b.ID},
		{ParticipantID: c.ID},
	})
	if err != nil {
		t.Fatalf("ReplaceRoundParticipants failed: %v", err)
	}

	// Correct the outcome: Baba was the payer after all.
	_, err = svc.RecordRound(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: a.ID},
		{ParticipantID: b.ID, Won: true, PaidAmount: 3000},
	})
	if err != nil {
		t.Fatalf("RecordRound failed: %v", err)
	}

	rows, err := store.ListParticipationsByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListParticipationsByEvent failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ExpectedAmount != 1000 {
			t.Errorf("participant %s: expected amount = %d after correction, want 1000", row.ParticipantID, row.ExpectedAmount)
		}
		if row.Won != (row.ParticipantID == b.ID) {
			t.Errorf("participant %s: won = %v after correction", row.ParticipantID, row.Won)
		}
	}

	recomputed, err := stats.ParticipantStats(ctx, "owner")
	if err != nil {
		t.Fatalf("ParticipantStats failed: %v", err)
	}
	for _, stat := range recomputed {
		switch stat.ID {
		case b.ID:
			if stat.TotalExpected != 1000 || stat.Balance != -2000 {
				t.Errorf("payer stat = %+v", stat)
			}
		default:
			if stat.TotalExpected != 1000 || stat.Balance != 1000 {
				t.Errorf("non-payer stat = %+v", stat)
			}
		}
	}
}

func TestRoundErrors(t *testing.T) {
	store := newTestStore(t)
	svc := NewRoundService(store)
	ctx := context.Background()

	event := seedEvent(t, store, "owner", 1000)
	a := seedParticipant(t, store, "owner", "Aoki")
	outcomes := []ledger.Outcome{{ParticipantID: a.ID, Won: true}}

	t.Run("missing event", func(t *testing.T) {
		_, err := svc.ReplaceRoundParticipants(ctx, "owner", "nope", outcomes)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("foreign event", func(t *testing.T) {
		_, err := svc.ReplaceRoundParticipants(ctx, "intruder", event.ID, outcomes)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("missing participant", func(t *testing.T) {
		_, err := svc.ReplaceRoundParticipants(ctx, "owner", event.ID, []ledger.Outcome{
			{ParticipantID: "ghost", Won: true},
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := svc.ReplaceRoundParticipants(ctx, "owner", event.ID, nil)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("duplicate participant", func(t *testing.T) {
		_, err := svc.ReplaceRoundParticipants(ctx, "owner", event.ID, []ledger.Outcome{
			{ParticipantID: a.ID, Won: true},
			{ParticipantID: a.ID},
		})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
