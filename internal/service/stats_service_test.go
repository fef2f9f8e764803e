package service

import (
	"context"
	"errors"
	"testing"

	"github.com/info-mnml/Otokogi/internal/ledger"
)

func TestParticipantStatsService(t *testing.T) {
	store := newTestStore(t)
	rounds := NewRoundService(store)
	svc := NewStatsService(store)
	ctx := context.Background()

	a := seedParticipant(t, store, "owner", "Aoki")
	b := seedParticipant(t, store, "owner", "Baba")

	// Aoki covers a 3000 yen bill, Baba walks away without paying a yen.
	event := seedEvent(t, store, "owner", 3000)
	_, err := rounds.ReplaceRoundParticipants(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: a.ID, Won: true},
		{ParticipantID: b.ID},
	})
	if err != nil {
		t.Fatalf("ReplaceRoundParticipants failed: %v", err)
	}

	stats, err := svc.ParticipantStats(ctx, "owner")
	if err != nil {
		t.Fatalf("ParticipantStats failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats, got %d", len(stats))
	}

	// Best balance first: Baba owed 1500 and paid nothing.
	if stats[0].ID != b.ID {
		t.Errorf("expected %s first, got %s", b.ID, stats[0].ID)
	}
	if stats[0].Balance != 1500 || stats[0].LossCount != 1 {
		t.Errorf("Baba stat = %+v", stats[0])
	}
	if stats[1].Balance != -1500 || stats[1].WinCount != 1 || stats[1].WinRate != 1.0 {
		t.Errorf("Aoki stat = %+v", stats[1])
	}
}

func TestParticipantStatsZeroGamesService(t *testing.T) {
	store := newTestStore(t)
	svc := NewStatsService(store)
	ctx := context.Background()

	seedParticipant(t, store, "owner", "Aoki")

	stats, err := svc.ParticipantStats(ctx, "owner")
	if err != nil {
		t.Fatalf("ParticipantStats failed: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 stat, got %d", len(stats))
	}
	if stats[0].WinRate != 0 || stats[0].TotalGames != 0 {
		t.Errorf("zero-game stat = %+v", stats[0])
	}
}

func TestEventStatsService(t *testing.T) {
	store := newTestStore(t)
	svc := NewStatsService(store)
	ctx := context.Background()

	seedEvent(t, store, "owner", 3000)
	seedEvent(t, store, "owner", 2001)

	stats, err := svc.EventStats(ctx, "owner")
	if err != nil {
		t.Fatalf("EventStats failed: %v", err)
	}
	if stats.TotalEvents != 2 || stats.TotalAmount != 5001 {
		t.Errorf("event stats = %+v", stats)
	}
	// 5001 / 2 rounds to 2501.
	if stats.AverageAmount != 2501 {
		t.Errorf("average = %d, want 2501", stats.AverageAmount)
	}
}

func TestHasResultReconciliation(t *testing.T) {
	store := newTestStore(t)
	rounds := NewRoundService(store)
	svc := NewStatsService(store)
	ctx := context.Background()

	event := seedEvent(t, store, "owner", 1000)
	a := seedParticipant(t, store, "owner", "Aoki")

	_, err := rounds.ReplaceRoundParticipants(ctx, "owner", event.ID, []ledger.Outcome{
		{ParticipantID: a.ID, Won: true},
	})
	if err != nil {
		t.Fatalf("ReplaceRoundParticipants failed: %v", err)
	}

	// Corrupt the cached flag; the read must answer from the rows and
	// write the correction back.
	if err := store.SetEventHasResult(ctx, event.ID, false); err != nil {
		t.Fatalf("SetEventHasResult failed: %v", err)
	}

	has, err := svc.HasResult(ctx, "owner", event.ID)
	if err != nil {
		t.Fatalf("HasResult failed: %v", err)
	}
	if !has {
		t.Error("expected recomputed result to be true")
	}

	got, err := store.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if !got.HasResult {
		t.Error("expected flag to be corrected in the store")
	}
}

func TestHasResultErrors(t *testing.T) {
	store := newTestStore(t)
	svc := NewStatsService(store)
	ctx := context.Background()

	event := seedEvent(t, store, "owner", 1000)

	if _, err := svc.HasResult(ctx, "owner", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.HasResult(ctx, "intruder", event.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestAllRoundResults(t *testing.T) {
	store := newTestStore(t)
	rounds := NewRoundService(store)
	svc := NewStatsService(store)
	ctx := context.Background()

	a := seedParticipant(t, store, "owner", "Aoki")

	decided := seedEvent(t, store, "owner", 1000)
	if _, err := rounds.ReplaceRoundParticipants(ctx, "owner", decided.ID, []ledger.Outcome{
		{ParticipantID: a.ID, Won: true},
	}); err != nil {
		t.Fatalf("ReplaceRoundParticipants failed: %v", err)
	}

	undecided := seedEvent(t, store, "owner", 500)
	if _, err := rounds.ReplaceRoundParticipants(ctx, "owner", undecided.ID, []ledger.Outcome{
		{ParticipantID: a.ID},
	}); err != nil {
		t.Fatalf("ReplaceRoundParticipants failed: %v", err)
	}

	results, err := svc.AllRoundResults(ctx, "owner")
	if err != nil {
		t.Fatalf("AllRoundResults failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].EventID != decided.ID {
		t.Errorf("wrong event in results: %s", results[0].EventID)
	}
}
