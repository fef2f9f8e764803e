// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/info-mnml/Otokogi/internal/ledger"
	"github.com/info-mnml/Otokogi/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist.
// Implementations wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface the services need from the entity store.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// The multi-write operations (RecordOutcomes, ReplaceRound, ImportLedger)
// must each execute as one atomic transaction: no partial state may be
// observable if any statement fails.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Events. CreateEvent populates ID and CreatedAt when unset.
	// DeleteEvent cascades to the event's participations.
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, ownerID string) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id string) error
	SetEventHasResult(ctx context.Context, id string, hasResult bool) error

	// Participants. DeleteParticipant does not cascade; participation rows
	// referencing a deleted participant remain.
	CreateParticipant(ctx context.Context, participant *models.Participant) error
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)
	ListParticipants(ctx context.Context, ownerID string) ([]*models.Participant, error)
	DeleteParticipant(ctx context.Context, id string) error

	// Participations.
	ListParticipationsByEvent(ctx context.Context, eventID string) ([]*models.Participation, error)
	ListParticipationsByOwner(ctx context.Context, ownerID string) ([]*models.Participation, error)

	// RecordOutcomes upserts the given rows for the event (matched on
	// event id + participant id) and recomputes the event's total amount
	// as the sum of paid amounts, all in one transaction. An existing row
	// only has its won and paid amount overwritten; its attended and
	// expected amount values are preserved.
	RecordOutcomes(ctx context.Context, eventID string, rows []*models.Participation) error

	// ReplaceRound deletes every prior participation for the event, inserts
	// the new batch, applies the participant counter deltas, recomputes the
	// event total, and sets the result flag, all in one transaction.
	ReplaceRound(ctx context.Context, eventID string, rows []*models.Participation, deltas []ledger.CounterDelta, hasResult bool) error

	// ImportLedger inserts fully-resolved rows from a migration in one
	// transaction. Ids must be preassigned by the caller.
	ImportLedger(ctx context.Context, events []*models.Event, participants []*models.Participant, participations []*models.Participation) error

	// Close releases any resources held by the store.
	Close() error
}
