package models

// Participant represents a person who plays janken rounds.
//
// The counter fields are a running cache maintained incrementally when a
// round is recorded. They may drift from the participation rows (e.g. after
// an event is deleted); internal/ledger recomputes the authoritative values
// from scratch.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// OwnerID is the user who created the participant.
	OwnerID string `json:"ownerId"`

	// Name is the display name.
	Name string `json:"name"`

	// TotalParticipation counts rounds this participant attended.
	TotalParticipation int64 `json:"totalParticipation"`

	// WinCount counts rounds lost, i.e. rounds where this participant was
	// the designated payer (inverted domain scoring).
	WinCount int64 `json:"winCount"`

	// LossCount counts rounds survived without paying.
	LossCount int64 `json:"lossCount"`

	// TotalPaid is the cumulative amount actually paid, in yen.
	TotalPaid int64 `json:"totalPaid"`

	// TotalExpected is the cumulative fair share, in yen.
	TotalExpected int64 `json:"totalExpected"`

	// CreatedAt is the Unix timestamp when the participant was created.
	CreatedAt int64 `json:"createdAt"`
}
