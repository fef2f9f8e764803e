package models

// Participation represents one participant's outcome in one event's round.
//
// A full batch of participations for an event is created or replaced
// atomically when the round outcome is submitted; rows for the same event
// are discarded and rewritten, never merged. Under normal operation exactly
// one row per event has Won=true.
type Participation struct {
	// ID is the unique identifier for the row (UUID format).
	ID string `json:"id"`

	// EventID is the owning event.
	EventID string `json:"eventId"`

	// ParticipantID is the participant this row belongs to. Deleting a
	// participant does not cascade here, so the reference may dangle.
	ParticipantID string `json:"participantId"`

	// Attended reports whether the participant was present for the round.
	Attended bool `json:"attended"`

	// Won marks the designated payer: true means this participant lost the
	// round and covers the full event amount.
	Won bool `json:"won"`

	// PaidAmount is the amount actually paid in yen; 0 for non-payers in
	// the standard flow.
	PaidAmount int64 `json:"paidAmount"`

	// ExpectedAmount is the fair share in yen: the event total divided by
	// the number of participants in the round, floored.
	ExpectedAmount int64 `json:"expectedAmount"`
}
