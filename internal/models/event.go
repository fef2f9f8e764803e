package models

// Event represents one gathering at which a single janken round decides who
// pays the bill.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string `json:"id"`

	// OwnerID is the user who created the event. All reads and writes are
	// scoped to the owner.
	OwnerID string `json:"ownerId"`

	// Name is the display name of the event (e.g., "Friday izakaya").
	Name string `json:"name"`

	// Date is the Unix timestamp of the calendar date the event took place.
	Date int64 `json:"date"`

	// Location is the optional venue.
	Location string `json:"location,omitempty"`

	// Description is an optional free-form note.
	Description string `json:"description,omitempty"`

	// TotalAmount is the full bill in yen. Invariant: equals the sum of
	// PaidAmount over this event's participations, recomputed after every
	// round write.
	TotalAmount int64 `json:"totalAmount"`

	// HasResult caches whether a round result with a winner has been
	// recorded. The canonical value is derived from participation rows;
	// readers reconcile this flag against the recomputed truth.
	HasResult bool `json:"hasResult"`

	// CreatedAt is the Unix timestamp when the event was created.
	CreatedAt int64 `json:"createdAt"`
}
