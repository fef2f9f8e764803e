package models

// Snapshot is a foreign, pre-migration dataset exported from the legacy
// client-local storage. All ids are caller-local strings with no guaranteed
// uniqueness across collections; the migration coordinator remaps them to
// store-assigned ids.
type Snapshot struct {
	Events         []SnapshotEvent         `json:"events"`
	Participants   []SnapshotParticipant   `json:"participants"`
	Participations []SnapshotParticipation `json:"participations"`
}

// SnapshotEvent is an event as stored by the legacy client.
type SnapshotEvent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	TotalAmount int64  `json:"totalAmount"`
}

// SnapshotParticipant is a participant as stored by the legacy client.
type SnapshotParticipant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SnapshotParticipation links a snapshot event to a snapshot participant.
// IsWinner follows the legacy field name; it marks the payer.
type SnapshotParticipation struct {
	ID            string `json:"id"`
	EventID       string `json:"eventId"`
	ParticipantID string `json:"participantId"`
	IsWinner      bool   `json:"isWinner"`
	PaidAmount    int64  `json:"paidAmount"`
}

// MigrationStats reports how many rows a migration created. EventsCount and
// ParticipantsCount equal the snapshot collection lengths; ParticipationsCount
// excludes rows skipped for dangling references.
type MigrationStats struct {
	ParticipantsCount   int `json:"participantsCount"`
	EventsCount         int `json:"eventsCount"`
	ParticipationsCount int `json:"participationsCount"`
}
