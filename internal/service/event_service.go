package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/info-mnml/Otokogi/internal/models"
	"github.com/info-mnml/Otokogi/internal/storage"
)

// EventInput carries the editable event fields from the transport layer.
type EventInput struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	TotalAmount int64  `json:"totalAmount"`
}

// EventWithParticipations pairs an event with its round rows for detail
// views.
type EventWithParticipations struct {
	*models.Event
	Participations []*models.Participation `json:"participations"`
}

// EventService provides owner-scoped CRUD over events.
type EventService struct {
	store storage.Store
}

// NewEventService creates an EventService with the given storage backend.
func NewEventService(store storage.Store) *EventService {
	return &EventService{store: store}
}

func (s *EventService) ownedEvent(ctx context.Context, ownerID, eventID string) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return nil, err
	}
	if event.OwnerID != ownerID {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrForbidden)
	}
	return event, nil
}

func validateEventInput(in EventInput) (date int64, err error) {
	if in.Name == "" {
		return 0, fmt.Errorf("%w: event name is required", ErrInvalidArgument)
	}
	if in.TotalAmount < 0 {
		return 0, fmt.Errorf("%w: total amount must be non-negative", ErrInvalidArgument)
	}
	date, err = parseSnapshotDate(in.Date)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return date, nil
}

// CreateEvent creates an event owned by the caller.
func (s *EventService) CreateEvent(ctx context.Context, ownerID string, in EventInput) (*models.Event, error) {
	date, err := validateEventInput(in)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		OwnerID:     ownerID,
		Name:        in.Name,
		Date:        date,
		Location:    in.Location,
		Description: in.Description,
		TotalAmount: in.TotalAmount,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	slog.Info("event created", "event_id", event.ID, "owner_id", ownerID)
	return event, nil
}

// GetEvent returns an owned event together with its participation rows.
func (s *EventService) GetEvent(ctx context.Context, ownerID, eventID string) (*EventWithParticipations, error) {
	event, err := s.ownedEvent(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}
	participations, err := s.store.ListParticipationsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &EventWithParticipations{Event: event, Participations: participations}, nil
}

// ListEvents returns the caller's events, newest date first.
func (s *EventService) ListEvents(ctx context.Context, ownerID string) ([]*models.Event, error) {
	return s.store.ListEvents(ctx, ownerID)
}

// UpdateEvent overwrites an owned event's editable fields.
func (s *EventService) UpdateEvent(ctx context.Context, ownerID, eventID string, in EventInput) (*models.Event, error) {
	event, err := s.ownedEvent(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}
	date, err := validateEventInput(in)
	if err != nil {
		return nil, err
	}

	event.Name = in.Name
	event.Date = date
	event.Location = in.Location
	event.Description = in.Description
	event.TotalAmount = in.TotalAmount
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an owned event and all of its participation rows.
// Participant counters are not rewound here; the statistics recompute
// absorbs the change on the next read.
func (s *EventService) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	if _, err := s.ownedEvent(ctx, ownerID, eventID); err != nil {
		return err
	}
	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	slog.Info("event deleted", "event_id", eventID, "owner_id", ownerID)
	return nil
}
