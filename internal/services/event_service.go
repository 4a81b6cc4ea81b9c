package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kwame-ansah/gameday/internal/models"
)

// ErrNotAuthenticated is the create-path guard: writes never reach the
// backend without a principal.
var ErrNotAuthenticated = errors.New("User not authenticated")

type EventService struct {
	eventsRepo models.EventsRepo
}

func NewEventService(eventsRepo models.EventsRepo) *EventService {
	return &EventService{
		eventsRepo: eventsRepo,
	}
}

func (es *EventService) CreateEvent(ctx context.Context, input *models.CreateEventInput, principal string, accessToken string) (*models.Event, error) {
	if principal == "" {
		return nil, ErrNotAuthenticated
	}
	createdBy, err := uuid.Parse(principal)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	if err := models.Validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid event data provided: %v", err)
	}

	return es.eventsRepo.CreateEvent(ctx, input, createdBy, accessToken)
}

func (es *EventService) GetEvents(ctx context.Context, accessToken string) ([]*models.Event, error) {
	return es.eventsRepo.ListEvents(ctx, accessToken)
}

func (es *EventService) GetEventByID(ctx context.Context, id uuid.UUID, accessToken string) (*models.Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}
	return es.eventsRepo.GetEventByID(ctx, id, accessToken)
}

// SearchAndFilterEvents treats empty parameters as "no constraint"; when both
// are set the predicates are conjunctive.
func (es *EventService) SearchAndFilterEvents(ctx context.Context, searchTerm, sportType, accessToken string) ([]*models.Event, error) {
	return es.eventsRepo.SearchEvents(ctx, searchTerm, sportType, accessToken)
}

func (es *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, input *models.UpdateEventInput, accessToken string) (*models.Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}
	if err := models.Validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid event data provided: %v", err)
	}
	return es.eventsRepo.UpdateEvent(ctx, id, input, accessToken)
}

func (es *EventService) DeleteEvent(ctx context.Context, id uuid.UUID, accessToken string) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid event ID")
	}
	return es.eventsRepo.DeleteEvent(ctx, id, accessToken)
}
