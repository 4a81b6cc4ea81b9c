package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// ErrEventNotFound distinguishes a missing event from an empty result set.
var ErrEventNotFound = errors.New("event not found")

const eventWithVenues = "*, event_venues(*)"

type EventsRepo interface {
	CreateEvent(ctx context.Context, input *CreateEventInput, createdBy uuid.UUID, accessToken string) (*Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID, accessToken string) (*Event, error)
	ListEvents(ctx context.Context, accessToken string) ([]*Event, error)
	SearchEvents(ctx context.Context, searchTerm, sportType, accessToken string) ([]*Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, input *UpdateEventInput, accessToken string) (*Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID, accessToken string) error
}

func (su *SupabaseRepo) client(accessToken string) (*supabase.Client, error) {
	if accessToken == "" {
		return su.supabaseClient, nil
	}
	authClient, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %v", err)
	}
	return authClient, nil
}

// CreateEvent inserts the event row, then its venue rows, then re-reads the
// event with venues embedded. PostgREST gives us no transaction spanning the
// two inserts, so a venue-insert failure triggers a compensating delete of
// the event row rather than leaving a venue-less event behind.
func (su *SupabaseRepo) CreateEvent(ctx context.Context, input *CreateEventInput, createdBy uuid.UUID, accessToken string) (*Event, error) {
	client, err := su.client(accessToken)
	if err != nil {
		return nil, err
	}

	eventData := map[string]interface{}{
		"name":        input.Name,
		"date":        input.Date,
		"sport_type":  input.SportType,
		"description": input.Description,
		"created_by":  createdBy,
	}

	raw, count, err := client.From(EventsTable).
		Insert(eventData, false, "", "representation", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %v", err)
	}

	var created []Event
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created event: %v", err)
	}
	if count == 0 || len(created) == 0 {
		return nil, fmt.Errorf("no event data returned after insert")
	}
	eventID := created[0].ID

	venueRows := make([]map[string]interface{}, 0, len(input.Venues))
	for _, v := range input.Venues {
		venueRows = append(venueRows, map[string]interface{}{
			"event_id":   eventID,
			"venue_name": v.VenueName,
		})
	}

	if _, _, err := client.From(EventVenuesTable).
		Insert(venueRows, false, "", "", "").
		Execute(); err != nil {
		// Best-effort compensation; the original insert error is what the
		// caller needs to see either way.
		_, _, _ = client.From(EventsTable).Delete("", "").Eq("id", eventID.String()).Execute()
		return nil, fmt.Errorf("failed to create event venues: %v", err)
	}

	return su.GetEventByID(ctx, eventID, accessToken)
}

func (su *SupabaseRepo) GetEventByID(ctx context.Context, id uuid.UUID, accessToken string) (*Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}

	client, err := su.client(accessToken)
	if err != nil {
		return nil, err
	}

	raw, _, err := client.From(EventsTable).
		Select(eventWithVenues, "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get event by ID: %v", err)
	}

	// PostgREST returns an array even for single-row matches.
	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event rows: %v", err)
	}

	if len(events) == 0 {
		return nil, ErrEventNotFound
	}

	return &events[0], nil
}

func (su *SupabaseRepo) ListEvents(ctx context.Context, accessToken string) ([]*Event, error) {
	return su.SearchEvents(ctx, "", "", accessToken)
}

// SearchEvents applies an optional case-insensitive substring match on name
// and an optional exact match on sport_type. Absent predicates are skipped,
// not matched against empty. Results come back date ascending.
func (su *SupabaseRepo) SearchEvents(ctx context.Context, searchTerm, sportType, accessToken string) ([]*Event, error) {
	client, err := su.client(accessToken)
	if err != nil {
		return nil, err
	}

	query := client.From(EventsTable).Select(eventWithVenues, "", false)
	if searchTerm != "" {
		query = query.Ilike("name", "%"+searchTerm+"%")
	}
	if sportType != "" {
		query = query.Eq("sport_type", sportType)
	}

	raw, _, err := query.
		Order("date", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %v", err)
	}

	var rows []Event
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event rows: %v", err)
	}

	events := make([]*Event, 0, len(rows))
	for i := range rows {
		events = append(events, &rows[i])
	}
	return events, nil
}

// UpdateEvent applies the scalar patch, then replaces the venue set when one
// is provided. Replacement is delete-all-then-insert; if the insert fails the
// previous set is re-inserted best-effort so the event is not left with zero
// venues.
func (su *SupabaseRepo) UpdateEvent(ctx context.Context, id uuid.UUID, input *UpdateEventInput, accessToken string) (*Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}

	client, err := su.client(accessToken)
	if err != nil {
		return nil, err
	}

	patch := input.Patch()
	if len(patch) > 0 {
		patch["updated_at"] = time.Now().UTC()
		_, count, err := client.From(EventsTable).
			Update(patch, "", "exact").
			Eq("id", id.String()).
			Execute()
		if err != nil {
			return nil, fmt.Errorf("failed to update event: %v", err)
		}
		if count == 0 {
			return nil, ErrEventNotFound
		}
	}

	if input.Venues != nil {
		if err := su.replaceVenues(client, id, input.Venues); err != nil {
			return nil, err
		}
	}

	return su.GetEventByID(ctx, id, accessToken)
}

func (su *SupabaseRepo) replaceVenues(client *supabase.Client, eventID uuid.UUID, venues []VenueInput) error {
	raw, _, err := client.From(EventVenuesTable).
		Select("*", "", false).
		Eq("event_id", eventID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to read existing venues: %v", err)
	}
	var previous []Venue
	if err := json.Unmarshal(raw, &previous); err != nil {
		return fmt.Errorf("failed to unmarshal existing venues: %v", err)
	}

	if _, _, err := client.From(EventVenuesTable).
		Delete("", "").
		Eq("event_id", eventID.String()).
		Execute(); err != nil {
		return fmt.Errorf("failed to delete existing venues: %v", err)
	}

	rows := make([]map[string]interface{}, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, map[string]interface{}{
			"event_id":   eventID,
			"venue_name": v.VenueName,
		})
	}

	if _, _, err := client.From(EventVenuesTable).
		Insert(rows, false, "", "", "").
		Execute(); err != nil {
		// Put the old set back so the event keeps at least one venue.
		restore := make([]map[string]interface{}, 0, len(previous))
		for _, v := range previous {
			restore = append(restore, map[string]interface{}{
				"event_id":   v.EventID,
				"venue_name": v.VenueName,
			})
		}
		if len(restore) > 0 {
			_, _, _ = client.From(EventVenuesTable).Insert(restore, false, "", "", "").Execute()
		}
		return fmt.Errorf("failed to replace event venues: %v", err)
	}

	return nil
}

// DeleteEvent removes the event row. Venue rows go with it via the cascade
// rule on event_venues.event_id.
func (su *SupabaseRepo) DeleteEvent(ctx context.Context, id uuid.UUID, accessToken string) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid event ID")
	}

	client, err := su.client(accessToken)
	if err != nil {
		return err
	}

	_, count, err := client.From(EventsTable).
		Delete("", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete event: %v", err)
	}
	if count == 0 {
		return ErrEventNotFound
	}

	return nil
}
