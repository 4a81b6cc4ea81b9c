package models

import (
	"time"

	"github.com/google/uuid"
)

// SuggestedSportTypes is what the frontend offers in its picker. The column
// itself is open-ended, so nothing here is enforced as an enum.
var SuggestedSportTypes = []string{
	"Football", "Basketball", "Soccer", "Tennis",
	"Baseball", "Hockey", "Volleyball", "Golf", "Other",
}

type Event struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Date        time.Time `db:"date" json:"date"` // e.g., "2025-03-01T18:00:00Z"
	SportType   string    `db:"sport_type" json:"sport_type"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedBy   uuid.UUID `db:"created_by" json:"created_by"` // set once at creation, never patched
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// PostgREST embeds child rows under the relation name.
	Venues []Venue `db:"-" json:"event_venues"`
}

type Venue struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	VenueName string    `db:"venue_name" json:"venue_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type VenueInput struct {
	VenueName string `json:"venue_name" binding:"required" validate:"required"`
}

type CreateEventInput struct {
	Name        string       `json:"name" binding:"required" validate:"required"`
	Date        time.Time    `json:"date" binding:"required" validate:"required"`
	SportType   string       `json:"sport_type" binding:"required" validate:"required"`
	Description string       `json:"description"`
	Venues      []VenueInput `json:"venues" binding:"required,min=1,dive" validate:"required,min=1,dive"`
}

// UpdateEventInput carries a partial patch. Nil fields are left untouched;
// a non-nil Venues replaces the whole venue set.
type UpdateEventInput struct {
	Name        *string      `json:"name,omitempty"`
	Date        *time.Time   `json:"date,omitempty"`
	SportType   *string      `json:"sport_type,omitempty"`
	Description *string      `json:"description,omitempty"`
	Venues      []VenueInput `json:"venues,omitempty" validate:"omitempty,min=1,dive"`
}

// Patch builds the scalar column map for the events row. created_by and id
// are never part of the patch.
func (in *UpdateEventInput) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if in.Name != nil {
		patch["name"] = *in.Name
	}
	if in.Date != nil {
		patch["date"] = *in.Date
	}
	if in.SportType != nil {
		patch["sport_type"] = *in.SportType
	}
	if in.Description != nil {
		patch["description"] = *in.Description
	}
	return patch
}
