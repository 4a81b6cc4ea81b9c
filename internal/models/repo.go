package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/supabase-go"
)

var Validate = validator.New()

const (
	EventsTable      = "events"
	EventVenuesTable = "event_venues"
)

type SupabaseRepo struct {
	supabaseClient *supabase.Client
	url            string
	key            string
}

func SupabaseNewRepo(supabaseClient *supabase.Client, url, key string) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		url:            url,
		key:            key,
	}
}

// GetAuthenticatedClient returns a Supabase client bound to the given access
// token. Row-level security on the events tables requires an authenticated
// principal for every read and write, so repos build one of these per call.
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}
