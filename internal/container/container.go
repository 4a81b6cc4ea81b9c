package container

import (
	"log/slog"

	"github.com/kwame-ansah/gameday/internal/config"
	"github.com/kwame-ansah/gameday/internal/models"
	"github.com/kwame-ansah/gameday/internal/services"
	"github.com/supabase-community/supabase-go"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Config         *config.Config
	SupabaseClient *supabase.Client
	AuthService    *services.AuthService
	EventService   *services.EventService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	supabaseClient *supabase.Client,
	supaURL, supaKey string,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient, supaURL, supaKey)
	authService := services.NewAuthService(supa)
	eventService := services.NewEventService(supa)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		SupabaseClient: supabaseClient,
		AuthService:    authService,
		EventService:   eventService,
	}
}
