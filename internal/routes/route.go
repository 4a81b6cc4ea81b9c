package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kwame-ansah/gameday/internal/container"
	"github.com/kwame-ansah/gameday/internal/handlers"
	"github.com/kwame-ansah/gameday/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(appContainer *container.Container) *gin.Engine {
	if appContainer.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{appContainer.Config.SiteURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(appContainer.Logger))
	r.Use(middleware.ErrorHandler(appContainer.Logger))
	r.Use(gin.Recovery())

	// The refresh middleware runs on every path; it decides reachability of
	// protected routes itself, so public routes register under it too.
	r.Use(middleware.SessionRefresh(appContainer.Config, appContainer.AuthService, appContainer.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"service": "gameday-api",
		})
	})

	// Auth entry points
	r.POST("/signup", handlers.SignUp(appContainer.AuthService))
	r.POST("/login", handlers.SignIn(appContainer.AuthService))
	r.POST("/logout", handlers.SignOut(appContainer.AuthService, appContainer.Logger))
	r.GET("/auth/google", handlers.GoogleAuth(appContainer.AuthService, appContainer.Config))
	r.GET("/auth/callback", handlers.AuthCallback(appContainer.AuthService))
	r.GET("/error", handlers.ErrorPage())

	// Protected surface
	r.GET("/dashboard", handlers.ListEvents(appContainer.EventService))

	eventRoutes := r.Group("/api/v1/events")
	{
		eventRoutes.POST("", handlers.CreateEvent(appContainer.EventService))
		eventRoutes.GET("", handlers.ListEvents(appContainer.EventService))
		eventRoutes.GET("/:id", handlers.GetEventByID(appContainer.EventService))
		eventRoutes.PATCH("/:id", handlers.UpdateEvent(appContainer.EventService))
		eventRoutes.DELETE("/:id", handlers.DeleteEvent(appContainer.EventService))
		eventRoutes.POST("/:id/delete", handlers.DeleteEventAction(appContainer.EventService))
	}

	return r
}
