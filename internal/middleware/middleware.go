package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kwame-ansah/gameday/internal/config"
	"github.com/kwame-ansah/gameday/internal/helpers"
	"github.com/kwame-ansah/gameday/internal/models"
	"github.com/kwame-ansah/gameday/internal/services"
	"github.com/kwame-ansah/gameday/internal/session"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler is the outer error boundary: anything a handler reports via
// c.Error that was not already answered degrades to a generic 500 envelope.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(models.GenericErrorMessage))
			}
		}
	}
}

var imageExtensions = []string{".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp"}

// IsProtectedPath reports whether a path requires a valid session. Every
// path is protected except the auth entry points, the error page, health,
// and static assets.
func IsProtectedPath(path string) bool {
	switch path {
	case "/login", "/signup", "/logout", "/error", "/healthz", "/favicon.ico":
		return false
	}
	if strings.HasPrefix(path, "/auth/") || strings.HasPrefix(path, "/static/") {
		return false
	}
	lower := strings.ToLower(path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	return true
}

// SessionRefresh runs once per request before anything else touches it. It
// validates the access-token cookie, rotates the pair via the refresh token
// when validation fails, and is the sole place that decides reachability of
// protected routes.
func SessionRefresh(cfg *config.Config, authService *services.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromRequest(c)
		c.Set(session.ContextKey, sess)

		token := sess.Cookie(session.AccessTokenCookie)

		var claims *helpers.CustomClaims
		if token != "" {
			var err error
			claims, err = helpers.ValidateToken(cfg.SupabaseURL, token)
			if err != nil {
				claims = nil
			}
		}

		if claims == nil {
			if refreshToken := sess.RefreshToken(); refreshToken != "" {
				tokenRes, err := authService.RefreshToken(c.Request.Context(), refreshToken)
				if err != nil {
					logger.Error("Token refresh failed", "error", err)
				} else if tokenRes.AccessToken != "" {
					sess.SetAuthCookies(tokenRes.AccessToken, tokenRes.ExpiresIn, tokenRes.RefreshToken)
					refreshed, err := helpers.ValidateToken(cfg.SupabaseURL, tokenRes.AccessToken)
					if err != nil {
						logger.Error("Refreshed token validation failed", "error", err)
					} else {
						logger.Info("Token refreshed successfully",
							"user_id", refreshed.Subject,
							"expires_in", tokenRes.ExpiresIn,
						)
						claims = refreshed
						token = tokenRes.AccessToken
					}
				}
			}
		}

		if claims != nil {
			sess.Authenticate(claims, token)
		}

		if IsProtectedPath(c.Request.URL.Path) && !sess.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}
