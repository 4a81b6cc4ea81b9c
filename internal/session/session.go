// Package session holds the request-scoped accessor for the auth cookie
// pair. All cookie writes funnel through here; callers that only need read
// access check CanWriteCookies instead of relying on writes silently
// no-opping.
package session

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kwame-ansah/gameday/internal/helpers"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	CodeVerifierCookie = "code_verifier"

	refreshTokenMaxAge = 3600 * 24 * 30 // 30 days
	verifierMaxAge     = 600            // one OAuth round-trip
)

const ContextKey = "session"

type Session struct {
	c        *gin.Context
	claims   *helpers.CustomClaims
	token    string
	canWrite bool
}

// FromRequest builds the accessor for an inbound request. Handlers run with
// a live response writer, so cookie writes are allowed.
func FromRequest(c *gin.Context) *Session {
	return &Session{c: c, canWrite: true}
}

// ReadOnly returns an accessor whose write methods refuse to touch the
// response. Useful for call sites that run after the headers are flushed.
func ReadOnly(c *gin.Context) *Session {
	return &Session{c: c, canWrite: false}
}

// FromContext returns the accessor the refresh middleware stored, or a fresh
// unauthenticated one when the middleware did not run on this route.
func FromContext(c *gin.Context) *Session {
	if v, ok := c.Get(ContextKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return FromRequest(c)
}

func (s *Session) CanWriteCookies() bool {
	return s.canWrite
}

func (s *Session) Cookie(name string) string {
	v, err := s.c.Cookie(name)
	if err != nil {
		return ""
	}
	return v
}

func (s *Session) AccessToken() string {
	if s.token != "" {
		return s.token
	}
	return s.Cookie(AccessTokenCookie)
}

func (s *Session) RefreshToken() string {
	return s.Cookie(RefreshTokenCookie)
}

// Authenticate attaches validated claims, and optionally a rotated access
// token that supersedes the cookie value for the rest of the request.
func (s *Session) Authenticate(claims *helpers.CustomClaims, accessToken string) {
	s.claims = claims
	s.token = accessToken
}

func (s *Session) Claims() *helpers.CustomClaims {
	return s.claims
}

func (s *Session) Authenticated() bool {
	return s.claims != nil && s.claims.Subject != ""
}

// Principal returns the authenticated user id, empty when anonymous.
func (s *Session) Principal() string {
	if s.claims == nil {
		return ""
	}
	return s.claims.Principal()
}

func (s *Session) SetAuthCookies(accessToken string, expiresIn int, refreshToken string) bool {
	if !s.canWrite {
		return false
	}
	secure := isProduction()
	s.c.SetCookie(AccessTokenCookie, accessToken, expiresIn, "/", "", secure, true)
	s.c.SetCookie(RefreshTokenCookie, refreshToken, refreshTokenMaxAge, "/", "", secure, true)
	return true
}

func (s *Session) SetCodeVerifier(verifier string) bool {
	if !s.canWrite {
		return false
	}
	s.c.SetCookie(CodeVerifierCookie, verifier, verifierMaxAge, "/", "", isProduction(), true)
	return true
}

func (s *Session) ClearAuthCookies() bool {
	if !s.canWrite {
		return false
	}
	secure := isProduction()
	s.c.SetCookie(AccessTokenCookie, "", -1, "/", "", secure, true)
	s.c.SetCookie(RefreshTokenCookie, "", -1, "/", "", secure, true)
	s.c.SetCookie(CodeVerifierCookie, "", -1, "/", "", secure, true)
	return true
}

func isProduction() bool {
	return os.Getenv("GIN_MODE") == "production"
}
