package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kwame-ansah/gameday/internal/config"
	"github.com/kwame-ansah/gameday/internal/helpers"
	"github.com/kwame-ansah/gameday/internal/services"
	"github.com/kwame-ansah/gameday/internal/session"
	"github.com/supabase-community/auth-go/types"
)

func TestIsProtectedPath(t *testing.T) {
	cases := []struct {
		path      string
		protected bool
	}{
		{"/dashboard", true},
		{"/api/v1/events", true},
		{"/api/v1/events/123", true},
		{"/", true},
		{"/login", false},
		{"/signup", false},
		{"/logout", false},
		{"/error", false},
		{"/healthz", false},
		{"/favicon.ico", false},
		{"/auth/callback", false},
		{"/auth/google", false},
		{"/static/app.css", false},
		{"/images/logo.PNG", false},
		{"/banner.svg", false},
		{"/photo.jpeg", false},
		{"/team.webp", false},
	}

	for _, tc := range cases {
		if got := IsProtectedPath(tc.path); got != tc.protected {
			t.Errorf("IsProtectedPath(%q) = %v, want %v", tc.path, got, tc.protected)
		}
	}
}

type fakeAuthRepo struct {
	refreshResp *types.TokenResponse
	refreshErr  error
}

func (f *fakeAuthRepo) SignUpWithEmail(ctx context.Context, email, password string) (*types.SignupResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthRepo) SignInWithEmail(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeAuthRepo) SignOut(ctx context.Context, accessToken string) error { return nil }

func (f *fakeAuthRepo) GoogleAuthURL(ctx context.Context, redirectTo string) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (f *fakeAuthRepo) ExchangeCode(ctx context.Context, code, verifier string) (*types.TokenResponse, error) {
	return nil, errors.New("not implemented")
}

// signedToken builds a token the JWKS fallback parser accepts.
func signedToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := &helpers.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("top-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func refreshRouter(repo *fakeAuthRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	// Unreachable JWKS endpoint forces the fallback parse path.
	cfg := &config.Config{SupabaseURL: "http://127.0.0.1:1"}

	r := gin.New()
	r.Use(SessionRefresh(cfg, services.NewAuthService(repo), logger))
	r.GET("/dashboard", func(c *gin.Context) {
		sess := session.FromContext(c)
		c.JSON(http.StatusOK, gin.H{"principal": sess.Principal()})
	})
	r.GET("/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestSessionRefreshRedirectsAnonymousFromProtectedPath(t *testing.T) {
	r := refreshRouter(&fakeAuthRepo{refreshErr: errors.New("no session")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q, want /login", loc)
	}
}

func TestSessionRefreshAllowsAnonymousOnPublicPath(t *testing.T) {
	r := refreshRouter(&fakeAuthRepo{refreshErr: errors.New("no session")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestSessionRefreshAcceptsValidToken(t *testing.T) {
	r := refreshRouter(&fakeAuthRepo{refreshErr: errors.New("should not be called")})
	principal := uuid.New().String()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{
		Name:  session.AccessTokenCookie,
		Value: signedToken(t, principal, time.Now().Add(time.Hour)),
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), principal) {
		t.Errorf("principal %s not attached to request", principal)
	}
}

func TestSessionRefreshRotatesExpiredToken(t *testing.T) {
	principal := uuid.New().String()
	fresh := signedToken(t, principal, time.Now().Add(time.Hour))

	payload, _ := json.Marshal(map[string]interface{}{
		"access_token":  fresh,
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": "rotated-refresh",
	})
	var resp types.TokenResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("failed to build token response: %v", err)
	}

	r := refreshRouter(&fakeAuthRepo{refreshResp: &resp})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{
		Name:  session.AccessTokenCookie,
		Value: signedToken(t, principal, time.Now().Add(-time.Hour)),
	})
	req.AddCookie(&http.Cookie{Name: session.RefreshTokenCookie, Value: "stale-refresh"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 after rotation (body %s)", w.Code, w.Body.String())
	}

	cookies := strings.Join(w.Header().Values("Set-Cookie"), "; ")
	if !strings.Contains(cookies, session.AccessTokenCookie+"=") {
		t.Errorf("rotated access token cookie not set: %q", cookies)
	}
	if !strings.Contains(cookies, session.RefreshTokenCookie+"=rotated-refresh") {
		t.Errorf("rotated refresh token cookie not set: %q", cookies)
	}
}
