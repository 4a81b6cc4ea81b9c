package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kwame-ansah/gameday/internal/middleware"
	"github.com/kwame-ansah/gameday/internal/models"
	"github.com/kwame-ansah/gameday/internal/services"
)

type stubEventsRepo struct {
	createCalls int
	deleteErr   error
	deleteCalls int
	getErr      error
	getEvent    *models.Event
}

func (s *stubEventsRepo) CreateEvent(ctx context.Context, input *models.CreateEventInput, createdBy uuid.UUID, accessToken string) (*models.Event, error) {
	s.createCalls++
	return &models.Event{ID: uuid.New(), Name: input.Name, CreatedBy: createdBy}, nil
}

func (s *stubEventsRepo) GetEventByID(ctx context.Context, id uuid.UUID, accessToken string) (*models.Event, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getEvent, nil
}

func (s *stubEventsRepo) ListEvents(ctx context.Context, accessToken string) ([]*models.Event, error) {
	return nil, nil
}

func (s *stubEventsRepo) SearchEvents(ctx context.Context, searchTerm, sportType, accessToken string) ([]*models.Event, error) {
	return nil, nil
}

func (s *stubEventsRepo) UpdateEvent(ctx context.Context, id uuid.UUID, input *models.UpdateEventInput, accessToken string) (*models.Event, error) {
	return nil, nil
}

func (s *stubEventsRepo) DeleteEvent(ctx context.Context, id uuid.UUID, accessToken string) error {
	s.deleteCalls++
	return s.deleteErr
}

func TestCreateEventUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &stubEventsRepo{}
	r := gin.New()
	r.POST("/api/v1/events", CreateEvent(services.NewEventService(repo)))

	body := `{"name":"5v5 League","date":"2025-03-01T18:00:00Z","sport_type":"Soccer","venues":[{"venue_name":"Field A"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	var resp models.ApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Success {
		t.Error("expected error envelope")
	}
	if resp.Error != "User not authenticated" {
		t.Errorf("error = %q, want %q", resp.Error, "User not authenticated")
	}
	if repo.createCalls != 0 {
		t.Errorf("backend insert attempted %d times, want 0", repo.createCalls)
	}
}

func TestGetEventByIDNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &stubEventsRepo{getErr: models.ErrEventNotFound}
	r := gin.New()
	r.GET("/api/v1/events/:id", GetEventByID(services.NewEventService(repo)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/"+uuid.New().String(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetEventByIDRejectsMalformedID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/v1/events/:id", GetEventByID(services.NewEventService(&stubEventsRepo{})))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDeleteEventActionRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &stubEventsRepo{}
	r := gin.New()
	r.POST("/api/v1/events/:id/delete", DeleteEventAction(services.NewEventService(repo)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+uuid.New().String()+"/delete", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("redirect = %q, want /dashboard", loc)
	}
	if repo.deleteCalls != 1 {
		t.Errorf("delete called %d times, want 1", repo.deleteCalls)
	}
}

// A failed delete raises to the error boundary; no redirect happens.
func TestDeleteEventActionFailureHitsErrorBoundary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	repo := &stubEventsRepo{deleteErr: models.ErrEventNotFound}
	r := gin.New()
	r.Use(middleware.ErrorHandler(logger))
	r.POST("/api/v1/events/:id/delete", DeleteEventAction(services.NewEventService(repo)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+uuid.New().String()+"/delete", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "" {
		t.Errorf("unexpected redirect to %q on failed delete", loc)
	}
}
