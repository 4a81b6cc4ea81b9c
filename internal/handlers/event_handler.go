package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kwame-ansah/gameday/internal/models"
	"github.com/kwame-ansah/gameday/internal/services"
	"github.com/kwame-ansah/gameday/internal/session"
)

func parseEventID(c *gin.Context) (uuid.UUID, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("event ID is required"))
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event ID format"))
		return uuid.Nil, false
	}
	return parsed, true
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)

		var input models.CreateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		event, err := es.CreateEvent(c.Request.Context(), &input, sess.Principal(), sess.AccessToken())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, services.ErrNotAuthenticated) {
				status = http.StatusUnauthorized
			}
			c.JSON(status, models.ErrorResponse(models.NormalizeError(err)))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(event, "Event created successfully"))
	}
}

// ListEvents doubles as search: absent query parameters mean no constraint.
func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)

		searchTerm := c.Query("search")
		sportType := c.Query("sport_type")

		events, err := es.SearchAndFilterEvents(c.Request.Context(), searchTerm, sportType, sess.AccessToken())
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(models.NormalizeError(err)))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

func GetEventByID(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseEventID(c)
		if !ok {
			return
		}
		sess := session.FromContext(c)

		event, err := es.GetEventByID(c.Request.Context(), eventID, sess.AccessToken())
		if err != nil {
			if errors.Is(err, models.ErrEventNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(models.NormalizeError(err)))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func UpdateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseEventID(c)
		if !ok {
			return
		}
		sess := session.FromContext(c)

		var input models.UpdateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		event, err := es.UpdateEvent(c.Request.Context(), eventID, &input, sess.AccessToken())
		if err != nil {
			if errors.Is(err, models.ErrEventNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(models.NormalizeError(err)))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event updated successfully"))
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseEventID(c)
		if !ok {
			return
		}
		sess := session.FromContext(c)

		if err := es.DeleteEvent(c.Request.Context(), eventID, sess.AccessToken()); err != nil {
			if errors.Is(err, models.ErrEventNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(models.NormalizeError(err)))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully"))
	}
}

// DeleteEventAction deletes and then unconditionally redirects to the
// dashboard. A failed delete is raised to the error boundary instead of
// being answered here, so the redirect never happens on failure.
func DeleteEventAction(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseEventID(c)
		if !ok {
			return
		}
		sess := session.FromContext(c)

		if err := es.DeleteEvent(c.Request.Context(), eventID, sess.AccessToken()); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Redirect(http.StatusSeeOther, "/dashboard")
	}
}
