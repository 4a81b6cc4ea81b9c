package models

import "strings"

// GenericErrorMessage is returned when a failure cannot be classified at all.
const GenericErrorMessage = "An unexpected error occurred"

// NormalizeError maps raw backend failures to user-presentable messages.
// Postgres/PostgREST surface constraint violations as message text rather
// than typed errors, so classification is a best-effort scan over the
// message. Checks run in order; first match wins.
func NormalizeError(err error) string {
	if err == nil {
		return GenericErrorMessage
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "duplicate key"):
		return "This record already exists"
	case strings.Contains(lower, "foreign key"):
		return "Referenced record not found"
	case strings.Contains(lower, "null value in column"):
		return "Required field is missing"
	case strings.Contains(lower, "unique constraint"):
		return "This value already exists"
	}

	if strings.TrimSpace(msg) == "" {
		return GenericErrorMessage
	}

	return msg
}
