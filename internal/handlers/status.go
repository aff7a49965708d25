package handlers

import (
	"errors"
	"net/http"

	"messaging-backend/internal/services"
)

// statusFor maps the service error taxonomy onto HTTP status codes.
// Authorization failures surface distinctly from not-found; anything
// outside the taxonomy is a storage failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotMember), errors.Is(err, services.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrChannelNotFound),
		errors.Is(err, services.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrNoCreator),
		errors.Is(err, services.ErrMissingParticipant):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrChannelExists),
		errors.Is(err, services.ErrJoinFailed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
