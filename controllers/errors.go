package controllers

import (
	"errors"
	"net/http"

	"github.com/yeremiapane/dinehub/services"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var ErrNoPermission = &CustomError{"You do not have permission to perform this action"}

// statusForError maps the service failure taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrLocationRejected),
		errors.Is(err, services.ErrCrossTenant):
		return http.StatusForbidden
	case errors.Is(err, services.ErrSessionExpired),
		errors.Is(err, services.ErrSessionEnded):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrNoItems):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrTargetNotActive):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
