package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/emre/schoolrecords/internal/app/models/dto"
	"github.com/emre/schoolrecords/internal/pkg/apperrors"
)

// HandleAPIError maps a service-layer error to its HTTP status and
// response body. Anything outside the known taxonomy becomes a 500
// whose detail is exposed only in development mode.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()
	field := apperrors.FieldOf(err)

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(message, field))

	case errors.Is(err, apperrors.ErrMalformedID):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))

	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewFieldErrorResponse(message, field))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		// Deliberately generic: the response never reveals whether the
		// email or the password was wrong.
		c.JSON(http.StatusUnauthorized, dto.NewFieldErrorResponse("Invalid email or password", "credentials"))

	case errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(message))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("Access denied"))

	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewFieldErrorResponse(message, field))

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		resp := dto.NewErrorResponse("An unexpected error occurred")
		if gin.IsDebugging() {
			resp.Detail = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}
