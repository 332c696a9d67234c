package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
	"github.com/qfddxs/Hospital/internal/pkg/logger"
)

// HandleAPIError maps an error returned by a service to its HTTP response
func HandleAPIError(c *gin.Context, err error) {
	if verr, ok := apperrors.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewValidationErrorDetail(verr)))
		return
	}

	var (
		status int
		detail *dto.ErrorDetail
	)

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithSeverity(dto.ErrorSeverityWarning)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status = http.StatusNotFound
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Not found.").
			WithSeverity(dto.ErrorSeverityWarning)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "No active account found with the given credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "User account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token is invalid or has been revoked")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication credentials were not provided.")
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("requestID", c.GetString(ContextRequestID)).
			Msg("Unhandled error")
		status = http.StatusInternalServerError
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}
