package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/crackgrid/internal/app/models/dto"
	"github.com/yigit/crackgrid/internal/pkg/apperrors"
	"github.com/yigit/crackgrid/internal/pkg/logger"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := ""
	if errors.As(err, &custom) {
		message = custom.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request", message)
	case errors.Is(err, apperrors.ErrNotFound):
		abortWithError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", message)
	case apperrors.Is(err, apperrors.ErrNoDataFound, apperrors.ErrEmptyRoster):
		abortWithError(c, http.StatusNotFound, dto.ErrorCodeNoData, "No data found for this selection", "")
	case errors.Is(err, apperrors.ErrTransport):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Data store unavailable")
		abortWithError(c, http.StatusServiceUnavailable, dto.ErrorCodeDataUnavailable, "Data store unavailable", "")
	default:
		// Handle unknown errors
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		abortWithError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error", "")
	}
}

// HandleBadParam answers 400 for a malformed path or query parameter
func HandleBadParam(c *gin.Context, field, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+field).WithField(field)
	if details != "" {
		errorDetail = errorDetail.WithDetails(details)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

func abortWithError(c *gin.Context, status int, code dto.ErrorCode, message, details string) {
	errorDetail := dto.NewErrorDetail(code, message)
	if details != "" {
		errorDetail = errorDetail.WithDetails(details)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(errorDetail))
}
