package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/crackgrid/internal/app/models/dto"
)

var validate = validator.New()

// BindAndValidate decodes the JSON body into dst and runs its validate tags.
// On failure it writes a 400 response and returns false.
func BindAndValidate[T any](c *gin.Context, dst *T) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	if err := validate.Struct(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(HandleValidationError(err)))
		return false
	}

	return true
}

// HandleValidationError turns validator output into a single error detail
// listing every failing field
func HandleValidationError(err error) *dto.ErrorDetail {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errorDetail.WithDetails(err.Error())
	}

	problems := dto.NewValidationErrors()
	for _, fe := range fieldErrors {
		problems.AddError(fe.Field(), formatValidationError(fe))
	}
	if len(fieldErrors) == 1 {
		errorDetail = errorDetail.WithField(fieldErrors[0].Field())
	}
	return errorDetail.WithDetails(problems.Errors)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
