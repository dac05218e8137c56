package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/logging"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/validation"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindBadRequest:
		return http.StatusBadRequest
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error sends a JSON error response.
// AppErrors carry their own kind and message; anything else is logged and reported as 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
		c.JSON(StatusFor(appErr.Kind), ErrorResponse{Error: appErr.Message})
		return
	}

	logging.FromGin(c).Error("request failed", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// BindError sends a 400 response for request payloads gin could not bind.
// Validation failures are reported per field, anything else as text.
func BindError(c *gin.Context, err error) {
	var details any = err.Error()
	if fields := validation.FieldErrors(err); fields != nil {
		details = fields
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: details})
}
