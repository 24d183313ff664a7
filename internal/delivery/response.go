package delivery

import (
	"errors"
	"net/http"
	"strings"

	"coffeeshop/internal/domain"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
	Fields  interface{} `json:"Fields,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

// ValidationErrorResponse carries per-field messages so the storefront can
// attach each one to its input.
func ValidationErrorResponse(c *gin.Context, fields domain.FieldErrors) {
	c.JSON(http.StatusBadRequest, Response{
		Status:  "Fail",
		Message: "Validation failed",
		Fields:  fields,
	})
}

func mapErrorToStatus(err error) int {
	if errors.Is(err, domain.ErrCheckoutInProgress) {
		return http.StatusConflict
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(errMsg, "already exists") || strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint") {
		return http.StatusConflict
	}
	if strings.Contains(errMsg, "invalid") ||
		strings.Contains(errMsg, "cannot be empty") ||
		strings.Contains(errMsg, "cannot be negative") ||
		strings.Contains(errMsg, "must be at least") ||
		strings.Contains(errMsg, "empty cart") ||
		strings.Contains(errMsg, "cannot cancel") ||
		strings.Contains(errMsg, "cannot change") ||
		strings.Contains(errMsg, "constraint violation") {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
