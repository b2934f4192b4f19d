package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libcatalog-backend/internal/shared/domainerror"
)

// ErrorBody is the wire shape for every failure response.
// Details itemizes individual violations when schema validation
// reports more than one at a time.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// JSON writes a success payload as-is.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Error writes a failure response with a single message.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// ErrorWithDetails writes a failure response itemizing each violation.
func ErrorWithDetails(c *gin.Context, statusCode int, message string, details []string) {
	c.JSON(statusCode, ErrorBody{Error: message, Details: details})
}

// FromError maps a domain/application error to its status code and writes
// the body. Errors outside the taxonomy become opaque 500s.
func FromError(c *gin.Context, err error) {
	status := domainerror.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		Error(c, status, "internal server error")
		return
	}
	Error(c, status, err.Error())
}

// NotFound is used by read handlers for missing resources; lookups that
// fail while validating a write request go through FromError instead.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}
