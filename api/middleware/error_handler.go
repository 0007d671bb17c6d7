// api/middleware/error_handler.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/asklytics/asklytics-backend/internal/auth"
	"github.com/asklytics/asklytics-backend/internal/storage"
)

// ErrorHandler creates a Gin middleware for centralized error handling on
// the auth routes. The query-pipeline routes report errors in the response
// payload instead and never attach errors here.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Only the last error drives the response.
		err := c.Errors.Last().Err
		customLog.Printf("[ErrorHandler] Detected error: %v | Type: %T", err, err)

		var statusCode int
		var userMessage string

		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			statusCode = http.StatusNotFound
			userMessage = err.Error()
		case errors.Is(err, storage.ErrDuplicateUser):
			statusCode = http.StatusConflict
			userMessage = err.Error()
		case errors.Is(err, storage.ErrInvalidCredentials):
			statusCode = http.StatusUnauthorized
			userMessage = err.Error()
		case errors.Is(err, auth.ErrTokenExpired):
			statusCode = http.StatusUnauthorized
			userMessage = "Authentication token has expired."
		case errors.Is(err, auth.ErrTokenMalformed),
			errors.Is(err, auth.ErrTokenInvalid),
			errors.Is(err, auth.ErrTokenClaimsInvalid),
			errors.Is(err, auth.ErrUnexpectedSigningMethod):
			statusCode = http.StatusUnauthorized
			userMessage = "Invalid or malformed authentication token."
		default:
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				statusCode = http.StatusBadRequest
				userMessage = "Validation failed. Please check your input."
				for _, fe := range validationErrs {
					customLog.Printf("Validation Error: Field %s failed on %s", fe.Field(), fe.Tag())
				}
				break
			}
			// Deliberately verbose: the raw error text aids debugging at
			// the cost of leaking backend detail.
			statusCode = http.StatusInternalServerError
			userMessage = "An unexpected internal server error occurred: " + err.Error()
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, gin.H{"success": false, "error": userMessage})
		}
	}
}
