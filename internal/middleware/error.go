package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// MsgInternalError is the generic body for unexpected failures. Persistence
// errors are surfaced with it instead of being swallowed.
const MsgInternalError = "error interno del servidor"

// ErrorResponse is the body for non-validation failures (404, 500).
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse wraps the field errors accumulated by Validate.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithError sends a singular error response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, MsgInternalError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
