package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRespondWithErrorShape(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, http.StatusNotFound, "Producto no encontrado")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Producto no encontrado", response.Error)
}

func TestErrorHandlingMiddlewareConvertsPanicsTo500(t *testing.T) {
	logger := zap.NewNop()
	handler := ErrorHandlingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, MsgInternalError, response.Error)
}

func TestErrorHandlingMiddlewarePassesThroughOnSuccess(t *testing.T) {
	logger := zap.NewNop()
	handler := ErrorHandlingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProperty_ErrorResponsesAreValidJSON(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every error response carries the message as valid JSON", prop.ForAll(
		func(message string, useCode int) bool {
			standardCodes := []int{
				http.StatusBadRequest,
				http.StatusNotFound,
				http.StatusTooManyRequests,
				http.StatusInternalServerError,
			}

			if useCode < 0 {
				useCode = -useCode
			}
			statusCode := standardCodes[useCode%len(standardCodes)]

			if message == "" {
				message = "test error"
			}

			w := httptest.NewRecorder()
			RespondWithError(w, statusCode, message)

			if w.Code != statusCode {
				return false
			}
			if w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}

			return response.Error == message
		},
		gen.AlphaString(),
		gen.Int(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
