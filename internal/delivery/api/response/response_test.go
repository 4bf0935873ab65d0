package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "internhub/internal/delivery/context"
	domainerrors "internhub/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	deliverycontext.SetRequestID(c, "req-1")

	return c, rec
}

func TestPending(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter time.Duration
		want       string
	}{
		{name: "whole seconds", retryAfter: 3 * time.Second, want: "3"},
		{name: "rounded up to one", retryAfter: 200 * time.Millisecond, want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, Pending(c, tt.retryAfter, map[string]string{"status": "loading"}))

			assert.Equal(t, http.StatusAccepted, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Retry-After"))

			var body SuccessResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "req-1", body.Meta.RequestID)
		})
	}
}

func TestError_DropsDetailsForAuthFailures(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "no", "password too short"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
	assert.Nil(t, body.Error.Details)

	c, rec = newContext()
	require.NoError(t, Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "bad", "email is required"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "email is required", body.Error.Details)
}

func TestHandleAppError(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, HandleAppError(c, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign in")))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, _ = newContext()
	plain := errors.New("socket closed")
	assert.ErrorIs(t, HandleAppError(c, plain), plain)
}
