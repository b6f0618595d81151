package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/profleet/fleettrack/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccessResponse(t *testing.T) {
	c, rec := newContext()

	err := SuccessResponse(c, http.StatusCreated, "Sample stored", map[string]string{"id": "s1"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var response Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "Sample stored", response.Message)
	assert.Equal(t, map[string]interface{}{"id": "s1"}, response.Data)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name         string
		send         func(c echo.Context) error
		expectedCode int
		expectedMsg  string
	}{
		{name: "bad request", send: func(c echo.Context) error { return BadRequestResponse(c, "invalid payload") }, expectedCode: http.StatusBadRequest, expectedMsg: "invalid payload"},
		{name: "unauthorized default", send: func(c echo.Context) error { return UnauthorizedResponse(c, "") }, expectedCode: http.StatusUnauthorized, expectedMsg: "Unauthorized"},
		{name: "forbidden default", send: func(c echo.Context) error { return ForbiddenResponse(c, "") }, expectedCode: http.StatusForbidden, expectedMsg: "Forbidden"},
		{name: "status text fallback", send: func(c echo.Context) error { return ErrorResponseHandler(c, http.StatusServiceUnavailable, "") }, expectedCode: http.StatusServiceUnavailable, expectedMsg: "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, tt.send(c))

			assert.Equal(t, tt.expectedCode, rec.Code)
			var response Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, tt.expectedMsg, response.Error)
			assert.Equal(t, tt.expectedCode, response.Code)
		})
	}
}

func TestAppErrorResponse(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{name: "validation", err: apperror.Validation("latitude must be between -90 and 90"), expectedCode: http.StatusBadRequest, expectedMsg: "latitude must be between -90 and 90"},
		{name: "authorization hides detail", err: apperror.Authorization("trip t1 belongs to driver d2"), expectedCode: http.StatusForbidden, expectedMsg: "not permitted"},
		{name: "not found", err: apperror.NotFound("trip not found"), expectedCode: http.StatusNotFound, expectedMsg: "trip not found"},
		{name: "trip state", err: apperror.TripState("trip is not in progress"), expectedCode: http.StatusConflict, expectedMsg: "trip is not in progress"},
		{name: "unknown", err: errors.New("boom"), expectedCode: http.StatusInternalServerError, expectedMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, AppErrorResponse(c, tt.err))

			assert.Equal(t, tt.expectedCode, rec.Code)
			var response Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedMsg, response.Error)
		})
	}
}
