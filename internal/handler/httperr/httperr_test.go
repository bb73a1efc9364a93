//go:build unit

package httperr_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resource-scheduler/internal/handler/httperr"
	"resource-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		want   string
	}{
		{name: "success: conflict", status: http.StatusConflict, want: "booking_conflict"},
		{name: "success: validation", status: http.StatusUnprocessableEntity, want: "validation_failed"},
		{name: "success: any 5xx is internal", status: http.StatusBadGateway, want: "internal"},
		{name: "success: unmapped status", status: http.StatusTeapot, want: "error"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := httperr.New(tc.status, "msg", nil)
			assert.Equal(t, tc.want, resp.Error.Code)
			assert.Equal(t, tc.status, resp.Status)
		})
	}
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	cause := errs.New("resource locked")
	httperr.AbortWithError(c, http.StatusConflict, cause, "Resource is already fully booked during this time.", gin.H{"conflicts": 1})

	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors[0].Err, cause)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "booking_conflict", errBody["code"])
	assert.Equal(t, "Resource is already fully booked during this time.", errBody["message"])
	assert.EqualValues(t, 1, body["detail"].(map[string]any)["conflicts"])

	assert.Panics(t, func() {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "Invalid request", nil)
	})
}
