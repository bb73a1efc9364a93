//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resource-scheduler/internal/domain/user"
	"resource-scheduler/internal/handler/middleware"
	"resource-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func loggedRouter(buf *bytes.Buffer, slow time.Duration, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := gin.New()
	r.Use(middleware.RequestLogging(logger, config.LogConfig{TimeZone: "UTC", SlowRequest: slow}))
	r.GET("/api/bookings/:id", h)
	return r
}

func TestRequestLogging(t *testing.T) {
	userID := uuid.New()

	testCases := []struct {
		name          string
		slow          time.Duration
		inboundID     string
		handler       gin.HandlerFunc
		wantInLog     []string
		wantRequestID string
	}{
		{
			name: "success: logs route template and requester",
			handler: func(c *gin.Context) {
				middleware.SetIdentity(c, userID, user.RoleStaff)
				c.Status(http.StatusOK)
			},
			wantInLog: []string{"route=/api/bookings/:id", "user_id=" + userID.String(), "role=staff", "level=INFO"},
		},
		{
			name:          "success: reuses a well-formed inbound request id",
			inboundID:     "edge-7f3a91c0",
			handler:       func(c *gin.Context) { c.Status(http.StatusOK) },
			wantInLog:     []string{"request_id=edge-7f3a91c0"},
			wantRequestID: "edge-7f3a91c0",
		},
		{
			name:      "success: 4xx logs at warn",
			handler:   func(c *gin.Context) { c.Status(http.StatusNotFound) },
			wantInLog: []string{"level=WARN", "status_code=404"},
		},
		{
			name: "success: slow request is flagged",
			slow: time.Millisecond,
			handler: func(c *gin.Context) {
				time.Sleep(5 * time.Millisecond)
				c.Status(http.StatusOK)
			},
			wantInLog: []string{"level=WARN", `msg="Slow request"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := loggedRouter(&buf, tc.slow, tc.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+uuid.NewString(), nil)
			if tc.inboundID != "" {
				req.Header.Set("X-Request-ID", tc.inboundID)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if tc.wantRequestID != "" {
				assert.Equal(t, tc.wantRequestID, w.Header().Get("X-Request-ID"))
			}
			for _, want := range tc.wantInLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
