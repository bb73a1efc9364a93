package middleware

import (
	"encoding/hex"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"resource-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxRequestIDKey = "request_id"
	requestIDHeader = "X-Request-ID"
)

// Inbound ids are reused only when they look like something a proxy would generate.
var inboundRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{8,64}$`)

type Logger struct {
	logger   *slog.Logger
	timezone *time.Location
	slow     time.Duration
}

// NewLogger builds the process logger: JSON in release mode, text otherwise.
// It also becomes slog's default so packages without an injected logger share the format.
func NewLogger(cfg config.LogConfig) *Logger {
	timezone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With("service", "resource-scheduler")
	slog.SetDefault(logger)

	return &Logger{logger: logger, timezone: timezone, slow: cfg.SlowRequest}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RequestLogging logs one line per request with the route template, the requester and the outcome.
func RequestLogging(logger *slog.Logger, cfg config.LogConfig) gin.HandlerFunc {
	l := &Logger{logger: logger, timezone: time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset), slow: cfg.SlowRequest}
	return l.middleware()
}

func (l *Logger) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if !inboundRequestID.MatchString(requestID) {
			requestID = l.generateRequestID(startTime)
		}
		c.Set(ctxRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		duration := time.Since(startTime)
		statusCode := c.Writer.Status()

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("route", routeOf(c)),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status_code", statusCode),
			slog.Duration("duration", duration),
		}
		// Auth runs inside route groups, so identity is only known after c.Next.
		if userID, ok := GetUserID(c); ok {
			role, _ := GetUserRole(c)
			attrs = append(attrs, slog.String("user_id", userID.String()), slog.String("role", role.String()))
		}
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level, msg := slog.LevelInfo, "Request completed"
		switch {
		case statusCode >= 500:
			level = slog.LevelError
		case statusCode >= 400:
			level = slog.LevelWarn
		case l.slow > 0 && duration > l.slow:
			level, msg = slog.LevelWarn, "Slow request"
		}
		l.logger.LogAttrs(c.Request.Context(), level, msg, attrs...)
	}
}

// routeOf prefers the template so booking ids don't fan out log cardinality.
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return c.Request.URL.Path
}

func (l *Logger) generateRequestID(at time.Time) string {
	id := uuid.New()
	return at.In(l.timezone).Format("20060102150405") + "-" + hex.EncodeToString(id[:4])
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}
