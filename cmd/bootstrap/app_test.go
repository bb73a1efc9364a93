//go:build integration

package bootstrap_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"resource-scheduler/cmd/bootstrap"
	"resource-scheduler/cmd/bootstrap/components"
	"resource-scheduler/internal/domain/user"
	resdto "resource-scheduler/internal/handler/dto/response"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/pkg/jwt"
	"resource-scheduler/internal/testutil/dbtest"
	"resource-scheduler/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

type AppSuite struct {
	suite.Suite
	router *gin.Engine
	pool   *pgxpool.Pool
	tokens *jwt.Service
	app    *fx.App
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	t := s.T()

	_, dbCfg := dbtest.NewDatabase(t)
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Redis = config.RedisConfig{Addr: dbtest.RedisAddr(t), CacheTTL: time.Minute}

	s.app = fx.New(
		fx.Supply(cfg),
		bootstrap.LoggerModule,
		bootstrap.TracingModule,
		bootstrap.DBModule,
		components.PersistenceModule,
		components.InfraModule,
		components.UseCaseModule,
		bootstrap.JWTModule,
		components.HandlerModule,
		components.ReaperModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		fx.Populate(&s.router, &s.pool, &s.tokens),
		fx.NopLogger,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, s.app.Start(ctx))
}

func (s *AppSuite) TearDownSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.NoError(s.app.Stop(ctx))
}

func (s *AppSuite) tokenFor(id uuid.UUID, role user.Role) string {
	token, err := s.tokens.GenerateToken(id, role)
	s.Require().NoError(err)
	return token
}

func (s *AppSuite) TestHealth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AppSuite) TestPreemptionFlow() {
	t := s.T()
	resourceID := dbtest.CreateResource(t, s.pool, "Main Hall", 1)
	studentID := dbtest.CreateUser(t, s.pool, "student")
	adminID := dbtest.CreateUser(t, s.pool, "admin")
	studentToken := s.tokenFor(studentID, user.RoleStudent)
	adminToken := s.tokenFor(adminID, user.RoleAdmin)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	end := start.Add(time.Hour)
	window := "?start=" + start.Format(time.RFC3339) + "&end=" + end.Format(time.RFC3339)
	availabilityURL := "/api/resources/" + resourceID.String() + "/availability" + window

	var report resdto.AvailabilityResponse
	rec := httptest.PerformRequest(t, s.router, http.MethodGet, availabilityURL, nil, studentToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &report)
	s.True(report.Available)

	var low resdto.BookingResponse
	rec = httptest.PerformRequest(t, s.router, http.MethodPost, "/api/bookings", map[string]any{
		"resource_id": resourceID, "start_time": start, "end_time": end,
		"purpose": "study group", "category": "student_meeting",
	}, studentToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &low)
	s.Equal("approved", low.Status)
	s.Regexp(`^RBS-\d{8}-[A-Z0-9]{6}$`, low.Reference)

	rec = httptest.PerformRequest(t, s.router, http.MethodGet, availabilityURL, nil, studentToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &report)
	s.False(report.Available)
	s.Equal("Resource is already fully booked during this time.", report.Message)

	var high resdto.BookingResponse
	rec = httptest.PerformRequest(t, s.router, http.MethodPost, "/api/bookings", map[string]any{
		"resource_id": resourceID, "start_time": start, "end_time": end,
		"purpose": "graduation", "category": "university_activity",
	}, adminToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &high)
	s.Greater(high.Priority, low.Priority)

	var bumped resdto.BookingResponse
	rec = httptest.PerformRequest(t, s.router, http.MethodGet, "/api/bookings/"+low.ID.String(), nil, studentToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &bumped)
	s.Equal("preempted", bumped.Status)

	rec = httptest.PerformRequest(t, s.router, http.MethodPost, "/api/bookings", map[string]any{
		"resource_id": resourceID, "start_time": start, "end_time": end,
		"purpose": "again", "category": "student_meeting",
	}, studentToken)
	httptest.AssertErrorResponse(t, rec, http.StatusConflict, "higher or equal priority")

	rec = httptest.PerformRequest(t, s.router, http.MethodGet, "/api/bookings/"+high.ID.String(), nil, studentToken)
	httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "")
}

func (s *AppSuite) TestAdminRoutesRequireAdmin() {
	t := s.T()
	staffToken := s.tokenFor(dbtest.CreateUser(t, s.pool, "staff"), user.RoleStaff)
	adminToken := s.tokenFor(dbtest.CreateUser(t, s.pool, "admin"), user.RoleAdmin)

	rec := httptest.PerformRequest(t, s.router, http.MethodPost, "/api/admin/expiry-sweep", nil, staffToken)
	httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")

	var sweep resdto.SweepResponse
	rec = httptest.PerformRequest(t, s.router, http.MethodPost, "/api/admin/expiry-sweep", nil, adminToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &sweep)

	rec = httptest.PerformRequest(t, s.router, http.MethodPost, "/api/admin/expiry-sweep", nil, "")
	httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
}
