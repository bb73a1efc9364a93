//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/domain/user"
	"resource-scheduler/internal/handler/api"
	resdto "resource-scheduler/internal/handler/dto/response"
	"resource-scheduler/internal/handler/middleware"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/testutil/builder"
	"resource-scheduler/internal/testutil/httptest"
	commandsmock "resource-scheduler/internal/testutil/mock/commands"
	"resource-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	approvals *commandsmock.MockApprovalCommands
	bookings  *commandsmock.MockBookingCommands
	sweeps    *commandsmock.MockSweepCommands
	adminID   uuid.UUID
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.approvals = commandsmock.NewMockApprovalCommands(s.mockCtrl)
	s.bookings = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.sweeps = commandsmock.NewMockSweepCommands(s.mockCtrl)
	s.adminID = uuid.New()
	h := api.NewAdminHandler(s.approvals, s.bookings, s.sweeps)

	admin := s.router.Group("/api/admin", fakeAuth(s.adminID, user.RoleAdmin), middleware.RequireRole(user.RoleAdmin))
	admin.POST("/bookings/:id/approve", h.Approve)
	admin.POST("/bookings/:id/reject", h.Reject)
	admin.POST("/bookings/:id/cancel", h.Cancel)
	admin.POST("/expiry-sweep", h.ExpirySweep)

	student := s.router.Group("/as-student", fakeAuth(uuid.New(), user.RoleStudent), middleware.RequireRole(user.RoleAdmin))
	student.POST("/expiry-sweep", h.ExpirySweep)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestApprove() {
	b := builder.NewBookingBuilder().Build()
	url := "/api/admin/bookings/" + b.ID().String() + "/approve"

	s.Run("success: notes are optional", func() {
		s.approvals.EXPECT().ApproveBooking(gomock.Any(), b.ID(), s.adminID, "").Return(b, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("approved", body.Status)
	})

	s.Run("success: notes are forwarded", func() {
		s.approvals.EXPECT().ApproveBooking(gomock.Any(), b.ID(), s.adminID, "ok for exams").Return(b, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"notes": "ok for exams"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 when the slot filled up meanwhile", func() {
		s.approvals.EXPECT().ApproveBooking(gomock.Any(), b.ID(), s.adminID, "").
			Return(nil, &commands.ConflictError{Reason: booking.ReasonUnavailable})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, booking.ReasonUnavailable)
	})
}

func (s *AdminHandlerTestSuite) TestReject() {
	b := builder.NewBookingBuilder().WithStatus(booking.StatusRejected).Build()
	url := "/api/admin/bookings/" + b.ID().String() + "/reject"

	s.Run("success: returns the rejected booking", func() {
		s.approvals.EXPECT().RejectBooking(gomock.Any(), b.ID(), s.adminID, "room closed", "").Return(b, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "room closed"}, "bearer-token")
		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("rejected", body.Status)
	})

	s.Run("error: 400 Bad Request without a reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"notes": "n/a"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 422 when the booking is not pending", func() {
		s.approvals.EXPECT().RejectBooking(gomock.Any(), b.ID(), s.adminID, "late", "").
			Return(nil, errs.Mark(booking.ErrInvalidTransition, commands.ErrValidation))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "late"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "invalid booking status transition")
	})
}

func (s *AdminHandlerTestSuite) TestCancel() {
	b := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).Build()
	s.bookings.EXPECT().CancelBooking(gomock.Any(), b.ID(), s.adminID, "maintenance").Return(b, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/bookings/"+b.ID().String()+"/cancel",
		map[string]any{"reason": "maintenance"}, "bearer-token")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}

func (s *AdminHandlerTestSuite) TestExpirySweep() {
	s.Run("success: reports transitioned count", func() {
		s.sweeps.EXPECT().RunExpirySweep(gomock.Any()).Return(int64(4), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/expiry-sweep", nil, "bearer-token")
		var body resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(4), body.Transitioned)
	})

	s.Run("error: 403 Forbidden for non-admins", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/as-student/expiry-sweep", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}
