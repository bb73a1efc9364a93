package api

import (
	"net/http"

	reqdto "resource-scheduler/internal/handler/dto/request"
	resdto "resource-scheduler/internal/handler/dto/response"
	"resource-scheduler/internal/handler/httperr"
	"resource-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// AdminHandler routes sit behind middleware.RequireRole(user.RoleAdmin).
type AdminHandler struct {
	approvals commands.ApprovalCommands
	bookings  commands.BookingCommands
	sweeps    commands.SweepCommands
}

func NewAdminHandler(approvals commands.ApprovalCommands, bookings commands.BookingCommands, sweeps commands.SweepCommands) *AdminHandler {
	return &AdminHandler{approvals: approvals, bookings: bookings, sweeps: sweeps}
}

// @Summary Approve booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ApproveBookingRequest false "Admin notes"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/bookings/{id}/approve [post]
func (h *AdminHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.ApproveBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	b, err := h.approvals.ApproveBooking(c.Request.Context(), id, adminID, req.Notes)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Reject booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RejectBookingRequest true "Rejection"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/bookings/{id}/reject [post]
func (h *AdminHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	b, err := h.approvals.RejectBooking(c.Request.Context(), id, adminID, req.Reason, req.Notes)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Cancel any booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/bookings/{id}/cancel [post]
func (h *AdminHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	b, err := h.bookings.CancelBooking(c.Request.Context(), id, adminID, req.Reason)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Run expiry sweep now
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Router /api/admin/expiry-sweep [post]
func (h *AdminHandler) ExpirySweep(c *gin.Context) {
	n, err := h.sweeps.RunExpirySweep(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.SweepResponse{Transitioned: n})
}
