package api

import (
	"net/http"
	"time"

	resdto "resource-scheduler/internal/handler/dto/response"
	"resource-scheduler/internal/handler/httperr"
	"resource-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Check availability
// @Description Reports whether the resource still has capacity in [start, end)
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param start query string true "RFC3339 start"
// @Param end query string true "RFC3339 end"
// @Param exclude query string false "Booking ID to ignore"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/resources/{id}/availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	resourceID, ok := pathID(c)
	if !ok {
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid start", nil)
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid end", nil)
		return
	}
	var exclude *uuid.UUID
	if raw := c.Query("exclude"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid exclude", nil)
			return
		}
		exclude = &id
	}

	report, err := h.q.CheckAvailability(c.Request.Context(), resourceID, start, end, exclude)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(report))
}
