package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gymadmin/gym-api/internal/service"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
	"github.com/gymadmin/gym-api/pkg/response"
)

type attendanceService interface {
	Find(ctx context.Context, dni string) (*service.AttendanceLookup, error)
	Register(ctx context.Context, dni string) error
}

// RegisterAttendanceRequest is the check-in payload.
type RegisterAttendanceRequest struct {
	DNI string `json:"dni" binding:"required"`
}

// AttendanceHandler wires attendance services to HTTP routes.
type AttendanceHandler struct {
	attendances attendanceService
}

// NewAttendanceHandler constructs an AttendanceHandler.
func NewAttendanceHandler(attendances attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendances: attendances}
}

// Search godoc
// @Summary Look up a client's membership and attendance history by national ID
// @Tags Attendances
// @Produce json
// @Param dni query string true "National ID"
// @Success 200 {object} response.Envelope
// @Router /attendances/search [get]
func (h *AttendanceHandler) Search(c *gin.Context) {
	lookup, err := h.attendances.Find(c.Request.Context(), c.Query("dni"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lookup)
}

// Register godoc
// @Summary Record a check-in for the client matching the national ID
// @Tags Attendances
// @Accept json
// @Produce json
// @Param payload body RegisterAttendanceRequest true "Check-in payload"
// @Success 201 {object} response.Envelope
// @Router /attendances [post]
func (h *AttendanceHandler) Register(c *gin.Context) {
	var req RegisterAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid check-in payload"))
		return
	}
	if err := h.attendances.Register(c.Request.Context(), req.DNI); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"registered": true})
}
