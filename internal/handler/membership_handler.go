package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gymadmin/gym-api/internal/service"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
	"github.com/gymadmin/gym-api/pkg/response"
)

// MembershipHandler wires membership plan services to HTTP routes.
type MembershipHandler struct {
	memberships *service.MembershipService
}

// NewMembershipHandler constructs a MembershipHandler.
func NewMembershipHandler(memberships *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

// List godoc
// @Summary List membership plans
// @Tags Memberships
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /memberships [get]
func (h *MembershipHandler) List(c *gin.Context) {
	memberships, err := h.memberships.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, memberships)
}

// Create godoc
// @Summary Create membership plan
// @Tags Memberships
// @Accept json
// @Produce json
// @Param payload body service.CreateMembershipRequest true "Membership payload"
// @Success 201 {object} response.Envelope
// @Router /memberships [post]
func (h *MembershipHandler) Create(c *gin.Context) {
	var req service.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid membership payload"))
		return
	}
	membership, err := h.memberships.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, membership)
}

// Update godoc
// @Summary Update membership plan
// @Tags Memberships
// @Accept json
// @Produce json
// @Param id path string true "Membership ID"
// @Param payload body service.UpdateMembershipRequest true "Membership payload"
// @Success 200 {object} response.Envelope
// @Router /memberships/{id} [put]
func (h *MembershipHandler) Update(c *gin.Context) {
	var req service.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid membership payload"))
		return
	}
	membership, err := h.memberships.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, membership)
}

// Delete godoc
// @Summary Delete membership plan
// @Tags Memberships
// @Param id path string true "Membership ID"
// @Success 204
// @Router /memberships/{id} [delete]
func (h *MembershipHandler) Delete(c *gin.Context) {
	if err := h.memberships.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
