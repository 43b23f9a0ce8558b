package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gymadmin/gym-api/internal/models"
	"github.com/gymadmin/gym-api/internal/service"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
	"github.com/gymadmin/gym-api/pkg/response"
)

type clientService interface {
	List(ctx context.Context) ([]models.ClientRecord, error)
	Create(ctx context.Context, req service.CreateClientRequest) (*models.ClientRecord, error)
	Update(ctx context.Context, id string, req service.UpdateClientRequest) (*models.ClientRecord, error)
	Delete(ctx context.Context, id string) error
	Expiration(ctx context.Context, dni string) (*service.ClientExpiration, error)
}

type exportService interface {
	ClientRoster(ctx context.Context, format string) ([]byte, string, error)
}

// ClientHandler wires client services to HTTP routes.
type ClientHandler struct {
	clients clientService
	exports exportService
}

// NewClientHandler constructs a ClientHandler.
func NewClientHandler(clients clientService, exports exportService) *ClientHandler {
	return &ClientHandler{clients: clients, exports: exports}
}

// List godoc
// @Summary List clients with membership details
// @Tags Clients
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clients)
}

// Create godoc
// @Summary Register client
// @Tags Clients
// @Accept json
// @Produce json
// @Param payload body service.CreateClientRequest true "Client payload"
// @Success 201 {object} response.Envelope
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid client payload"))
		return
	}
	client, err := h.clients.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, client)
}

// Update godoc
// @Summary Update client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param payload body service.UpdateClientRequest true "Client payload"
// @Success 200 {object} response.Envelope
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid client payload"))
		return
	}
	client, err := h.clients.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, client)
}

// Delete godoc
// @Summary Delete client
// @Tags Clients
// @Param id path string true "Client ID"
// @Success 204
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Expiration godoc
// @Summary Resolve membership expiration by national ID
// @Tags Clients
// @Produce json
// @Param dni path string true "National ID"
// @Success 200 {object} response.Envelope
// @Router /clients/expiration/{dni} [get]
func (h *ClientHandler) Expiration(c *gin.Context) {
	expiration, err := h.clients.Expiration(c.Request.Context(), c.Param("dni"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, expiration)
}

// Export godoc
// @Summary Export the client roster
// @Tags Clients
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv or pdf)"
// @Success 200 {file} byte
// @Router /clients/export [get]
func (h *ClientHandler) Export(c *gin.Context) {
	payload, contentType, err := h.exports.ClientRoster(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, payload)
}
