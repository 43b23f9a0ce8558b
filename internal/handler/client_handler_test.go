package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymadmin/gym-api/internal/models"
	"github.com/gymadmin/gym-api/internal/service"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
)

type clientServiceMock struct {
	listResp       []models.ClientRecord
	createResp     *models.ClientRecord
	createErr      error
	updateResp     *models.ClientRecord
	updateErr      error
	deleteErr      error
	expirationResp *service.ClientExpiration
	expirationErr  error
	lastID         string
	lastDNI        string
	createCalled   bool
	updateCalled   bool
}

func (m *clientServiceMock) List(ctx context.Context) ([]models.ClientRecord, error) {
	return m.listResp, nil
}

func (m *clientServiceMock) Create(ctx context.Context, req service.CreateClientRequest) (*models.ClientRecord, error) {
	m.createCalled = true
	return m.createResp, m.createErr
}

func (m *clientServiceMock) Update(ctx context.Context, id string, req service.UpdateClientRequest) (*models.ClientRecord, error) {
	m.updateCalled = true
	m.lastID = id
	return m.updateResp, m.updateErr
}

func (m *clientServiceMock) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return m.deleteErr
}

func (m *clientServiceMock) Expiration(ctx context.Context, dni string) (*service.ClientExpiration, error) {
	m.lastDNI = dni
	return m.expirationResp, m.expirationErr
}

type exportServiceMock struct {
	payload     []byte
	contentType string
	err         error
	lastFormat  string
}

func (m *exportServiceMock) ClientRoster(ctx context.Context, format string) ([]byte, string, error) {
	m.lastFormat = format
	return m.payload, m.contentType, m.err
}

func TestClientHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	membershipType := "mensual"
	mockSvc := &clientServiceMock{
		createResp: &models.ClientRecord{
			Client:         models.Client{ID: "client-1", FullName: "Maria Lopez"},
			MembershipType: &membershipType,
		},
	}
	handler := NewClientHandler(mockSvc, &exportServiceMock{})

	payload, _ := json.Marshal(service.CreateClientRequest{
		FullName:     "Maria Lopez",
		DNI:          "40111222",
		Phone:        "555-0101",
		Email:        "maria@example.com",
		Address:      "Av. 742",
		MembershipID: "mem-1",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/clients", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.createCalled)
}

func TestClientHandlerCreateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &clientServiceMock{
		createErr: appErrors.Clone(appErrors.ErrConflict, "dni already registered to another client"),
	}
	handler := NewClientHandler(mockSvc, &exportServiceMock{})

	payload, _ := json.Marshal(service.CreateClientRequest{FullName: "Maria Lopez"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/clients", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestClientHandlerUpdatePassesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &clientServiceMock{updateResp: &models.ClientRecord{}}
	handler := NewClientHandler(mockSvc, &exportServiceMock{})

	payload, _ := json.Marshal(service.UpdateClientRequest{
		FullName: "Maria Lopez",
		DNI:      "40111222",
		Phone:    "555-0101",
		Email:    "maria@example.com",
		Address:  "Av. 742",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/clients/client-1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "client-1"}}

	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client-1", mockSvc.lastID)
}

func TestClientHandlerExpiration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &clientServiceMock{
		expirationResp: &service.ClientExpiration{RegisteredAt: "2024-01-15", ExpiresAt: "2025-01-15"},
	}
	handler := NewClientHandler(mockSvc, &exportServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/clients/expiration/40111222", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "dni", Value: "40111222"}}

	handler.Expiration(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "40111222", mockSvc.lastDNI)
	assert.Contains(t, w.Body.String(), "2025-01-15")
}

func TestClientHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &exportServiceMock{payload: []byte("Name,DNI\n"), contentType: "text/csv"}
	handler := NewClientHandler(&clientServiceMock{}, exporter)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/clients/export?format=csv", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exporter.lastFormat)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "Name,DNI\n", w.Body.String())
}

func TestClientHandlerExportDefaultsToCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &exportServiceMock{payload: []byte("x"), contentType: "text/csv"}
	handler := NewClientHandler(&clientServiceMock{}, exporter)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/clients/export", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exporter.lastFormat)
}

func TestClientHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &clientServiceMock{}
	handler := NewClientHandler(mockSvc, &exportServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/clients/client-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "client-1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "client-1", mockSvc.lastID)
}
