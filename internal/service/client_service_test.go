package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gymadmin/gym-api/internal/models"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
)

type clientRepoStub struct {
	records     []models.ClientRecord
	clients     map[string]*models.Client
	byDNI       map[string]*models.Client
	dniTaken    bool
	phoneTaken  bool
	emailTaken  bool
	existsErr   error
	createErr   error
	updateErr   error
	deleteErr   error
	created     []*models.Client
	updated     []*models.Client
	deletedIDs  []string
	existsCalls []string
}

func (s *clientRepoStub) List(ctx context.Context) ([]models.ClientRecord, error) {
	return s.records, nil
}

func (s *clientRepoStub) FindByID(ctx context.Context, id string) (*models.Client, error) {
	if client, ok := s.clients[id]; ok {
		copied := *client
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *clientRepoStub) FindByDNI(ctx context.Context, dni string) (*models.Client, error) {
	if client, ok := s.byDNI[dni]; ok {
		copied := *client
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *clientRepoStub) ExistsByDNI(ctx context.Context, dni, excludeID string) (bool, error) {
	s.existsCalls = append(s.existsCalls, "dni")
	return s.dniTaken, s.existsErr
}

func (s *clientRepoStub) ExistsByPhone(ctx context.Context, phone, excludeID string) (bool, error) {
	s.existsCalls = append(s.existsCalls, "phone")
	return s.phoneTaken, s.existsErr
}

func (s *clientRepoStub) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	s.existsCalls = append(s.existsCalls, "email")
	return s.emailTaken, s.existsErr
}

func (s *clientRepoStub) Create(ctx context.Context, client *models.Client) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, client)
	return nil
}

func (s *clientRepoStub) Update(ctx context.Context, client *models.Client) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, client)
	return nil
}

func (s *clientRepoStub) Delete(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

func (s *clientRepoStub) CountByMembership(ctx context.Context, membershipID string) (int, error) {
	return 0, nil
}

func (s *clientRepoStub) CountByClass(ctx context.Context, classID string) (int, error) {
	return 0, nil
}

type membershipFinderStub struct {
	memberships map[string]*models.Membership
	err         error
}

func (s membershipFinderStub) FindByID(ctx context.Context, id string) (*models.Membership, error) {
	if s.err != nil {
		return nil, s.err
	}
	if membership, ok := s.memberships[id]; ok {
		return membership, nil
	}
	return nil, sql.ErrNoRows
}

type classFinderStub struct {
	classes map[string]*models.Class
	err     error
}

func (s classFinderStub) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if s.err != nil {
		return nil, s.err
	}
	if class, ok := s.classes[id]; ok {
		return class, nil
	}
	return nil, sql.ErrNoRows
}

func validCreateClientRequest() CreateClientRequest {
	return CreateClientRequest{
		FullName:     "Maria Lopez",
		DNI:          "40111222",
		Phone:        "555-0101",
		Email:        "maria@example.com",
		Address:      "Av. Siempreviva 742",
		MembershipID: "mem-1",
	}
}

func TestClientServiceCreateResolvesMembership(t *testing.T) {
	repo := &clientRepoStub{}
	memberships := membershipFinderStub{memberships: map[string]*models.Membership{
		"mem-1": {ID: "mem-1", Type: "mensual", Price: 30},
	}}
	service := NewClientService(repo, memberships, classFinderStub{}, nil, nil, zap.NewNop())

	record, err := service.Create(context.Background(), validCreateClientRequest())
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "mem-1", repo.created[0].MembershipID)
	assert.Nil(t, repo.created[0].ClassID)
	require.NotNil(t, record.MembershipType)
	assert.Equal(t, "mensual", *record.MembershipType)
	require.NotNil(t, record.MembershipPrice)
	assert.Equal(t, 30.0, *record.MembershipPrice)
}

func TestClientServiceCreateMissingMembership(t *testing.T) {
	repo := &clientRepoStub{}
	service := NewClientService(repo, membershipFinderStub{}, classFinderStub{}, nil, nil, zap.NewNop())

	_, err := service.Create(context.Background(), validCreateClientRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestClientServiceCreateMissingClass(t *testing.T) {
	repo := &clientRepoStub{}
	memberships := membershipFinderStub{memberships: map[string]*models.Membership{
		"mem-1": {ID: "mem-1", Type: "mensual"},
	}}
	service := NewClientService(repo, memberships, classFinderStub{}, nil, nil, zap.NewNop())

	req := validCreateClientRequest()
	classID := "class-missing"
	req.ClassID = &classID
	_, err := service.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestClientServiceCreateEmptyClassMeansNone(t *testing.T) {
	repo := &clientRepoStub{}
	memberships := membershipFinderStub{memberships: map[string]*models.Membership{
		"mem-1": {ID: "mem-1", Type: "mensual"},
	}}
	service := NewClientService(repo, memberships, classFinderStub{}, nil, nil, zap.NewNop())

	req := validCreateClientRequest()
	empty := "  "
	req.ClassID = &empty
	record, err := service.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, record.ClassID)
}

func TestClientServiceCreateDNICollisionWinsOverOthers(t *testing.T) {
	repo := &clientRepoStub{dniTaken: true, phoneTaken: true, emailTaken: true}
	memberships := membershipFinderStub{memberships: map[string]*models.Membership{
		"mem-1": {ID: "mem-1", Type: "mensual"},
	}}
	service := NewClientService(repo, memberships, classFinderStub{}, nil, nil, zap.NewNop())

	_, err := service.Create(context.Background(), validCreateClientRequest())
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, typed.Code)
	assert.Contains(t, typed.Message, "dni")
	assert.Equal(t, []string{"dni"}, repo.existsCalls)
	assert.Empty(t, repo.created)
}

func TestClientServiceCreatePhoneCollision(t *testing.T) {
	repo := &clientRepoStub{phoneTaken: true}
	memberships := membershipFinderStub{memberships: map[string]*models.Membership{
		"mem-1": {ID: "mem-1", Type: "mensual"},
	}}
	service := NewClientService(repo, memberships, classFinderStub{}, nil, nil, zap.NewNop())

	_, err := service.Create(context.Background(), validCreateClientRequest())
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "phone")
}

func TestClientServiceUpdateKeepsStoredMembership(t *testing.T) {
	repo := &clientRepoStub{clients: map[string]*models.Client{
		"client-1": {ID: "client-1", DNI: "40111222", MembershipID: "mem-1"},
	}}
	memberships := membershipFinderStub{memberships: map[string]*models.Membership{
		"mem-1": {ID: "mem-1", Type: "trimestral", Price: 80},
	}}
	service := NewClientService(repo, memberships, classFinderStub{}, nil, nil, zap.NewNop())

	record, err := service.Update(context.Background(), "client-1", UpdateClientRequest{
		FullName: "Maria Lopez",
		DNI:      "40111222",
		Phone:    "555-0101",
		Email:    "maria@example.com",
		Address:  "Av. Siempreviva 742",
	})
	require.NoError(t, err)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, "mem-1", repo.updated[0].MembershipID)
	require.NotNil(t, record.MembershipType)
	assert.Equal(t, "trimestral", *record.MembershipType)
}

func TestClientServiceUpdateSwitchesMembership(t *testing.T) {
	repo := &clientRepoStub{clients: map[string]*models.Client{
		"client-1": {ID: "client-1", DNI: "40111222", MembershipID: "mem-1"},
	}}
	memberships := membershipFinderStub{memberships: map[string]*models.Membership{
		"mem-1": {ID: "mem-1", Type: "mensual"},
		"mem-2": {ID: "mem-2", Type: "anual"},
	}}
	service := NewClientService(repo, memberships, classFinderStub{}, nil, nil, zap.NewNop())

	newMembership := "mem-2"
	record, err := service.Update(context.Background(), "client-1", UpdateClientRequest{
		FullName:     "Maria Lopez",
		DNI:          "40111222",
		Phone:        "555-0101",
		Email:        "maria@example.com",
		Address:      "Av. Siempreviva 742",
		MembershipID: &newMembership,
	})
	require.NoError(t, err)
	assert.Equal(t, "mem-2", repo.updated[0].MembershipID)
	assert.Equal(t, "anual", *record.MembershipType)
}

func TestClientServiceUpdateUnknownClient(t *testing.T) {
	service := NewClientService(&clientRepoStub{}, membershipFinderStub{}, classFinderStub{}, nil, nil, zap.NewNop())

	_, err := service.Update(context.Background(), "missing", UpdateClientRequest{
		FullName: "Maria Lopez",
		DNI:      "40111222",
		Phone:    "555-0101",
		Email:    "maria@example.com",
		Address:  "Av. Siempreviva 742",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClientServiceDelete(t *testing.T) {
	repo := &clientRepoStub{clients: map[string]*models.Client{
		"client-1": {ID: "client-1", DNI: "40111222"},
	}}
	service := NewClientService(repo, membershipFinderStub{}, classFinderStub{}, nil, nil, zap.NewNop())

	require.NoError(t, service.Delete(context.Background(), "client-1"))
	assert.Equal(t, []string{"client-1"}, repo.deletedIDs)

	err := service.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClientServiceExpiration(t *testing.T) {
	repo := &clientRepoStub{byDNI: map[string]*models.Client{
		"40111222": {ID: "client-1", DNI: "40111222", MembershipID: "mem-1", RegisteredAt: date("2024-01-15")},
	}}
	memberships := membershipFinderStub{memberships: map[string]*models.Membership{
		"mem-1": {ID: "mem-1", Type: "anual"},
	}}
	service := NewClientService(repo, memberships, classFinderStub{}, nil, nil, zap.NewNop())

	expiration, err := service.Expiration(context.Background(), "40111222")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", expiration.RegisteredAt)
	assert.Equal(t, "2025-01-15", expiration.ExpiresAt)
}

func TestClientServiceExpirationUnknownDNI(t *testing.T) {
	service := NewClientService(&clientRepoStub{}, membershipFinderStub{}, classFinderStub{}, nil, nil, zap.NewNop())

	_, err := service.Expiration(context.Background(), "99999999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClientServiceExpirationUnknownMembershipType(t *testing.T) {
	repo := &clientRepoStub{byDNI: map[string]*models.Client{
		"40111222": {ID: "client-1", DNI: "40111222", MembershipID: "mem-1", RegisteredAt: date("2024-01-15")},
	}}
	memberships := membershipFinderStub{memberships: map[string]*models.Membership{
		"mem-1": {ID: "mem-1", Type: "quincenal"},
	}}
	service := NewClientService(repo, memberships, classFinderStub{}, nil, nil, zap.NewNop())

	_, err := service.Expiration(context.Background(), "40111222")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnknownMembershipType.Code, appErrors.FromError(err).Code)
}
