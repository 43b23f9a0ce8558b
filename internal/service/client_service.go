package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gymadmin/gym-api/internal/models"
	"github.com/gymadmin/gym-api/internal/repository"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
)

type clientRepository interface {
	List(ctx context.Context) ([]models.ClientRecord, error)
	FindByID(ctx context.Context, id string) (*models.Client, error)
	FindByDNI(ctx context.Context, dni string) (*models.Client, error)
	ExistsByDNI(ctx context.Context, dni, excludeID string) (bool, error)
	ExistsByPhone(ctx context.Context, phone, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id string) error
}

type membershipFinder interface {
	FindByID(ctx context.Context, id string) (*models.Membership, error)
}

type classFinder interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

// CreateClientRequest represents payload for registering clients.
type CreateClientRequest struct {
	FullName     string  `json:"full_name" validate:"required"`
	DNI          string  `json:"dni" validate:"required"`
	Phone        string  `json:"phone" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Address      string  `json:"address" validate:"required"`
	MembershipID string  `json:"membership_id" validate:"required"`
	ClassID      *string `json:"class_id"`
	RegisteredAt string  `json:"registered_at" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateClientRequest represents payload for updating clients. MembershipID is
// the only field with partial-update semantics: when omitted the stored
// membership reference is preserved. Every other field is required.
type UpdateClientRequest struct {
	FullName     string  `json:"full_name" validate:"required"`
	DNI          string  `json:"dni" validate:"required"`
	Phone        string  `json:"phone" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Address      string  `json:"address" validate:"required"`
	MembershipID *string `json:"membership_id"`
	ClassID      *string `json:"class_id"`
}

// ClientExpiration is the standalone expiration lookup payload.
type ClientExpiration struct {
	RegisteredAt string `json:"registered_at"`
	ExpiresAt    string `json:"expires_at"`
}

// ClientService enforces the referential and uniqueness rules around client
// writes: the membership reference must resolve, a class reference (when set)
// must resolve, and dni, phone and email must be unique across clients.
type ClientService struct {
	repo        clientRepository
	memberships membershipFinder
	classes     classFinder
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewClientService constructs a ClientService.
func NewClientService(repo clientRepository, memberships membershipFinder, classes classFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClientService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{repo: repo, memberships: memberships, classes: classes, cache: cache, validator: validate, logger: logger}
}

// List returns every client with membership details joined in.
func (s *ClientService) List(ctx context.Context) ([]models.ClientRecord, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list clients")
	}
	return clients, nil
}

// Create registers a new client after validating references and uniqueness.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*models.ClientRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid client payload")
	}

	membership, err := s.resolveMembership(ctx, req.MembershipID)
	if err != nil {
		return nil, err
	}
	classID, err := s.resolveClassRef(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueFields(ctx, req.DNI, req.Phone, req.Email, ""); err != nil {
		return nil, err
	}

	client := &models.Client{
		FullName:     strings.TrimSpace(req.FullName),
		DNI:          strings.TrimSpace(req.DNI),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Address:      strings.TrimSpace(req.Address),
		MembershipID: membership.ID,
		ClassID:      classID,
	}
	if req.RegisteredAt != "" {
		registered, parseErr := time.Parse("2006-01-02", req.RegisteredAt)
		if parseErr != nil {
			return nil, appErrors.Wrap(parseErr, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration date")
		}
		client.RegisteredAt = registered
	}

	if err := s.repo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "client already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create client")
	}

	return clientRecord(client, membership), nil
}

// Update modifies an existing client. An omitted membership_id keeps the
// stored reference; the response always carries the resolved membership type.
func (s *ClientService) Update(ctx context.Context, id string, req UpdateClientRequest) (*models.ClientRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid client payload")
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "client not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load client")
	}
	previousDNI := client.DNI

	membershipID := client.MembershipID
	if req.MembershipID != nil && strings.TrimSpace(*req.MembershipID) != "" {
		membershipID = strings.TrimSpace(*req.MembershipID)
	}
	membership, err := s.resolveMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	classID, err := s.resolveClassRef(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueFields(ctx, req.DNI, req.Phone, req.Email, id); err != nil {
		return nil, err
	}

	client.FullName = strings.TrimSpace(req.FullName)
	client.DNI = strings.TrimSpace(req.DNI)
	client.Phone = strings.TrimSpace(req.Phone)
	client.Email = strings.TrimSpace(req.Email)
	client.Address = strings.TrimSpace(req.Address)
	client.MembershipID = membership.ID
	client.ClassID = classID

	if err := s.repo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "client already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update client")
	}

	s.cache.Invalidate(ctx, attendanceLookupKey(previousDNI), attendanceLookupKey(client.DNI))
	return clientRecord(client, membership), nil
}

// Delete removes a client record and its cached lookup.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "client not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load client")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete client")
	}
	s.cache.Invalidate(ctx, attendanceLookupKey(client.DNI))
	return nil
}

// Expiration resolves a client's membership expiration date by national ID.
func (s *ClientService) Expiration(ctx context.Context, dni string) (*ClientExpiration, error) {
	dni = strings.TrimSpace(dni)
	if dni == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dni is required")
	}

	client, err := s.repo.FindByDNI(ctx, dni)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "client not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load client")
	}
	membership, err := s.resolveMembership(ctx, client.MembershipID)
	if err != nil {
		return nil, err
	}

	expires, err := ResolveExpiration(membership.Type, client.RegisteredAt)
	if err != nil {
		return nil, err
	}
	return &ClientExpiration{
		RegisteredAt: FormatDate(client.RegisteredAt),
		ExpiresAt:    FormatDate(expires),
	}, nil
}

func (s *ClientService) resolveMembership(ctx context.Context, id string) (*models.Membership, error) {
	membership, err := s.memberships.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "membership not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load membership")
	}
	return membership, nil
}

// resolveClassRef normalizes the optional class reference: nil or empty means
// no class, anything else must resolve to an existing class.
func (s *ClientService) resolveClassRef(ctx context.Context, classID *string) (*string, error) {
	if classID == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*classID)
	if trimmed == "" {
		return nil, nil
	}
	if _, err := s.classes.FindByID(ctx, trimmed); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return &trimmed, nil
}

// ensureUniqueFields checks dni, phone and email in that order and reports
// only the first collision found.
func (s *ClientService) ensureUniqueFields(ctx context.Context, dni, phone, email, excludeID string) error {
	checks := []struct {
		field  string
		value  string
		exists func(context.Context, string, string) (bool, error)
	}{
		{"dni", strings.TrimSpace(dni), s.repo.ExistsByDNI},
		{"phone", strings.TrimSpace(phone), s.repo.ExistsByPhone},
		{"email", strings.TrimSpace(email), s.repo.ExistsByEmail},
	}
	for _, check := range checks {
		exists, err := check.exists(ctx, check.value, excludeID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check client uniqueness")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, check.field+" already registered to another client")
		}
	}
	return nil
}

func clientRecord(client *models.Client, membership *models.Membership) *models.ClientRecord {
	return &models.ClientRecord{
		Client:          *client,
		MembershipType:  &membership.Type,
		MembershipPrice: &membership.Price,
	}
}
