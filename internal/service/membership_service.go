package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gymadmin/gym-api/internal/models"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
)

type membershipRepository interface {
	List(ctx context.Context) ([]models.Membership, error)
	FindByID(ctx context.Context, id string) (*models.Membership, error)
	Create(ctx context.Context, membership *models.Membership) error
	Update(ctx context.Context, membership *models.Membership) error
	Delete(ctx context.Context, id string) error
}

type clientMembershipCounter interface {
	CountByMembership(ctx context.Context, membershipID string) (int, error)
}

// CreateMembershipRequest represents payload for creating membership plans.
type CreateMembershipRequest struct {
	Type  string  `json:"type" validate:"required"`
	Price float64 `json:"price" validate:"required"`
}

// UpdateMembershipRequest represents payload for updating membership plans.
type UpdateMembershipRequest struct {
	Type  string  `json:"type" validate:"required"`
	Price float64 `json:"price" validate:"required"`
}

// MembershipService orchestrates membership plan operations.
type MembershipService struct {
	repo      membershipRepository
	clients   clientMembershipCounter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMembershipService constructs a MembershipService.
func NewMembershipService(repo membershipRepository, clients clientMembershipCounter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *MembershipService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MembershipService{repo: repo, clients: clients, cache: cache, validator: validate, logger: logger}
}

// List returns every membership plan.
func (s *MembershipService) List(ctx context.Context) ([]models.Membership, error) {
	memberships, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list memberships")
	}
	return memberships, nil
}

// Create registers a new membership plan.
func (s *MembershipService) Create(ctx context.Context, req CreateMembershipRequest) (*models.Membership, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid membership payload")
	}

	membership := &models.Membership{Type: req.Type, Price: req.Price}
	if err := s.repo.Create(ctx, membership); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create membership")
	}
	return membership, nil
}

// Update modifies an existing membership plan. Cached attendance lookups are
// invalidated because the plan's type and price feed the lookup payload.
func (s *MembershipService) Update(ctx context.Context, id string, req UpdateMembershipRequest) (*models.Membership, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid membership payload")
	}

	membership, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "membership not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load membership")
	}

	membership.Type = req.Type
	membership.Price = req.Price

	if err := s.repo.Update(ctx, membership); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update membership")
	}
	s.cache.InvalidatePattern(ctx, attendanceLookupKeyPattern)
	return membership, nil
}

// Delete removes a membership plan unless clients still reference it.
func (s *MembershipService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "membership not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load membership")
	}

	count, err := s.clients.CountByMembership(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership references")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "membership is still referenced by clients")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete membership")
	}
	s.cache.InvalidatePattern(ctx, attendanceLookupKeyPattern)
	return nil
}
