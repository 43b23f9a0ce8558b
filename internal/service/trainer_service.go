package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gymadmin/gym-api/internal/models"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
)

type trainerRepository interface {
	List(ctx context.Context) ([]models.Trainer, error)
	FindByID(ctx context.Context, id string) (*models.Trainer, error)
	Create(ctx context.Context, trainer *models.Trainer) error
	Update(ctx context.Context, trainer *models.Trainer) error
	Delete(ctx context.Context, id string) error
}

type trainerClassCounter interface {
	CountByTrainer(ctx context.Context, trainerID string) (int, error)
}

// CreateTrainerRequest represents payload for creating trainers.
type CreateTrainerRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	Specialty string `json:"specialty" validate:"required"`
}

// UpdateTrainerRequest represents payload for updating trainers.
type UpdateTrainerRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	Specialty string `json:"specialty" validate:"required"`
}

// TrainerService orchestrates trainer operations.
type TrainerService struct {
	repo      trainerRepository
	classes   trainerClassCounter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrainerService constructs a TrainerService.
func NewTrainerService(repo trainerRepository, classes trainerClassCounter, validate *validator.Validate, logger *zap.Logger) *TrainerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainerService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// List returns every trainer.
func (s *TrainerService) List(ctx context.Context) ([]models.Trainer, error) {
	trainers, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trainers")
	}
	return trainers, nil
}

// Create registers a new trainer record.
func (s *TrainerService) Create(ctx context.Context, req CreateTrainerRequest) (*models.Trainer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trainer payload")
	}

	trainer := &models.Trainer{FullName: req.FullName, Specialty: req.Specialty}
	if err := s.repo.Create(ctx, trainer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create trainer")
	}
	return trainer, nil
}

// Update modifies an existing trainer.
func (s *TrainerService) Update(ctx context.Context, id string, req UpdateTrainerRequest) (*models.Trainer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trainer payload")
	}

	trainer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "trainer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainer")
	}

	trainer.FullName = req.FullName
	trainer.Specialty = req.Specialty

	if err := s.repo.Update(ctx, trainer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update trainer")
	}
	return trainer, nil
}

// Delete removes a trainer unless classes still reference them.
func (s *TrainerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "trainer not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainer")
	}

	count, err := s.classes.CountByTrainer(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check trainer references")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "trainer still has assigned classes")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete trainer")
	}
	return nil
}
