package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gymadmin/gym-api/internal/models"
	"github.com/gymadmin/gym-api/internal/repository"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context) ([]models.ClassRecord, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	ExistsBySchedule(ctx context.Context, schedule, excludeID string) (bool, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}

type trainerFinder interface {
	FindByID(ctx context.Context, id string) (*models.Trainer, error)
}

type clientClassCounter interface {
	CountByClass(ctx context.Context, classID string) (int, error)
}

// CreateClassRequest represents payload for creating classes.
type CreateClassRequest struct {
	Name      string `json:"name" validate:"required"`
	Schedule  string `json:"schedule" validate:"required"`
	TrainerID string `json:"trainer_id" validate:"required"`
}

// UpdateClassRequest represents payload for updating classes.
type UpdateClassRequest struct {
	Name      string `json:"name" validate:"required"`
	Schedule  string `json:"schedule" validate:"required"`
	TrainerID string `json:"trainer_id" validate:"required"`
}

// ClassService orchestrates class operations. Every write validates that the
// trainer reference resolves and that the schedule slot stays unique.
type ClassService struct {
	repo      classRepository
	trainers  trainerFinder
	clients   clientClassCounter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, trainers trainerFinder, clients clientClassCounter, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, trainers: trainers, clients: clients, validator: validate, logger: logger}
}

// List returns every class with its trainer's name.
func (s *ClassService) List(ctx context.Context) ([]models.ClassRecord, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Create registers a new class.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if err := s.checkReferences(ctx, req.TrainerID, req.Schedule, ""); err != nil {
		return nil, err
	}

	class := &models.Class{Name: req.Name, Schedule: req.Schedule, TrainerID: req.TrainerID}
	if err := s.repo.Create(ctx, class); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "schedule slot already taken")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// Update modifies an existing class.
func (s *ClassService) Update(ctx context.Context, id string, req UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	if err := s.checkReferences(ctx, req.TrainerID, req.Schedule, id); err != nil {
		return nil, err
	}

	class.Name = req.Name
	class.Schedule = req.Schedule
	class.TrainerID = req.TrainerID

	if err := s.repo.Update(ctx, class); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "schedule slot already taken")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class")
	}
	return class, nil
}

// Delete removes a class unless clients are still enrolled in it.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	count, err := s.clients.CountByClass(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class references")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "class still has enrolled clients")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	return nil
}

func (s *ClassService) checkReferences(ctx context.Context, trainerID, schedule, excludeID string) error {
	if _, err := s.trainers.FindByID(ctx, trainerID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "trainer not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainer")
	}

	taken, err := s.repo.ExistsBySchedule(ctx, schedule, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check schedule slot")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, "schedule slot already taken")
	}
	return nil
}
