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

type trainerRepoStub struct {
	trainers   map[string]*models.Trainer
	created    []*models.Trainer
	updated    []*models.Trainer
	deletedIDs []string
}

func (s *trainerRepoStub) List(ctx context.Context) ([]models.Trainer, error) {
	result := make([]models.Trainer, 0, len(s.trainers))
	for _, trainer := range s.trainers {
		result = append(result, *trainer)
	}
	return result, nil
}

func (s *trainerRepoStub) FindByID(ctx context.Context, id string) (*models.Trainer, error) {
	if trainer, ok := s.trainers[id]; ok {
		copied := *trainer
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *trainerRepoStub) Create(ctx context.Context, trainer *models.Trainer) error {
	s.created = append(s.created, trainer)
	return nil
}

func (s *trainerRepoStub) Update(ctx context.Context, trainer *models.Trainer) error {
	s.updated = append(s.updated, trainer)
	return nil
}

func (s *trainerRepoStub) Delete(ctx context.Context, id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

type trainerCounterStub struct {
	count int
}

func (s trainerCounterStub) CountByTrainer(ctx context.Context, trainerID string) (int, error) {
	return s.count, nil
}

func TestTrainerServiceCreate(t *testing.T) {
	repo := &trainerRepoStub{}
	service := NewTrainerService(repo, trainerCounterStub{}, nil, zap.NewNop())

	trainer, err := service.Create(context.Background(), CreateTrainerRequest{FullName: "Jorge Diaz", Specialty: "CrossFit"})
	require.NoError(t, err)
	assert.Equal(t, "Jorge Diaz", trainer.FullName)
	require.Len(t, repo.created, 1)
}

func TestTrainerServiceUpdateUnknown(t *testing.T) {
	service := NewTrainerService(&trainerRepoStub{}, trainerCounterStub{}, nil, zap.NewNop())

	_, err := service.Update(context.Background(), "missing", UpdateTrainerRequest{FullName: "Jorge Diaz", Specialty: "CrossFit"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTrainerServiceDeleteWithAssignedClasses(t *testing.T) {
	repo := &trainerRepoStub{trainers: map[string]*models.Trainer{"trainer-1": {ID: "trainer-1"}}}
	service := NewTrainerService(repo, trainerCounterStub{count: 1}, nil, zap.NewNop())

	err := service.Delete(context.Background(), "trainer-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deletedIDs)
}

func TestTrainerServiceDelete(t *testing.T) {
	repo := &trainerRepoStub{trainers: map[string]*models.Trainer{"trainer-1": {ID: "trainer-1"}}}
	service := NewTrainerService(repo, trainerCounterStub{}, nil, zap.NewNop())

	require.NoError(t, service.Delete(context.Background(), "trainer-1"))
	assert.Equal(t, []string{"trainer-1"}, repo.deletedIDs)
}
