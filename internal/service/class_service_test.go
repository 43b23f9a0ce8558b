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

type classRepoStub struct {
	records       []models.ClassRecord
	classes       map[string]*models.Class
	scheduleTaken bool
	created       []*models.Class
	updated       []*models.Class
	deletedIDs    []string
}

func (s *classRepoStub) List(ctx context.Context) ([]models.ClassRecord, error) {
	return s.records, nil
}

func (s *classRepoStub) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if class, ok := s.classes[id]; ok {
		copied := *class
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *classRepoStub) ExistsBySchedule(ctx context.Context, schedule, excludeID string) (bool, error) {
	return s.scheduleTaken, nil
}

func (s *classRepoStub) Create(ctx context.Context, class *models.Class) error {
	s.created = append(s.created, class)
	return nil
}

func (s *classRepoStub) Update(ctx context.Context, class *models.Class) error {
	s.updated = append(s.updated, class)
	return nil
}

func (s *classRepoStub) Delete(ctx context.Context, id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

func (s *classRepoStub) CountByTrainer(ctx context.Context, trainerID string) (int, error) {
	return 0, nil
}

type trainerFinderStub struct {
	trainers map[string]*models.Trainer
}

func (s trainerFinderStub) FindByID(ctx context.Context, id string) (*models.Trainer, error) {
	if trainer, ok := s.trainers[id]; ok {
		return trainer, nil
	}
	return nil, sql.ErrNoRows
}

type classCounterStub struct {
	count int
	err   error
}

func (s classCounterStub) CountByClass(ctx context.Context, classID string) (int, error) {
	return s.count, s.err
}

func TestClassServiceCreate(t *testing.T) {
	repo := &classRepoStub{}
	trainers := trainerFinderStub{trainers: map[string]*models.Trainer{"trainer-1": {ID: "trainer-1"}}}
	service := NewClassService(repo, trainers, classCounterStub{}, nil, zap.NewNop())

	class, err := service.Create(context.Background(), CreateClassRequest{
		Name: "Spinning", Schedule: "Lunes 18:00", TrainerID: "trainer-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Spinning", class.Name)
	require.Len(t, repo.created, 1)
}

func TestClassServiceCreateUnknownTrainer(t *testing.T) {
	repo := &classRepoStub{}
	service := NewClassService(repo, trainerFinderStub{}, classCounterStub{}, nil, zap.NewNop())

	_, err := service.Create(context.Background(), CreateClassRequest{
		Name: "Spinning", Schedule: "Lunes 18:00", TrainerID: "trainer-missing",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestClassServiceCreateScheduleTaken(t *testing.T) {
	repo := &classRepoStub{scheduleTaken: true}
	trainers := trainerFinderStub{trainers: map[string]*models.Trainer{"trainer-1": {ID: "trainer-1"}}}
	service := NewClassService(repo, trainers, classCounterStub{}, nil, zap.NewNop())

	_, err := service.Create(context.Background(), CreateClassRequest{
		Name: "Spinning", Schedule: "Lunes 18:00", TrainerID: "trainer-1",
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, typed.Code)
	assert.Contains(t, typed.Message, "schedule")
	assert.Empty(t, repo.created)
}

func TestClassServiceUpdate(t *testing.T) {
	repo := &classRepoStub{classes: map[string]*models.Class{
		"class-1": {ID: "class-1", Name: "Spinning", Schedule: "Lunes 18:00", TrainerID: "trainer-1"},
	}}
	trainers := trainerFinderStub{trainers: map[string]*models.Trainer{
		"trainer-1": {ID: "trainer-1"},
		"trainer-2": {ID: "trainer-2"},
	}}
	service := NewClassService(repo, trainers, classCounterStub{}, nil, zap.NewNop())

	class, err := service.Update(context.Background(), "class-1", UpdateClassRequest{
		Name: "Spinning Pro", Schedule: "Martes 19:00", TrainerID: "trainer-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "trainer-2", class.TrainerID)
	require.Len(t, repo.updated, 1)
}

func TestClassServiceDeleteWithEnrolledClients(t *testing.T) {
	repo := &classRepoStub{classes: map[string]*models.Class{"class-1": {ID: "class-1"}}}
	service := NewClassService(repo, trainerFinderStub{}, classCounterStub{count: 3}, nil, zap.NewNop())

	err := service.Delete(context.Background(), "class-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deletedIDs)
}

func TestClassServiceDelete(t *testing.T) {
	repo := &classRepoStub{classes: map[string]*models.Class{"class-1": {ID: "class-1"}}}
	service := NewClassService(repo, trainerFinderStub{}, classCounterStub{}, nil, zap.NewNop())

	require.NoError(t, service.Delete(context.Background(), "class-1"))
	assert.Equal(t, []string{"class-1"}, repo.deletedIDs)
}
