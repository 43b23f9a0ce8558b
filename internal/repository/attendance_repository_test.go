package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymadmin/gym-api/internal/models"
)

func TestAttendanceRepositoryListDatesByClient(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT date FROM attendances WHERE client_id = $1 ORDER BY date")).
		WithArgs("client-1").
		WillReturnRows(sqlmock.NewRows([]string{"date"}).AddRow(first).AddRow(second))

	dates, err := repo.ListDatesByClient(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Equal(t, []time.Time{first, second}, dates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("INSERT INTO attendances").
		WithArgs(sqlmock.AnyArg(), "client-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	attendance := &models.Attendance{ClientID: "client-1"}
	require.NoError(t, repo.Create(context.Background(), attendance))
	assert.NotEmpty(t, attendance.ID)
	assert.False(t, attendance.Date.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
