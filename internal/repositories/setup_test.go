package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func newTestDbContext(t *testing.T) *DbContext {
	t.Helper()

	dbCtx, err := NewDbContext(DriverSqlite, filepath.Join(t.TempDir(), "test.db")+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())

	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func createUser(t *testing.T, dbCtx *DbContext, telegramID int64) *models.User {
	t.Helper()

	user, err := NewUsersRepository(dbCtx.DB).GetOrCreate(context.Background(), UserIdentity{TelegramID: telegramID})
	require.NoError(t, err)
	return user
}

func ptr[T any](v T) *T {
	return &v
}

func createVacancy(t *testing.T, dbCtx *DbContext, employerID int64, lat, lon float64, approved bool) *models.Vacancy {
	t.Helper()

	vacancy := models.NewVacancy(employerID, models.VacancyDraft{
		Title:       "Повар",
		Description: "Кухня, две смены",
		Address:     "Ташкент",
		Latitude:    ptr(lat),
		Longitude:   ptr(lon),
	})

	repo := NewVacanciesRepository(dbCtx.DB)
	require.NoError(t, repo.Create(context.Background(), &vacancy))
	if approved {
		_, err := repo.Approve(context.Background(), vacancy.ID)
		require.NoError(t, err)
		vacancy.IsApproved = true
	}
	return &vacancy
}
