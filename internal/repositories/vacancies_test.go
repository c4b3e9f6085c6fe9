package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

func Test_Vacancies_Create_ShouldStartPending(t *testing.T) {
	dbCtx := newTestDbContext(t)
	employer := createUser(t, dbCtx, 100)

	vacancy := createVacancy(t, dbCtx, employer.ID, 41.30, 69.24, false)

	stored, err := NewVacanciesRepository(dbCtx.DB).GetByID(context.Background(), vacancy.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.False(t, stored.IsApproved)
	assert.Equal(t, models.StatusPending, stored.Status())
	assert.Equal(t, models.SalaryMonthly, stored.SalaryType)
}

func Test_Vacancies_Approve_WhenPending_ShouldChange(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	vacancy := createVacancy(t, dbCtx, createUser(t, dbCtx, 100).ID, 41.30, 69.24, false)

	changed, err := repo.Approve(context.Background(), vacancy.ID)
	assert.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.Approve(context.Background(), vacancy.ID)
	assert.NoError(t, err)
	assert.False(t, changed)

	stored, err := repo.GetByID(context.Background(), vacancy.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, stored.Status())
}

func Test_Vacancies_Approve_WhenMissing_ShouldReturnNotFound(t *testing.T) {
	repo := NewVacanciesRepository(newTestDbContext(t).DB)

	_, err := repo.Approve(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.Reject(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_Vacancies_Approve_WhenRejected_ShouldFail(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	vacancy := createVacancy(t, dbCtx, createUser(t, dbCtx, 100).ID, 41.30, 69.24, false)

	changed, err := repo.Reject(context.Background(), vacancy.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.Reject(context.Background(), vacancy.ID)
	assert.NoError(t, err)
	assert.False(t, changed)

	_, err = repo.Approve(context.Background(), vacancy.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func Test_Vacancies_ConcurrentApproveAndReject_ShouldEndInValidState(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	employer := createUser(t, dbCtx, 100)

	for i := 0; i < 10; i++ {
		vacancy := createVacancy(t, dbCtx, employer.ID, 41.30, 69.24, false)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = repo.Approve(context.Background(), vacancy.ID)
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.Reject(context.Background(), vacancy.ID)
		}()
		wg.Wait()

		stored, err := repo.GetByID(context.Background(), vacancy.ID)
		require.NoError(t, err)
		assert.Contains(t, []models.VacancyStatus{models.StatusApproved, models.StatusInactive}, stored.Status())
		assert.False(t, stored.IsActive && !stored.IsApproved)
	}
}

func Test_Vacancies_Deactivate_WhenNotOwner_ShouldBeUnauthorized(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	owner := createUser(t, dbCtx, 100)
	stranger := createUser(t, dbCtx, 200)
	vacancy := createVacancy(t, dbCtx, owner.ID, 41.30, 69.24, true)

	err := repo.Deactivate(context.Background(), vacancy.ID, stranger.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	err = repo.Deactivate(context.Background(), vacancy.ID, owner.ID)
	assert.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), vacancy.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	err = repo.Deactivate(context.Background(), 999, owner.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_Vacancies_Discoverable_ShouldSkipHiddenAndFarAway(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	employer := createUser(t, dbCtx, 100)

	visible := createVacancy(t, dbCtx, employer.ID, 41.30, 69.24, true)
	createVacancy(t, dbCtx, employer.ID, 41.31, 69.24, false)
	rejected := createVacancy(t, dbCtx, employer.ID, 41.31, 69.25, true)
	_, err := repo.Reject(context.Background(), rejected.ID)
	require.NoError(t, err)
	createVacancy(t, dbCtx, employer.ID, 39.65, 66.96, true)

	box := geo.BoundingBoxAround(geo.Coordinate{Latitude: 41.32, Longitude: 69.25}, 10)
	vacancies, err := repo.Discoverable(context.Background(), box, nil)
	require.NoError(t, err)
	require.Len(t, vacancies, 1)
	assert.Equal(t, visible.ID, vacancies[0].ID)
}

func Test_Vacancies_Discoverable_ShouldFilterBySalary(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	employer := createUser(t, dbCtx, 100)

	vacancy := models.NewVacancy(employer.ID, models.VacancyDraft{
		Title: "Курьер", Description: "Доставка", Address: "Чиланзар",
		Latitude: ptr(41.30), Longitude: ptr(69.24),
		SalaryFrom: ptr(int64(2_000_000)), SalaryTo: ptr(int64(3_500_000)),
	})
	require.NoError(t, repo.Create(context.Background(), &vacancy))
	_, err := repo.Approve(context.Background(), vacancy.ID)
	require.NoError(t, err)

	box := geo.BoundingBoxAround(vacancy.Location(), 5)

	found, err := repo.Discoverable(context.Background(), box, ptr(int64(3_000_000)))
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = repo.Discoverable(context.Background(), box, ptr(int64(4_000_000)))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func Test_Vacancies_Promote_ShouldOverwriteWithoutStacking(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	vacancy := createVacancy(t, dbCtx, createUser(t, dbCtx, 100).ID, 41.30, 69.24, true)

	first := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Second)
	second := first.Add(time.Hour)

	require.NoError(t, repo.Promote(context.Background(), vacancy.ID, models.PromotionTop, first))
	require.NoError(t, repo.Promote(context.Background(), vacancy.ID, models.PromotionUrgent, second))

	stored, err := repo.GetByID(context.Background(), vacancy.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPromoted)
	assert.Equal(t, models.PromotionUrgent, *stored.PromotionType)
	assert.True(t, second.Equal(*stored.PromotionExpiresAt))
}

func Test_Vacancies_Promote_WhenInactive_ShouldFail(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	vacancy := createVacancy(t, dbCtx, createUser(t, dbCtx, 100).ID, 41.30, 69.24, true)
	_, err := repo.Reject(context.Background(), vacancy.ID)
	require.NoError(t, err)

	err = repo.Promote(context.Background(), vacancy.ID, models.PromotionTop, time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	err = repo.Promote(context.Background(), 999, models.PromotionTop, time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_Vacancies_ClearExpiredPromotions(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	employer := createUser(t, dbCtx, 100)
	expired := createVacancy(t, dbCtx, employer.ID, 41.30, 69.24, true)
	running := createVacancy(t, dbCtx, employer.ID, 41.30, 69.24, true)

	now := time.Now()
	require.NoError(t, repo.Promote(context.Background(), expired.ID, models.PromotionTop, now.Add(-time.Hour)))
	require.NoError(t, repo.Promote(context.Background(), running.ID, models.PromotionTop, now.Add(time.Hour)))

	cleared, err := repo.ClearExpiredPromotions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	stored, err := repo.GetByID(context.Background(), running.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPromoted)
}

func Test_Vacancies_Pending_ShouldBeOldestFirst(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewVacanciesRepository(dbCtx.DB)
	employer := createUser(t, dbCtx, 100)

	first := createVacancy(t, dbCtx, employer.ID, 41.30, 69.24, false)
	second := createVacancy(t, dbCtx, employer.ID, 41.30, 69.24, false)
	createVacancy(t, dbCtx, employer.ID, 41.30, 69.24, true)

	pending, err := repo.Pending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
}
