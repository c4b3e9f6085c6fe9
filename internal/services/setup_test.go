package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/repositories"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"sync"
	"testing"
)

type testEnv struct {
	db            *repositories.DbContext
	users         *repositories.Users
	vacancies     *repositories.Vacancies
	subscriptions *repositories.Subscriptions
	payments      *repositories.Payments
	bus           EventBus.Bus
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(repositories.DriverSqlite,
		filepath.Join(t.TempDir(), "test.db")+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	return &testEnv{
		db:            dbCtx,
		users:         repositories.NewUsersRepository(dbCtx.DB),
		vacancies:     repositories.NewVacanciesRepository(dbCtx.DB),
		subscriptions: repositories.NewSubscriptionsRepository(dbCtx.DB),
		payments:      repositories.NewPaymentsRepository(dbCtx.DB),
		bus:           EventBus.New(),
	}
}

func (e *testEnv) createUser(t *testing.T, telegramID int64) *models.User {
	t.Helper()

	user, err := e.users.GetOrCreate(context.Background(), repositories.UserIdentity{TelegramID: telegramID})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createVacancy(t *testing.T, employerID int64, lat, lon float64, salaryFrom *int64, approved bool) *models.Vacancy {
	t.Helper()

	draft := validDraft(lat, lon)
	draft.SalaryFrom = salaryFrom
	vacancy := models.NewVacancy(employerID, draft)
	require.NoError(t, e.vacancies.Create(context.Background(), &vacancy))

	if approved {
		_, err := e.vacancies.Approve(context.Background(), vacancy.ID)
		require.NoError(t, err)
		vacancy.IsApproved = true
	}
	return &vacancy
}

func (e *testEnv) subscribe(t *testing.T, telegramID int64, lat, lon float64, radiusKm int, salaryFrom *int64) {
	t.Helper()

	user := e.createUser(t, telegramID)
	_, err := NewSubscriptionService(e.subscriptions).Create(context.Background(), user.ID, models.SubscriptionDraft{
		Latitude: ptr(lat), Longitude: ptr(lon), RadiusKm: radiusKm, SalaryFrom: salaryFrom,
	})
	require.NoError(t, err)
}

func validDraft(lat, lon float64) models.VacancyDraft {
	return models.VacancyDraft{
		Title:       "Официант",
		Description: "Работа в кафе в центре города",
		Address:     "Ташкент, Амир Темур 15",
		Latitude:    ptr(lat),
		Longitude:   ptr(lon),
	}
}

func ptr[T any](v T) *T {
	return &v
}

// recordingSink remembers every attempt and fails for the configured recipients.
type recordingSink struct {
	mu        sync.Mutex
	attempts  []int64
	failFor   map[int64]error
	delivered map[int64]string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{failFor: map[int64]error{}, delivered: map[int64]string{}}
}

func (s *recordingSink) Send(_ context.Context, recipientID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts = append(s.attempts, recipientID)
	if err, ok := s.failFor[recipientID]; ok {
		return err
	}
	s.delivered[recipientID] = text
	return nil
}

func (s *recordingSink) Attempts() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.attempts...)
}
