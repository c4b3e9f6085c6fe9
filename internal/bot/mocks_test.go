package bot

import (
	"context"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"github.com/maxaizer/nearby-jobs-bot/internal/repositories"
	"github.com/maxaizer/nearby-jobs-bot/internal/services"
	"sync"
	"time"
)

type mockApi struct {
	mu           sync.Mutex
	SentMessages []botApi.Chattable
	Requests     []botApi.Chattable
	sendErr      error
}

func (m *mockApi) Send(chattable botApi.Chattable) (botApi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = append(m.SentMessages, chattable)
	return botApi.Message{}, m.sendErr
}

func (m *mockApi) Request(chattable botApi.Chattable) (*botApi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, chattable)
	return &botApi.APIResponse{Ok: true}, nil
}

func (m *mockApi) lastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return ""
	}
	if msg, ok := m.SentMessages[len(m.SentMessages)-1].(botApi.MessageConfig); ok {
		return msg.Text
	}
	return ""
}

type mockUsers struct {
	users        map[int64]*models.User
	phones       map[int64]string
	employers    map[int64]bool
	locationName string
}

func newMockUsers(users ...*models.User) *mockUsers {
	m := &mockUsers{users: map[int64]*models.User{}, phones: map[int64]string{}, employers: map[int64]bool{}}
	for _, u := range users {
		m.users[u.TelegramID] = u
	}
	return m
}

func (m *mockUsers) GetOrCreate(_ context.Context, identity repositories.UserIdentity) (*models.User, error) {
	if u, ok := m.users[identity.TelegramID]; ok {
		return u, nil
	}
	u := &models.User{ID: int64(len(m.users) + 1), TelegramID: identity.TelegramID, FirstName: identity.FirstName}
	m.users[identity.TelegramID] = u
	return u, nil
}

func (m *mockUsers) UpdateLocation(_ context.Context, telegramID int64, location geo.Coordinate, name string) error {
	u := m.users[telegramID]
	u.Latitude, u.Longitude = &location.Latitude, &location.Longitude
	m.locationName = name
	return nil
}

func (m *mockUsers) UpdatePhone(_ context.Context, telegramID int64, phone string) error {
	m.phones[telegramID] = phone
	return nil
}

func (m *mockUsers) SetEmployer(_ context.Context, telegramID int64) error {
	m.employers[telegramID] = true
	return nil
}

type mockModeration struct {
	submitted  []models.VacancyDraft
	approved   []int64
	rejected   []int64
	moderators []int64
	approveErr error
}

func (m *mockModeration) Submit(_ context.Context, employerID int64, draft models.VacancyDraft) (*models.Vacancy, error) {
	m.submitted = append(m.submitted, draft)
	vacancy := models.NewVacancy(employerID, draft)
	vacancy.ID = int64(len(m.submitted))
	return &vacancy, nil
}

func (m *mockModeration) Approve(_ context.Context, moderatorTelegramID int64, id int64) (services.DispatchReport, error) {
	if !m.IsModerator(moderatorTelegramID) {
		return services.DispatchReport{}, models.ErrUnauthorized
	}
	if m.approveErr != nil {
		return services.DispatchReport{}, m.approveErr
	}
	m.approved = append(m.approved, id)
	return services.DispatchReport{Attempted: 3, Delivered: 2, Failed: 1}, nil
}

func (m *mockModeration) Reject(_ context.Context, moderatorTelegramID int64, id int64) error {
	if !m.IsModerator(moderatorTelegramID) {
		return models.ErrUnauthorized
	}
	m.rejected = append(m.rejected, id)
	return nil
}

func (m *mockModeration) Deactivate(_ context.Context, _ int64, _ int64) error {
	return nil
}

func (m *mockModeration) Pending(_ context.Context, _ int64, _ int) ([]models.Vacancy, error) {
	return nil, nil
}

func (m *mockModeration) IsModerator(telegramID int64) bool {
	for _, id := range m.moderators {
		if id == telegramID {
			return true
		}
	}
	return false
}

func (m *mockModeration) AdminIDs() []int64 {
	return m.moderators
}

type mockSubscriptions struct {
	created map[int64]models.SubscriptionDraft
}

func newMockSubscriptions() *mockSubscriptions {
	return &mockSubscriptions{created: map[int64]models.SubscriptionDraft{}}
}

func (m *mockSubscriptions) Create(_ context.Context, userID int64, draft models.SubscriptionDraft) (*models.Subscription, error) {
	m.created[userID] = draft
	subscription := models.NewSubscription(userID, draft)
	return &subscription, nil
}

func (m *mockSubscriptions) Get(_ context.Context, userID int64) (*models.Subscription, error) {
	draft, ok := m.created[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	subscription := models.NewSubscription(userID, draft)
	return &subscription, nil
}

func (m *mockSubscriptions) Delete(_ context.Context, userID int64) error {
	if _, ok := m.created[userID]; !ok {
		return models.ErrNotFound
	}
	delete(m.created, userID)
	return nil
}

type mockSessions struct {
	saved []models.SessionState
}

func (m *mockSessions) SaveAll(_ context.Context, states []models.SessionState) error {
	m.saved = append(m.saved, states...)
	return nil
}

func (m *mockSessions) LoadAndClear(_ context.Context) ([]models.SessionState, error) {
	states := m.saved
	m.saved = nil
	return states, nil
}

type mockVacancies struct {
	vacancies map[int64]*models.Vacancy
}

func (m *mockVacancies) GetByID(_ context.Context, id int64) (*models.Vacancy, error) {
	v, ok := m.vacancies[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return v, nil
}

func (m *mockVacancies) ByEmployer(_ context.Context, employerID int64) ([]models.Vacancy, error) {
	var result []models.Vacancy
	for _, v := range m.vacancies {
		if v.EmployerID == employerID {
			result = append(result, *v)
		}
	}
	return result, nil
}

type mockStatistics struct{}

func (mockStatistics) Board(context.Context) (*models.BoardStatistics, error) {
	return &models.BoardStatistics{TotalUsers: 10}, nil
}

func (mockStatistics) Employer(context.Context, int64, time.Time) (*models.EmployerStatistics, error) {
	return &models.EmployerStatistics{TotalVacancies: 1}, nil
}

type mockDiscovery struct {
	queries []services.NearbyQuery
	page    services.NearbyPage
}

func (m *mockDiscovery) FindNearby(_ context.Context, query services.NearbyQuery) (services.NearbyPage, error) {
	m.queries = append(m.queries, query)
	return m.page, nil
}

type mockPromotions struct {
	purchased []models.PromotionType
}

func (m *mockPromotions) Purchase(_ context.Context, userID int64, vacancyID int64,
	promotionType models.PromotionType) (*models.Payment, error) {
	m.purchased = append(m.purchased, promotionType)
	return &models.Payment{UserID: userID, VacancyID: vacancyID, Amount: promotionType.Price(), ServiceType: promotionType,
		Status: models.PaymentCompleted}, nil
}

func (m *mockPromotions) Offers() []services.PromotionOffer {
	return []services.PromotionOffer{{Type: models.PromotionTop, Price: models.PromotionTop.Price(), Days: 7}}
}

type testBot struct {
	*Bot
	api           *mockApi
	users         *mockUsers
	moderation    *mockModeration
	subscriptions *mockSubscriptions
	sessions      *mockSessions
	discovery     *mockDiscovery
	promotions    *mockPromotions
	vacancies     *mockVacancies
}

func newTestBot(users ...*models.User) *testBot {
	tb := &testBot{
		api:           &mockApi{},
		users:         newMockUsers(users...),
		moderation:    &mockModeration{moderators: []int64{999}},
		subscriptions: newMockSubscriptions(),
		sessions:      &mockSessions{},
		discovery:     &mockDiscovery{},
		promotions:    &mockPromotions{},
		vacancies:     &mockVacancies{vacancies: map[int64]*models.Vacancy{}},
	}
	tb.Bot = newBot(tb.api, nil, Dependencies{
		Users:         tb.users,
		Vacancies:     tb.vacancies,
		Sessions:      tb.sessions,
		Statistics:    mockStatistics{},
		Discovery:     tb.discovery,
		Moderation:    tb.moderation,
		Subscriptions: tb.subscriptions,
		Promotions:    tb.promotions,
	})
	return tb
}
