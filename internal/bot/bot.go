package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/events"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	"github.com/maxaizer/nearby-jobs-bot/internal/repositories"
	"github.com/maxaizer/nearby-jobs-bot/internal/services"
	log "github.com/sirupsen/logrus"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

type userRepository interface {
	GetOrCreate(ctx context.Context, identity repositories.UserIdentity) (*models.User, error)
	UpdateLocation(ctx context.Context, telegramID int64, location geo.Coordinate, name string) error
	UpdatePhone(ctx context.Context, telegramID int64, phone string) error
	SetEmployer(ctx context.Context, telegramID int64) error
}

type vacancyRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Vacancy, error)
	ByEmployer(ctx context.Context, employerID int64) ([]models.Vacancy, error)
}

type sessionRepository interface {
	SaveAll(ctx context.Context, states []models.SessionState) error
	LoadAndClear(ctx context.Context) ([]models.SessionState, error)
}

type statisticsRepository interface {
	Board(ctx context.Context) (*models.BoardStatistics, error)
	Employer(ctx context.Context, employerID int64, now time.Time) (*models.EmployerStatistics, error)
}

type discoveryService interface {
	FindNearby(ctx context.Context, query services.NearbyQuery) (services.NearbyPage, error)
}

type moderationService interface {
	Submit(ctx context.Context, employerID int64, draft models.VacancyDraft) (*models.Vacancy, error)
	Approve(ctx context.Context, moderatorTelegramID int64, id int64) (services.DispatchReport, error)
	Reject(ctx context.Context, moderatorTelegramID int64, id int64) error
	Deactivate(ctx context.Context, ownerID int64, id int64) error
	Pending(ctx context.Context, moderatorTelegramID int64, limit int) ([]models.Vacancy, error)
	IsModerator(telegramID int64) bool
	AdminIDs() []int64
}

type subscriptionService interface {
	Create(ctx context.Context, userID int64, draft models.SubscriptionDraft) (*models.Subscription, error)
	Get(ctx context.Context, userID int64) (*models.Subscription, error)
	Delete(ctx context.Context, userID int64) error
}

type promotionService interface {
	Purchase(ctx context.Context, userID int64, vacancyID int64, promotionType models.PromotionType) (*models.Payment, error)
	Offers() []services.PromotionOffer
}

type Dependencies struct {
	Users         userRepository
	Vacancies     vacancyRepository
	Sessions      sessionRepository
	Statistics    statisticsRepository
	Discovery     discoveryService
	Moderation    moderationService
	Subscriptions subscriptionService
	Promotions    promotionService
}

func (d Dependencies) validate() error {
	var errs []error
	if d.Users == nil {
		errs = append(errs, errors.New("user repository is nil"))
	}
	if d.Vacancies == nil {
		errs = append(errs, errors.New("vacancy repository is nil"))
	}
	if d.Sessions == nil {
		errs = append(errs, errors.New("session repository is nil"))
	}
	if d.Statistics == nil {
		errs = append(errs, errors.New("statistics repository is nil"))
	}
	if d.Discovery == nil {
		errs = append(errs, errors.New("discovery service is nil"))
	}
	if d.Moderation == nil {
		errs = append(errs, errors.New("moderation service is nil"))
	}
	if d.Subscriptions == nil {
		errs = append(errs, errors.New("subscription service is nil"))
	}
	if d.Promotions == nil {
		errs = append(errs, errors.New("promotion service is nil"))
	}
	return errors.Join(errs...)
}

const (
	pendingQueueLimit     = 10
	defaultSearchPageSize = 5
)

type Bot struct {
	api          apiInterface
	updates      func() botApi.UpdatesChannel
	stopUpdates  func()
	mu           sync.Mutex
	userContexts map[int64]*userContext
	bus          EventBus.Bus
	deps         Dependencies
	pageSize     int
	now          func() time.Time
}

// NewAPI authorizes the token and routes the library's logging through logrus.
func NewAPI(token string) (*botApi.BotAPI, error) {
	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}
	return api, nil
}

func NewBot(api *botApi.BotAPI, bus EventBus.Bus, deps Dependencies) (*Bot, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	createdBot := newBot(api, bus, deps)
	createdBot.updates = func() botApi.UpdatesChannel {
		updateConfig := botApi.NewUpdate(0)
		updateConfig.Timeout = 60
		return api.GetUpdatesChan(updateConfig)
	}
	createdBot.stopUpdates = api.StopReceivingUpdates

	if err := createdBot.subscribe(); err != nil {
		return nil, err
	}
	return createdBot, nil
}

func newBot(api apiInterface, bus EventBus.Bus, deps Dependencies) *Bot {
	return &Bot{
		api:          api,
		userContexts: make(map[int64]*userContext),
		bus:          bus,
		deps:         deps,
		pageSize:     defaultSearchPageSize,
		now:          time.Now,
	}
}

func (b *Bot) WithPageSize(pageSize int) *Bot {
	if pageSize > 0 {
		b.pageSize = pageSize
	}
	return b
}

func (b *Bot) subscribe() error {
	if err := b.bus.SubscribeAsync(events.VacancyApprovedTopic, b.onVacancyApproved, false); err != nil {
		return err
	}
	return b.bus.SubscribeAsync(events.VacancyRejectedTopic, b.onVacancyRejected, false)
}

func (b *Bot) Run() {

	if err := b.loadUserContexts(); err != nil {
		log.Errorf("Error loading user contexts: %v", err)
	}

	for update := range b.updates() {

		switch {
		case update.CallbackQuery != nil:
			go b.handleCallback(update.CallbackQuery)
		case update.Message != nil:
			if !update.Message.Chat.IsPrivate() {
				continue
			}
			go b.handleMessage(update.Message)
		}
	}
}

func (b *Bot) Stop() {
	if b.stopUpdates != nil {
		b.stopUpdates()
	}
	b.bus.WaitAsync()

	if err := b.saveUserContexts(); err != nil {
		log.Errorf("Error saving user contexts: %v", err)
	}
}

func (b *Bot) handleMessage(message *botApi.Message) {

	user, err := b.deps.Users.GetOrCreate(context.Background(), identityOf(message.From))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't load user: %v", err)
		_, _ = sendWithLogError(b.api, botApi.NewMessage(message.Chat.ID, "Внутренняя ошибка!"))
		return
	}

	ctx := b.userContext(user.TelegramID, message.Chat.ID)
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	cmd := message.Command()
	if cmd == "" && slices.Contains(menuButtons, message.Text) {
		cmd = message.Text
	}

	if cmd != "" {
		b.handleCommand(ctx, user, cmd)
	} else {
		b.handleInput(ctx, user, inputFromMessage(message))
	}
}

func (b *Bot) handleCommand(ctx *userContext, user *models.User, command string) {

	chatID := ctx.chatID
	isModerator := b.deps.Moderation.IsModerator(user.TelegramID)

	switch {
	case command == "start":
		ctx.Reset()
		msg := botApi.NewMessage(chatID, fmt.Sprintf("Здравствуйте, %s! 👋\n\n"+
			"Здесь можно найти работу рядом с домом, разместить вакансию и подписаться на новые.\n"+
			"Выберите действие в меню.", user.FirstName))
		msg.ReplyMarkup = mainMenuKeyboard(isModerator)
		_, _ = sendWithLogError(b.api, msg)
	case command == "cancel":
		ctx.Reset()
		msg := botApi.NewMessage(chatID, "Вы в главном меню.")
		msg.ReplyMarkup = mainMenuKeyboard(isModerator)
		_, _ = sendWithLogError(b.api, msg)
	case strings.HasPrefix(command, "vacancy_"):
		id, err := strconv.ParseInt(strings.TrimPrefix(command, "vacancy_"), 10, 64)
		if err != nil {
			_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, "Неизвестная команда!"))
			return
		}
		b.showVacancy(chatID, id, nil)
	case command == subscriptionButton:
		b.showSubscription(ctx, user)
	case command == myVacanciesButton:
		b.showEmployerVacancies(chatID, user)
	case command == statisticsButton:
		b.showStatistics(chatID, user, isModerator)
	case command == moderationButton:
		b.showPendingQueue(chatID, user)
	case command == findJobsButton || command == postVacancyButton || command == myLocationButton:
		b.runCommand(ctx, user, commandNameFor(command))
	default:
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, "Неизвестная команда!"))
	}
}

func commandNameFor(button string) string {
	switch button {
	case findJobsButton:
		return searchCommandName
	case postVacancyButton:
		return postVacancyCommandName
	case myLocationButton:
		return locationCommandName
	default:
		return ""
	}
}

func (b *Bot) runCommand(ctx *userContext, user *models.User, name string) {
	cmd, err := b.createCommand(name, user)
	if err != nil {
		log.Errorf("couldn't create %s: %v", name, err)
		_, _ = sendWithLogError(b.api, botApi.NewMessage(ctx.chatID, "Внутренняя ошибка!"))
		return
	}
	ctx.RunCommand(cmd, name, mainMenuKeyboard(b.deps.Moderation.IsModerator(user.TelegramID)))
}

func (b *Bot) createCommand(name string, user *models.User) (command, error) {

	switch name {
	case postVacancyCommandName:
		return newPostVacancyCommand(b.api, user, b.deps.Users, b.deps.Moderation, b.deps.Promotions.Offers(),
			b.notifyModerators), nil
	case subscribeCommandName:
		return newSubscribeCommand(b.api, user, b.deps.Subscriptions), nil
	case searchCommandName:
		return newSearchCommand(b.api, user, b.deps.Users, b.showFirstSearchPage), nil
	case locationCommandName:
		return newLocationCommand(b.api, user, b.deps.Users), nil
	default:
		return nil, fmt.Errorf("unknown command: %v", name)
	}
}

func (b *Bot) handleInput(ctx *userContext, user *models.User, input userInput) {

	if ctx.HasRunningCommand() {
		ctx.OnUserInput(input)
		return
	}

	msg := botApi.NewMessage(ctx.chatID, "Выберите действие в меню.")
	msg.ReplyMarkup = mainMenuKeyboard(b.deps.Moderation.IsModerator(user.TelegramID))
	_, _ = sendWithLogError(b.api, msg)
}

func (b *Bot) userContext(telegramID int64, chatID int64) *userContext {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, ok := b.userContexts[telegramID]
	if !ok {
		ctx = newUserContext(chatID)
		b.userContexts[telegramID] = ctx
	}
	return ctx
}

func identityOf(from *botApi.User) repositories.UserIdentity {
	return repositories.UserIdentity{TelegramID: from.ID, Username: from.UserName, FirstName: from.FirstName}
}

func (b *Bot) notifyModerators(vacancy *models.Vacancy) {
	text := "🆕 Новая вакансия на модерации\n\n" + vacancyCard(vacancy, nil, b.now())
	for _, adminID := range b.deps.Moderation.AdminIDs() {
		msg := botApi.NewMessage(adminID, text)
		msg.ReplyMarkup = moderationKeyboard(vacancy.ID)
		_, _ = sendWithLogError(b.api, msg)
	}
}

func (b *Bot) onVacancyApproved(event events.VacancyApproved) {
	if event.EmployerTelegram == 0 {
		return
	}
	text := fmt.Sprintf("✅ Ваша вакансия «%s» опубликована! Уведомлено подписчиков: %d.",
		event.Vacancy.Title, event.NotifiedCount)
	_, _ = sendWithLogError(b.api, botApi.NewMessage(event.EmployerTelegram, text))
}

func (b *Bot) onVacancyRejected(event events.VacancyRejected) {
	if event.EmployerTelegram == 0 {
		return
	}
	text := fmt.Sprintf("❌ Ваша вакансия «%s» отклонена модератором.", event.Vacancy.Title)
	_, _ = sendWithLogError(b.api, botApi.NewMessage(event.EmployerTelegram, text))
}

func (b *Bot) saveUserContexts() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	states := make([]models.SessionState, 0, len(b.userContexts))
	for telegramID, ctx := range b.userContexts {
		state, ok, err := sessionStateOf(telegramID, ctx)
		if err != nil {
			return err
		}
		if ok {
			states = append(states, state)
		}
	}
	return b.deps.Sessions.SaveAll(context.Background(), states)
}

// sessionStateOf waits for a handler still working on ctx before reading it.
func sessionStateOf(telegramID int64, ctx *userContext) (models.SessionState, bool, error) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if !ctx.HasRunningCommand() {
		return models.SessionState{}, false, nil
	}
	data, err := json.Marshal(ctx)
	if err != nil {
		return models.SessionState{}, false, err
	}
	return models.SessionState{UserID: telegramID, Command: ctx.curCommandName, State: data}, true, nil
}

func (b *Bot) loadUserContexts() error {
	states, err := b.deps.Sessions.LoadAndClear(context.Background())
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	for _, state := range states {
		ctx := &userContext{}
		if err = json.Unmarshal(state.State, ctx); err != nil {
			errs = append(errs, err)
			continue
		}

		if err = b.resumeCommand(state.UserID, ctx); err != nil {
			errs = append(errs, err)
			continue
		}
		b.userContexts[state.UserID] = ctx
	}

	return errors.Join(errs...)
}

func (b *Bot) resumeCommand(telegramID int64, ctx *userContext) error {
	if ctx.curCommandName == "" {
		return nil
	}

	user, err := b.deps.Users.GetOrCreate(context.Background(), repositories.UserIdentity{TelegramID: telegramID})
	if err != nil {
		return err
	}

	cmd, err := b.createCommand(ctx.curCommandName, user)
	if err != nil {
		return err
	}

	if saveableCmd, ok := cmd.(saveable); ok {
		if err = saveableCmd.LoadState(ctx.curCommandState); err != nil {
			return err
		}
	}

	ctx.ResumeCommandAfterBotRestart(cmd, mainMenuKeyboard(b.deps.Moderation.IsModerator(telegramID)))
	return nil
}
