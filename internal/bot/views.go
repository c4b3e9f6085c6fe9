package bot

import (
	"context"
	"fmt"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"github.com/maxaizer/nearby-jobs-bot/internal/services"
	"github.com/pkg/errors"
)

func (b *Bot) showFirstSearchPage(chatID int64, origin geo.Coordinate, minSalary *int64) {
	b.showSearchPage(chatID, 0, origin, 0, minSalary)
}

// showSearchPage sends a new results message, or edits messageID in place when paging.
func (b *Bot) showSearchPage(chatID int64, messageID int, origin geo.Coordinate, pageNum int, minSalary *int64) {

	page, err := b.deps.Discovery.FindNearby(context.Background(), services.NearbyQuery{
		Origin:    origin,
		MinSalary: minSalary,
		Page:      pageNum,
		PageSize:  b.pageSize,
	})
	if err != nil {
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, userErrorText(err)))
		return
	}

	text := searchPageText(page, pageNum, b.pageSize)
	keyboard := searchPageKeyboard(page, pageNum, minSalary)

	if messageID == 0 {
		msg := botApi.NewMessage(chatID, text)
		if keyboard != nil {
			msg.ReplyMarkup = keyboard
		}
		_, _ = sendWithLogError(b.api, msg)
		return
	}

	var edit botApi.EditMessageTextConfig
	if keyboard != nil {
		edit = botApi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
	} else {
		edit = botApi.NewEditMessageText(chatID, messageID, text)
	}
	requestWithLogError(b.api, edit)
}

func (b *Bot) showVacancy(chatID int64, id int64, origin *geo.Coordinate) {

	vacancy, err := b.deps.Vacancies.GetByID(context.Background(), id)
	if err == nil && !vacancy.IsDiscoverable() {
		err = models.ErrNotFound
	}
	if err != nil {
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, userErrorText(err)))
		return
	}

	var distance *float64
	if origin != nil {
		d := geo.Distance(*origin, vacancy.Location())
		distance = &d
	}

	msg := botApi.NewMessage(chatID, vacancyCard(vacancy, distance, b.now()))
	msg.ReplyMarkup = botApi.NewInlineKeyboardMarkup(botApi.NewInlineKeyboardRow(
		botApi.NewInlineKeyboardButtonData("📞 Контакты", contactData(vacancy.ID)),
	))
	_, _ = sendWithLogError(b.api, msg)
}

func (b *Bot) showContact(chatID int64, id int64) {

	vacancy, err := b.deps.Vacancies.GetByID(context.Background(), id)
	if err == nil && !vacancy.IsDiscoverable() {
		err = models.ErrNotFound
	}
	if err != nil {
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, userErrorText(err)))
		return
	}

	text := fmt.Sprintf("📞 Контакты по вакансии «%s»\n\n", vacancy.Title)
	if vacancy.ContactName != nil {
		text += fmt.Sprintf("👤 %s\n", *vacancy.ContactName)
	}
	if vacancy.Phone != nil {
		text += fmt.Sprintf("☎️ %s", *vacancy.Phone)
	} else {
		text += "Работодатель не указал телефон."
	}
	_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, text))
}

func (b *Bot) showSubscription(ctx *userContext, user *models.User) {

	subscription, err := b.deps.Subscriptions.Get(context.Background(), user.ID)
	if errors.Is(err, models.ErrNotFound) {
		b.runCommand(ctx, user, subscribeCommandName)
		return
	}
	if err != nil {
		_, _ = sendWithLogError(b.api, botApi.NewMessage(ctx.chatID, userErrorText(err)))
		return
	}

	msg := botApi.NewMessage(ctx.chatID, subscriptionText(subscription))
	msg.ReplyMarkup = subscriptionKeyboard()
	_, _ = sendWithLogError(b.api, msg)
}

func (b *Bot) showEmployerVacancies(chatID int64, user *models.User) {

	vacancies, err := b.deps.Vacancies.ByEmployer(context.Background(), user.ID)
	if err != nil {
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, userErrorText(err)))
		return
	}

	msg := botApi.NewMessage(chatID, employerVacanciesText(vacancies, b.now()))
	if keyboard := employerVacanciesKeyboard(vacancies); keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	_, _ = sendWithLogError(b.api, msg)
}

func (b *Bot) showStatistics(chatID int64, user *models.User, isModerator bool) {
	ctx := context.Background()

	stats, err := b.deps.Statistics.Employer(ctx, user.ID, b.now())
	if err != nil {
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, userErrorText(err)))
		return
	}
	text := employerStatisticsText(stats)

	if isModerator {
		board, err := b.deps.Statistics.Board(ctx)
		if err != nil {
			_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, userErrorText(err)))
			return
		}
		text += "\n\n" + boardStatisticsText(board)
	}
	_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, text))
}

func (b *Bot) showPendingQueue(chatID int64, user *models.User) {

	pending, err := b.deps.Moderation.Pending(context.Background(), user.TelegramID, pendingQueueLimit)
	if err != nil {
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, userErrorText(err)))
		return
	}
	if len(pending) == 0 {
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, "✨ Очередь модерации пуста."))
		return
	}

	for i := range pending {
		msg := botApi.NewMessage(chatID, fmt.Sprintf("#%d\n", pending[i].ID)+vacancyCard(&pending[i], nil, b.now()))
		msg.ReplyMarkup = moderationKeyboard(pending[i].ID)
		_, _ = sendWithLogError(b.api, msg)
	}
}
