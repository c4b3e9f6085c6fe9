package bot

import (
	"context"
	"fmt"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handleCallback(query *botApi.CallbackQuery) {

	if query.Message == nil {
		requestWithLogError(b.api, botApi.NewCallback(query.ID, ""))
		return
	}

	data, err := parseCallbackData(query.Data)
	if err != nil {
		log.Warnf("couldn't parse callback: %v", err)
		requestWithLogError(b.api, botApi.NewCallback(query.ID, "Неизвестное действие"))
		return
	}

	user, err := b.deps.Users.GetOrCreate(context.Background(), identityOf(query.From))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't load user: %v", err)
		requestWithLogError(b.api, botApi.NewCallback(query.ID, "Внутренняя ошибка!"))
		return
	}

	ctx := b.userContext(user.TelegramID, query.Message.Chat.ID)
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	answer := b.dispatchCallback(ctx, user, query.Message, data)
	requestWithLogError(b.api, botApi.NewCallback(query.ID, answer))
}

// dispatchCallback runs the action and returns the short notice shown on the button press.
func (b *Bot) dispatchCallback(ctx *userContext, user *models.User, message *botApi.Message, data callbackData) string {

	chatID := message.Chat.ID
	background := context.Background()

	switch data.Action {
	case pageAction:
		if !user.HasLocation() {
			return "Сначала укажите местоположение"
		}
		pageNum, minSalary := data.pageArgs()
		b.showSearchPage(chatID, message.MessageID, user.Location(), pageNum, minSalary)
		return ""

	case viewAction:
		if user.HasLocation() {
			origin := user.Location()
			b.showVacancy(chatID, data.ID, &origin)
		} else {
			b.showVacancy(chatID, data.ID, nil)
		}
		return ""

	case contactAction:
		b.showContact(chatID, data.ID)
		return ""

	case approveAction:
		report, err := b.deps.Moderation.Approve(background, user.TelegramID, data.ID)
		if err != nil {
			return userErrorText(err)
		}
		b.closeModerationMessage(message, fmt.Sprintf("✅ Одобрено. Уведомлено: %d из %d.",
			report.Delivered, report.Attempted))
		return "Одобрено"

	case rejectAction:
		if err := b.deps.Moderation.Reject(background, user.TelegramID, data.ID); err != nil {
			return userErrorText(err)
		}
		b.closeModerationMessage(message, "❌ Отклонено.")
		return "Отклонено"

	case promoteAction:
		msg := botApi.NewMessage(chatID, fmt.Sprintf("🚀 Выберите продвижение для вакансии #%d:", data.ID))
		msg.ReplyMarkup = promotionOffersKeyboard(data.ID, b.deps.Promotions.Offers())
		_, _ = sendWithLogError(b.api, msg)
		return ""

	case buyAction:
		return b.buyPromotion(chatID, user, data)

	case deactivateAction:
		if err := b.deps.Moderation.Deactivate(background, user.ID, data.ID); err != nil {
			return userErrorText(err)
		}
		_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, fmt.Sprintf("🗑 Вакансия #%d снята с публикации.", data.ID)))
		return "Снято"

	case resubscribeData:
		b.runCommand(ctx, user, subscribeCommandName)
		return ""

	case unsubscribeData:
		if err := b.deps.Subscriptions.Delete(background, user.ID); err != nil {
			return userErrorText(err)
		}
		requestWithLogError(b.api, botApi.NewEditMessageText(chatID, message.MessageID, "🔕 Подписка отменена."))
		return "Вы отписались"

	default:
		return "Неизвестное действие"
	}
}

func (b *Bot) buyPromotion(chatID int64, user *models.User, data callbackData) string {
	if len(data.Args) == 0 {
		return "Неизвестное действие"
	}
	promotionType, err := models.ToPromotionType(data.Args[0])
	if err != nil {
		return userErrorText(err)
	}

	payment, err := b.deps.Promotions.Purchase(context.Background(), user.ID, data.ID, promotionType)
	if err != nil {
		return userErrorText(err)
	}

	_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, fmt.Sprintf("✅ Оплачено %s сум. %s для вакансии #%d активировано.",
		models.GroupDigits(payment.Amount), promotionNames[promotionType], data.ID)))
	return "Оплачено"
}

func (b *Bot) closeModerationMessage(message *botApi.Message, verdict string) {
	requestWithLogError(b.api, botApi.NewEditMessageText(message.Chat.ID, message.MessageID, message.Text+"\n\n"+verdict))
}
