package bot

import (
	"fmt"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	"github.com/maxaizer/nearby-jobs-bot/internal/services"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"strings"
	"time"
)

const dateLayout = "02.01.2006"

var promotionBadges = map[models.PromotionType]string{
	models.PromotionTop:       "⭐ ТОП",
	models.PromotionUrgent:    "🔥 СРОЧНО",
	models.PromotionHighlight: "✨ Выделено",
}

var promotionNames = map[models.PromotionType]string{
	models.PromotionTop:       "⭐ Топ в выдаче",
	models.PromotionUrgent:    "🔥 Срочная вакансия",
	models.PromotionHighlight: "✨ Выделение",
}

var statusNames = map[models.VacancyStatus]string{
	models.StatusPending:  "⏳ На модерации",
	models.StatusApproved: "✅ Опубликована",
	models.StatusInactive: "🚫 Неактивна",
}

func vacancyCard(v *models.Vacancy, distanceKm *float64, now time.Time) string {
	var b strings.Builder

	if v.EffectivelyPromoted(now) && v.PromotionType != nil {
		b.WriteString(promotionBadges[*v.PromotionType] + "\n")
	}
	b.WriteString(fmt.Sprintf("💼 %s\n", v.Title))
	b.WriteString(fmt.Sprintf("💰 %s\n", v.SalaryText()))
	if v.WorkSchedule != nil {
		b.WriteString(fmt.Sprintf("📅 График: %s\n", *v.WorkSchedule))
	}
	if v.ExperienceRequired != nil {
		b.WriteString(fmt.Sprintf("🎯 Опыт: %s\n", *v.ExperienceRequired))
	}
	b.WriteString(fmt.Sprintf("📍 Адрес: %s\n", v.Address))
	if distanceKm != nil {
		b.WriteString(fmt.Sprintf("📏 Расстояние: %.1f км\n", *distanceKm))
	}
	b.WriteString("\n" + v.Description)
	return b.String()
}

func searchPageText(page services.NearbyPage, pageNum int, pageSize int) string {
	if page.Total == 0 {
		return "😔 Поблизости пока нет подходящих вакансий. Оформите подписку, чтобы узнать о новых первым."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Найдено вакансий: %d\n\n", page.Total))
	for i, item := range page.Items {
		marker := ""
		if item.Promoted && item.Vacancy.PromotionType != nil {
			marker = " " + promotionBadges[*item.Vacancy.PromotionType]
		}
		b.WriteString(fmt.Sprintf("%d. %s%s\n   💰 %s\n   📏 %.1f км\n",
			pageNum*pageSize+i+1, item.Vacancy.Title, marker, item.Vacancy.SalaryText(), item.DistanceKm))
	}
	return b.String()
}

func searchPageKeyboard(page services.NearbyPage, pageNum int, minSalary *int64) *botApi.InlineKeyboardMarkup {
	if len(page.Items) == 0 {
		return nil
	}

	var rows [][]botApi.InlineKeyboardButton
	for _, item := range page.Items {
		rows = append(rows, botApi.NewInlineKeyboardRow(
			botApi.NewInlineKeyboardButtonData("👁 "+truncate(item.Vacancy.Title, 40), viewData(item.Vacancy.ID)),
		))
	}

	var navigation []botApi.InlineKeyboardButton
	if pageNum > 0 {
		navigation = append(navigation, botApi.NewInlineKeyboardButtonData("⬅️ Назад", pageData(pageNum-1, minSalary)))
	}
	if page.HasMore {
		navigation = append(navigation, botApi.NewInlineKeyboardButtonData("Далее ➡️", pageData(pageNum+1, minSalary)))
	}
	if len(navigation) > 0 {
		rows = append(rows, navigation)
	}

	keyboard := botApi.NewInlineKeyboardMarkup(rows...)
	return &keyboard
}

func employerVacanciesText(vacancies []models.Vacancy, now time.Time) string {
	if len(vacancies) == 0 {
		return "У вас пока нет вакансий."
	}

	var b strings.Builder
	b.WriteString("📋 Ваши вакансии:\n\n")
	for _, v := range vacancies {
		b.WriteString(fmt.Sprintf("#%d %s\n   %s\n", v.ID, v.Title, statusNames[v.Status()]))
		if v.EffectivelyPromoted(now) && v.PromotionType != nil {
			b.WriteString(fmt.Sprintf("   %s до %s\n", promotionBadges[*v.PromotionType], v.PromotionExpiresAt.Format(dateLayout)))
		}
	}
	return b.String()
}

func employerVacanciesKeyboard(vacancies []models.Vacancy) *botApi.InlineKeyboardMarkup {
	active := lo.Filter(vacancies, func(v models.Vacancy, _ int) bool { return v.IsActive })

	var rows [][]botApi.InlineKeyboardButton
	for _, v := range active {
		rows = append(rows, botApi.NewInlineKeyboardRow(
			botApi.NewInlineKeyboardButtonData(fmt.Sprintf("🚀 Продвинуть #%d", v.ID), promoteData(v.ID)),
			botApi.NewInlineKeyboardButtonData(fmt.Sprintf("🗑 Снять #%d", v.ID), deactivateData(v.ID)),
		))
	}
	if len(rows) == 0 {
		return nil
	}
	keyboard := botApi.NewInlineKeyboardMarkup(rows...)
	return &keyboard
}

func promotionOffersKeyboard(vacancyID int64, offers []services.PromotionOffer) botApi.InlineKeyboardMarkup {
	var rows [][]botApi.InlineKeyboardButton
	for _, offer := range offers {
		text := fmt.Sprintf("%s · %s сум / %d дн.", promotionNames[offer.Type], models.GroupDigits(offer.Price), offer.Days)
		rows = append(rows, botApi.NewInlineKeyboardRow(
			botApi.NewInlineKeyboardButtonData(text, buyData(vacancyID, offer.Type)),
		))
	}
	return botApi.NewInlineKeyboardMarkup(rows...)
}

func moderationKeyboard(vacancyID int64) botApi.InlineKeyboardMarkup {
	return botApi.NewInlineKeyboardMarkup(botApi.NewInlineKeyboardRow(
		botApi.NewInlineKeyboardButtonData("✅ Одобрить", approveData(vacancyID)),
		botApi.NewInlineKeyboardButtonData("❌ Отклонить", rejectData(vacancyID)),
	))
}

func subscriptionText(s *models.Subscription) string {
	var b strings.Builder
	b.WriteString("🔔 Ваша подписка\n\n")
	b.WriteString(fmt.Sprintf("📏 Радиус: %d км\n", s.RadiusKm))
	if s.SalaryFrom != nil {
		b.WriteString(fmt.Sprintf("💰 Зарплата от %s сум\n", models.GroupDigits(*s.SalaryFrom)))
	}
	b.WriteString(fmt.Sprintf("📅 Оформлена: %s", s.CreatedAt.Format(dateLayout)))
	return b.String()
}

func subscriptionKeyboard() botApi.InlineKeyboardMarkup {
	return botApi.NewInlineKeyboardMarkup(botApi.NewInlineKeyboardRow(
		botApi.NewInlineKeyboardButtonData("🔄 Изменить", resubscribeData),
		botApi.NewInlineKeyboardButtonData("🗑 Отписаться", unsubscribeData),
	))
}

func employerStatisticsText(s *models.EmployerStatistics) string {
	return fmt.Sprintf("📊 Ваша статистика\n\n"+
		"Всего вакансий: %d\nОпубликовано: %d\nНа модерации: %d\nПродвигается: %d\nПотрачено: %s сум",
		s.TotalVacancies, s.ActiveVacancies, s.PendingVacancies, s.PromotedVacancies, models.GroupDigits(s.TotalSpent))
}

func boardStatisticsText(s *models.BoardStatistics) string {
	return fmt.Sprintf("📈 Статистика сервиса\n\n"+
		"Пользователей: %d\nРаботодателей: %d\nВсего вакансий: %d\nОпубликовано: %d\nНа модерации: %d\nПодписок: %d",
		s.TotalUsers, s.TotalEmployers, s.TotalVacancies, s.ActiveVacancies, s.PendingVacancies, s.TotalSubscriptions)
}

// userErrorText maps core errors to what the user sees; unexpected ones are logged.
func userErrorText(err error) string {
	switch {
	case errors.Is(err, models.ErrValidation):
		return "⚠️ Проверьте введённые данные."
	case errors.Is(err, models.ErrUnauthorized):
		return "⛔ Недостаточно прав."
	case errors.Is(err, models.ErrNotFound):
		return "🤷 Не найдено."
	case errors.Is(err, models.ErrInvalidTransition):
		return "🚫 Вакансия уже неактивна."
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		return "Внутренняя ошибка!"
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
