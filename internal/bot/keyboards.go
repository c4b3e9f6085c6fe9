package bot

import botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	findJobsButton       = "🔍 Найти работу"
	postVacancyButton    = "📝 Разместить вакансию"
	subscriptionButton   = "🔔 Подписка"
	myVacanciesButton    = "📋 Мои вакансии"
	statisticsButton     = "📊 Статистика"
	myLocationButton     = "📍 Моё местоположение"
	moderationButton     = "🛡 Модерация"
	cancelButton         = "❌ Отмена"
	skipButton           = "Пропустить"
	shareLocationButton  = "📍 Отправить геолокацию"
	shareContactButton   = "📞 Отправить контакт"
	confirmPublishButton = "✅ Опубликовать"
)

var menuButtons = []string{
	findJobsButton, postVacancyButton, subscriptionButton, myVacanciesButton,
	statisticsButton, myLocationButton, moderationButton,
}

func mainMenuKeyboard(isModerator bool) botApi.ReplyKeyboardMarkup {
	rows := [][]botApi.KeyboardButton{
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(findJobsButton),
			botApi.NewKeyboardButton(postVacancyButton),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(subscriptionButton),
			botApi.NewKeyboardButton(myVacanciesButton),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(statisticsButton),
			botApi.NewKeyboardButton(myLocationButton),
		),
	}
	if isModerator {
		rows = append(rows, botApi.NewKeyboardButtonRow(botApi.NewKeyboardButton(moderationButton)))
	}
	return botApi.NewReplyKeyboard(rows...)
}

func keyboardWithCancel() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(cancelButton),
		),
	)
}

func keyboardWithOptions(options ...string) botApi.ReplyKeyboardMarkup {
	var rows [][]botApi.KeyboardButton
	for i := 0; i < len(options); i += 2 {
		row := botApi.NewKeyboardButtonRow()
		for _, option := range options[i:min(i+2, len(options))] {
			row = append(row, botApi.NewKeyboardButton(option))
		}
		rows = append(rows, row)
	}
	rows = append(rows, botApi.NewKeyboardButtonRow(botApi.NewKeyboardButton(cancelButton)))
	return botApi.NewReplyKeyboard(rows...)
}
