package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"regexp"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,18}$`)

type phoneInput struct {
	chatID   int64
	onFinish func(phone string)
}

func newPhoneInput(chatID int64, onFinish func(phone string)) *phoneInput {
	return &phoneInput{chatID: chatID, onFinish: onFinish}
}

func (a *phoneInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, "📞 Укажите телефон для связи: отправьте контакт кнопкой ниже или введите номер.")
	msg.ReplyMarkup = botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(botApi.NewKeyboardButtonContact(shareContactButton)),
		botApi.NewKeyboardButtonRow(botApi.NewKeyboardButton(cancelButton)),
	)
	return msg
}

func (a *phoneInput) HandleInput(input userInput) botApi.Chattable {
	if input.Phone != "" {
		a.onFinish(input.Phone)
		return nil
	}
	if phonePattern.MatchString(input.Text) {
		a.onFinish(input.Text)
		return nil
	}
	return botApi.NewMessage(a.chatID, "Не похоже на номер телефона. Например: +998901234567")
}
