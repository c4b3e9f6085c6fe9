package bot

import botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

type validation struct {
	function     func(input string) bool
	errorMessage string
}

type textInput struct {
	chatID      int64
	initMessage string
	keyboard    botApi.ReplyKeyboardMarkup
	onFinish    func(input string)
	validations []validation
}

func newTextInput(chatID int64, initMessage string, onFinish func(input string)) *textInput {
	return &textInput{chatID: chatID, initMessage: initMessage, keyboard: keyboardWithCancel(), onFinish: onFinish}
}

func (a *textInput) AddValidation(validation validation) *textInput {
	a.validations = append(a.validations, validation)
	return a
}

// WithOptions shows ready-made answers above the cancel button.
func (a *textInput) WithOptions(options ...string) *textInput {
	a.keyboard = keyboardWithOptions(options...)
	return a
}

func (a *textInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, a.initMessage)
	msg.ReplyMarkup = a.keyboard
	return msg
}

func (a *textInput) HandleInput(input userInput) botApi.Chattable {

	if input.Text == "" {
		return botApi.NewMessage(a.chatID, "Отправьте ответ текстом.")
	}

	for _, _validation := range a.validations {
		if !_validation.function(input.Text) {
			return botApi.NewMessage(a.chatID, _validation.errorMessage)
		}
	}

	a.onFinish(input.Text)
	return nil
}

func maxLength(max int) validation {
	return validation{
		function:     func(input string) bool { return len([]rune(input)) <= max },
		errorMessage: "Слишком длинный текст, сократите его.",
	}
}
