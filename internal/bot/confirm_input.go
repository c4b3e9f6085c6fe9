package bot

import botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// confirmInput shows a summary built at the moment it is asked and waits for the confirm button.
type confirmInput struct {
	chatID      int64
	summary     func() string
	confirmText string
	onConfirm   func()
}

func newConfirmInput(chatID int64, summary func() string, confirmText string, onConfirm func()) *confirmInput {
	return &confirmInput{chatID: chatID, summary: summary, confirmText: confirmText, onConfirm: onConfirm}
}

func (a *confirmInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, a.summary())
	msg.ReplyMarkup = keyboardWithOptions(a.confirmText)
	return msg
}

func (a *confirmInput) HandleInput(input userInput) botApi.Chattable {
	if input.Text != a.confirmText {
		return botApi.NewMessage(a.chatID, "Нажмите «"+a.confirmText+"» или «"+cancelButton+"».")
	}
	a.onConfirm()
	return nil
}
