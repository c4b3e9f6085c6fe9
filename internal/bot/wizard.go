package bot

import (
	"fmt"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"slices"
)

type wizardStep string

const (
	stepIdle      wizardStep = "idle"
	stepCompleted wizardStep = "completed"
	stepCancelled wizardStep = "cancelled"
)

// wizard is a linear form: named steps in a fixed order, each owned by an input handler.
// From every step the cancel button leads back to idle; completing the last step runs onComplete.
type wizard struct {
	api                  apiInterface
	chatID               int64
	order                []wizardStep
	handlers             map[wizardStep]inputHandler
	current              wizardStep
	onComplete           func()
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newWizard(api apiInterface, chatID int64) *wizard {
	return &wizard{api: api, chatID: chatID, handlers: map[wizardStep]inputHandler{}, current: stepIdle}
}

func (w *wizard) addStep(step wizardStep, handler inputHandler) {
	w.order = append(w.order, step)
	w.handlers[step] = handler
}

func (w *wizard) WithFinishCallback(callback func()) {
	w.finishCallback = callback
}

func (w *wizard) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	w.finalMessageKeyboard = &keyboard
}

func (w *wizard) Run() {
	w.startAt(w.order[0])
}

func (w *wizard) startAt(step wizardStep) {
	w.current = step
	_, _ = sendWithLogError(w.api, w.handlers[step].InitMessage())
}

func (w *wizard) Step() wizardStep {
	return w.current
}

// next moves to the step after the current one.
func (w *wizard) next() {
	i := slices.Index(w.order, w.current)
	if i < 0 || i+1 >= len(w.order) {
		w.current = stepCompleted
		return
	}
	w.current = w.order[i+1]
}

func (w *wizard) OnUserInput(input userInput) {

	if input.Text == cancelButton {
		w.cancel()
		return
	}

	handler, ok := w.handlers[w.current]
	if !ok {
		w.cancel()
		return
	}

	previous := w.current
	msg := handler.HandleInput(input)

	switch w.current {
	case previous:
		_, _ = sendWithLogError(w.api, msg)
	case stepCompleted:
		if w.onComplete != nil {
			w.onComplete()
		}
		w.finish()
	default:
		_, _ = sendWithLogError(w.api, w.handlers[w.current].InitMessage())
	}
}

func (w *wizard) cancel() {
	w.current = stepCancelled
	_, _ = sendWithLogError(w.api, w.finalMessage("Действие отменено."))
	w.finish()
}

func (w *wizard) finish() {
	if w.finishCallback != nil {
		w.finishCallback()
	}
}

// restore puts the wizard back on a step saved before a restart.
func (w *wizard) restore(step wizardStep) error {
	if _, ok := w.handlers[step]; !ok {
		return fmt.Errorf("unknown wizard step %q", step)
	}
	w.current = step
	return nil
}

func (w *wizard) finalMessage(text string) botApi.MessageConfig {
	msg := botApi.NewMessage(w.chatID, text)
	if w.finalMessageKeyboard != nil {
		msg.ReplyMarkup = w.finalMessageKeyboard
	}
	return msg
}
