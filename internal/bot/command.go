package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	log "github.com/sirupsen/logrus"
)

type apiInterface interface {
	Send(chattable botApi.Chattable) (botApi.Message, error)
	Request(chattable botApi.Chattable) (*botApi.APIResponse, error)
}

type command interface {
	WithKeyboardOnFinalMessage(botApi.ReplyKeyboardMarkup)
	WithFinishCallback(func())
	Run()
	OnUserInput(input userInput)
}

type saveable interface {
	SaveState() ([]byte, error)
	LoadState(data []byte) error
}

func sendWithLogError(api apiInterface, chattable botApi.Chattable) (botApi.Message, error) {
	if chattable == nil {
		return botApi.Message{}, nil
	}
	msg, err := api.Send(chattable)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occured while sending message: %v", err)
	}
	return msg, err
}

func requestWithLogError(api apiInterface, chattable botApi.Chattable) {
	if _, err := api.Request(chattable); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occured while sending request: %v", err)
	}
}
