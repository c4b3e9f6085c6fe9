package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"strings"
)

// userInput is one message from the user already split into the parts wizards understand.
type userInput struct {
	Text     string
	Location *geo.Coordinate
	Phone    string
}

func inputFromMessage(message *botApi.Message) userInput {
	input := userInput{Text: strings.TrimSpace(message.Text)}
	if message.Location != nil {
		input.Location = &geo.Coordinate{Latitude: message.Location.Latitude, Longitude: message.Location.Longitude}
	}
	if message.Contact != nil {
		input.Phone = message.Contact.PhoneNumber
	}
	return input
}

func textInputOf(text string) userInput {
	return userInput{Text: text}
}

type inputHandler interface {
	InitMessage() botApi.Chattable
	HandleInput(input userInput) botApi.Chattable
}
