package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"strings"
)

type city struct {
	Name     string
	Location geo.Coordinate
}

var presetCities = []city{
	{"Toshkent", geo.Coordinate{Latitude: 41.2995, Longitude: 69.2401}},
	{"Samarqand", geo.Coordinate{Latitude: 39.6542, Longitude: 66.9597}},
	{"Buxoro", geo.Coordinate{Latitude: 39.7747, Longitude: 64.4286}},
	{"Andijon", geo.Coordinate{Latitude: 40.7821, Longitude: 72.3442}},
	{"Namangan", geo.Coordinate{Latitude: 40.9983, Longitude: 71.6726}},
	{"Farg'ona", geo.Coordinate{Latitude: 40.3864, Longitude: 71.7864}},
}

func findCity(name string) (city, bool) {
	for _, c := range presetCities {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return city{}, false
}

// locationInput accepts a shared geolocation or one of the preset cities.
type locationInput struct {
	chatID      int64
	initMessage string
	onFinish    func(location geo.Coordinate, name string)
}

func newLocationInput(chatID int64, initMessage string, onFinish func(location geo.Coordinate, name string)) *locationInput {
	return &locationInput{chatID: chatID, initMessage: initMessage, onFinish: onFinish}
}

func (a *locationInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, a.initMessage)
	msg.ReplyMarkup = locationKeyboard()
	return msg
}

func (a *locationInput) HandleInput(input userInput) botApi.Chattable {

	if input.Location != nil {
		a.onFinish(*input.Location, "")
		return nil
	}

	if c, ok := findCity(input.Text); ok {
		a.onFinish(c.Location, c.Name)
		return nil
	}

	return botApi.NewMessage(a.chatID, "Отправьте геолокацию кнопкой ниже или выберите город из списка.")
}

func locationKeyboard() botApi.ReplyKeyboardMarkup {
	rows := [][]botApi.KeyboardButton{
		botApi.NewKeyboardButtonRow(botApi.NewKeyboardButtonLocation(shareLocationButton)),
	}
	for i := 0; i < len(presetCities); i += 3 {
		row := botApi.NewKeyboardButtonRow()
		for _, c := range presetCities[i:min(i+3, len(presetCities))] {
			row = append(row, botApi.NewKeyboardButton(c.Name))
		}
		rows = append(rows, row)
	}
	rows = append(rows, botApi.NewKeyboardButtonRow(botApi.NewKeyboardButton(cancelButton)))
	return botApi.NewReplyKeyboard(rows...)
}
