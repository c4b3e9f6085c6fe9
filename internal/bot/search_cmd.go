package bot

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	log "github.com/sirupsen/logrus"
)

const (
	searchCommandName   = "search"
	locationCommandName = "location"
)

const (
	stepSearchLocation wizardStep = "search_location"
	stepMinSalary      wizardStep = "min_salary"
)

var minSalaryOptions = []string{"от 2 000 000", "от 3 000 000", "от 5 000 000"}

type searchForm struct {
	MinSalary *int64
}

// searchCommand asks for a location when the user has none saved, then for a salary
// floor, and hands the query to showResults.
type searchCommand struct {
	*wizard
	user        *models.User
	users       userRepository
	showResults func(chatID int64, origin geo.Coordinate, minSalary *int64)
	form        searchForm
	origin      geo.Coordinate
}

func newSearchCommand(api apiInterface, user *models.User, users userRepository,
	showResults func(chatID int64, origin geo.Coordinate, minSalary *int64)) *searchCommand {

	chatID := user.TelegramID
	cmd := &searchCommand{wizard: newWizard(api, chatID), user: user, users: users, showResults: showResults}

	cmd.addStep(stepSearchLocation, newLocationInput(chatID, "📍 Где ищем работу? Отправьте геолокацию или выберите город.",
		func(location geo.Coordinate, name string) {
			cmd.origin = location
			saveUserLocation(users, user.TelegramID, location, name)
			cmd.next()
		}))

	cmd.addStep(stepMinSalary, newTextInput(chatID, "💰 Какая минимальная зарплата вас интересует?",
		func(input string) { cmd.form.MinSalary = parseSalaryFloor(input); cmd.next() }).
		WithOptions(append(minSalaryOptions, anySalaryButton)...).
		AddValidation(validation{
			function:     func(input string) bool { return input == anySalaryButton || parseSalaryFloor(input) != nil },
			errorMessage: "Введите сумму числом или нажмите «" + anySalaryButton + "».",
		}))

	cmd.onComplete = func() {
		_, _ = sendWithLogError(cmd.api, cmd.finalMessage("🔍 Ищу вакансии рядом..."))
		cmd.showResults(chatID, cmd.origin, cmd.form.MinSalary)
	}
	return cmd
}

func (c *searchCommand) Run() {
	if c.user.HasLocation() {
		c.origin = c.user.Location()
		c.startAt(stepMinSalary)
		return
	}
	c.wizard.Run()
}

type searchState struct {
	Step      wizardStep
	Form      searchForm
	Latitude  float64
	Longitude float64
}

func (c *searchCommand) SaveState() ([]byte, error) {
	return json.Marshal(searchState{Step: c.Step(), Form: c.form, Latitude: c.origin.Latitude, Longitude: c.origin.Longitude})
}

func (c *searchCommand) LoadState(data []byte) error {
	var state searchState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	c.form = state.Form
	c.origin = geo.Coordinate{Latitude: state.Latitude, Longitude: state.Longitude}
	return c.restore(state.Step)
}

// locationCommand only updates the saved location used by search and pagination.
type locationCommand struct {
	*wizard
}

func newLocationCommand(api apiInterface, user *models.User, users userRepository) *locationCommand {
	chatID := user.TelegramID
	cmd := &locationCommand{wizard: newWizard(api, chatID)}

	var saved string
	cmd.addStep(stepSearchLocation, newLocationInput(chatID, "📍 Отправьте новую геолокацию или выберите город.",
		func(location geo.Coordinate, name string) {
			saveUserLocation(users, user.TelegramID, location, name)
			saved = name
			cmd.next()
		}))

	cmd.onComplete = func() {
		text := "✅ Местоположение сохранено."
		if saved != "" {
			text = "✅ Местоположение сохранено: " + saved + "."
		}
		_, _ = sendWithLogError(cmd.api, cmd.finalMessage(text))
	}
	return cmd
}

func saveUserLocation(users userRepository, telegramID int64, location geo.Coordinate, name string) {
	if err := users.UpdateLocation(context.Background(), telegramID, location, name); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't save user location: %v", err)
	}
}
