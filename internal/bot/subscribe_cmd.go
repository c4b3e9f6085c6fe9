package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"strconv"
	"strings"
)

const subscribeCommandName = "subscribe"

const (
	stepSubscriptionLocation wizardStep = "subscription_location"
	stepRadius               wizardStep = "radius"
	stepSalaryFloor          wizardStep = "salary_floor"
)

const anySalaryButton = "Не важно"

var radiusOptions = []string{"3 км", "5 км", "10 км", "20 км", "50 км"}

type subscriptionForm struct {
	Latitude   *float64
	Longitude  *float64
	RadiusKm   int
	SalaryFrom *int64
}

type subscribeCommand struct {
	*wizard
	user          *models.User
	subscriptions subscriptionService
	form          subscriptionForm
}

func newSubscribeCommand(api apiInterface, user *models.User, subscriptions subscriptionService) *subscribeCommand {

	chatID := user.TelegramID
	cmd := &subscribeCommand{wizard: newWizard(api, chatID), user: user, subscriptions: subscriptions}

	cmd.addStep(stepSubscriptionLocation, newLocationInput(chatID,
		"📍 Вокруг какого места искать вакансии? Отправьте геолокацию или выберите город.",
		func(location geo.Coordinate, _ string) {
			cmd.form.Latitude, cmd.form.Longitude = &location.Latitude, &location.Longitude
			cmd.next()
		}))

	cmd.addStep(stepRadius, newTextInput(chatID, "📏 В каком радиусе присылать новые вакансии?",
		func(input string) { cmd.form.RadiusKm, _ = parseRadius(input); cmd.next() }).
		WithOptions(radiusOptions...).
		AddValidation(validation{
			function:     func(input string) bool { _, ok := parseRadius(input); return ok },
			errorMessage: "Введите радиус в километрах, от 1 до 200.",
		}))

	cmd.addStep(stepSalaryFloor, newTextInput(chatID, "💰 Минимальная зарплата в сумах? Если не важно, нажмите «"+
		anySalaryButton+"».",
		func(input string) { cmd.form.SalaryFrom = parseSalaryFloor(input); cmd.next() }).
		WithOptions(anySalaryButton).
		AddValidation(validation{
			function:     func(input string) bool { return input == anySalaryButton || parseSalaryFloor(input) != nil },
			errorMessage: "Введите сумму числом, например 3000000.",
		}))

	cmd.onComplete = cmd.subscribe
	return cmd
}

func (c *subscribeCommand) subscribe() {
	subscription, err := c.subscriptions.Create(context.Background(), c.user.ID, models.SubscriptionDraft{
		Latitude:   c.form.Latitude,
		Longitude:  c.form.Longitude,
		RadiusKm:   c.form.RadiusKm,
		SalaryFrom: c.form.SalaryFrom,
	})
	if err != nil {
		_, _ = sendWithLogError(c.api, c.finalMessage(userErrorText(err)))
		return
	}

	text := fmt.Sprintf("✅ Подписка оформлена!\n\n📏 Радиус: %d км\n", subscription.RadiusKm)
	if subscription.SalaryFrom != nil {
		text += fmt.Sprintf("💰 Зарплата от %s сум\n", models.GroupDigits(*subscription.SalaryFrom))
	}
	text += "\n🔔 Мы пришлём новые вакансии, как только их опубликуют."
	_, _ = sendWithLogError(c.api, c.finalMessage(text))
}

type subscribeState struct {
	Step wizardStep
	Form subscriptionForm
}

func (c *subscribeCommand) SaveState() ([]byte, error) {
	return json.Marshal(subscribeState{Step: c.Step(), Form: c.form})
}

func (c *subscribeCommand) LoadState(data []byte) error {
	var state subscribeState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	c.form = state.Form
	return c.restore(state.Step)
}

func parseRadius(input string) (int, bool) {
	radius, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(input), "км")))
	if err != nil || radius < 1 || radius > 200 {
		return 0, false
	}
	return radius, true
}

func parseSalaryFloor(input string) *int64 {
	if input == anySalaryButton {
		return nil
	}
	amount, ok := parseAmount(input)
	if !ok || amount <= 0 {
		return nil
	}
	return &amount
}
