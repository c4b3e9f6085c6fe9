package bot

import (
	"context"
	"encoding/json"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	"github.com/maxaizer/nearby-jobs-bot/internal/services"
	log "github.com/sirupsen/logrus"
	"time"
)

const postVacancyCommandName = "post_vacancy"

const (
	stepTitle       wizardStep = "title"
	stepDescription wizardStep = "description"
	stepSalary      wizardStep = "salary"
	stepSchedule    wizardStep = "schedule"
	stepExperience  wizardStep = "experience"
	stepAddress     wizardStep = "address"
	stepLocation    wizardStep = "location"
	stepPhone       wizardStep = "phone"
	stepConfirm     wizardStep = "confirm"
)

var workSchedules = []string{"Полный день", "Неполный день", "Сменный график", "Удалённая работа"}

var experienceOptions = []string{"Без опыта", "1–3 года", "Более 3 лет"}

type vacancyForm struct {
	Title        string
	Description  string
	SalaryFrom   *int64
	SalaryTo     *int64
	WorkSchedule string
	Experience   string
	Address      string
	Latitude     *float64
	Longitude    *float64
	Phone        string
	ContactName  string
}

func (f vacancyForm) draft() models.VacancyDraft {
	return models.VacancyDraft{
		Title:              f.Title,
		Description:        f.Description,
		SalaryFrom:         f.SalaryFrom,
		SalaryTo:           f.SalaryTo,
		SalaryType:         models.SalaryMonthly,
		WorkSchedule:       f.WorkSchedule,
		ExperienceRequired: f.Experience,
		Address:            f.Address,
		Latitude:           f.Latitude,
		Longitude:          f.Longitude,
		Phone:              f.Phone,
		ContactName:        f.ContactName,
	}
}

type postVacancyCommand struct {
	*wizard
	user        *models.User
	users       userRepository
	moderation  moderationService
	offers      []services.PromotionOffer
	onSubmitted func(vacancy *models.Vacancy)
	form        vacancyForm
}

func newPostVacancyCommand(api apiInterface, user *models.User, users userRepository, moderation moderationService,
	offers []services.PromotionOffer, onSubmitted func(vacancy *models.Vacancy)) *postVacancyCommand {

	chatID := user.TelegramID
	cmd := &postVacancyCommand{
		wizard:      newWizard(api, chatID),
		user:        user,
		users:       users,
		moderation:  moderation,
		offers:      offers,
		onSubmitted: onSubmitted,
		form:        vacancyForm{ContactName: user.FirstName},
	}
	if user.Phone != nil {
		cmd.form.Phone = *user.Phone
	}

	cmd.addStep(stepTitle, newTextInput(chatID, "💼 Введите название вакансии, например «Повар» или «Продавец-консультант».",
		func(input string) { cmd.form.Title = input; cmd.next() }).AddValidation(maxLength(100)))

	cmd.addStep(stepDescription, newTextInput(chatID, "📝 Опишите обязанности и условия работы.",
		func(input string) { cmd.form.Description = input; cmd.next() }).AddValidation(maxLength(2000)))

	cmd.addStep(stepSalary, newTextInput(chatID, "💰 Укажите зарплату в сумах: одно число (3000000), "+
		"диапазон (2000000-4000000) или «Договорная».",
		func(input string) {
			cmd.form.SalaryFrom, cmd.form.SalaryTo, _ = parseSalary(input)
			cmd.next()
		}).
		WithOptions("Договорная").
		AddValidation(validation{
			function:     func(input string) bool { _, _, err := parseSalary(input); return err == nil },
			errorMessage: "Не удалось распознать зарплату. Пример: 3000000 или 2000000-4000000",
		}))

	cmd.addStep(stepSchedule, newTextInput(chatID, "📅 Выберите график работы или напишите свой.",
		func(input string) { cmd.form.WorkSchedule = skipToEmpty(input); cmd.next() }).
		WithOptions(append(workSchedules, skipButton)...).
		AddValidation(maxLength(100)))

	cmd.addStep(stepExperience, newTextInput(chatID, "🎯 Какой опыт требуется?",
		func(input string) { cmd.form.Experience = skipToEmpty(input); cmd.next() }).
		WithOptions(append(experienceOptions, skipButton)...).
		AddValidation(maxLength(100)))

	cmd.addStep(stepAddress, newTextInput(chatID, "🏠 Введите адрес места работы.",
		func(input string) { cmd.form.Address = input; cmd.next() }).AddValidation(maxLength(300)))

	cmd.addStep(stepLocation, newLocationInput(chatID, "📍 Отправьте геолокацию места работы или выберите город.",
		func(location geo.Coordinate, _ string) {
			cmd.form.Latitude, cmd.form.Longitude = &location.Latitude, &location.Longitude
			cmd.next()
		}))

	cmd.addStep(stepPhone, newPhoneInput(chatID, func(phone string) { cmd.form.Phone = phone; cmd.next() }))

	cmd.addStep(stepConfirm, newConfirmInput(chatID, cmd.preview, confirmPublishButton, cmd.next))

	cmd.onComplete = cmd.submit
	return cmd
}

func (c *postVacancyCommand) preview() string {
	vacancy := models.NewVacancy(c.user.ID, c.form.draft())
	return "Проверьте вакансию перед публикацией:\n\n" + vacancyCard(&vacancy, nil, time.Now())
}

func (c *postVacancyCommand) submit() {
	ctx := context.Background()

	vacancy, err := c.moderation.Submit(ctx, c.user.ID, c.form.draft())
	if err != nil {
		_, _ = sendWithLogError(c.api, c.finalMessage(userErrorText(err)))
		return
	}

	if err = c.users.UpdatePhone(ctx, c.user.TelegramID, c.form.Phone); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't save phone: %v", err)
	}
	if !c.user.IsEmployer {
		if err = c.users.SetEmployer(ctx, c.user.TelegramID); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't mark user as employer: %v", err)
		}
	}

	_, _ = sendWithLogError(c.api, c.finalMessage("✅ Вакансия отправлена на модерацию. "+
		"Мы сообщим, когда её опубликуют."))

	offer := botApi.NewMessage(c.chatID, "🚀 Хотите, чтобы вакансию увидело больше людей? Выберите продвижение:")
	offer.ReplyMarkup = promotionOffersKeyboard(vacancy.ID, c.offers)
	_, _ = sendWithLogError(c.api, offer)

	if c.onSubmitted != nil {
		c.onSubmitted(vacancy)
	}
}

type postVacancyState struct {
	Step wizardStep
	Form vacancyForm
}

func (c *postVacancyCommand) SaveState() ([]byte, error) {
	return json.Marshal(postVacancyState{Step: c.Step(), Form: c.form})
}

func (c *postVacancyCommand) LoadState(data []byte) error {
	var state postVacancyState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	c.form = state.Form
	return c.restore(state.Step)
}

func skipToEmpty(input string) string {
	if input == skipButton {
		return ""
	}
	return input
}
