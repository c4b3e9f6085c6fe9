package events

import (
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
)

var (
	VacancyApprovedTopic = "VacancyApprovedEvent"
	VacancyRejectedTopic = "VacancyRejectedEvent"
)

type VacancyApproved struct {
	Vacancy          models.Vacancy
	NotifiedCount    int
	EmployerTelegram int64
}

type VacancyRejected struct {
	Vacancy          models.Vacancy
	EmployerTelegram int64
}
