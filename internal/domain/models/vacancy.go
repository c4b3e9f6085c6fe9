package models

import (
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"time"
)

type SalaryType string

const (
	SalaryMonthly SalaryType = "monthly"
	SalaryDaily   SalaryType = "daily"
	SalaryHourly  SalaryType = "hourly"
)

type VacancyStatus string

const (
	StatusPending  VacancyStatus = "pending"
	StatusApproved VacancyStatus = "approved"
	StatusInactive VacancyStatus = "inactive"
)

type Vacancy struct {
	ID                 int64 `gorm:"primaryKey"`
	EmployerID         int64 `gorm:"index;not null"`
	Title              string
	Description        string
	SalaryFrom         *int64
	SalaryTo           *int64
	SalaryType         SalaryType `gorm:"default:monthly"`
	WorkSchedule       *string
	ExperienceRequired *string
	Address            string
	Latitude           float64 `gorm:"index:idx_vacancy_location"`
	Longitude          float64 `gorm:"index:idx_vacancy_location"`
	Phone              *string
	ContactName        *string
	IsActive           bool `gorm:"default:true;index"`
	IsApproved         bool `gorm:"default:false;index"`
	IsPromoted         bool
	PromotionType      *PromotionType
	PromotionExpiresAt *time.Time
	CreatedAt          time.Time
}

// VacancyDraft is what an employer submits; the required tags mirror the columns a
// discoverable vacancy cannot live without.
type VacancyDraft struct {
	Title              string `validate:"required,notblank"`
	Description        string `validate:"required,notblank"`
	SalaryFrom         *int64 `validate:"omitempty,gte=0"`
	SalaryTo           *int64 `validate:"omitempty,gte=0"`
	SalaryType         SalaryType
	WorkSchedule       string
	ExperienceRequired string
	Address            string   `validate:"required,notblank"`
	Latitude           *float64 `validate:"required,gte=-90,lte=90"`
	Longitude          *float64 `validate:"required,gte=-180,lte=180"`
	Phone              string
	ContactName        string
}

func NewVacancy(employerID int64, draft VacancyDraft) Vacancy {
	salaryType := draft.SalaryType
	if salaryType == "" {
		salaryType = SalaryMonthly
	}

	return Vacancy{
		EmployerID:         employerID,
		Title:              draft.Title,
		Description:        draft.Description,
		SalaryFrom:         draft.SalaryFrom,
		SalaryTo:           draft.SalaryTo,
		SalaryType:         salaryType,
		WorkSchedule:       optionalString(draft.WorkSchedule),
		ExperienceRequired: optionalString(draft.ExperienceRequired),
		Address:            draft.Address,
		Latitude:           *draft.Latitude,
		Longitude:          *draft.Longitude,
		Phone:              optionalString(draft.Phone),
		ContactName:        optionalString(draft.ContactName),
		IsActive:           true,
	}
}

func (v *Vacancy) Location() geo.Coordinate {
	return geo.Coordinate{Latitude: v.Latitude, Longitude: v.Longitude}
}

func (v *Vacancy) IsDiscoverable() bool {
	return v.IsActive && v.IsApproved
}

func (v *Vacancy) Status() VacancyStatus {
	switch {
	case !v.IsActive:
		return StatusInactive
	case v.IsApproved:
		return StatusApproved
	default:
		return StatusPending
	}
}

// EffectivelyPromoted ignores the stored flag once the promotion window has passed.
func (v *Vacancy) EffectivelyPromoted(now time.Time) bool {
	return v.IsPromoted && v.PromotionExpiresAt != nil && v.PromotionExpiresAt.After(now)
}

func (v *Vacancy) EffectiveMaxSalary() int64 {
	var res int64
	if v.SalaryFrom != nil && *v.SalaryFrom > res {
		res = *v.SalaryFrom
	}
	if v.SalaryTo != nil && *v.SalaryTo > res {
		res = *v.SalaryTo
	}
	return res
}

// PaysAtLeast reports whether either end of the salary range reaches min.
func (v *Vacancy) PaysAtLeast(min int64) bool {
	return (v.SalaryFrom != nil && *v.SalaryFrom >= min) || (v.SalaryTo != nil && *v.SalaryTo >= min)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
