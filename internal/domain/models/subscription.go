package models

import (
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"time"
)

const DefaultSubscriptionRadiusKm = 10

type Subscription struct {
	ID         int64 `gorm:"primaryKey"`
	UserID     int64 `gorm:"uniqueIndex;not null"`
	Latitude   float64
	Longitude  float64
	RadiusKm   int
	SalaryFrom *int64
	Keywords   *string
	IsActive   bool `gorm:"default:true"`
	CreatedAt  time.Time
}

type SubscriptionDraft struct {
	Latitude   *float64 `validate:"required,gte=-90,lte=90"`
	Longitude  *float64 `validate:"required,gte=-180,lte=180"`
	RadiusKm   int      `validate:"gt=0"`
	SalaryFrom *int64   `validate:"omitempty,gte=0"`
	Keywords   string
}

func NewSubscription(userID int64, draft SubscriptionDraft) Subscription {
	return Subscription{
		UserID:     userID,
		Latitude:   *draft.Latitude,
		Longitude:  *draft.Longitude,
		RadiusKm:   draft.RadiusKm,
		SalaryFrom: draft.SalaryFrom,
		Keywords:   optionalString(draft.Keywords),
		IsActive:   true,
	}
}

func (s *Subscription) Location() geo.Coordinate {
	return geo.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Matches is the fanout predicate: the vacancy lies inside the subscriber's circle and
// its best salary reaches the subscriber's floor, if any.
func (s *Subscription) Matches(v *Vacancy) bool {
	if !geo.WithinRadius(s.Location(), v.Location(), float64(s.RadiusKm)) {
		return false
	}
	return s.SalaryFrom == nil || v.EffectiveMaxSalary() >= *s.SalaryFrom
}

// Subscriber is a subscription joined with its owner's chat.
type Subscriber struct {
	Subscription `gorm:"embedded"`
	TelegramID   int64
}
