package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment rows are written once and never updated.
type Payment struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      int64 `gorm:"index;not null"`
	VacancyID   int64 `gorm:"index;not null"`
	Amount      int64
	ServiceType PromotionType
	Status      PaymentStatus
	CreatedAt   time.Time
}
