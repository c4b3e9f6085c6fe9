package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"gorm.io/gorm"
	"time"
)

type Payments struct {
	db *gorm.DB
}

func NewPaymentsRepository(db *gorm.DB) *Payments {
	return &Payments{db: db}
}

func (repo *Payments) Record(ctx context.Context, payment *models.Payment) error {
	return storeError("record payment", repo.db.WithContext(ctx).Create(payment).Error)
}

// PurchasePromotion writes the payment row and applies the promotion atomically;
// if the vacancy cannot be promoted the payment is not kept.
func (repo *Payments) PurchasePromotion(ctx context.Context, payment *models.Payment, expiresAt time.Time) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return storeError("record payment", err)
		}
		return promoteVacancy(tx, payment.VacancyID, payment.ServiceType, expiresAt)
	})
}

func (repo *Payments) ByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	var payments []models.Payment
	err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&payments).Error
	if err != nil {
		return nil, storeError("get payments", err)
	}
	return payments, nil
}
