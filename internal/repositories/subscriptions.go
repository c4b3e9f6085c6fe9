package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"gorm.io/gorm"
)

type Subscriptions struct {
	db *gorm.DB
}

func NewSubscriptionsRepository(db *gorm.DB) *Subscriptions {
	return &Subscriptions{db: db}
}

// Replace drops the user's previous subscription and stores the new one in a single
// transaction, so readers see either the old row or the new one.
func (repo *Subscriptions) Replace(ctx context.Context, subscription *models.Subscription) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", subscription.UserID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Create(subscription).Error
	})
	return storeError("replace subscription", err)
}

// GetByUser returns nil when the user has no active subscription.
func (repo *Subscriptions) GetByUser(ctx context.Context, userID int64) (*models.Subscription, error) {
	var subscriptions []models.Subscription
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Limit(1).
		Find(&subscriptions).Error
	if err != nil {
		return nil, storeError("get subscription", err)
	}
	if len(subscriptions) == 0 {
		return nil, nil
	}
	return &subscriptions[0], nil
}

func (repo *Subscriptions) Delete(ctx context.Context, userID int64) (bool, error) {
	res := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Subscription{})
	if res.Error != nil {
		return false, storeError("delete subscription", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ActiveSubscribers pages through active subscriptions joined with the owner's telegram id.
func (repo *Subscriptions) ActiveSubscribers(ctx context.Context, limit int, offset int) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := repo.db.WithContext(ctx).
		Table("subscriptions").
		Select("subscriptions.*, users.telegram_id AS telegram_id").
		Joins("JOIN users ON users.id = subscriptions.user_id").
		Where("subscriptions.is_active = ?", true).
		Order("subscriptions.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&subscribers).Error
	if err != nil {
		return nil, storeError("get active subscribers", err)
	}
	return subscribers, nil
}
