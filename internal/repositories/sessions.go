package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"gorm.io/gorm"
)

// Sessions keeps unfinished wizard state between bot restarts.
type Sessions struct {
	db *gorm.DB
}

func NewSessionsRepository(db *gorm.DB) *Sessions {
	return &Sessions{db: db}
}

func (repo *Sessions) SaveAll(ctx context.Context, states []models.SessionState) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.SessionState{}).Error; err != nil {
			return err
		}
		if len(states) == 0 {
			return nil
		}
		return tx.Create(&states).Error
	})
	return storeError("save sessions", err)
}

// LoadAndClear returns the saved sessions and removes them, so a crash after loading
// does not resurrect stale wizards on the next start.
func (repo *Sessions) LoadAndClear(ctx context.Context) ([]models.SessionState, error) {
	var states []models.SessionState
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&states).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.SessionState{}).Error
	})
	if err != nil {
		return nil, storeError("load sessions", err)
	}
	return states, nil
}
