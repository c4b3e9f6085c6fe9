package repositories

import (
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	return models.NewStoreError(op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
