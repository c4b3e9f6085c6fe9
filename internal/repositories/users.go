package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type UserIdentity struct {
	TelegramID int64
	Username   string
	FirstName  string
}

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (repo *Users) GetOrCreate(ctx context.Context, identity UserIdentity) (*models.User, error) {
	user, err := repo.GetByTelegramID(ctx, identity.TelegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	// a concurrent first message from the same user may insert the row first
	err = repo.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&models.User{
		TelegramID: identity.TelegramID,
		Username:   identity.Username,
		FirstName:  identity.FirstName,
	}).Error
	if err != nil {
		return nil, storeError("create user", err)
	}

	return repo.GetByTelegramID(ctx, identity.TelegramID)
}

func (repo *Users) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	if err := repo.db.WithContext(ctx).First(&user, "telegram_id = ?", telegramID).Error; err != nil {
		if isNotFound(err) {
			return nil, errors.Wrapf(models.ErrNotFound, "user with telegram id %d", telegramID)
		}
		return nil, storeError("get user", err)
	}
	return &user, nil
}

func (repo *Users) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := repo.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, errors.Wrapf(models.ErrNotFound, "user %d", id)
		}
		return nil, storeError("get user", err)
	}
	return &user, nil
}

func (repo *Users) UpdateLocation(ctx context.Context, telegramID int64, location geo.Coordinate, name string) error {
	updates := map[string]any{
		"latitude":   location.Latitude,
		"longitude":  location.Longitude,
		"updated_at": time.Now(),
	}
	if name != "" {
		updates["location_name"] = name
	} else {
		updates["location_name"] = nil
	}
	return repo.update(ctx, telegramID, "update user location", updates)
}

func (repo *Users) UpdatePhone(ctx context.Context, telegramID int64, phone string) error {
	return repo.update(ctx, telegramID, "update user phone", map[string]any{
		"phone":      phone,
		"updated_at": time.Now(),
	})
}

func (repo *Users) SetEmployer(ctx context.Context, telegramID int64) error {
	return repo.update(ctx, telegramID, "set user employer", map[string]any{
		"is_employer": true,
		"updated_at":  time.Now(),
	})
}

func (repo *Users) update(ctx context.Context, telegramID int64, op string, updates map[string]any) error {
	res := repo.db.WithContext(ctx).Model(&models.User{}).Where("telegram_id = ?", telegramID).Updates(updates)
	if res.Error != nil {
		return storeError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(models.ErrNotFound, "user with telegram id %d", telegramID)
	}
	return nil
}
