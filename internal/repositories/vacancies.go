package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"time"
)

// Vacancies owns the moderation and promotion columns. Every transition is a single
// conditional UPDATE, so racing moderators always leave the row approved or inactive.
type Vacancies struct {
	db *gorm.DB
}

func NewVacanciesRepository(db *gorm.DB) *Vacancies {
	return &Vacancies{db: db}
}

func (repo *Vacancies) Create(ctx context.Context, vacancy *models.Vacancy) error {
	return storeError("create vacancy", repo.db.WithContext(ctx).Create(vacancy).Error)
}

func (repo *Vacancies) GetByID(ctx context.Context, id int64) (*models.Vacancy, error) {
	return getVacancy(repo.db.WithContext(ctx), id)
}

// Approve moves a pending vacancy to approved. changed is false when it was already approved.
func (repo *Vacancies) Approve(ctx context.Context, id int64) (changed bool, err error) {
	res := repo.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("id = ? AND is_active = ? AND is_approved = ?", id, true, false).
		Update("is_approved", true)
	if res.Error != nil {
		return false, storeError("approve vacancy", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	vacancy, err := repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !vacancy.IsActive {
		return false, errors.Wrapf(models.ErrInvalidTransition, "vacancy %d is inactive", id)
	}
	return false, nil
}

// Reject deactivates the vacancy from any state.
func (repo *Vacancies) Reject(ctx context.Context, id int64) (changed bool, err error) {
	res := repo.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, storeError("reject vacancy", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	if _, err = repo.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// Deactivate is the owner's soft delete.
func (repo *Vacancies) Deactivate(ctx context.Context, id int64, ownerID int64) error {
	res := repo.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("id = ? AND employer_id = ?", id, ownerID).
		Update("is_active", false)
	if res.Error != nil {
		return storeError("deactivate vacancy", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	vacancy, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vacancy.EmployerID != ownerID {
		return errors.Wrapf(models.ErrUnauthorized, "user %d does not own vacancy %d", ownerID, id)
	}
	return nil
}

func (repo *Vacancies) Promote(ctx context.Context, id int64, promotionType models.PromotionType, expiresAt time.Time) error {
	return promoteVacancy(repo.db.WithContext(ctx), id, promotionType, expiresAt)
}

// ClearExpiredPromotions resets flags whose window has passed. Reads never depend on it.
func (repo *Vacancies) ClearExpiredPromotions(ctx context.Context, now time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("is_promoted = ? AND (promotion_expires_at IS NULL OR promotion_expires_at <= ?)", true, now).
		Update("is_promoted", false)
	return res.RowsAffected, storeError("clear expired promotions", res.Error)
}

// Pending returns vacancies awaiting moderation, oldest first.
func (repo *Vacancies) Pending(ctx context.Context, limit int) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := repo.db.WithContext(ctx).
		Where("is_approved = ? AND is_active = ?", false, true).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&vacancies).Error
	if err != nil {
		return nil, storeError("get pending vacancies", err)
	}
	return vacancies, nil
}

func (repo *Vacancies) ByEmployer(ctx context.Context, employerID int64) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := repo.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC, id DESC").
		Find(&vacancies).Error
	if err != nil {
		return nil, storeError("get employer vacancies", err)
	}
	return vacancies, nil
}

// Discoverable returns active approved vacancies inside box. The box is only a
// pre-filter; callers compute exact distances.
func (repo *Vacancies) Discoverable(ctx context.Context, box geo.Box, minSalary *int64) ([]models.Vacancy, error) {
	query := repo.db.WithContext(ctx).
		Where("is_active = ? AND is_approved = ?", true, true).
		Where("latitude BETWEEN ? AND ?", box.MinLatitude, box.MaxLatitude)

	if box.HasLongitude {
		query = query.Where("longitude BETWEEN ? AND ?", box.MinLongitude, box.MaxLongitude)
	}

	if minSalary != nil {
		query = query.Where("(salary_from >= ? OR salary_to >= ?)", *minSalary, *minSalary)
	}

	var vacancies []models.Vacancy
	if err := query.Find(&vacancies).Error; err != nil {
		return nil, storeError("get discoverable vacancies", err)
	}
	return vacancies, nil
}

func getVacancy(db *gorm.DB, id int64) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	if err := db.First(&vacancy, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, errors.Wrapf(models.ErrNotFound, "vacancy %d", id)
		}
		return nil, storeError("get vacancy", err)
	}
	return &vacancy, nil
}

// promoteVacancy overwrites type and expiry; repeated promotions never stack.
func promoteVacancy(db *gorm.DB, id int64, promotionType models.PromotionType, expiresAt time.Time) error {
	res := db.Model(&models.Vacancy{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{
			"is_promoted":          true,
			"promotion_type":       promotionType,
			"promotion_expires_at": expiresAt,
		})
	if res.Error != nil {
		return storeError("promote vacancy", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	if _, err := getVacancy(db, id); err != nil {
		return err
	}
	return errors.Wrapf(models.ErrInvalidTransition, "vacancy %d is inactive", id)
}
