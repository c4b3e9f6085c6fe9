package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"gorm.io/gorm"
	"time"
)

type Statistics struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *Statistics {
	return &Statistics{db: db}
}

type counter struct {
	target *int64
	model  any
	query  string
	args   []any
}

func (repo *Statistics) Board(ctx context.Context) (*models.BoardStatistics, error) {
	stats := &models.BoardStatistics{}
	err := repo.count(ctx, []counter{
		{target: &stats.TotalUsers, model: &models.User{}},
		{target: &stats.TotalEmployers, model: &models.User{}, query: "is_employer = ?", args: []any{true}},
		{target: &stats.TotalVacancies, model: &models.Vacancy{}},
		{target: &stats.ActiveVacancies, model: &models.Vacancy{}, query: "is_active = ? AND is_approved = ?", args: []any{true, true}},
		{target: &stats.PendingVacancies, model: &models.Vacancy{}, query: "is_active = ? AND is_approved = ?", args: []any{true, false}},
		{target: &stats.TotalSubscriptions, model: &models.Subscription{}, query: "is_active = ?", args: []any{true}},
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (repo *Statistics) Employer(ctx context.Context, employerID int64, now time.Time) (*models.EmployerStatistics, error) {
	stats := &models.EmployerStatistics{}
	err := repo.count(ctx, []counter{
		{target: &stats.TotalVacancies, model: &models.Vacancy{}, query: "employer_id = ?", args: []any{employerID}},
		{target: &stats.ActiveVacancies, model: &models.Vacancy{},
			query: "employer_id = ? AND is_active = ? AND is_approved = ?", args: []any{employerID, true, true}},
		{target: &stats.PendingVacancies, model: &models.Vacancy{},
			query: "employer_id = ? AND is_active = ? AND is_approved = ?", args: []any{employerID, true, false}},
		{target: &stats.PromotedVacancies, model: &models.Vacancy{},
			query: "employer_id = ? AND is_promoted = ? AND promotion_expires_at > ?", args: []any{employerID, true, now}},
	})
	if err != nil {
		return nil, err
	}

	err = repo.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND status = ?", employerID, models.PaymentCompleted).
		Scan(&stats.TotalSpent).Error
	if err != nil {
		return nil, storeError("sum payments", err)
	}

	return stats, nil
}

func (repo *Statistics) count(ctx context.Context, counters []counter) error {
	for _, c := range counters {
		query := repo.db.WithContext(ctx).Model(c.model)
		if c.query != "" {
			query = query.Where(c.query, c.args...)
		}
		if err := query.Count(c.target).Error; err != nil {
			return storeError("count statistics", err)
		}
	}
	return nil
}
