package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	"github.com/maxaizer/nearby-jobs-bot/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

type promotableVacancies interface {
	GetByID(ctx context.Context, id int64) (*models.Vacancy, error)
	Promote(ctx context.Context, id int64, promotionType models.PromotionType, expiresAt time.Time) error
}

type paymentRecorder interface {
	PurchasePromotion(ctx context.Context, payment *models.Payment, expiresAt time.Time) error
}

// PromotionLedger applies time-bounded promotions. Promote is independent of payment so a
// real gateway can call it after confirming a charge; Purchase is the built-in stub that
// completes the payment immediately.
type PromotionLedger struct {
	vacancies   promotableVacancies
	payments    paymentRecorder
	defaultDays int
	now         func() time.Time
}

func NewPromotionLedger(vacancies promotableVacancies, payments paymentRecorder, defaultDays int) *PromotionLedger {
	if defaultDays <= 0 {
		defaultDays = models.DefaultPromotionDays
	}
	return &PromotionLedger{
		vacancies:   vacancies,
		payments:    payments,
		defaultDays: defaultDays,
		now:         time.Now,
	}
}

func (l *PromotionLedger) WithClock(now func() time.Time) *PromotionLedger {
	l.now = now
	return l
}

func (l *PromotionLedger) DefaultDays() int {
	return l.defaultDays
}

// Promote overwrites any current promotion; the window restarts from now.
func (l *PromotionLedger) Promote(ctx context.Context, vacancyID int64, promotionType models.PromotionType,
	durationDays int) (time.Time, error) {

	if _, err := models.ToPromotionType(string(promotionType)); err != nil {
		return time.Time{}, err
	}
	if durationDays <= 0 {
		durationDays = l.defaultDays
	}

	expiresAt := l.now().AddDate(0, 0, durationDays)
	if err := l.vacancies.Promote(ctx, vacancyID, promotionType, expiresAt); err != nil {
		return time.Time{}, err
	}

	metrics.PromotionsCounter.WithLabelValues(string(promotionType)).Inc()
	log.Infof("vacancy %d promoted as %s until %v", vacancyID, promotionType, expiresAt)
	return expiresAt, nil
}

// Purchase records a completed payment from the vacancy owner and applies the promotion
// in the same transaction.
func (l *PromotionLedger) Purchase(ctx context.Context, userID int64, vacancyID int64,
	promotionType models.PromotionType) (*models.Payment, error) {

	if _, err := models.ToPromotionType(string(promotionType)); err != nil {
		return nil, err
	}

	vacancy, err := l.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if vacancy.EmployerID != userID {
		return nil, errors.Wrapf(models.ErrUnauthorized, "user %d does not own vacancy %d", userID, vacancyID)
	}
	if !vacancy.IsActive {
		return nil, fmt.Errorf("%w: vacancy %d is inactive", models.ErrInvalidTransition, vacancyID)
	}

	payment := &models.Payment{
		UserID:      userID,
		VacancyID:   vacancyID,
		Amount:      promotionType.Price(),
		ServiceType: promotionType,
		Status:      models.PaymentCompleted,
	}
	expiresAt := l.now().AddDate(0, 0, l.defaultDays)
	if err = l.payments.PurchasePromotion(ctx, payment, expiresAt); err != nil {
		if errors.Is(err, models.ErrStoreUnavailable) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't purchase promotion: %v", err)
		}
		return nil, err
	}

	metrics.PromotionsCounter.WithLabelValues(string(promotionType)).Inc()
	log.Infof("user %d paid %d for %s promotion of vacancy %d", userID, payment.Amount, promotionType, vacancyID)
	return payment, nil
}

type PromotionOffer struct {
	Type  models.PromotionType
	Price int64
	Days  int
}

func (l *PromotionLedger) Offers() []PromotionOffer {
	offers := make([]PromotionOffer, 0, len(models.PromotionTypes()))
	for _, t := range models.PromotionTypes() {
		offers = append(offers, PromotionOffer{Type: t, Price: t.Price(), Days: l.defaultDays})
	}
	return offers
}
