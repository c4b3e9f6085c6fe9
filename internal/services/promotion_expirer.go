package services

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type expiredPromotionsRepository interface {
	ClearExpiredPromotions(ctx context.Context, now time.Time) (int64, error)
}

// PromotionExpirer resets stale promotion flags. Ranking already ignores expired
// promotions, so this only keeps the stored flag tidy for statistics and listings.
type PromotionExpirer struct {
	vacancies expiredPromotionsRepository
	cron      *cron.Cron
}

func NewPromotionExpirer(vacancies expiredPromotionsRepository, schedule string) (*PromotionExpirer, error) {
	pe := &PromotionExpirer{
		vacancies: vacancies,
		cron:      cron.New(),
	}

	_, err := pe.cron.AddFunc(schedule, pe.clearExpired)
	if err != nil {
		return nil, err
	}

	pe.cron.Start()
	log.Infof("promotion expirer started, schedule: %s", schedule)
	return pe, nil
}

func (pe *PromotionExpirer) Stop() {
	<-pe.cron.Stop().Done()
}

func (pe *PromotionExpirer) clearExpired() {
	rowsAffected, err := pe.vacancies.ClearExpiredPromotions(context.Background(), time.Now())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to clear expired promotions: %v", err)
	} else {
		log.Infof("expired promotions cleared at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
