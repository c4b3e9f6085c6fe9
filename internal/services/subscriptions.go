package services

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type subscriptionStore interface {
	Replace(ctx context.Context, subscription *models.Subscription) error
	GetByUser(ctx context.Context, userID int64) (*models.Subscription, error)
	Delete(ctx context.Context, userID int64) (bool, error)
}

type SubscriptionService struct {
	subscriptions subscriptionStore
}

func NewSubscriptionService(subscriptions subscriptionStore) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions}
}

// Create replaces the user's current subscription, if any.
func (s *SubscriptionService) Create(ctx context.Context, userID int64, draft models.SubscriptionDraft) (*models.Subscription, error) {
	if draft.RadiusKm == 0 {
		draft.RadiusKm = models.DefaultSubscriptionRadiusKm
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	subscription := models.NewSubscription(userID, draft)
	if err := s.subscriptions.Replace(ctx, &subscription); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't save subscription: %v", err)
		return nil, err
	}
	log.Infof("user %d subscribed within %d km", userID, subscription.RadiusKm)
	return &subscription, nil
}

// Get returns models.ErrNotFound when the user has no subscription.
func (s *SubscriptionService) Get(ctx context.Context, userID int64) (*models.Subscription, error) {
	subscription, err := s.subscriptions.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "subscription of user %d", userID)
	}
	return subscription, nil
}

func (s *SubscriptionService) Delete(ctx context.Context, userID int64) error {
	deleted, err := s.subscriptions.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.Wrapf(models.ErrNotFound, "subscription of user %d", userID)
	}
	return nil
}
