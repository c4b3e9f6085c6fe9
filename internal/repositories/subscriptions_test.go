package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newSubscription(userID int64, lat, lon float64, radius int) models.Subscription {
	return models.NewSubscription(userID, models.SubscriptionDraft{
		Latitude: ptr(lat), Longitude: ptr(lon), RadiusKm: radius,
	})
}

func Test_Subscriptions_Replace_ShouldKeepExactlyOne(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewSubscriptionsRepository(dbCtx.DB)
	user := createUser(t, dbCtx, 100)

	first := newSubscription(user.ID, 41.30, 69.24, 5)
	require.NoError(t, repo.Replace(context.Background(), &first))

	second := newSubscription(user.ID, 39.65, 66.96, 20)
	require.NoError(t, repo.Replace(context.Background(), &second))

	var count int64
	require.NoError(t, dbCtx.DB.Model(&models.Subscription{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.GetByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, second.ID, stored.ID)
	assert.Equal(t, 20, stored.RadiusKm)
}

func Test_Subscriptions_GetByUser_WhenNone_ShouldReturnNil(t *testing.T) {
	dbCtx := newTestDbContext(t)

	stored, err := NewSubscriptionsRepository(dbCtx.DB).GetByUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, stored)
}

func Test_Subscriptions_Delete(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewSubscriptionsRepository(dbCtx.DB)
	user := createUser(t, dbCtx, 100)

	subscription := newSubscription(user.ID, 41.30, 69.24, 5)
	require.NoError(t, repo.Replace(context.Background(), &subscription))

	deleted, err := repo.Delete(context.Background(), user.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), user.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func Test_Subscriptions_ActiveSubscribers_ShouldJoinTelegramID(t *testing.T) {
	dbCtx := newTestDbContext(t)
	repo := NewSubscriptionsRepository(dbCtx.DB)

	for _, telegramID := range []int64{100, 200, 300} {
		user := createUser(t, dbCtx, telegramID)
		subscription := newSubscription(user.ID, 41.30, 69.24, 5)
		require.NoError(t, repo.Replace(context.Background(), &subscription))
	}

	firstPage, err := repo.ActiveSubscribers(context.Background(), 2, 0)
	require.NoError(t, err)
	secondPage, err := repo.ActiveSubscribers(context.Background(), 2, 2)
	require.NoError(t, err)

	require.Len(t, firstPage, 2)
	require.Len(t, secondPage, 1)
	assert.Equal(t, int64(100), firstPage[0].TelegramID)
	assert.Equal(t, int64(200), firstPage[1].TelegramID)
	assert.Equal(t, int64(300), secondPage[0].TelegramID)
	assert.Equal(t, 5, secondPage[0].RadiusKm)
}
