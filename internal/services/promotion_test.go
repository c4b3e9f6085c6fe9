package services

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func Test_Promote_Twice_ShouldResetExpiryWithoutStacking(t *testing.T) {
	env := newTestEnv(t)
	employer := env.createUser(t, 1)
	vacancy := env.createVacancy(t, employer.ID, 41.30, 69.24, nil, true)

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	ledger := NewPromotionLedger(env.vacancies, env.payments, 7).WithClock(func() time.Time { return clock })

	_, err := ledger.Promote(context.Background(), vacancy.ID, models.PromotionTop, 7)
	require.NoError(t, err)

	clock = start.Add(2 * time.Hour)
	_, err = ledger.Promote(context.Background(), vacancy.ID, models.PromotionUrgent, 7)
	require.NoError(t, err)

	stored, err := env.vacancies.GetByID(context.Background(), vacancy.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PromotionType)
	assert.Equal(t, models.PromotionUrgent, *stored.PromotionType)
	require.NotNil(t, stored.PromotionExpiresAt)
	assert.True(t, stored.PromotionExpiresAt.Equal(clock.AddDate(0, 0, 7)))
}

func Test_Promote_WhenUnknownType_ShouldFailValidation(t *testing.T) {
	ledger := NewPromotionLedger(nil, nil, 7)

	_, err := ledger.Promote(context.Background(), 1, "gold", 7)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func Test_Purchase_ShouldRecordPaymentAndPromote(t *testing.T) {
	env := newTestEnv(t)
	employer := env.createUser(t, 1)
	vacancy := env.createVacancy(t, employer.ID, 41.30, 69.24, nil, false)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := NewPromotionLedger(env.vacancies, env.payments, 7).WithClock(func() time.Time { return now })

	payment, err := ledger.Purchase(context.Background(), employer.ID, vacancy.ID, models.PromotionHighlight)

	require.NoError(t, err)
	assert.Equal(t, int64(5000), payment.Amount)
	assert.Equal(t, models.PaymentCompleted, payment.Status)

	stored, err := env.vacancies.GetByID(context.Background(), vacancy.ID)
	require.NoError(t, err)
	assert.True(t, stored.EffectivelyPromoted(now.AddDate(0, 0, 6)))
	assert.False(t, stored.EffectivelyPromoted(now.AddDate(0, 0, 8)))
}

func Test_Purchase_WhenNotOwner_ShouldNotCharge(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, 1)
	stranger := env.createUser(t, 2)
	vacancy := env.createVacancy(t, owner.ID, 41.30, 69.24, nil, true)
	ledger := NewPromotionLedger(env.vacancies, env.payments, 7)

	_, err := ledger.Purchase(context.Background(), stranger.ID, vacancy.ID, models.PromotionTop)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = ledger.Purchase(context.Background(), owner.ID, 404, models.PromotionTop)
	assert.ErrorIs(t, err, models.ErrNotFound)

	payments, err := env.payments.ByUser(context.Background(), stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func Test_Offers_ShouldListPriceTable(t *testing.T) {
	offers := NewPromotionLedger(nil, nil, 0).Offers()

	assert.Equal(t, []PromotionOffer{
		{Type: models.PromotionTop, Price: 10000, Days: 7},
		{Type: models.PromotionUrgent, Price: 15000, Days: 7},
		{Type: models.PromotionHighlight, Price: 5000, Days: 7},
	}, offers)
}
