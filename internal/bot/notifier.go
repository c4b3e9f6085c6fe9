package bot

import (
	"context"
	"fmt"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"net/http"
	"sync/atomic"
)

// Notifier is the telegram-backed notification sink used by the approval fanout.
// Sends share one rate limit so a large fanout stays under Telegram's broadcast limits.
type Notifier struct {
	api     apiInterface
	limiter *rate.Limiter
	stopped atomic.Bool
}

func NewNotifier(api apiInterface, messagesPerSecond float64) *Notifier {
	return &Notifier{api: api, limiter: rate.NewLimiter(rate.Limit(messagesPerSecond), 1)}
}

func (n *Notifier) Send(ctx context.Context, recipientID int64, text string) error {
	if n.stopped.Load() {
		return models.ErrSinkUnavailable
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", models.ErrDelivery, err)
	}

	if _, err := n.api.Send(botApi.NewMessage(recipientID, text)); err != nil {
		var apiErr *botApi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
			return fmt.Errorf("%w: %v", models.ErrSinkUnavailable, err)
		}
		return fmt.Errorf("%w: chat %d: %v", models.ErrDelivery, recipientID, err)
	}
	return nil
}

// Stop makes further sends fail fast with models.ErrSinkUnavailable.
func (n *Notifier) Stop() {
	n.stopped.Store(true)
}
