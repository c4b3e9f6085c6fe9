package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	"github.com/maxaizer/nearby-jobs-bot/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// NotificationSink delivers a text message to a single chat. Ordinary per-recipient
// failures wrap models.ErrDelivery; models.ErrSinkUnavailable means no recipient can be reached.
type NotificationSink interface {
	Send(ctx context.Context, recipientID int64, text string) error
}

type subscriberSource interface {
	ActiveSubscribers(ctx context.Context, limit int, offset int) ([]models.Subscriber, error)
}

type DispatchReport struct {
	Attempted int
	Delivered int
	Failed    int
}

type FanoutDispatcher struct {
	subscriptions subscriberSource
	sink          NotificationSink
	workers       int
	pageSize      int
}

func NewFanoutDispatcher(subscriptions subscriberSource, sink NotificationSink, workers int) *FanoutDispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &FanoutDispatcher{
		subscriptions: subscriptions,
		sink:          sink,
		workers:       workers,
		pageSize:      100,
	}
}

type delivery struct {
	subscriber models.Subscriber
	text       string
}

// NotifyApproval makes exactly one delivery attempt to every active subscriber whose
// circle and salary floor match the vacancy. Delivery failures are only counted; the
// returned error is reserved for failing to load subscribers. A started run is not
// cancelled with the caller's context.
func (d *FanoutDispatcher) NotifyApproval(ctx context.Context, vacancy models.Vacancy) (DispatchReport, error) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	defer func() {
		metrics.FanoutDuration.Observe(time.Since(start).Seconds())
	}()

	text := approvalNotice(&vacancy)
	var attempted, delivered, failed atomic.Int64

	jobs := make(chan delivery)
	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				attempted.Add(1)
				if err := d.deliver(ctx, job); err != nil {
					failed.Add(1)
					continue
				}
				delivered.Add(1)
			}
		}()
	}

	loadErr := d.enqueueCandidates(ctx, &vacancy, text, jobs)
	close(jobs)
	wg.Wait()

	report := DispatchReport{
		Attempted: int(attempted.Load()),
		Delivered: int(delivered.Load()),
		Failed:    int(failed.Load()),
	}
	log.Infof("fanout for vacancy %d finished: attempted %d, delivered %d, failed %d",
		vacancy.ID, report.Attempted, report.Delivered, report.Failed)

	return report, loadErr
}

func (d *FanoutDispatcher) enqueueCandidates(ctx context.Context, vacancy *models.Vacancy, text string,
	jobs chan<- delivery) error {

	for offset := 0; ; offset += d.pageSize {
		subscribers, err := d.subscriptions.ActiveSubscribers(ctx, d.pageSize, offset)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to load subscribers for vacancy %d: %v", vacancy.ID, err)
			return err
		}

		for _, subscriber := range subscribers {
			if subscriber.Matches(vacancy) {
				jobs <- delivery{subscriber: subscriber, text: text}
			}
		}

		if len(subscribers) < d.pageSize {
			return nil
		}
	}
}

func (d *FanoutDispatcher) deliver(ctx context.Context, job delivery) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: sink panicked: %v", models.ErrDelivery, r)
		}
		if err != nil {
			metrics.FanoutDeliveries.WithLabelValues("failed").Inc()
			entry := log.WithField(logger.ErrorTypeField, logger.ErrorTypeFanout)
			if errors.Is(err, models.ErrSinkUnavailable) {
				entry.Errorf("notification sink unavailable for user %d: %v", job.subscriber.TelegramID, err)
			} else {
				entry.Warnf("couldn't notify user %d: %v", job.subscriber.TelegramID, err)
			}
			return
		}
		metrics.FanoutDeliveries.WithLabelValues("delivered").Inc()
	}()

	return d.sink.Send(ctx, job.subscriber.TelegramID, job.text)
}

func approvalNotice(v *models.Vacancy) string {
	var b strings.Builder
	b.WriteString("🔔 Новая вакансия рядом с вами!\n\n")
	b.WriteString(v.Title + "\n")
	b.WriteString("💰 " + v.SalaryText() + "\n")
	b.WriteString("📍 " + v.Address + "\n\n")
	b.WriteString(fmt.Sprintf("Подробнее: /vacancy_%d", v.ID))
	return b.String()
}
