package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/events"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	"github.com/maxaizer/nearby-jobs-bot/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"slices"
)

type moderatedVacancies interface {
	Create(ctx context.Context, vacancy *models.Vacancy) error
	GetByID(ctx context.Context, id int64) (*models.Vacancy, error)
	Approve(ctx context.Context, id int64) (bool, error)
	Reject(ctx context.Context, id int64) (bool, error)
	Deactivate(ctx context.Context, id int64, ownerID int64) error
	Pending(ctx context.Context, limit int) ([]models.Vacancy, error)
}

type userLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type approvalFanout interface {
	NotifyApproval(ctx context.Context, vacancy models.Vacancy) (DispatchReport, error)
}

// ModerationService drives the vacancy lifecycle: submit, approve, reject, deactivate.
type ModerationService struct {
	bus       EventBus.Bus
	vacancies moderatedVacancies
	users     userLookup
	fanout    approvalFanout
	adminIDs  []int64
}

func NewModerationService(bus EventBus.Bus, vacancies moderatedVacancies, users userLookup,
	fanout approvalFanout, adminIDs []int64) *ModerationService {

	return &ModerationService{
		bus:       bus,
		vacancies: vacancies,
		users:     users,
		fanout:    fanout,
		adminIDs:  adminIDs,
	}
}

func (s *ModerationService) IsModerator(telegramID int64) bool {
	return slices.Contains(s.adminIDs, telegramID)
}

func (s *ModerationService) AdminIDs() []int64 {
	return slices.Clone(s.adminIDs)
}

// Submit validates the draft and stores it as a pending vacancy.
func (s *ModerationService) Submit(ctx context.Context, employerID int64, draft models.VacancyDraft) (*models.Vacancy, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	vacancy := models.NewVacancy(employerID, draft)
	if err := s.vacancies.Create(ctx, &vacancy); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't create vacancy: %v", err)
		return nil, err
	}

	metrics.ModerationTransitions.WithLabelValues("submit").Inc()
	log.Infof("vacancy %d submitted by user %d", vacancy.ID, employerID)
	return &vacancy, nil
}

// Approve publishes a pending vacancy and notifies matching subscribers. The fanout runs
// only when this call changed the state, and its failures never undo the approval.
func (s *ModerationService) Approve(ctx context.Context, moderatorTelegramID int64, id int64) (DispatchReport, error) {
	if !s.IsModerator(moderatorTelegramID) {
		return DispatchReport{}, errors.Wrapf(models.ErrUnauthorized, "user %d is not a moderator", moderatorTelegramID)
	}

	changed, err := s.vacancies.Approve(ctx, id)
	if err != nil {
		return DispatchReport{}, err
	}
	if !changed {
		log.Infof("vacancy %d is already approved", id)
		return DispatchReport{}, nil
	}
	metrics.ModerationTransitions.WithLabelValues("approve").Inc()

	vacancy, err := s.vacancies.GetByID(ctx, id)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't load approved vacancy %d: %v", id, err)
		return DispatchReport{}, nil
	}
	// a reject may land between the update and the reload
	if !vacancy.IsDiscoverable() {
		log.Infof("vacancy %d was deactivated right after approval, skipping notifications", id)
		return DispatchReport{}, nil
	}

	report, err := s.fanout.NotifyApproval(ctx, *vacancy)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeFanout).
			Errorf("fanout for vacancy %d stopped early: %v", id, err)
	}

	s.bus.Publish(events.VacancyApprovedTopic, events.VacancyApproved{
		Vacancy:          *vacancy,
		NotifiedCount:    report.Delivered,
		EmployerTelegram: s.employerTelegram(ctx, vacancy.EmployerID),
	})
	return report, nil
}

func (s *ModerationService) Reject(ctx context.Context, moderatorTelegramID int64, id int64) error {
	if !s.IsModerator(moderatorTelegramID) {
		return errors.Wrapf(models.ErrUnauthorized, "user %d is not a moderator", moderatorTelegramID)
	}

	changed, err := s.vacancies.Reject(ctx, id)
	if err != nil || !changed {
		return err
	}
	metrics.ModerationTransitions.WithLabelValues("reject").Inc()

	vacancy, err := s.vacancies.GetByID(ctx, id)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't load rejected vacancy %d: %v", id, err)
		return nil
	}

	s.bus.Publish(events.VacancyRejectedTopic, events.VacancyRejected{
		Vacancy:          *vacancy,
		EmployerTelegram: s.employerTelegram(ctx, vacancy.EmployerID),
	})
	return nil
}

// Deactivate is the owner's soft delete.
func (s *ModerationService) Deactivate(ctx context.Context, ownerID int64, id int64) error {
	if err := s.vacancies.Deactivate(ctx, id, ownerID); err != nil {
		return err
	}
	metrics.ModerationTransitions.WithLabelValues("deactivate").Inc()
	return nil
}

func (s *ModerationService) Pending(ctx context.Context, moderatorTelegramID int64, limit int) ([]models.Vacancy, error) {
	if !s.IsModerator(moderatorTelegramID) {
		return nil, errors.Wrapf(models.ErrUnauthorized, "user %d is not a moderator", moderatorTelegramID)
	}
	return s.vacancies.Pending(ctx, limit)
}

func (s *ModerationService) employerTelegram(ctx context.Context, employerID int64) int64 {
	employer, err := s.users.GetByID(ctx, employerID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("couldn't load employer %d: %v", employerID, err)
		return 0
	}
	return employer.TelegramID
}
