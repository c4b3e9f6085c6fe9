package services

import (
	"cmp"
	"context"
	"fmt"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"github.com/maxaizer/nearby-jobs-bot/internal/metrics"
	"slices"
	"time"
)

type discoverableVacancies interface {
	Discoverable(ctx context.Context, box geo.Box, minSalary *int64) ([]models.Vacancy, error)
}

type NearbyQuery struct {
	Origin    geo.Coordinate
	RadiusKm  float64
	MinSalary *int64
	Page      int
	PageSize  int
}

type NearbyVacancy struct {
	Vacancy    models.Vacancy
	DistanceKm float64
	Promoted   bool
}

type NearbyPage struct {
	Items   []NearbyVacancy
	HasMore bool
	Total   int
}

type DiscoveryService struct {
	vacancies       discoverableVacancies
	defaultPageSize int
	defaultRadiusKm float64
	now             func() time.Time
}

func NewDiscoveryService(vacancies discoverableVacancies, defaultPageSize int, defaultRadiusKm float64) *DiscoveryService {
	return &DiscoveryService{
		vacancies:       vacancies,
		defaultPageSize: defaultPageSize,
		defaultRadiusKm: defaultRadiusKm,
		now:             time.Now,
	}
}

// WithClock replaces the clock used to decide whether a promotion is still in effect.
func (s *DiscoveryService) WithClock(now func() time.Time) *DiscoveryService {
	s.now = now
	return s
}

// FindNearby returns one page of discoverable vacancies around the origin, effectively
// promoted ones first, then nearest first, ties broken by id.
func (s *DiscoveryService) FindNearby(ctx context.Context, query NearbyQuery) (NearbyPage, error) {
	if query.Page < 0 {
		return NearbyPage{}, fmt.Errorf("%w: negative page %d", models.ErrValidation, query.Page)
	}

	radius := query.RadiusKm
	if radius <= 0 {
		radius = s.defaultRadiusKm
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}

	start := time.Now()
	defer func() {
		metrics.DiscoveryQueryDuration.Observe(time.Since(start).Seconds())
	}()

	candidates, err := s.vacancies.Discoverable(ctx, geo.BoundingBoxAround(query.Origin, radius), query.MinSalary)
	if err != nil {
		return NearbyPage{}, err
	}

	now := s.now()
	matched := make([]NearbyVacancy, 0, len(candidates))
	for _, vacancy := range candidates {
		if !vacancy.IsDiscoverable() {
			continue
		}
		if query.MinSalary != nil && !vacancy.PaysAtLeast(*query.MinSalary) {
			continue
		}
		distance := geo.Distance(query.Origin, vacancy.Location())
		if distance > radius {
			continue
		}
		matched = append(matched, NearbyVacancy{
			Vacancy:    vacancy,
			DistanceKm: distance,
			Promoted:   vacancy.EffectivelyPromoted(now),
		})
	}

	slices.SortFunc(matched, compareNearby)

	// pages past the end are empty; checked before multiplying so a huge page cannot overflow
	if query.Page > (len(matched)-1)/pageSize || len(matched) == 0 {
		return NearbyPage{Items: []NearbyVacancy{}, Total: len(matched)}, nil
	}
	from := query.Page * pageSize
	to := min(from+pageSize, len(matched))

	return NearbyPage{
		Items:   matched[from:to],
		HasMore: to < len(matched),
		Total:   len(matched),
	}, nil
}

func compareNearby(a, b NearbyVacancy) int {
	if a.Promoted != b.Promoted {
		if a.Promoted {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
		return c
	}
	return cmp.Compare(a.Vacancy.ID, b.Vacancy.ID)
}
