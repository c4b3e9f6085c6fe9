package config

import (
	"errors"
	"fmt"
)

// BoardConfig tunes search, promotion and notification behaviour.
type BoardConfig struct {
	PageSize                 int     `mapstructure:"page_size"`
	SearchRadiusKm           float64 `mapstructure:"search_radius_km"`
	PromotionDays            int     `mapstructure:"promotion_days"`
	FanoutWorkers            int     `mapstructure:"fanout_workers"`
	ExpirePromotionsSchedule string  `mapstructure:"expire_promotions_schedule"`
}

func (config BoardConfig) validate() error {
	var errs []error

	if config.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be greater than zero"))
	}
	if config.SearchRadiusKm <= 0 {
		errs = append(errs, fmt.Errorf("search_radius_km must be greater than zero"))
	}
	if config.PromotionDays <= 0 {
		errs = append(errs, fmt.Errorf("promotion_days must be greater than zero"))
	}
	if config.FanoutWorkers <= 0 {
		errs = append(errs, fmt.Errorf("fanout_workers must be greater than zero"))
	}
	if config.ExpirePromotionsSchedule == "" {
		errs = append(errs, fmt.Errorf("missing variable: expire_promotions_schedule"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
