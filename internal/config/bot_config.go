package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

type BotConfig struct {
	Token                string  `mapstructure:"token"`
	AdminIDs             []int64 `mapstructure:"admin_ids"`
	MaxMessagesPerSecond float64 `mapstructure:"max_messages_per_second"`
}

func (config BotConfig) validate() error {

	var missingFields []string

	if config.Token == "" {
		missingFields = append(missingFields, "token")
	}

	if len(config.AdminIDs) == 0 {
		missingFields = append(missingFields, "admin_ids")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.MaxMessagesPerSecond <= 0 {
		return fmt.Errorf("max_messages_per_second must be greater than zero")
	}

	return nil
}

func (config BotConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("bot.admin_ids", "ADMIN_IDS"); err != nil {
		return err
	}
	return v.BindEnv("bot.token", "TOKEN")
}
