package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"time"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(driver, connectionString string) (*DbContext, error) {
	var dialector gorm.Dialector

	switch driver {
	case DriverSqlite, "":
		dialector = sqlite.Open(connectionString)
	case DriverPostgres:
		dialector = postgres.Open(connectionString)
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log.StandardLogger()),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

// newGormLogger reports failed statements only; a missing row is an expected lookup outcome.
func newGormLogger(writer logger.Writer) logger.Interface {
	return logger.New(writer, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Error,
		IgnoreRecordNotFoundError: true,
	})
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		model any
	}{
		{"User", models.User{}},
		{"Vacancy", models.Vacancy{}},
		{"Subscription", models.Subscription{}},
		{"Payment", models.Payment{}},
		{"SessionState", models.SessionState{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.model); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
