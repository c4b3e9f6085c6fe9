package repositories

import (
	"context"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	gocache "github.com/patrickmn/go-cache"
	"strconv"
	"time"
)

type userRepository interface {
	GetOrCreate(ctx context.Context, identity UserIdentity) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLocation(ctx context.Context, telegramID int64, location geo.Coordinate, name string) error
	UpdatePhone(ctx context.Context, telegramID int64, phone string) error
	SetEmployer(ctx context.Context, telegramID int64) error
}

// CachedUsers keeps recently seen users in memory, keyed by telegram id. Every update
// evicts the entry so the next read goes to the database.
type CachedUsers struct {
	repo  userRepository
	cache *gocache.Cache
}

func NewCachedUsers(repo userRepository) *CachedUsers {
	return &CachedUsers{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c *CachedUsers) GetOrCreate(ctx context.Context, identity UserIdentity) (*models.User, error) {
	key := cacheKey(identity.TelegramID)
	if value, found := c.cache.Get(key); found {
		user := value.(models.User)
		return &user, nil
	}

	user, err := c.repo.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, *user, gocache.DefaultExpiration)
	return user, nil
}

func (c *CachedUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *CachedUsers) UpdateLocation(ctx context.Context, telegramID int64, location geo.Coordinate, name string) error {
	defer c.cache.Delete(cacheKey(telegramID))
	return c.repo.UpdateLocation(ctx, telegramID, location, name)
}

func (c *CachedUsers) UpdatePhone(ctx context.Context, telegramID int64, phone string) error {
	defer c.cache.Delete(cacheKey(telegramID))
	return c.repo.UpdatePhone(ctx, telegramID, phone)
}

func (c *CachedUsers) SetEmployer(ctx context.Context, telegramID int64) error {
	defer c.cache.Delete(cacheKey(telegramID))
	return c.repo.SetEmployer(ctx, telegramID)
}

func cacheKey(telegramID int64) string {
	return strconv.FormatInt(telegramID, 10)
}
