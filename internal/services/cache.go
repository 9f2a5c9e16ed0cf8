package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/logger"
)

// CacheService is the subset of the Redis cache the services use. A nil CacheService disables
// caching and event publishing.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Increment(ctx context.Context, key string) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
	Publish(ctx context.Context, channel string, message interface{}) error
}

// vehicleListKey embeds the list version so bumping it orphans every cached page at once.
func vehicleListKey(version int64, city string, params *utils.PaginationParams) string {
	return fmt.Sprintf("%sv%d:%s:%d:%d:%s:%s",
		utils.CacheVehicleListPrefix, version, strings.ToLower(city),
		params.Page, params.PageSize, params.Sort, params.Order)
}

// vehicleKey is versioned like the list pages. A read that raced an invalidation writes under
// the old version, where nothing looks any more.
func vehicleKey(version int64, id uint64) string {
	return fmt.Sprintf("%sv%d:%d", utils.CacheVehiclePrefix, version, id)
}

// invalidateVehicle orphans the cached vehicle and every cached list page.
func invalidateVehicle(ctx context.Context, cache CacheService, log *logger.Logger, vehicleID uint64) {
	if cache == nil {
		return
	}
	if _, err := cache.Increment(ctx, utils.CacheVehicleVersion); err != nil {
		log.WithError(err).WithField("vehicle_id", vehicleID).Warn("Failed to bump vehicle cache version")
	}
}
