// api/util/cache_service.go

package util

import (
	"context"

	"github.com/spop-ops/commander/api/db"
	"github.com/spop-ops/commander/api/model"
)

type CacheService struct{}

var _ SummaryCache = &CacheService{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetDashboardSummary(ctx context.Context) (*model.DashboardSummary, error) {
	return db.GetCachedDashboardSummary(ctx)
}

func (c *CacheService) SetDashboardSummary(ctx context.Context, summary *model.DashboardSummary) error {
	return db.CacheDashboardSummary(ctx, summary)
}

func (c *CacheService) InvalidateDashboardSummary(ctx context.Context) error {
	return db.InvalidateDashboardSummary(ctx)
}

func (c *CacheService) GetUnreadCount(ctx context.Context, userID uint) (int64, bool, error) {
	return db.GetCachedUnreadCount(ctx, userID)
}

func (c *CacheService) SetUnreadCount(ctx context.Context, userID uint, count int64) error {
	return db.CacheUnreadCount(ctx, userID, count)
}

func (c *CacheService) InvalidateUnreadCount(ctx context.Context, userID uint) error {
	return db.InvalidateUnreadCount(ctx, userID)
}
