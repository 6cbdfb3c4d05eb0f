package cron

import (
	"context"
	"time"

	"go.uber.org/zap"

	"grocery.GO/config"
)

// CatalogRefreshJob is the name of the periodic catalog reload.
const CatalogRefreshJob = "catalogrefresh"

type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// RegisterCatalogRefresh reloads both catalog lists on a schedule so long
// running processes pick up edits made outside this process.
func RegisterCatalogRefresh(r Refresher, log *zap.Logger) {
	Register(CatalogRefreshJob, config.CronSchedules[CatalogRefreshJob], func(...string) {
		start := time.Now()
		if err := r.RefreshAll(context.Background()); err != nil {
			log.Warn("catalog refresh failed", zap.Error(err))
			return
		}
		log.Debug("catalog refreshed", zap.Duration("took", time.Since(start)))
	})
}
