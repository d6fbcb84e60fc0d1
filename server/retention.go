package server

import (
	"catalog-service/config"
	"catalog-service/service"
	"context"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"time"
)

// startRetention schedules progress compaction. It returns a nil scheduler
// when no schedule is configured.
func startRetention(ctx context.Context, cfg config.Retention, tracking service.TrackingService) (*cron.Cron, error) {
	if cfg.Schedule == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.Schedule, func() {
		before := time.Now().Add(-cfg.MaxAge)
		if _, err := tracking.Compact(ctx, before); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("scheduled compaction failed")
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	zerolog.Ctx(ctx).Info().Str("schedule", cfg.Schedule).Dur("max_age", cfg.MaxAge).Msg("retention scheduler started")
	return c, nil
}
