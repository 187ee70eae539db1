package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// StartRetentionSweep schedules the audit retention job and returns the
// running scheduler. The caller stops it on shutdown.
func (a *App) StartRetentionSweep(schedule string, retentionDays int, log *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := a.Services.Audit.Cleanup(context.Background(), retentionDays); err != nil {
			log.Error("audit retention sweep failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Info("audit retention sweep scheduled", "schedule", schedule, "retention_days", retentionDays)
	return c, nil
}
