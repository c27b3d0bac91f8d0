package draft

import (
	"context"
	"log/slog"
	"time"

	"github.com/fardilk/fardil-cms-site/internal/cms/cronmanager"
)

const (
	CleanupJobName  = "draft-cleanup"
	CleanupSchedule = "@every 1h"
	cleanupTimeout  = time.Minute * 5
)

// CleanupJob - cron-задача удаления черновиков, которые не обновлялись дольше ttl.
func CleanupJob(s *Service, ttl time.Duration) cronmanager.Job {
	return cronmanager.Job{
		Schedule: CleanupSchedule,
		Func: func() {
			ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
			defer cancel()

			n, err := s.PurgeExpired(ctx, ttl)
			if err != nil {
				slog.Error("Purge expired drafts", "purged", n, "err", err)
				return
			}
			if n > 0 {
				slog.Info("Expired drafts purged", "count", n)
			}
		},
	}
}
