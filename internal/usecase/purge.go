package usecase

import (
	"context"
	"time"

	"furniture-store/internal/data/repository"

	"go.uber.org/zap"
)

// StartRevocationPurge periodically drops denylist entries whose token has
// expired on its own. It returns immediately; the loop ends with ctx.
func StartRevocationPurge(
	ctx context.Context,
	revocations repository.TokenRevocationRepository,
	interval time.Duration,
	log *zap.Logger,
) {
	if revocations == nil || interval <= 0 {
		return
	}
	log = log.With(zap.String("worker", "revocation_purge"))

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				PurgeRevocations(ctx, revocations, time.Now().UTC(), log)
			}
		}
	}()
}

// PurgeRevocations runs one purge pass and returns the number of entries removed.
func PurgeRevocations(ctx context.Context, revocations repository.TokenRevocationRepository, now time.Time, log *zap.Logger) int64 {
	purged, err := revocations.PurgeExpired(ctx, now)
	if err != nil {
		log.Warn("Failed to purge revoked tokens", zap.Error(err))
		return 0
	}
	if purged > 0 {
		log.Info("Purged revoked tokens", zap.Int64("count", purged))
	}
	return purged
}
