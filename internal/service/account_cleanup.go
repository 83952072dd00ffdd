package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// UnverifiedDeleter removes accounts that never verified their email
type UnverifiedDeleter interface {
	DeleteUnverifiedBefore(ctx context.Context, t time.Time) (int64, error)
}

// AccountCleanup deletes accounts left unverified for longer than ttl every
// interval until ctx is done. Notes and categories of removed accounts are
// dropped by the database.
func AccountCleanup(ctx context.Context, interval, ttl time.Duration, users UnverifiedDeleter) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	zap.L().Debug("Account cleanup attached", zap.Duration("tick_every", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupOnce(ctx, ttl, users)
		}
	}
}

func cleanupOnce(ctx context.Context, ttl time.Duration, users UnverifiedDeleter) {
	n, err := users.DeleteUnverifiedBefore(ctx, time.Now().Add(-ttl))
	if err != nil {
		zap.L().Error("Failed to delete unverified accounts", zap.Error(err))
		return
	}

	if n > 0 {
		zap.L().Info("Deleted unverified accounts", zap.Int64("count", n))
	}
}
