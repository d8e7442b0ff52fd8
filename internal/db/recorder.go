package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartValueSnapshotRecorder records portfolio valuations with interval.
// Each tick inserts one portfolio_value_history row per portfolio holding at
// least one position, valued as sum(price * quantity).
func StartValueSnapshotRecorder(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    INSERT INTO portfolio_value_history (portfolio_id, value, recorded_at)
                    SELECT portfolio_id, SUM(price * quantity), NOW()
                      FROM portfolio_holdings
                     GROUP BY portfolio_id
                `)
				if err != nil {
					log.Error("failed to record portfolio value snapshots", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("recorded portfolio value snapshots", zap.Int64("portfolios", rows))
				}
			}
		}
	}()
}
