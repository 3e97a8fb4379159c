package scheduler

import (
	"context"
	"time"

	"securities/src/repositories"

	"github.com/sirupsen/logrus"
)

// Markets flagged for price updates get their first/last price dates
// recomputed nightly, after trading closes.
const priceDateRefreshSpec = "0 3 * * *"

// NewPriceDateRefresh schedules the nightly recomputation of price date
// bounds for every market with the update flag set.
func NewPriceDateRefresh(markets repositories.MarketRepository, logger *logrus.Logger) (*ScheduledTask, error) {
	return NewScheduledTask(priceDateRefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		flagged, err := markets.ListForPriceUpdate(ctx)
		if err != nil {
			logger.WithError(err).Error("price date refresh: listing markets failed")
			return
		}

		refreshed := 0
		for _, market := range flagged {
			if err := markets.RefreshPriceDates(ctx, market.ID); err != nil {
				logger.WithError(err).WithField("marketId", market.ID).
					Error("price date refresh failed")
				continue
			}
			refreshed++
		}
		logger.WithField("markets", refreshed).Info("price date refresh completed")
	})
}
