package market

import (
	"context"
	"time"

	"github.com/kabulab/rankscreen/internal/models"
)

// historyWindow is the trailing span of the price series.
const historyWindow = 365 * 24 * time.Hour

// FetchHistory retrieves the trailing one-year daily price series for a
// ticker. ok is false when the lookup failed; a series with zero points
// and ok=true means the provider confirmed there is no history.
func (s *Service) FetchHistory(ctx context.Context, ticker string) (*models.PriceSeries, bool) {
	to := time.Now()
	from := to.Add(-historyWindow)

	series, err := s.client.GetHistory(ctx, ticker, from, to)
	if err != nil {
		s.logger.Debug().Str("ticker", ticker).Err(err).Msg("Price history lookup failed")
		return nil, false
	}
	if series == nil {
		return nil, false
	}

	return series, true
}
