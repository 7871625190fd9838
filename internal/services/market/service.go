// Package market provides live provider lookup services
package market

import (
	"context"

	"github.com/google/uuid"

	"github.com/kabulab/rankscreen/internal/common"
	"github.com/kabulab/rankscreen/internal/interfaces"
	"github.com/kabulab/rankscreen/internal/models"
)

// Service implements MarketService on top of a MarketDataClient.
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
}

// NewService creates a new market service
func NewService(client interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// FetchReference issues one independent lookup per ticker, sequentially,
// and returns the successful results keyed by ticker. A failed ticker is
// logged and omitted; it never aborts the batch. progress (when non-nil)
// is called after every attempt, success or not.
func (s *Service) FetchReference(ctx context.Context, tickers []string, progress interfaces.ProgressFunc) map[string]models.ReferenceRecord {
	batchID := uuid.NewString()
	total := len(tickers)
	result := make(map[string]models.ReferenceRecord, total)

	s.logger.Info().Str("batch", batchID).Int("tickers", total).Msg("Fetching reference data")

	for i, ticker := range tickers {
		rec, err := s.client.GetReference(ctx, ticker)
		if err != nil {
			s.logger.Debug().
				Str("batch", batchID).
				Str("ticker", ticker).
				Err(err).
				Msg("Reference lookup failed, skipping")
		} else if rec != nil {
			result[ticker] = *rec
		}

		if progress != nil {
			progress(i+1, total)
		}
	}

	s.logger.Info().
		Str("batch", batchID).
		Int("requested", total).
		Int("resolved", len(result)).
		Msg("Reference fetch complete")

	return result
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
