// Package interfaces defines service contracts for rankscreen
package interfaces

import (
	"context"
	"time"

	"github.com/kabulab/rankscreen/internal/models"
)

// MarketDataClient provides per-identifier access to the external market
// data provider. Both lookups are best-effort: callers treat any error as
// "this identifier has no data right now" and recover locally.
type MarketDataClient interface {
	// GetReference retrieves the name/sector/market-cap snapshot for one
	// ticker. Fields the provider does not supply are left empty.
	GetReference(ctx context.Context, ticker string) (*models.ReferenceRecord, error)

	// GetHistory retrieves daily closing prices for one ticker over the
	// given date range.
	GetHistory(ctx context.Context, ticker string, from, to time.Time) (*models.PriceSeries, error)
}
