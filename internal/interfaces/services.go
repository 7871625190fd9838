// Package interfaces defines service contracts for rankscreen
package interfaces

import (
	"context"

	"github.com/kabulab/rankscreen/internal/models"
)

// ProgressFunc receives advisory fetch progress (completed of total).
// It has no effect on correctness; a nil observer is valid.
type ProgressFunc func(completed, total int)

// RankingService loads the precomputed ranking file
type RankingService interface {
	// Load parses the ranking file at path into typed records.
	// A missing file is reported as models.SourceNotFoundError; row-level
	// parse problems are absorbed as missing values.
	Load(path string) ([]models.RankingRecord, error)
}

// MarketService handles live provider lookups
type MarketService interface {
	// FetchReference looks up each ticker independently and returns the
	// successful results keyed by ticker. Failed tickers are omitted,
	// never defaulted; one failure never aborts the batch.
	FetchReference(ctx context.Context, tickers []string, progress ProgressFunc) map[string]models.ReferenceRecord

	// FetchHistory retrieves the trailing one-year price series for one
	// ticker. ok is false when the lookup failed, which is distinct from
	// a present series with zero points.
	FetchHistory(ctx context.Context, ticker string) (series *models.PriceSeries, ok bool)
}

// ScreenService reconciles and filters the enriched table
type ScreenService interface {
	// Merge joins ranking records with reference lookups, keeping only
	// rows with complete enrichment. Names and sectors always come from
	// the reference side; scores from the ranking side.
	Merge(ranking []models.RankingRecord, reference map[string]models.ReferenceRecord) []models.EnrichedRecord

	// DefaultCriteria derives the initial filter from the enriched set:
	// [median(overall), max(overall)] and all observed sectors.
	// Returns models.ErrEmptyDataset when no row has an overall score.
	DefaultCriteria(rows []models.EnrichedRecord) (models.FilterCriteria, error)

	// Apply keeps rows whose overall score is present and within the
	// inclusive range and whose sector is selected.
	Apply(rows []models.EnrichedRecord, criteria models.FilterCriteria) []models.EnrichedRecord

	// SectorAverages computes the mean overall score per sector, sorted
	// descending by average.
	SectorAverages(rows []models.EnrichedRecord) []models.SectorAverage
}
