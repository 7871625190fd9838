package screen

import (
	"github.com/kabulab/rankscreen/internal/models"
)

// Merge left-joins ranking records against reference lookups on ticker
// and keeps only rows with complete enrichment.
//
// Provenance: the ranking file's name column is stale and is always
// dropped in favour of the live lookup; scores only ever come from the
// ranking side. A ticker whose lookup failed, or whose lookup returned
// partial data, is discarded rather than padded with placeholders.
func (s *Service) Merge(ranking []models.RankingRecord, reference map[string]models.ReferenceRecord) []models.EnrichedRecord {
	merged := make([]models.EnrichedRecord, 0, len(ranking))
	dropped := 0

	for _, r := range ranking {
		ref, ok := reference[r.Ticker]
		if !ok || !ref.Complete() {
			dropped++
			continue
		}

		merged = append(merged, models.EnrichedRecord{
			Ticker:    r.Ticker,
			Name:      ref.Name,
			Sector:    ref.Sector,
			MarketCap: *ref.MarketCap,
			Overall:   r.Overall,
			Value:     r.Value,
			Quality:   r.Quality,
			Growth:    r.Growth,
			Momentum:  r.Momentum,
		})
	}

	s.logger.Debug().
		Int("ranking", len(ranking)).
		Int("merged", len(merged)).
		Int("dropped", dropped).
		Msg("Reconciled ranking with reference data")

	return merged
}
