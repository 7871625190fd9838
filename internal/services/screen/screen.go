package screen

import (
	"sort"

	"github.com/kabulab/rankscreen/internal/models"
)

// DefaultCriteria derives the initial filter from the enriched set:
// lower bound = median of the overall scores, upper bound = their max,
// sectors = every sector observed, in first-seen order. The median is
// computed over the post-reconciliation table, so rows dropped for
// missing enrichment never influence the bounds.
func (s *Service) DefaultCriteria(rows []models.EnrichedRecord) (models.FilterCriteria, error) {
	scores := make([]float64, 0, len(rows))
	sectors := make([]string, 0)
	seen := make(map[string]bool)

	for _, r := range rows {
		if r.Overall != nil {
			scores = append(scores, *r.Overall)
		}
		if !seen[r.Sector] {
			seen[r.Sector] = true
			sectors = append(sectors, r.Sector)
		}
	}

	if len(scores) == 0 {
		return models.FilterCriteria{}, models.ErrEmptyDataset
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	return models.FilterCriteria{
		MinScore: median(sorted),
		MaxScore: sorted[len(sorted)-1],
		Sectors:  sectors,
	}, nil
}

// median expects a sorted slice; an even count averages the middle two.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Apply keeps rows whose overall score is present and within the
// inclusive [MinScore, MaxScore] range and whose sector is selected.
// Filtering is a pure function of input and criteria.
func (s *Service) Apply(rows []models.EnrichedRecord, criteria models.FilterCriteria) []models.EnrichedRecord {
	selected := criteria.SectorSet()

	kept := make([]models.EnrichedRecord, 0, len(rows))
	for _, r := range rows {
		if r.Overall == nil {
			continue
		}
		if *r.Overall < criteria.MinScore || *r.Overall > criteria.MaxScore {
			continue
		}
		if !selected[r.Sector] {
			continue
		}
		kept = append(kept, r)
	}

	s.logger.Debug().
		Int("input", len(rows)).
		Int("kept", len(kept)).
		Float64("min", criteria.MinScore).
		Float64("max", criteria.MaxScore).
		Msg("Applied screen criteria")

	return kept
}

// SectorAverages computes the mean overall score per sector across rows
// that carry an overall score, sorted by average descending.
func (s *Service) SectorAverages(rows []models.EnrichedRecord) []models.SectorAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, r := range rows {
		if r.Overall == nil {
			continue
		}
		sums[r.Sector] += *r.Overall
		counts[r.Sector]++
	}

	averages := make([]models.SectorAverage, 0, len(sums))
	for sector, sum := range sums {
		averages = append(averages, models.SectorAverage{
			Sector:  sector,
			Average: sum / float64(counts[sector]),
			Count:   counts[sector],
		})
	}

	sort.Slice(averages, func(i, j int) bool {
		if averages[i].Average != averages[j].Average {
			return averages[i].Average > averages[j].Average
		}
		return averages[i].Sector < averages[j].Sector
	})

	return averages
}
