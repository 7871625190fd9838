package models

// FilterCriteria is the screener predicate: an inclusive range on the
// overall score plus a set of selected sectors.
type FilterCriteria struct {
	MinScore float64  `json:"min_score"`
	MaxScore float64  `json:"max_score"`
	Sectors  []string `json:"sectors"`
}

// SectorSet returns the selected sectors as a membership set.
func (c FilterCriteria) SectorSet() map[string]bool {
	set := make(map[string]bool, len(c.Sectors))
	for _, s := range c.Sectors {
		set[s] = true
	}
	return set
}

// SectorAverage is the mean overall score across one sector of the
// enriched table, used by the presentation overview.
type SectorAverage struct {
	Sector  string  `json:"sector"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ScreenResult is the full payload handed to the presentation boundary:
// the enriched table, dataset-derived default criteria, and sector
// aggregates. Empty marks the "nothing to show" state, which is a valid
// outcome rather than an error.
type ScreenResult struct {
	Rows           []EnrichedRecord `json:"rows"`
	Criteria       FilterCriteria   `json:"criteria"`
	SectorAverages []SectorAverage  `json:"sector_averages"`
	Empty          bool             `json:"empty"`
}
