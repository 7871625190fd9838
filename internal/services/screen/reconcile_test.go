package screen

import (
	"testing"

	"github.com/kabulab/rankscreen/internal/common"
	"github.com/kabulab/rankscreen/internal/models"
)

func fp(v float64) *float64 { return &v }

func newTestService() *Service {
	return NewService(common.NewSilentLogger())
}

func TestMerge_NameComesFromReference(t *testing.T) {
	ranking := []models.RankingRecord{
		{Ticker: "A", Name: "Stale Name", Overall: fp(5)},
	}
	reference := map[string]models.ReferenceRecord{
		"A": {Ticker: "A", Name: "Fresh Name", Sector: "Tech", MarketCap: fp(100)},
	}

	merged := newTestService().Merge(ranking, reference)

	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1", len(merged))
	}
	if merged[0].Name != "Fresh Name" {
		t.Errorf("Name = %q, want the reference name, never the stale one", merged[0].Name)
	}
	if merged[0].Overall == nil || *merged[0].Overall != 5 {
		t.Errorf("Overall = %v, want the ranking score", merged[0].Overall)
	}
}

func TestMerge_DropsRowsWithFailedLookup(t *testing.T) {
	ranking := []models.RankingRecord{
		{Ticker: "A", Overall: fp(5)},
		{Ticker: "C", Overall: fp(2)}, // lookup failed, absent from reference
	}
	reference := map[string]models.ReferenceRecord{
		"A": {Ticker: "A", Name: "Alpha", Sector: "Tech", MarketCap: fp(100)},
	}

	merged := newTestService().Merge(ranking, reference)

	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1", len(merged))
	}
	if merged[0].Ticker != "A" {
		t.Errorf("Ticker = %q, want A", merged[0].Ticker)
	}
}

func TestMerge_DropsPartialEnrichment(t *testing.T) {
	tests := []struct {
		name string
		ref  models.ReferenceRecord
	}{
		{"missing sector", models.ReferenceRecord{Ticker: "A", Name: "Alpha", MarketCap: fp(100)}},
		{"missing market cap", models.ReferenceRecord{Ticker: "A", Name: "Alpha", Sector: "Tech"}},
		{"missing name", models.ReferenceRecord{Ticker: "A", Sector: "Tech", MarketCap: fp(100)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranking := []models.RankingRecord{{Ticker: "A", Overall: fp(5)}}
			reference := map[string]models.ReferenceRecord{"A": tt.ref}

			merged := newTestService().Merge(ranking, reference)

			if len(merged) != 0 {
				t.Errorf("len(merged) = %d, want 0 — partial rows are excluded, not defaulted", len(merged))
			}
		})
	}
}

func TestMerge_EssentialFieldsAlwaysPresent(t *testing.T) {
	ranking := []models.RankingRecord{
		{Ticker: "A", Overall: fp(5)},
		{Ticker: "B", Overall: fp(8)},
		{Ticker: "C"},
	}
	reference := map[string]models.ReferenceRecord{
		"A": {Ticker: "A", Name: "Alpha", Sector: "Tech", MarketCap: fp(100)},
		"B": {Ticker: "B", Name: "Beta", Sector: "Finance", MarketCap: fp(200)},
		"C": {Ticker: "C", Name: "Gamma", Sector: "Energy"},
	}

	merged := newTestService().Merge(ranking, reference)

	for _, row := range merged {
		if row.Name == "" || row.Sector == "" || row.MarketCap == 0 {
			t.Errorf("%s: incomplete enrichment survived the merge: %+v", row.Ticker, row)
		}
	}
}

func TestMerge_ReferenceOnlyTickersIgnored(t *testing.T) {
	// Left join: an identifier only present on the reference side never
	// produces a row.
	ranking := []models.RankingRecord{{Ticker: "A", Overall: fp(5)}}
	reference := map[string]models.ReferenceRecord{
		"A": {Ticker: "A", Name: "Alpha", Sector: "Tech", MarketCap: fp(100)},
		"Z": {Ticker: "Z", Name: "Zeta", Sector: "Tech", MarketCap: fp(50)},
	}

	merged := newTestService().Merge(ranking, reference)

	if len(merged) != 1 || merged[0].Ticker != "A" {
		t.Errorf("merged = %+v, want only A", merged)
	}
}
