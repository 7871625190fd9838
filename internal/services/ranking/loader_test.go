package ranking

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kabulab/rankscreen/internal/common"
	"github.com/kabulab/rankscreen/internal/models"
)

var testColumns = common.RankingColumns{
	Identifier: "ticker",
	Name:       "name",
	Overall:    "overall",
	Value:      "value",
	Quality:    "quality",
	Growth:     "growth",
	Momentum:   "momentum",
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ranking.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func newTestLoader() *Loader {
	return NewLoader(testColumns, common.NewSilentLogger())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := newTestLoader().Load("/nonexistent/ranking.csv")
	if err == nil {
		t.Fatal("Load on missing file returned nil error")
	}
	if !models.IsSourceNotFound(err) {
		t.Errorf("Load error = %v, want SourceNotFoundError", err)
	}
}

func TestLoad_AllColumns(t *testing.T) {
	path := writeCSV(t, "ticker,name,overall,value,quality,growth,momentum\n7203.T,Toyota,8.5,7.0,9.0,6.5,5.0\n")

	records, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	r := records[0]
	if r.Ticker != "7203.T" {
		t.Errorf("Ticker = %q, want %q", r.Ticker, "7203.T")
	}
	if r.Name != "Toyota" {
		t.Errorf("Name = %q, want %q", r.Name, "Toyota")
	}
	if r.Overall == nil || *r.Overall != 8.5 {
		t.Errorf("Overall = %v, want 8.5", r.Overall)
	}
	if r.Momentum == nil || *r.Momentum != 5.0 {
		t.Errorf("Momentum = %v, want 5.0", r.Momentum)
	}
}

func TestLoad_MissingScoreColumnsStayAbsent(t *testing.T) {
	// Only overall present; the other score columns must be absent, not
	// zero-filled.
	path := writeCSV(t, "ticker,overall\nA,5\nB,8\n")

	records, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	for _, r := range records {
		if r.Overall == nil {
			t.Errorf("%s: Overall absent, want present", r.Ticker)
		}
		if r.Value != nil || r.Quality != nil || r.Growth != nil || r.Momentum != nil {
			t.Errorf("%s: absent columns were populated", r.Ticker)
		}
	}
}

func TestLoad_NonNumericBecomesMissing(t *testing.T) {
	path := writeCSV(t, "ticker,overall,value\nA,N/A,3.2\nB,7.1,\n")

	records, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if records[0].Overall != nil {
		t.Errorf("A.Overall = %v, want nil for non-numeric cell", *records[0].Overall)
	}
	if records[0].Value == nil || *records[0].Value != 3.2 {
		t.Errorf("A.Value = %v, want 3.2", records[0].Value)
	}
	if records[1].Value != nil {
		t.Errorf("B.Value = %v, want nil for empty cell", *records[1].Value)
	}
}

func TestLoad_SkipsBlankAndRaggedRows(t *testing.T) {
	path := writeCSV(t, "ticker,name,overall\nA,Alpha,5\n,NoTicker,6\nB\n")

	records, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[1].Ticker != "B" {
		t.Errorf("records[1].Ticker = %q, want %q", records[1].Ticker, "B")
	}
	if records[1].Overall != nil {
		t.Errorf("B.Overall = %v, want nil for ragged row", *records[1].Overall)
	}
}

func TestLoad_MissingIdentifierColumn(t *testing.T) {
	path := writeCSV(t, "code,overall\nA,5\n")

	records, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0 when identifier column missing", len(records))
	}
}

func TestLoad_BOMHeader(t *testing.T) {
	path := writeCSV(t, "\ufeffticker,overall\nA,5\n")

	records, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 with BOM header", len(records))
	}
}
