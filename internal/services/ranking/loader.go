// Package ranking loads the precomputed multi-factor ranking file
package ranking

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kabulab/rankscreen/internal/common"
	"github.com/kabulab/rankscreen/internal/interfaces"
	"github.com/kabulab/rankscreen/internal/models"
)

// Loader parses the ranking CSV into typed records. Column labels come
// from configuration; the loader owns no network access.
type Loader struct {
	columns common.RankingColumns
	logger  *common.Logger
}

// NewLoader creates a new ranking loader
func NewLoader(columns common.RankingColumns, logger *common.Logger) *Loader {
	return &Loader{
		columns: columns,
		logger:  logger,
	}
}

// Load reads the ranking file at path. A missing file is reported as
// models.SourceNotFoundError; every other parse problem is absorbed as a
// missing value or a skipped row, never raised.
func (l *Loader) Load(path string) ([]models.RankingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.SourceNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open ranking file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		l.logger.Warn().Str("path", path).Err(err).Msg("Ranking file did not parse as CSV")
		return []models.RankingRecord{}, nil
	}
	if len(rows) == 0 {
		return []models.RankingRecord{}, nil
	}

	idx := headerIndex(rows[0])

	idCol, ok := idx[l.columns.Identifier]
	if !ok {
		l.logger.Warn().
			Str("path", path).
			Str("column", l.columns.Identifier).
			Msg("Identifier column not found in ranking file")
		return []models.RankingRecord{}, nil
	}

	records := make([]models.RankingRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if idCol >= len(row) {
			continue
		}
		ticker := strings.TrimSpace(row[idCol])
		if ticker == "" {
			continue
		}

		rec := models.RankingRecord{
			Ticker:   ticker,
			Name:     field(row, idx, l.columns.Name),
			Overall:  score(row, idx, l.columns.Overall),
			Value:    score(row, idx, l.columns.Value),
			Quality:  score(row, idx, l.columns.Quality),
			Growth:   score(row, idx, l.columns.Growth),
			Momentum: score(row, idx, l.columns.Momentum),
		}
		records = append(records, rec)
	}

	l.logger.Debug().Str("path", path).Int("records", len(records)).Msg("Loaded ranking file")

	return records, nil
}

// headerIndex maps trimmed column labels to their positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, label := range header {
		label = strings.TrimSpace(strings.TrimPrefix(label, "\ufeff"))
		if label != "" {
			idx[label] = i
		}
	}
	return idx
}

// field returns the raw cell for a configured column, or "" when the
// column or cell is absent.
func field(row []string, idx map[string]int, label string) string {
	if label == "" {
		return ""
	}
	i, ok := idx[label]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// score parses a numeric cell. Absent columns stay absent; non-numeric
// cells become missing values rather than errors.
func score(row []string, idx map[string]int, label string) *float64 {
	raw := field(row, idx, label)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Ensure Loader implements RankingService
var _ interfaces.RankingService = (*Loader)(nil)
