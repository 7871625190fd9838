// Package models defines the core data types for rankscreen
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RankingRecord is one row of the precomputed ranking file.
// Score fields are nil when the column is absent from the source file or
// the cell did not parse as a number. Records are immutable after load;
// reconciliation produces EnrichedRecords rather than mutating these.
type RankingRecord struct {
	Ticker   string   `json:"ticker"`
	Name     string   `json:"name"` // stale; always superseded by the live lookup
	Overall  *float64 `json:"overall,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Quality  *float64 `json:"quality,omitempty"`
	Growth   *float64 `json:"growth,omitempty"`
	Momentum *float64 `json:"momentum,omitempty"`
}

// ReferenceRecord is the snapshot returned by one live provider lookup.
// Empty string / nil means the provider did not supply the field.
type ReferenceRecord struct {
	Ticker    string   `json:"ticker"`
	Name      string   `json:"name,omitempty"`
	Sector    string   `json:"sector,omitempty"`
	MarketCap *float64 `json:"market_cap,omitempty"`
}

// Complete reports whether all essential fields (name, sector, market cap)
// are present. Only complete records survive reconciliation.
func (r ReferenceRecord) Complete() bool {
	return r.Name != "" && r.Sector != "" && r.MarketCap != nil
}

// EnrichedRecord is one reconciled row: scores from the ranking file,
// name/sector/market cap from the live lookup. Essential fields are
// guaranteed present.
type EnrichedRecord struct {
	Ticker    string   `json:"ticker"`
	Name      string   `json:"name"`
	Sector    string   `json:"sector"`
	MarketCap float64  `json:"market_cap"`
	Overall   *float64 `json:"overall,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	Quality   *float64 `json:"quality,omitempty"`
	Growth    *float64 `json:"growth,omitempty"`
	Momentum  *float64 `json:"momentum,omitempty"`
}

// PricePoint is one daily closing price observation.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// PriceSeries holds up to one trailing year of daily closes for a ticker.
// A present-but-empty series means the provider confirmed there is no
// history; an absent series (nil at the caller) means the lookup failed.
type PriceSeries struct {
	Ticker string       `json:"ticker"`
	Points []PricePoint `json:"points"`
}
