// Package app wires configuration, clients, services, and caches
package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kabulab/rankscreen/internal/cache"
	"github.com/kabulab/rankscreen/internal/clients/yahoo"
	"github.com/kabulab/rankscreen/internal/common"
	"github.com/kabulab/rankscreen/internal/interfaces"
	"github.com/kabulab/rankscreen/internal/models"
	"github.com/kabulab/rankscreen/internal/services/market"
	"github.com/kabulab/rankscreen/internal/services/ranking"
	"github.com/kabulab/rankscreen/internal/services/screen"
)

// historyEntry preserves the absent-vs-empty distinction through the cache.
type historyEntry struct {
	series *models.PriceSeries
	ok     bool
}

// App holds all initialized services, clients, and caches. It is the
// shared core used by the HTTP server and by tests.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Client      interfaces.MarketDataClient
	Ranking     interfaces.RankingService
	Market      interfaces.MarketService
	Screen      interfaces.ScreenService
	StartupTime time.Time

	rankingCache   *cache.Keyed[string, []models.RankingRecord]
	referenceCache *cache.Keyed[string, map[string]models.ReferenceRecord]
	historyCache   *cache.Keyed[string, historyEntry]
}

// NewApp initializes the application from a config file path. configPath
// may be empty, in which case RANKSCREEN_CONFIG and then the default
// rankscreen.toml are tried.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("RANKSCREEN_CONFIG")
	}
	if configPath == "" {
		configPath = "rankscreen.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	client := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	return New(config, logger, client), nil
}

// New assembles an App from explicit dependencies. Tests use it to inject
// a deterministic MarketDataClient.
func New(config *common.Config, logger *common.Logger, client interfaces.MarketDataClient) *App {
	return &App{
		Config:      config,
		Logger:      logger,
		Client:      client,
		Ranking:     ranking.NewLoader(config.Ranking.Columns, logger),
		Market:      market.NewService(client, logger),
		Screen:      screen.NewService(logger),
		StartupTime: time.Now(),

		rankingCache:   cache.New[string, []models.RankingRecord](),
		referenceCache: cache.New[string, map[string]models.ReferenceRecord](),
		historyCache:   cache.New[string, historyEntry](),
	}
}

// LoadRanking loads the configured ranking file through the result cache.
func (a *App) LoadRanking() ([]models.RankingRecord, error) {
	path := a.Config.Ranking.Path
	return a.rankingCache.GetOrCompute(path, func() ([]models.RankingRecord, error) {
		return a.Ranking.Load(path)
	})
}

// ReferenceData fetches reference records for tickers through the result
// cache. A repeated call with the same ticker list performs no lookups.
func (a *App) ReferenceData(ctx context.Context, tickers []string, progress interfaces.ProgressFunc) map[string]models.ReferenceRecord {
	key := strings.Join(tickers, "\x1f")
	result, _ := a.referenceCache.GetOrCompute(key, func() (map[string]models.ReferenceRecord, error) {
		return a.Market.FetchReference(ctx, tickers, progress), nil
	})
	return result
}

// History fetches the trailing one-year price series for a ticker through
// the result cache. Absent results are memoized too, matching the
// provider's session-stable behaviour.
func (a *App) History(ctx context.Context, ticker string) (*models.PriceSeries, bool) {
	entry, _ := a.historyCache.GetOrCompute(ticker, func() (historyEntry, error) {
		series, ok := a.Market.FetchHistory(ctx, ticker)
		return historyEntry{series: series, ok: ok}, nil
	})
	return entry.series, entry.ok
}

// BuildScreen runs the full acquisition and reconciliation pipeline:
// load ranking, take the configured top N, enrich, merge, derive default
// criteria. Only a missing ranking file is an error; partial lookup
// failure shrinks the table and zero rows is the Empty state.
func (a *App) BuildScreen(ctx context.Context, progress interfaces.ProgressFunc) (*models.ScreenResult, error) {
	records, err := a.LoadRanking()
	if err != nil {
		return nil, err
	}

	topN := a.Config.Ranking.TopN
	if topN > 0 && len(records) > topN {
		records = records[:topN]
	}

	tickers := make([]string, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if !seen[r.Ticker] {
			seen[r.Ticker] = true
			tickers = append(tickers, r.Ticker)
		}
	}

	reference := a.ReferenceData(ctx, tickers, progress)
	rows := a.Screen.Merge(records, reference)

	result := &models.ScreenResult{Rows: rows}

	criteria, err := a.Screen.DefaultCriteria(rows)
	if err != nil {
		// Nothing screenable: a valid state, not a failure.
		result.Empty = true
		return result, nil
	}

	result.Criteria = criteria
	result.SectorAverages = a.Screen.SectorAverages(rows)
	result.Empty = len(rows) == 0

	return result, nil
}

// FilteredScreen builds the enriched table and applies the given criteria.
func (a *App) FilteredScreen(ctx context.Context, criteria models.FilterCriteria) (*models.ScreenResult, error) {
	full, err := a.BuildScreen(ctx, nil)
	if err != nil {
		return nil, err
	}
	if full.Empty {
		return full, nil
	}

	kept := a.Screen.Apply(full.Rows, criteria)

	return &models.ScreenResult{
		Rows:           kept,
		Criteria:       criteria,
		SectorAverages: full.SectorAverages,
		Empty:          len(kept) == 0,
	}, nil
}

// Stock returns one enriched record plus its price series for the deep
// dive view. found is false when the ticker is not in the enriched table;
// the series is nil when its lookup failed.
func (a *App) Stock(ctx context.Context, ticker string) (rec *models.EnrichedRecord, series *models.PriceSeries, found bool, err error) {
	full, err := a.BuildScreen(ctx, nil)
	if err != nil {
		return nil, nil, false, err
	}

	for i := range full.Rows {
		if full.Rows[i].Ticker == ticker {
			rec = &full.Rows[i]
			break
		}
	}
	if rec == nil {
		return nil, nil, false, nil
	}

	series, ok := a.History(ctx, ticker)
	if !ok {
		a.Logger.Warn().Str("ticker", ticker).Msg("Price history unavailable")
		series = nil
	}

	return rec, series, true, nil
}
