package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"backtest-analyzer/internal/interfaces"
	"backtest-analyzer/internal/ledger"
	"backtest-analyzer/internal/logger"
	"backtest-analyzer/internal/settings"
	"backtest-analyzer/internal/stats"
	"backtest-analyzer/internal/store"
	"backtest-analyzer/internal/types"
)

// ErrNilDocument is returned when Analyze is called without a document
var ErrNilDocument = errors.New("nil document")

// Analyzer runs locate -> extract -> aggregate -> compute over one report.
// It holds only configuration, so one value can serve any number of reports.
type Analyzer struct {
	ledgerOpts     ledger.Options
	statsOpts      stats.Options
	includeRecords bool
	now            func() time.Time
}

var _ interfaces.ReportAnalyzer = (*Analyzer)(nil)

// New builds an analyzer from configuration
func New(cfg *store.Config) *Analyzer {
	return &Analyzer{
		ledgerOpts: ledger.Options{
			DealsMarker:     cfg.Locator.DealsMarker,
			HeaderFields:    cfg.Locator.HeaderFields,
			LegacyFields:    cfg.Locator.LegacyFields,
			MarkerScanLimit: cfg.Locator.MarkerScanLimit,
			ExcludedType:    cfg.Extractor.ExcludedType,
		},
		statsOpts: stats.Options{
			ProfitPolicy: stats.ProfitPolicy(cfg.Aggregator.ProfitPolicy),
			Order:        stats.Order(cfg.Aggregator.Order),
		},
		includeRecords: cfg.Report.IncludeRecords,
		now:            time.Now,
	}
}

// Analyze implements interfaces.ReportAnalyzer
func (a *Analyzer) Analyze(ctx context.Context, root interfaces.Node, source string) (*types.Analysis, error) {
	if root == nil {
		return nil, ErrNilDocument
	}

	result := &types.Analysis{
		ID:          uuid.NewString(),
		Source:      source,
		GeneratedAt: a.now(),
		Status:      types.StatusOK,
		Settings:    settings.Extract(root),
		Months:      []types.MonthlyMetrics{},
	}

	loc, err := ledger.Locate(root, a.ledgerOpts)
	switch {
	case errors.Is(err, ledger.ErrNoTradesTable):
		result.Status = types.StatusNoTradesTable
		logger.Warn(ctx, "No trades table found in report", "source", source)
		return result, nil
	case errors.Is(err, ledger.ErrNoHeaderRow):
		result.Status = types.StatusNoHeaderRow
		logger.Warn(ctx, "Deals table has no Time/Profit header row", "source", source)
		return result, nil
	case err != nil:
		return nil, err
	}
	result.Format = loc.Format

	logger.Debug(ctx, "Ledger located",
		"format", loc.Format,
		"marker_row", loc.MarkerIndex,
		"header_row", loc.HeaderIndex,
		"rows", len(loc.Rows),
	)

	records := ledger.NewRecords(loc, a.ledgerOpts)
	records.OnDrop = func(row int, reason string) {
		logger.RowDropped(ctx, "extract", row, reason)
	}

	agg := stats.NewAggregator(a.statsOpts)
	for rec := range records.All() {
		if a.includeRecords {
			result.Records = append(result.Records, rec)
		}
		if err := agg.Add(rec); err != nil {
			logger.RowDropped(ctx, "aggregate", rec.Row, err.Error())
		}
	}

	result.Months = stats.ComputeAll(agg.Buckets())
	result.Totals = sumTotals(result.Months)
	result.Diagnostics = types.Diagnostics{
		RowsScanned:      records.Scanned(),
		RowsFiltered:     records.Filtered(),
		RecordsAdmitted:  agg.Admitted(),
		MalformedTime:    agg.MalformedTime(),
		UnparsableProfit: agg.UnparsableProfit(),
	}
	return result, nil
}

func sumTotals(months []types.MonthlyMetrics) types.Totals {
	var t types.Totals
	for _, m := range months {
		t.Trades += m.TradeCount
		t.NetProfit += m.NetProfit
		t.GrossProfit += m.GrossProfit
		t.GrossLoss += m.GrossLoss
	}
	return t
}
