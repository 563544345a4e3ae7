package analyzerobs

import (
	"context"

	"backtest-analyzer/internal/interfaces"
	"backtest-analyzer/internal/logger"
	"backtest-analyzer/internal/trace"
	"backtest-analyzer/internal/types"
)

type observableAnalyzer struct {
	analyzer interfaces.ReportAnalyzer
}

var _ interfaces.ReportAnalyzer = (*observableAnalyzer)(nil)

func Wrap(analyzer interfaces.ReportAnalyzer) interfaces.ReportAnalyzer {
	return &observableAnalyzer{
		analyzer: analyzer,
	}
}

func (oa *observableAnalyzer) Analyze(ctx context.Context, root interfaces.Node, source string) (*types.Analysis, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.Analyze")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting report analysis", "source", source)

	timer := logger.StartOperation(ctx, "analyzer.pipeline", "source", source)
	result, err := oa.analyzer.Analyze(timer.GetContext(), root, source)
	if err != nil {
		timer.EndWithError(err)
		logger.ErrorWithErrSkip(ctx, 1, "Report analysis failed", err, "source", source)
		return nil, err
	}
	timer.End(
		"status", result.Status,
		"months", len(result.Months),
		"trades", result.Totals.Trades,
	)

	if !result.HasLedger() {
		logger.InfoSkip(ctx, 1, "Report analysed without trade ledger",
			"source", source,
			"status", result.Status,
			"settings", len(result.Settings),
		)
		return result, nil
	}

	logger.InfoSkip(ctx, 1, "Report analysis completed",
		"source", source,
		"analysis_id", result.ID,
		"format", result.Format,
		"months", len(result.Months),
		"trades", result.Totals.Trades,
		"net_profit", result.Totals.NetProfit,
		"rows_filtered", result.Diagnostics.RowsFiltered,
		"malformed_time", result.Diagnostics.MalformedTime,
		"unparsable_profit", result.Diagnostics.UnparsableProfit,
	)
	return result, nil
}
