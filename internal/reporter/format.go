package reporter

import (
	"math"

	"github.com/dustin/go-humanize"

	"backtest-analyzer/internal/types"
)

// money formats with thousands separators and two decimals, like 12,345.60
func money(v float64) string {
	if math.Abs(v) < 0.005 {
		v = 0
	}
	return humanize.FormatFloat("#,###.##", v)
}

func percent(v float64) string {
	return money(v) + "%"
}

func statusMessage(analysis *types.Analysis) string {
	switch analysis.Status {
	case types.StatusNoTradesTable:
		return "No trades table was found in the report."
	case types.StatusNoHeaderRow:
		return "The deals table has no Time/Profit header row."
	}
	if len(analysis.Months) == 0 {
		return "No monthly data found. Make sure the report contains trades."
	}
	return ""
}

// monthColumns are the headings shared by the tabular formats
var monthColumns = []string{
	"Month", "Trades", "Win rate", "Gross profit", "Gross loss", "Net profit",
	"Profit factor", "Recovery factor", "Max drawdown", "Expected payoff", "Sharpe ratio",
}

func monthCells(m types.MonthlyMetrics) []string {
	return []string{
		m.Key().Label(),
		humanize.Comma(int64(m.TradeCount)),
		percent(m.WinRate),
		money(m.GrossProfit),
		money(m.GrossLoss),
		money(m.NetProfit),
		money(m.ProfitFactor),
		money(m.RecoveryFactor),
		money(m.MaxDrawdown),
		money(m.ExpectedPayoff),
		money(m.SharpeRatio),
	}
}
