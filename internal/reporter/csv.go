package reporter

import (
	"bytes"

	"github.com/gocarina/gocsv"

	"backtest-analyzer/internal/types"
)

type csvRow struct {
	Month          string  `csv:"month"`
	Year           int     `csv:"year"`
	TradeCount     int     `csv:"trade_count"`
	WinningCount   int     `csv:"winning_count"`
	LosingCount    int     `csv:"losing_count"`
	WinRate        float64 `csv:"win_rate"`
	GrossProfit    float64 `csv:"gross_profit"`
	GrossLoss      float64 `csv:"gross_loss"`
	NetProfit      float64 `csv:"net_profit"`
	ProfitFactor   float64 `csv:"profit_factor"`
	RecoveryFactor float64 `csv:"recovery_factor"`
	MaxDrawdown    float64 `csv:"max_drawdown"`
	ExpectedPayoff float64 `csv:"expected_payoff"`
	SharpeRatio    float64 `csv:"sharpe_ratio"`
}

type csvRenderer struct{}

func (csvRenderer) Extension() string { return "csv" }

// Render writes one line per month; settings and totals are not part of the CSV
func (csvRenderer) Render(analysis *types.Analysis) ([]byte, error) {
	rows := make([]*csvRow, 0, len(analysis.Months))
	for _, m := range analysis.Months {
		rows = append(rows, &csvRow{
			Month:          m.Key().Label(),
			Year:           m.Year,
			TradeCount:     m.TradeCount,
			WinningCount:   m.WinningCount,
			LosingCount:    m.LosingCount,
			WinRate:        m.WinRate,
			GrossProfit:    m.GrossProfit,
			GrossLoss:      m.GrossLoss,
			NetProfit:      m.NetProfit,
			ProfitFactor:   m.ProfitFactor,
			RecoveryFactor: m.RecoveryFactor,
			MaxDrawdown:    m.MaxDrawdown,
			ExpectedPayoff: m.ExpectedPayoff,
			SharpeRatio:    m.SharpeRatio,
		})
	}

	var buf bytes.Buffer
	if err := gocsv.Marshal(&rows, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
