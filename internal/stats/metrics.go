package stats

import (
	"math"

	"github.com/shopspring/decimal"

	"backtest-analyzer/internal/types"
)

// Compute derives the monthly statistics of a finished bucket
func Compute(b *MonthBucket) types.MonthlyMetrics {
	m := types.MonthlyMetrics{
		Year:         b.Key.Year,
		Month:        b.Key.Month,
		TradeCount:   b.Trades,
		WinningCount: b.Wins,
		LosingCount:  b.Losses,
		GrossProfit:  b.GrossProfit.InexactFloat64(),
		GrossLoss:    b.GrossLoss.InexactFloat64(),
		NetProfit:    b.NetProfit.InexactFloat64(),
	}

	if b.Trades > 0 {
		m.WinRate = 100 * float64(b.Wins) / float64(b.Trades)
		m.ExpectedPayoff = m.NetProfit / float64(b.Trades)
	}

	m.ProfitFactor = ProfitFactor(b.GrossProfit, b.GrossLoss)

	drawdown := MaxDrawdown(b.Equity)
	m.MaxDrawdown = drawdown.InexactFloat64()
	m.RecoveryFactor = RecoveryFactor(b.NetProfit, drawdown)

	m.SharpeRatio = SharpeRatio(toFloats(b.Profits))
	return m
}

// ComputeAll computes metrics for every bucket, keeping the bucket order
func ComputeAll(buckets []*MonthBucket) []types.MonthlyMetrics {
	out := make([]types.MonthlyMetrics, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Compute(b))
	}
	return out
}

// ProfitFactor is gross profit over the absolute gross loss, 0 without losses
func ProfitFactor(grossProfit, grossLoss decimal.Decimal) float64 {
	if !grossLoss.IsNegative() {
		return 0
	}
	return math.Abs(grossProfit.InexactFloat64() / grossLoss.InexactFloat64())
}

// RecoveryFactor is |net profit / max drawdown|, 0 when there was no drawdown
func RecoveryFactor(netProfit, maxDrawdown decimal.Decimal) float64 {
	if maxDrawdown.IsZero() {
		return 0
	}
	return math.Abs(netProfit.InexactFloat64() / maxDrawdown.InexactFloat64())
}

// MaxDrawdown is the largest peak-to-trough fall of the equity curve.
// The peak starts at the first point and never decreases.
func MaxDrawdown(equity []decimal.Decimal) decimal.Decimal {
	if len(equity) == 0 {
		return decimal.Zero
	}
	peak := equity[0]
	maxDD := decimal.Zero
	for _, e := range equity {
		if e.GreaterThan(peak) {
			peak = e
		}
		if dd := peak.Sub(e); dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD
}

// SharpeRatio is mean / sample standard deviation of the profits with a zero
// risk-free rate. Fewer than two samples or zero deviation give 0.
func SharpeRatio(profits []float64) float64 {
	n := len(profits)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, p := range profits {
		sum += p
	}
	mean := sum / float64(n)

	var sumSquares float64
	for _, p := range profits {
		d := p - mean
		sumSquares += d * d
	}
	stdDev := math.Sqrt(sumSquares / float64(n-1))
	if stdDev == 0 {
		return 0
	}
	return mean / stdDev
}

func toFloats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}
