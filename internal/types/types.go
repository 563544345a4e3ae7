package types

import (
	"fmt"
	"time"
)

// Well-known ledger columns. Everything else in a TradeRecord is passed through as-is.
const (
	FieldTime   = "Time"
	FieldProfit = "Profit"
	FieldType   = "Type"
)

// Report layouts the ledger locator can recognise
const (
	FormatCurrent = "current" // "Deals" caption followed by a Time/Profit header
	FormatLegacy  = "legacy"  // first row carries Order and Profit columns
)

// Analysis status values
const (
	StatusOK            = "ok"
	StatusNoTradesTable = "no_trades_table"
	StatusNoHeaderRow   = "no_header_row"
)

// TradeRecord is one ledger row keyed by column header.
// The two report layouts expose different column sets, so fields are positional
// name/value pairs rather than a fixed struct.
type TradeRecord struct {
	Row    int               `json:"row" yaml:"row"`
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// Get returns the trimmed text of a column and whether the column exists
func (r TradeRecord) Get(field string) (string, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// MonthKey identifies a calendar month bucket
type MonthKey struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
}

// Less orders keys by year, then month
func (k MonthKey) Less(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

// Label renders the key as MM/YYYY
func (k MonthKey) Label() string {
	return fmt.Sprintf("%02d/%04d", k.Month, k.Year)
}

// MonthlyMetrics is the read-only statistics snapshot of one month
type MonthlyMetrics struct {
	Year           int     `json:"year" yaml:"year"`
	Month          int     `json:"month" yaml:"month"`
	TradeCount     int     `json:"trade_count" yaml:"trade_count"`
	WinningCount   int     `json:"winning_count" yaml:"winning_count"`
	LosingCount    int     `json:"losing_count" yaml:"losing_count"`
	WinRate        float64 `json:"win_rate" yaml:"win_rate"`
	GrossProfit    float64 `json:"gross_profit" yaml:"gross_profit"`
	GrossLoss      float64 `json:"gross_loss" yaml:"gross_loss"`
	NetProfit      float64 `json:"net_profit" yaml:"net_profit"`
	ProfitFactor   float64 `json:"profit_factor" yaml:"profit_factor"`
	RecoveryFactor float64 `json:"recovery_factor" yaml:"recovery_factor"`
	MaxDrawdown    float64 `json:"max_drawdown" yaml:"max_drawdown"`
	ExpectedPayoff float64 `json:"expected_payoff" yaml:"expected_payoff"`
	SharpeRatio    float64 `json:"sharpe_ratio" yaml:"sharpe_ratio"`
}

// Key returns the month the metrics belong to
func (m MonthlyMetrics) Key() MonthKey {
	return MonthKey{Year: m.Year, Month: m.Month}
}

// Setting is one "key: value" line of the report's tester settings block
type Setting struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Totals are plain sums over all months
type Totals struct {
	Trades      int     `json:"trades" yaml:"trades"`
	NetProfit   float64 `json:"net_profit" yaml:"net_profit"`
	GrossProfit float64 `json:"gross_profit" yaml:"gross_profit"`
	GrossLoss   float64 `json:"gross_loss" yaml:"gross_loss"`
}

// Diagnostics counts rows the pipeline looked at and left out.
// None of these change the computed metrics.
type Diagnostics struct {
	RowsScanned      int `json:"rows_scanned" yaml:"rows_scanned"`
	RowsFiltered     int `json:"rows_filtered" yaml:"rows_filtered"`
	RecordsAdmitted  int `json:"records_admitted" yaml:"records_admitted"`
	MalformedTime    int `json:"malformed_time" yaml:"malformed_time"`
	UnparsableProfit int `json:"unparsable_profit" yaml:"unparsable_profit"`
}

// Analysis is the result of one pipeline run over one report
type Analysis struct {
	ID          string           `json:"id" yaml:"id"`
	Source      string           `json:"source" yaml:"source"`
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Status      string           `json:"status" yaml:"status"`
	Format      string           `json:"format,omitempty" yaml:"format,omitempty"`
	Settings    []Setting        `json:"settings" yaml:"settings"`
	Months      []MonthlyMetrics `json:"months" yaml:"months"`
	Totals      Totals           `json:"totals" yaml:"totals"`
	Diagnostics Diagnostics      `json:"diagnostics" yaml:"diagnostics"`
	Records     []TradeRecord    `json:"records,omitempty" yaml:"records,omitempty"`
}

// HasLedger reports whether a trade ledger was found in the report
func (a *Analysis) HasLedger() bool {
	return a.Status == StatusOK
}
