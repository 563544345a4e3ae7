package stats

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"backtest-analyzer/internal/types"
)

// ProfitPolicy decides what happens to a record whose Profit text is not a number
type ProfitPolicy string

const (
	// ProfitDrop skips the record as malformed
	ProfitDrop ProfitPolicy = "drop"
	// ProfitZero keeps the record with a profit of 0
	ProfitZero ProfitPolicy = "zero"
)

// Order decides the sequence of trades inside a month for equity-curve metrics
type Order string

const (
	// OrderRow trusts the ledger row order
	OrderRow Order = "row"
	// OrderTime sorts trades by their parsed timestamp, keeping row order for ties
	OrderTime Order = "time"
)

var (
	ErrMissingField     = errors.New("record has no Time or Profit field")
	ErrMalformedTime    = errors.New("malformed trade time")
	ErrUnparsableProfit = errors.New("unparsable profit")
)

// timeLayouts are the timestamp shapes written by the strategy tester
var timeLayouts = []string{
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02",
}

// Options configures the aggregator
type Options struct {
	ProfitPolicy ProfitPolicy
	Order        Order
}

// DefaultOptions drops unparsable profits and keeps row order
func DefaultOptions() Options {
	return Options{ProfitPolicy: ProfitDrop, Order: OrderRow}
}

// MonthBucket accumulates the trades of one calendar month
type MonthBucket struct {
	Key types.MonthKey

	// Profits and Equity are in trade order
	Profits []decimal.Decimal
	Equity  []decimal.Decimal

	Trades      int
	Wins        int
	Losses      int
	GrossProfit decimal.Decimal
	GrossLoss   decimal.Decimal
	NetProfit   decimal.Decimal

	times []time.Time
}

func newBucket(key types.MonthKey) *MonthBucket {
	return &MonthBucket{Key: key}
}

// add folds one trade into the bucket. Zero profit counts as a loss.
func (b *MonthBucket) add(profit decimal.Decimal, at time.Time) {
	b.Profits = append(b.Profits, profit)
	b.times = append(b.times, at)
	if n := len(b.Equity); n == 0 {
		b.Equity = append(b.Equity, profit)
	} else {
		b.Equity = append(b.Equity, b.Equity[n-1].Add(profit))
	}

	b.Trades++
	b.NetProfit = b.NetProfit.Add(profit)
	if profit.IsPositive() {
		b.Wins++
		b.GrossProfit = b.GrossProfit.Add(profit)
	} else {
		b.Losses++
		b.GrossLoss = b.GrossLoss.Add(profit)
	}
}

// sortByTime reorders trades by timestamp and rebuilds the equity curve.
// Trades without a parsable timestamp (zero time) sort first, in row order.
func (b *MonthBucket) sortByTime() {
	idx := make([]int, len(b.Profits))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return b.times[idx[i]].Before(b.times[idx[j]])
	})

	profits := make([]decimal.Decimal, len(idx))
	times := make([]time.Time, len(idx))
	equity := make([]decimal.Decimal, len(idx))
	running := decimal.Zero
	for pos, i := range idx {
		profits[pos] = b.Profits[i]
		times[pos] = b.times[i]
		running = running.Add(b.Profits[i])
		equity[pos] = running
	}
	b.Profits, b.times, b.Equity = profits, times, equity
}

// Aggregator buckets trade records by the month of their Time field
type Aggregator struct {
	opts    Options
	buckets map[types.MonthKey]*MonthBucket

	admitted         int
	malformedTime    int
	unparsableProfit int
}

// NewAggregator creates an empty aggregator
func NewAggregator(opts Options) *Aggregator {
	if opts.ProfitPolicy == "" {
		opts.ProfitPolicy = ProfitDrop
	}
	if opts.Order == "" {
		opts.Order = OrderRow
	}
	return &Aggregator{
		opts:    opts,
		buckets: make(map[types.MonthKey]*MonthBucket),
	}
}

// Add folds a record into its month. A non-nil error means the record was
// skipped; callers are expected to count it and carry on.
func (a *Aggregator) Add(rec types.TradeRecord) error {
	timeText, okTime := rec.Get(types.FieldTime)
	profitText, okProfit := rec.Get(types.FieldProfit)
	if !okTime || !okProfit {
		a.malformedTime++
		return ErrMissingField
	}

	key, err := ParseMonth(timeText)
	if err != nil {
		a.malformedTime++
		return err
	}

	profit, err := ParseProfit(profitText)
	if err != nil {
		a.unparsableProfit++
		if a.opts.ProfitPolicy != ProfitZero {
			return err
		}
		profit = decimal.Zero
	}

	bucket, ok := a.buckets[key]
	if !ok {
		bucket = newBucket(key)
		a.buckets[key] = bucket
	}
	bucket.add(profit, parseTimestamp(timeText))
	a.admitted++
	return nil
}

// Buckets returns all buckets ordered by (year, month)
func (a *Aggregator) Buckets() []*MonthBucket {
	out := make([]*MonthBucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		if a.opts.Order == OrderTime {
			b.sortByTime()
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.Less(out[j].Key)
	})
	return out
}

// Admitted is the number of records placed in a bucket
func (a *Aggregator) Admitted() int {
	return a.admitted
}

// MalformedTime is the number of records skipped for a missing or malformed Time
func (a *Aggregator) MalformedTime() int {
	return a.malformedTime
}

// UnparsableProfit counts unparsable Profit values, whether dropped or zeroed
func (a *Aggregator) UnparsableProfit() int {
	return a.unparsableProfit
}

// ParseMonth extracts (year, month) from "<yyyy.mm.dd> <hh:mm:ss>".
// Only the date part before the first blank is used and it must have at
// least a year and a month component separated by dots.
func ParseMonth(text string) (types.MonthKey, error) {
	date, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	parts := strings.Split(date, ".")
	if len(parts) < 2 {
		return types.MonthKey{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return types.MonthKey{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return types.MonthKey{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	return types.MonthKey{Year: year, Month: month}, nil
}

// ParseProfit parses a profit cell. Thousands separators (commas and blanks)
// are removed before parsing.
func ParseProfit(text string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparsableProfit, text)
	}
	return d, nil
}

func parseTimestamp(text string) time.Time {
	text = strings.TrimSpace(text)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}
	return time.Time{}
}
