package ledger

import (
	"iter"

	"backtest-analyzer/internal/dom"
	"backtest-analyzer/internal/types"
)

// Drop reasons reported through Records.OnDrop
const (
	ReasonNoProfit    = "empty_profit"
	ReasonExcludedRow = "excluded_type"
)

// Records is a forward-only cursor over the trade rows of a located ledger.
// It reads one table row per call and cannot be rewound.
type Records struct {
	loc          *Location
	headers      []string
	next         int
	excludedType string

	scanned  int
	filtered int

	// OnDrop, when set, is called for every row the trade filter rejects
	OnDrop func(row int, reason string)
}

// NewRecords prepares extraction of the rows following the header row
func NewRecords(loc *Location, opts Options) *Records {
	opts = opts.withDefaults()
	return &Records{
		loc:          loc,
		headers:      dom.CellTexts(loc.HeaderRow()),
		next:         loc.HeaderIndex + 1,
		excludedType: opts.ExcludedType,
	}
}

// Headers returns the column names in position order
func (r *Records) Headers() []string {
	return r.headers
}

// Next returns the next trade record, or false once the table is exhausted
func (r *Records) Next() (types.TradeRecord, bool) {
	for r.next < len(r.loc.Rows) {
		idx := r.next
		r.next++
		r.scanned++

		rec := r.build(idx)
		if reason := r.reject(rec); reason != "" {
			r.filtered++
			if r.OnDrop != nil {
				r.OnDrop(idx, reason)
			}
			continue
		}
		return rec, true
	}
	return types.TradeRecord{}, false
}

// All yields the remaining records. Ranging over a drained cursor yields nothing.
func (r *Records) All() iter.Seq[types.TradeRecord] {
	return func(yield func(types.TradeRecord) bool) {
		for {
			rec, ok := r.Next()
			if !ok || !yield(rec) {
				return
			}
		}
	}
}

// Collect drains the cursor into a slice
func (r *Records) Collect() []types.TradeRecord {
	var out []types.TradeRecord
	for rec := range r.All() {
		out = append(out, rec)
	}
	return out
}

// Scanned is the number of rows read after the header row so far
func (r *Records) Scanned() int {
	return r.scanned
}

// Filtered is the number of rows rejected by the trade filter so far
func (r *Records) Filtered() int {
	return r.filtered
}

// build pairs cells with headers by position; surplus cells or headers are ignored
func (r *Records) build(idx int) types.TradeRecord {
	cells := dom.CellTexts(r.loc.Rows[idx])
	n := min(len(r.headers), len(cells))
	fields := make(map[string]string, n)
	for i := 0; i < n; i++ {
		fields[r.headers[i]] = cells[i]
	}
	return types.TradeRecord{Row: idx, Fields: fields}
}

// reject returns why a row is not a trade, or "" for a trade
func (r *Records) reject(rec types.TradeRecord) string {
	if profit, ok := rec.Get(types.FieldProfit); !ok || profit == "" {
		return ReasonNoProfit
	}
	if typ, ok := rec.Get(types.FieldType); ok && typ == r.excludedType {
		return ReasonExcludedRow
	}
	return ""
}
