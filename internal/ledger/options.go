package ledger

import "errors"

var (
	// ErrNoTradesTable means no table in the document looks like a trade ledger
	ErrNoTradesTable = errors.New("no trades table found")
	// ErrNoHeaderRow means a table carried the deals caption but no Time/Profit header followed it
	ErrNoHeaderRow = errors.New("deals table has no header row")
)

// Options holds the textual fingerprints used to find and filter the ledger
type Options struct {
	// DealsMarker is the caption row text that precedes the current-format ledger header
	DealsMarker string
	// HeaderFields must all appear in the current-format header row
	HeaderFields []string
	// LegacyFields must all appear in the first row of a legacy ledger table
	LegacyFields []string
	// MarkerScanLimit bounds how many rows of each table are searched for the
	// deals caption. Zero means no bound.
	MarkerScanLimit int
	// ExcludedType is the Type value of structural (balance) rows
	ExcludedType string
}

// DefaultOptions returns the fingerprints shared by both report revisions
func DefaultOptions() Options {
	return Options{
		DealsMarker:     "Deals",
		HeaderFields:    []string{"Time", "Profit"},
		LegacyFields:    []string{"Profit", "Order"},
		MarkerScanLimit: 50000,
		ExcludedType:    "balance",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.DealsMarker == "" {
		o.DealsMarker = def.DealsMarker
	}
	if len(o.HeaderFields) == 0 {
		o.HeaderFields = def.HeaderFields
	}
	if len(o.LegacyFields) == 0 {
		o.LegacyFields = def.LegacyFields
	}
	if o.MarkerScanLimit < 0 {
		o.MarkerScanLimit = 0
	}
	if o.ExcludedType == "" {
		o.ExcludedType = def.ExcludedType
	}
	return o
}
