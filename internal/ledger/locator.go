package ledger

import (
	"backtest-analyzer/internal/dom"
	"backtest-analyzer/internal/interfaces"
	"backtest-analyzer/internal/types"
)

// Location is a located ledger: the table, its rows and the header row index
type Location struct {
	Table interfaces.Node
	Rows  []interfaces.Node
	// MarkerIndex is the deals caption row, -1 for legacy reports
	MarkerIndex int
	HeaderIndex int
	Format      string
}

// HeaderRow returns the row holding the column names
func (l *Location) HeaderRow() interfaces.Node {
	return l.Rows[l.HeaderIndex]
}

// Locate finds the trade ledger among all tables under root.
//
// The current layout is tried on every table before the legacy one, because the
// legacy fingerprint (Profit and Order in a first row) also matches the orders
// table of current reports.
func Locate(root interfaces.Node, opts Options) (*Location, error) {
	opts = opts.withDefaults()
	tables := dom.Tables(root)

	markerWithoutHeader := false
	for _, table := range tables {
		rows := dom.Rows(table)
		marker := findMarker(rows, opts.DealsMarker, opts.MarkerScanLimit)
		if marker < 0 {
			continue
		}
		header := findRow(rows, marker+1, opts.HeaderFields)
		if header < 0 {
			markerWithoutHeader = true
			continue
		}
		return &Location{
			Table:       table,
			Rows:        rows,
			MarkerIndex: marker,
			HeaderIndex: header,
			Format:      types.FormatCurrent,
		}, nil
	}

	for _, table := range tables {
		rows := dom.Rows(table)
		if len(rows) == 0 {
			continue
		}
		if dom.ContainsAll(rows[0].Text(), opts.LegacyFields...) {
			return &Location{
				Table:       table,
				Rows:        rows,
				MarkerIndex: -1,
				HeaderIndex: 0,
				Format:      types.FormatLegacy,
			}, nil
		}
	}

	if markerWithoutHeader {
		return nil, ErrNoHeaderRow
	}
	return nil, ErrNoTradesTable
}

func findMarker(rows []interfaces.Node, marker string, limit int) int {
	n := len(rows)
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		if dom.ContainsAll(rows[i].Text(), marker) {
			return i
		}
	}
	return -1
}

func findRow(rows []interfaces.Node, from int, markers []string) int {
	for i := from; i < len(rows); i++ {
		if dom.ContainsAll(rows[i].Text(), markers...) {
			return i
		}
	}
	return -1
}
