package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backtest-analyzer/internal/dom"
	"backtest-analyzer/internal/interfaces"
	"backtest-analyzer/internal/types"
)

func parse(t *testing.T, html string) interfaces.Node {
	t.Helper()
	root, err := dom.ParseString(html)
	require.NoError(t, err)
	return root
}

func row(cells ...string) string {
	var sb strings.Builder
	sb.WriteString("<tr>")
	for _, c := range cells {
		sb.WriteString("<td>" + c + "</td>")
	}
	sb.WriteString("</tr>")
	return sb.String()
}

const currentReport = `<html><body>
<table>
  <tr><td>Open Time</td><td>Order</td><td>Profit</td></tr>
  <tr><td>2024.01.05 09:59:00</td><td>2</td><td></td></tr>
</table>
<table>
  <tr><td colspan="3">Settings</td></tr>
  <tr><td>Deals</td></tr>
  <tr><td>Deal history</td></tr>
  <tr><td>Time</td><td>Type</td><td>Profit</td></tr>
  <tr><td>2024.01.05 10:00:00</td><td>buy</td><td>100</td></tr>
  <tr><td>2024.01.06 10:00:00</td><td>balance</td><td>10000</td></tr>
  <tr><td>2024.01.07 10:00:00</td><td>sell</td><td></td></tr>
  <tr><td>2024.01.10 11:00:00</td><td>sell</td><td>-40</td></tr>
</table>
</body></html>`

const legacyReport = `<html><body>
<table><tr><td>Strategy Tester Report</td></tr></table>
<table>
  <tr><td>#</td><td>Time</td><td>Type</td><td>Order</td><td>Profit</td></tr>
  <tr><td>1</td><td>2023.03.01 09:00</td><td>buy</td><td>1</td><td></td></tr>
  <tr><td>2</td><td>2023.03.02 09:00</td><td>close</td><td>1</td><td>25.50</td></tr>
</table>
</body></html>`

func TestLocateCurrentFormat(t *testing.T) {
	loc, err := Locate(parse(t, currentReport), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, types.FormatCurrent, loc.Format)
	assert.Equal(t, 1, loc.MarkerIndex)
	assert.Equal(t, 3, loc.HeaderIndex)
	assert.Equal(t, []string{"Time", "Type", "Profit"}, dom.CellTexts(loc.HeaderRow()))
}

func TestLocateCurrentFormatWinsOverLegacy(t *testing.T) {
	// the first table matches the legacy fingerprint but comes before the deals table
	loc, err := Locate(parse(t, currentReport), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, types.FormatCurrent, loc.Format)
	assert.Contains(t, loc.Table.Text(), "Deals")
}

func TestLocateLegacyFormat(t *testing.T) {
	loc, err := Locate(parse(t, legacyReport), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, types.FormatLegacy, loc.Format)
	assert.Equal(t, -1, loc.MarkerIndex)
	assert.Equal(t, 0, loc.HeaderIndex)
	assert.Len(t, loc.Rows, 3)
}

func TestLocateNoTradesTable(t *testing.T) {
	root := parse(t, `<html><body><table>`+row("Balance", "10000")+`</table><p>Deals</p></body></html>`)
	_, err := Locate(root, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTradesTable)

	_, err = Locate(parse(t, `<html><body><p>nothing</p></body></html>`), DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTradesTable)
}

func TestLocateMarkerWithoutHeader(t *testing.T) {
	root := parse(t, `<html><body><table>`+row("Deals")+row("2024.01.05", "10")+`</table></body></html>`)
	_, err := Locate(root, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoHeaderRow)
}

func TestLocateHeaderBeforeMarkerIsIgnored(t *testing.T) {
	root := parse(t, `<html><body><table>`+
		row("Time", "Profit")+
		row("Deals")+
		row("2024.01.05", "10")+
		`</table></body></html>`)
	_, err := Locate(root, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoHeaderRow)
}

func TestLocateMarkerScanLimit(t *testing.T) {
	html := `<html><body><table>` +
		row("filler") + row("filler") + row("filler") +
		row("Deals") + row("Time", "Profit") + row("2024.01.05", "10") +
		`</table></body></html>`

	opts := DefaultOptions()
	opts.MarkerScanLimit = 3
	_, err := Locate(parse(t, html), opts)
	assert.ErrorIs(t, err, ErrNoTradesTable)

	opts.MarkerScanLimit = 4
	loc, err := Locate(parse(t, html), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, loc.MarkerIndex)
}

func TestLocateFirstMatchingTableWins(t *testing.T) {
	html := `<html><body>` +
		`<table>` + row("Deals") + row("Time", "Profit") + row("2024.01.05", "1") + `</table>` +
		`<table>` + row("Deals") + row("Time", "Profit") + row("2024.02.05", "2") + row("2024.02.06", "3") + `</table>` +
		`</body></html>`
	loc, err := Locate(parse(t, html), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, loc.Rows, 3)
}

func TestRecordsMarkerAndCaptionRowsAreNotData(t *testing.T) {
	loc, err := Locate(parse(t, currentReport), DefaultOptions())
	require.NoError(t, err)

	recs := NewRecords(loc, DefaultOptions()).Collect()
	for _, rec := range recs {
		assert.Greater(t, rec.Row, loc.HeaderIndex)
		assert.NotContains(t, rec.Fields, "Deals")
	}
}

func TestRecordsFilter(t *testing.T) {
	loc, err := Locate(parse(t, currentReport), DefaultOptions())
	require.NoError(t, err)

	records := NewRecords(loc, DefaultOptions())
	var drops []string
	records.OnDrop = func(_ int, reason string) {
		drops = append(drops, reason)
	}
	recs := records.Collect()

	require.Len(t, recs, 2)
	assert.Equal(t, "100", recs[0].Fields["Profit"])
	assert.Equal(t, "-40", recs[1].Fields["Profit"])
	assert.Equal(t, 4, records.Scanned())
	assert.Equal(t, 2, records.Filtered())
	assert.Equal(t, []string{ReasonExcludedRow, ReasonNoProfit}, drops)

	for _, rec := range recs {
		typ, _ := rec.Get("Type")
		assert.NotEqual(t, "balance", typ)
		profit, ok := rec.Get("Profit")
		assert.True(t, ok)
		assert.NotEmpty(t, profit)
	}
}

func TestRecordsTypeFilterIsCaseSensitive(t *testing.T) {
	html := `<html><body><table>` +
		row("Deals") + row("Time", "Type", "Profit") +
		row("2024.01.05", "Balance", "5") +
		`</table></body></html>`
	loc, err := Locate(parse(t, html), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, NewRecords(loc, DefaultOptions()).Collect(), 1)
}

func TestRecordsWithoutTypeColumnAreKept(t *testing.T) {
	loc, err := Locate(parse(t, legacyReport), DefaultOptions())
	require.NoError(t, err)

	recs := NewRecords(loc, DefaultOptions()).Collect()
	require.Len(t, recs, 1)
	assert.Equal(t, "25.50", recs[0].Fields["Profit"])
	assert.Equal(t, "close", recs[0].Fields["Type"])
}

func TestRecordsPairUpToShorterLength(t *testing.T) {
	html := `<html><body><table>` +
		row("Deals") + row("Time", "Symbol", "Profit") +
		row("2024.01.05", "EURUSD", "5", "extra") +
		row("2024.01.06", "EURUSD") +
		`</table></body></html>`
	loc, err := Locate(parse(t, html), DefaultOptions())
	require.NoError(t, err)

	records := NewRecords(loc, DefaultOptions())
	recs := records.Collect()

	// the second row has no Profit column, so it is not a trade
	require.Len(t, recs, 1)
	assert.Len(t, recs[0].Fields, 3)
	assert.Equal(t, 1, records.Filtered())
}

func TestRecordsPreserveRowOrder(t *testing.T) {
	html := `<html><body><table>` +
		row("Deals") + row("Time", "Profit") +
		row("2024.01.09", "3") + row("2024.01.01", "1") + row("2024.01.05", "2") +
		`</table></body></html>`
	loc, err := Locate(parse(t, html), DefaultOptions())
	require.NoError(t, err)

	var profits []string
	for rec := range NewRecords(loc, DefaultOptions()).All() {
		profits = append(profits, rec.Fields["Profit"])
	}
	assert.Equal(t, []string{"3", "1", "2"}, profits)
}

func TestRecordsCannotBeRestarted(t *testing.T) {
	loc, err := Locate(parse(t, currentReport), DefaultOptions())
	require.NoError(t, err)

	records := NewRecords(loc, DefaultOptions())
	assert.Len(t, records.Collect(), 2)
	assert.Empty(t, records.Collect())

	_, ok := records.Next()
	assert.False(t, ok)
}

func TestRecordsEarlyBreakKeepsPosition(t *testing.T) {
	loc, err := Locate(parse(t, currentReport), DefaultOptions())
	require.NoError(t, err)

	records := NewRecords(loc, DefaultOptions())
	for range records.All() {
		break
	}
	rest := records.Collect()
	require.Len(t, rest, 1)
	assert.Equal(t, "-40", rest[0].Fields["Profit"])
}

func TestRecordsThHeaders(t *testing.T) {
	html := `<html><body><table>` +
		`<tr><th>Deals</th></tr>` +
		`<tr><th>Time</th><th>Profit</th></tr>` +
		row("2024.01.05", "7") +
		`</table></body></html>`
	loc, err := Locate(parse(t, html), DefaultOptions())
	require.NoError(t, err)

	records := NewRecords(loc, DefaultOptions())
	assert.Equal(t, []string{"Time", "Profit"}, records.Headers())
	recs := records.Collect()
	require.Len(t, recs, 1)
	assert.Equal(t, "7", recs[0].Fields["Profit"])
}
