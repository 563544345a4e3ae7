package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backtest-analyzer/internal/dom"
	"backtest-analyzer/internal/types"
)

const settingsBlock = `<html><body>
<table>
  <tr><td>Strategy Tester Report</td></tr>
  <tr><td colspan="2">Settings</td></tr>
  <tr><td>Expert:</td><td>MACD Sample</td></tr>
  <tr><td>Symbol:</td><td> EURUSD </td></tr>
  <tr><td>Inputs:</td><td>Lots=0.1</td></tr>
  <tr><td></td><td>TakeProfit=50</td></tr>
  <tr><td>Company only</td></tr>
  <tr><td colspan="2">Results</td></tr>
  <tr><td>Bars:</td><td>1000</td></tr>
</table>
<table><tr><td>Deals</td></tr></table>
</body></html>`

const labelledReport = `<html><body>
<div>
  <p>Symbol: GBPUSD (British Pound vs US Dollar)</p>
  <p>Period: H1 (2024.01.01 - 2024.02.01)</p>
  <span>Initial deposit: 10 000.00</span>
  <p>Spread: 12</p>
  <p>Model: Every tick</p>
</div>
</body></html>`

func TestExtractSettingsBlock(t *testing.T) {
	root, err := dom.ParseString(settingsBlock)
	require.NoError(t, err)

	got := Extract(root)
	assert.Equal(t, []types.Setting{
		{Key: "Expert", Value: "MACD Sample"},
		{Key: "Symbol", Value: "EURUSD"},
		{Key: "Inputs", Value: "Lots=0.1\nTakeProfit=50"},
	}, got)
}

func TestExtractFallsBackToLabels(t *testing.T) {
	root, err := dom.ParseString(labelledReport)
	require.NoError(t, err)

	got := Extract(root)
	assert.Equal(t, []types.Setting{
		{Key: "Symbol", Value: "GBPUSD"},
		{Key: "Period", Value: "H1"},
		{Key: "Initial deposit", Value: "10 000.00"},
		{Key: "Spread", Value: "12"},
		{Key: "Model", Value: "Every"},
	}, got)
}

func TestExtractIgnoresEmptyLabelValues(t *testing.T) {
	root, err := dom.ParseString(`<html><body><p>Symbol: EURUSD</p><p>Symbol:</p></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, []types.Setting{{Key: "Symbol", Value: "EURUSD"}}, Extract(root))
}

func TestExtractNothing(t *testing.T) {
	root, err := dom.ParseString(`<html><body><table><tr><td>Deals</td></tr></table></body></html>`)
	require.NoError(t, err)

	assert.Empty(t, Extract(root))
}
