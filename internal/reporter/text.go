package reporter

import (
	"fmt"
	"strings"

	"backtest-analyzer/internal/types"
)

type textRenderer struct{}

func (textRenderer) Extension() string { return "txt" }

func (textRenderer) Render(analysis *types.Analysis) ([]byte, error) {
	var sb strings.Builder
	rule := strings.Repeat("=", 120)

	sb.WriteString(rule + "\n")
	sb.WriteString("BACKTEST ANALYSIS REPORT")
	if analysis.Source != "" {
		sb.WriteString(" - " + analysis.Source)
	}
	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", analysis.GeneratedAt.Format("2006-01-02 15:04:05")))
	if analysis.Format != "" {
		sb.WriteString(fmt.Sprintf("Report layout: %s\n", analysis.Format))
	}

	writeSettings(&sb, analysis.Settings)

	sb.WriteString("\nSUMMARY\n")
	sb.WriteString(strings.Repeat("-", 120) + "\n")
	sb.WriteString(fmt.Sprintf("Total trades: %d\n", analysis.Totals.Trades))
	sb.WriteString(fmt.Sprintf("Net profit:   %s\n", money(analysis.Totals.NetProfit)))

	sb.WriteString("\nMONTHLY ANALYSIS\n")
	sb.WriteString(strings.Repeat("-", 120) + "\n")
	if msg := statusMessage(analysis); msg != "" {
		sb.WriteString(msg + "\n")
	} else {
		writeMonthTable(&sb, analysis.Months)
	}

	d := analysis.Diagnostics
	if d.RowsFiltered+d.MalformedTime+d.UnparsableProfit > 0 {
		sb.WriteString(fmt.Sprintf("\nRows left out: %d non-trade, %d malformed time, %d unparsable profit\n",
			d.RowsFiltered, d.MalformedTime, d.UnparsableProfit))
	}

	sb.WriteString("\n" + rule + "\n")
	return []byte(sb.String()), nil
}

func writeSettings(sb *strings.Builder, settings []types.Setting) {
	sb.WriteString("\nSETTINGS\n")
	sb.WriteString(strings.Repeat("-", 120) + "\n")
	if len(settings) == 0 {
		sb.WriteString("No settings found.\n")
		return
	}
	width := 0
	for _, s := range settings {
		width = max(width, len(s.Key))
	}
	for _, s := range settings {
		lines := strings.Split(s.Value, "\n")
		sb.WriteString(fmt.Sprintf("%-*s  %s\n", width, s.Key, lines[0]))
		for _, l := range lines[1:] {
			sb.WriteString(fmt.Sprintf("%-*s  %s\n", width, "", l))
		}
	}
}

func writeMonthTable(sb *strings.Builder, months []types.MonthlyMetrics) {
	rows := make([][]string, 0, len(months)+1)
	rows = append(rows, monthColumns)
	for _, m := range months {
		rows = append(rows, monthCells(m))
	}

	widths := make([]int, len(monthColumns))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	for _, row := range rows {
		for i, cell := range row {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %*s", widths[i], cell))
		}
		sb.WriteString("\n")
	}
}
