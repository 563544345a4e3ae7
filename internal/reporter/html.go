package reporter

import (
	"bytes"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopspring/decimal"

	"backtest-analyzer/internal/types"
)

const (
	colorProfit = "#34d399"
	colorLoss   = "#f87171"
	colorEquity = "#3b82f6"
)

var tablesTemplate = template.Must(template.New("tables").Parse(`
<section class="analysis">
<h2>Backtest analysis{{if .Source}}: {{.Source}}{{end}}</h2>
<p>Generated {{.Generated}}</p>
{{- if .Settings}}
<h3>Settings</h3>
<table class="settings">
{{- range .Settings}}
<tr><th>{{.Key}}</th><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
<h3>Monthly analysis</h3>
{{- if .Message}}
<p>{{.Message}}</p>
{{- else}}
<table class="months">
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
<p>Total trades: {{.Trades}}, net profit: {{.NetProfit}}</p>
{{- end}}
</section>
`))

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Backtest analysis</title>
</head>
<body>
</body>
</html>
`))

type tablesView struct {
	Source    string
	Generated string
	Settings  []types.Setting
	Message   string
	Columns   []string
	Rows      [][]string
	Trades    int
	NetProfit string
}

type htmlRenderer struct {
	charts bool
}

func (htmlRenderer) Extension() string { return "html" }

func (r htmlRenderer) Render(analysis *types.Analysis) ([]byte, error) {
	var doc bytes.Buffer
	if r.charts && len(analysis.Months) > 0 {
		if err := chartPage(analysis).Render(&doc); err != nil {
			return nil, err
		}
	} else if err := documentTemplate.Execute(&doc, nil); err != nil {
		return nil, err
	}

	view := tablesView{
		Source:    analysis.Source,
		Generated: analysis.GeneratedAt.Format("2006-01-02 15:04:05"),
		Settings:  analysis.Settings,
		Message:   statusMessage(analysis),
		Columns:   monthColumns,
		Trades:    analysis.Totals.Trades,
		NetProfit: money(analysis.Totals.NetProfit),
	}
	for _, m := range analysis.Months {
		view.Rows = append(view.Rows, monthCells(m))
	}

	var tables bytes.Buffer
	if err := tablesTemplate.Execute(&tables, view); err != nil {
		return nil, err
	}
	return insertBeforeBodyEnd(doc.Bytes(), tables.Bytes()), nil
}

func insertBeforeBodyEnd(doc, fragment []byte) []byte {
	idx := bytes.LastIndex(doc, []byte("</body>"))
	if idx < 0 {
		return append(doc, fragment...)
	}
	out := make([]byte, 0, len(doc)+len(fragment))
	out = append(out, doc[:idx]...)
	out = append(out, fragment...)
	return append(out, doc[idx:]...)
}

// chartPage holds a monthly net profit bar chart and the running total across months
func chartPage(analysis *types.Analysis) *components.Page {
	labels := make([]string, 0, len(analysis.Months))
	bars := make([]opts.BarData, 0, len(analysis.Months))
	cumulative := make([]opts.LineData, 0, len(analysis.Months))

	running := decimal.Zero
	for _, m := range analysis.Months {
		labels = append(labels, m.Key().Label())
		color := colorProfit
		if m.NetProfit < 0 {
			color = colorLoss
		}
		bars = append(bars, opts.BarData{
			Value:     m.NetProfit,
			ItemStyle: &opts.ItemStyle{Color: color},
		})
		running = running.Add(decimal.NewFromFloat(m.NetProfit))
		cumulative = append(cumulative, opts.LineData{Value: running.Round(2).InexactFloat64()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Net profit by month", Subtitle: analysis.Source}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("Net profit", bars)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Cumulative net profit"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	line.SetXAxis(labels)
	line.AddSeries("Cumulative", cumulative, charts.WithLineStyleOpts(opts.LineStyle{Color: colorEquity, Width: 2}))

	page := components.NewPage()
	page.PageTitle = "Backtest analysis"
	page.AddCharts(bar, line)
	return page
}
