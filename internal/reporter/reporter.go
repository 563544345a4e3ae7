package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"backtest-analyzer/internal/interfaces"
	"backtest-analyzer/internal/types"
)

// ReportFormat specifies the output format for analysis reports
type ReportFormat string

const (
	FormatJSON ReportFormat = "json"
	FormatText ReportFormat = "text"
	FormatCSV  ReportFormat = "csv"
	FormatYAML ReportFormat = "yaml"
	FormatHTML ReportFormat = "html"
	FormatPDF  ReportFormat = "pdf"
)

// ParseFormat maps a user supplied format name to a ReportFormat
func ParseFormat(name string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatText, FormatCSV, FormatYAML, FormatHTML, FormatPDF:
		return f, nil
	case "txt":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// Reporter handles generation and storage of analysis reports
type Reporter struct {
	outputDir string
	charts    bool
}

// NewReporter creates a new reporter. charts enables the chart page in HTML output.
func NewReporter(outputDir string, charts bool) *Reporter {
	return &Reporter{
		outputDir: outputDir,
		charts:    charts,
	}
}

func (r *Reporter) renderer(format ReportFormat) (interfaces.ReportRenderer, error) {
	switch format {
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatText:
		return textRenderer{}, nil
	case FormatCSV:
		return csvRenderer{}, nil
	case FormatYAML:
		return yamlRenderer{}, nil
	case FormatHTML:
		return htmlRenderer{charts: r.charts}, nil
	case FormatPDF:
		return pdfRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateReport renders the analysis in the specified format
func (r *Reporter) GenerateReport(analysis *types.Analysis, format ReportFormat) ([]byte, error) {
	rr, err := r.renderer(format)
	if err != nil {
		return nil, err
	}
	return rr.Render(analysis)
}

// SaveReport renders the analysis and writes it into the output directory
func (r *Reporter) SaveReport(analysis *types.Analysis, format ReportFormat) (string, error) {
	rr, err := r.renderer(format)
	if err != nil {
		return "", err
	}
	content, err := rr.Render(analysis)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	timestamp := analysis.GeneratedAt.Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_analysis_%s.%s", reportName(analysis), timestamp, rr.Extension())
	path := filepath.Join(r.outputDir, filename)

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func reportName(analysis *types.Analysis) string {
	base := strings.TrimSuffix(filepath.Base(analysis.Source), filepath.Ext(analysis.Source))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return analysis.ID
	}
	return base
}

type jsonRenderer struct{}

func (jsonRenderer) Render(analysis *types.Analysis) ([]byte, error) {
	return json.MarshalIndent(analysis, "", "  ")
}

func (jsonRenderer) Extension() string { return "json" }

type yamlRenderer struct{}

func (yamlRenderer) Render(analysis *types.Analysis) ([]byte, error) {
	return yaml.Marshal(analysis)
}

func (yamlRenderer) Extension() string { return "yaml" }
