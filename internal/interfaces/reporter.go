package interfaces

import "backtest-analyzer/internal/types"

// ReportRenderer renders an analysis into one presentation format
type ReportRenderer interface {
	// Render returns the encoded report
	Render(analysis *types.Analysis) ([]byte, error)

	// Extension is the file extension used when the report is saved
	Extension() string
}
