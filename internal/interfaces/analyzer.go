package interfaces

import (
	"context"

	"backtest-analyzer/internal/types"
)

// ReportAnalyzer turns a parsed backtest report into monthly statistics
type ReportAnalyzer interface {
	// Analyze runs the full pipeline over the document rooted at root.
	// A report without a trade ledger yields an empty Analysis, not an error.
	Analyze(ctx context.Context, root Node, source string) (*types.Analysis, error)
}
