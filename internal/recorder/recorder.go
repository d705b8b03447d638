package recorder

import (
	"time"

	"CurrencySentinel/internal/analysis"
)

// RunSummary describes one persisted analysis run.
type RunSummary struct {
	RunID     string
	Symbol    string
	Source    string
	Windows   string
	Rows      int
	CreatedAt time.Time
}

// Recorder persists analysis results for later inspection.
type Recorder interface {
	RecordRun(rep *analysis.Report) error
	Close() error
}
