// Package report exports analysis results.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"CurrencySentinel/internal/analysis"
	"CurrencySentinel/internal/model"
)

// WriteCSVFile writes the enriched table to path, creating parent directories.
func WriteCSVFile(path string, rep *analysis.Report) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := WriteCSV(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Header returns the CSV columns: price fields, then each window's indicators, then each
// window's decisions.
func Header(rep *analysis.Report) []string {
	header := []string{"date", "open", "high", "low", "close"}
	for _, res := range rep.Results {
		header = append(header, model.ColumnOrder(res.Window)...)
	}
	for _, res := range rep.Results {
		header = append(header, model.DecisionOrder(res.Window)...)
	}
	return header
}

// WriteCSV writes one row per session of rep.Series.
func WriteCSV(w io.Writer, rep *analysis.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header(rep)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	indicators := make([]map[string][]float64, len(rep.Results))
	decisions := make([]map[string][]model.Decision, len(rep.Results))
	for i, res := range rep.Results {
		indicators[i] = res.Indicators.Columns()
		decisions[i] = res.Decisions.Columns()
	}

	for row, p := range rep.Series.Points {
		record := []string{
			p.Date.Format("2006-01-02"),
			formatFloat(p.Open),
			formatFloat(p.High),
			formatFloat(p.Low),
			formatFloat(p.Close),
		}
		for i, res := range rep.Results {
			for _, name := range model.ColumnOrder(res.Window) {
				record = append(record, formatFloat(indicators[i][name][row]))
			}
		}
		for i, res := range rep.Results {
			for _, name := range model.DecisionOrder(res.Window) {
				record = append(record, string(decisions[i][name][row]))
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
