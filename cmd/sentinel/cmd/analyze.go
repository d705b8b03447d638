package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"CurrencySentinel/internal/analysis"
	"CurrencySentinel/internal/report"
)

var (
	analyzeSymbol  string
	analyzeWindows []int
	analyzeOut     string
	analyzeNoDB    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis and export the result table",
	Long: `Fetches the configured date range, computes indicators for every window over
the full history, keeps the rows from target_date onward and writes decisions.

Examples:
  sentinel analyze
  sentinel analyze --symbol USDINR=X --window 5 --window 20 --out data/usdinr.csv`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSymbol, "symbol", "", "currency pair symbol (overrides config)")
	analyzeCmd.Flags().IntSliceVar(&analyzeWindows, "window", nil, "rolling window, repeatable (overrides config)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "output CSV path (overrides config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoDB, "no-db", false, "skip recording the run in SQLite")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeSymbol != "" {
		cfg.DataSource.Symbol = analyzeSymbol
	}
	if len(analyzeWindows) > 0 {
		cfg.Analysis.Windows = analyzeWindows
	}
	if analyzeOut != "" {
		cfg.Output.CSVPath = analyzeOut
	}
	if analyzeNoDB {
		cfg.Database.SQLitePath = ""
	}

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}
	rep, err := analyzer.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	if err := report.WriteCSVFile(cfg.Output.CSVPath, rep); err != nil {
		return err
	}
	log.Info().Str("path", cfg.Output.CSVPath).Int("rows", rep.Series.Len()).Msg("csv written")

	rec := newRecorder(cfg)
	defer rec.Close()
	if err := rec.RecordRun(rep); err != nil {
		log.Error().Err(err).Msg("record run")
	}

	printSummary(cmd.OutOrStdout(), rep)
	return nil
}

func printSummary(w io.Writer, rep *analysis.Report) {
	n := rep.Series.Len()
	last, _ := rep.Series.Last()
	fmt.Fprintf(w, "%s  %d rows  %s .. %s  close %.4f\n", rep.Symbol, n,
		rep.Series.Points[0].Date.Format("2006-01-02"), last.Date.Format("2006-01-02"), last.Close)
	fmt.Fprintf(w, "%-8s %-8s %-8s %-8s %-8s\n", "window", "sma", "bb", "cci", "combined")
	for _, res := range rep.Results {
		sma, bb, cci, combined := res.Decisions.Latest()
		fmt.Fprintf(w, "%-8d %-8s %-8s %-8s %-8s\n", res.Window, sma, bb, cci, combined)
	}
}
