package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"CurrencySentinel/internal/notifier"
	"CurrencySentinel/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis on a schedule",
	Long: `Runs the analysis on schedule.analysis_cron, writes the CSV and SQLite outputs
after each run and pushes the latest decisions to Telegram when configured.
Set RUN_ON_START=true to run once immediately. Ctrl+C to stop.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}
	rec := newRecorder(cfg)
	defer rec.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var tn *notifier.TelegramNotifier
	var n scheduler.Notifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		log.Warn().Msg("telegram not configured, notifications disabled")
	}

	sched := scheduler.NewScheduler(ctx, analyzer, n, rec, cfg.Output.CSVPath)
	if err := sched.Register(cfg.Schedule.AnalysisCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, running analysis now")
		go func() {
			if _, err := sched.RunNow(); err != nil {
				log.Error().Err(err).Msg("startup analysis failed")
			}
		}()
	}

	log.Info().Str("cron", cfg.Schedule.AnalysisCron).Msg("CurrencySentinel is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping")
	case <-ctx.Done():
	}
	cancel()
	return nil
}
