package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"CurrencySentinel/internal/analysis"
	"CurrencySentinel/internal/notifier"
	"CurrencySentinel/internal/recorder"
	"CurrencySentinel/internal/report"
)

// Runner produces one analysis report.
type Runner interface {
	Run(ctx context.Context) (*analysis.Report, error)
}

// Notifier delivers a formatted message.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the analysis on a cron schedule and on demand.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   Runner
	Notifier Notifier // nil disables notifications
	Recorder recorder.Recorder
	CSVPath  string // empty disables the CSV export
	Ctx      context.Context

	group  singleflight.Group
	mu     sync.RWMutex
	latest *analysis.Report
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner Runner, n Notifier, rec recorder.Recorder, csvPath string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Notifier: n,
		Recorder: rec,
		CSVPath:  csvPath,
		Ctx:      ctx,
	}
}

// Register adds the analysis job under spec (six fields, seconds first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// Latest returns the most recent successful report, or nil.
func (s *Scheduler) Latest() *analysis.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// RunNow runs the analysis immediately and publishes its outputs. Concurrent callers share
// a single in-flight run.
func (s *Scheduler) RunNow() (*analysis.Report, error) {
	v, err, shared := s.group.Do("analysis", func() (interface{}, error) {
		return s.run()
	})
	if shared {
		log.Debug().Msg("joined in-flight analysis run")
	}
	if err != nil {
		return nil, err
	}
	return v.(*analysis.Report), nil
}

func (s *Scheduler) analysisTask() {
	if _, err := s.RunNow(); err != nil {
		log.Error().Err(err).Msg("scheduled analysis failed")
		s.trySend(fmt.Sprintf("❌ analysis failed: %v", err))
	}
}

func (s *Scheduler) run() (*analysis.Report, error) {
	log.Info().Msg("running analysis task")
	rep, err := s.Runner.Run(s.Ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = rep
	s.mu.Unlock()

	if s.CSVPath != "" {
		if err := report.WriteCSVFile(s.CSVPath, rep); err != nil {
			log.Error().Err(err).Str("path", s.CSVPath).Msg("write csv")
		} else {
			log.Info().Str("path", s.CSVPath).Int("rows", rep.Series.Len()).Msg("csv written")
		}
	}
	if s.Recorder != nil {
		if err := s.Recorder.RecordRun(rep); err != nil {
			log.Error().Err(err).Str("run_id", rep.RunID.String()).Msg("record run")
		}
	}
	s.trySend(notifier.FormatReport(rep))
	return rep, nil
}

// HandleCommand answers a chat command.
func (s *Scheduler) HandleCommand(cmd string) string {
	switch cmd {
	case "/signal", "signal":
		rep := s.Latest()
		if rep == nil {
			return "No analysis has run yet. Send /run to start one."
		}
		return notifier.FormatReport(rep)
	case "/run", "run":
		// RunNow already pushes the report through the notifier.
		if _, err := s.RunNow(); err != nil {
			return fmt.Sprintf("❌ analysis failed: %v", err)
		}
		return ""
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
