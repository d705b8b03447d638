// Package logger configures the process-wide zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level         string // debug, info, warn, error
	Format        string // json, pretty
	FilePath      string // log directory; empty disables file output
	RotationSize  int    // MB
	RetentionDays int
	ServiceName   string
}

// Init builds the global logger from cfg and returns it.
func Init(cfg Config) (zerolog.Logger, error) {
	return initTo(cfg, os.Stderr)
}

func initTo(cfg Config, console io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	if cfg.Format == "pretty" {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: "15:04:05"})
	} else {
		writers = append(writers, console)
	}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(cfg.FilePath, 0o755); err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.FilePath, "sentinel.log"),
			MaxSize:    cfg.RotationSize,
			MaxAge:     cfg.RetentionDays,
			MaxBackups: 10,
			Compress:   true,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()
	log.Logger = logger

	log.Debug().
		Str("level", cfg.Level).
		Str("format", cfg.Format).
		Bool("file_enabled", cfg.FilePath != "").
		Msg("logger initialized")
	return logger, nil
}
