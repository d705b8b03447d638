package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider   string `yaml:"provider"` // yahoo, rest or csv
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		CSVPath    string `yaml:"csv_path"`
		Symbol     string `yaml:"symbol"`
		StartDate  string `yaml:"start_date"`
		EndDate    string `yaml:"end_date"`
		TargetDate string `yaml:"target_date"` // first row kept for decisions
	} `yaml:"data_source"`
	Analysis struct {
		Windows []int `yaml:"windows"`
	} `yaml:"analysis"`
	Output struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"output"`
	Schedule struct {
		AnalysisCron string `yaml:"analysis_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level         string `yaml:"level"`
		Format        string `yaml:"format"`
		FilePath      string `yaml:"file_path"`
		RotationSize  int    `yaml:"rotation_size_mb"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("DATA_CSV_PATH"); v != "" {
		cfg.DataSource.CSVPath = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("ANALYSIS_WINDOWS"); v != "" {
		windows, err := ParseWindows(v)
		if err != nil {
			return nil, fmt.Errorf("ANALYSIS_WINDOWS: %w", err)
		}
		cfg.Analysis.Windows = windows
	}
	if v := os.Getenv("OUTPUT_CSV_PATH"); v != "" {
		cfg.Output.CSVPath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_ANALYSIS"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "EURINR=X"
	}
	if cfg.DataSource.StartDate == "" {
		cfg.DataSource.StartDate = "2023-01-01"
	}
	if cfg.DataSource.EndDate == "" {
		cfg.DataSource.EndDate = "2023-12-15"
	}
	if cfg.DataSource.TargetDate == "" {
		cfg.DataSource.TargetDate = "2023-12-07"
	}
	if len(cfg.Analysis.Windows) == 0 {
		cfg.Analysis.Windows = []int{1, 5}
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "data/output.csv"
	}
	if cfg.Schedule.AnalysisCron == "" {
		cfg.Schedule.AnalysisCron = "0 30 22 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/currency_sentinel.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "pretty"
	}
	if cfg.Log.RotationSize == 0 {
		cfg.Log.RotationSize = 50
	}
	if cfg.Log.RetentionDays == 0 {
		cfg.Log.RetentionDays = 30
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	case "csv":
		if c.DataSource.CSVPath == "" {
			return fmt.Errorf("data_source.csv_path is required for the csv provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, rest, csv", c.DataSource.Provider)
	}
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}

	start, end, target, err := c.DateRange()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("data_source.end_date %s is before start_date %s", c.DataSource.EndDate, c.DataSource.StartDate)
	}
	if !target.IsZero() && (target.Before(start) || target.After(end)) {
		return fmt.Errorf("data_source.target_date %s is outside [%s, %s]",
			c.DataSource.TargetDate, c.DataSource.StartDate, c.DataSource.EndDate)
	}

	if len(c.Analysis.Windows) == 0 {
		return fmt.Errorf("analysis.windows must not be empty")
	}
	seen := make(map[int]bool, len(c.Analysis.Windows))
	for _, w := range c.Analysis.Windows {
		if w <= 0 {
			return fmt.Errorf("analysis.windows: %d is not a positive integer", w)
		}
		if seen[w] {
			return fmt.Errorf("analysis.windows: %d listed twice", w)
		}
		seen[w] = true
	}

	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// DateRange parses the fetch range and the analysis start date. An empty target date
// yields a zero time.
func (c *Config) DateRange() (start, end, target time.Time, err error) {
	if start, err = time.Parse(dateLayout, c.DataSource.StartDate); err != nil {
		return start, end, target, fmt.Errorf("data_source.start_date: %w", err)
	}
	if end, err = time.Parse(dateLayout, c.DataSource.EndDate); err != nil {
		return start, end, target, fmt.Errorf("data_source.end_date: %w", err)
	}
	if c.DataSource.TargetDate != "" {
		if target, err = time.Parse(dateLayout, c.DataSource.TargetDate); err != nil {
			return start, end, target, fmt.Errorf("data_source.target_date: %w", err)
		}
	}
	return start, end, target, nil
}

// ParseWindows parses a comma-separated list such as "1,5,20".
func ParseWindows(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("window %q is not an integer", part)
		}
		out = append(out, w)
	}
	return out, nil
}
