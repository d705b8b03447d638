// Package cmd holds the sentinel CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"CurrencySentinel/internal/config"
	"CurrencySentinel/internal/logger"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "CurrencySentinel - currency pair indicator and signal engine",
	Long: `CurrencySentinel - currency pair indicator and signal engine

Computes SMA, Bollinger Bands and CCI over a daily exchange-rate series and
derives BUY / SELL / NEUTRAL decisions per window.

Commands:
    analyze     run one analysis and export the table
    serve       run the analysis on a schedule with Telegram notifications
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultCfg, "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}

// initConfig loads .env, the YAML config and the logger.
func initConfig() error {
	envErr := godotenv.Load()

	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if _, err := logger.Init(logger.Config{
		Level:         c.Log.Level,
		Format:        c.Log.Format,
		FilePath:      c.Log.FilePath,
		RotationSize:  c.Log.RotationSize,
		RetentionDays: c.Log.RetentionDays,
		ServiceName:   "currency-sentinel",
	}); err != nil {
		return err
	}
	if envErr != nil {
		log.Debug().Msg(".env not found, using environment variables")
	}
	cfg = c
	return nil
}
