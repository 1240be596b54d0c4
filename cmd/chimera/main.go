package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jingkaihe/chimera/pkg/logger"
	"github.com/jingkaihe/chimera/pkg/presenter"
	"github.com/jingkaihe/chimera/pkg/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("CHIMERA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("parallelism", 1)

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.chimera")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	// A project chimera.yaml takes precedence over the home config
	if _, err := os.Stat(projectConfigFile); err == nil {
		viper.SetConfigFile(projectConfigFile)
		_ = viper.MergeInConfig()
	}
}

const projectConfigFile = "chimera.yaml"

var shutdownTracing func(context.Context) error

var rootCmd = &cobra.Command{
	Use:   "chimera",
	Short: "Convert commands and skills between coding agents",
	Long: `Chimera converts slash commands and skills between Claude Code, Gemini CLI,
Codex and OpenCode, and keeps a multi-agent hub library in .chimera that holds
every agent's settings for the same document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetLogOutput(os.Stderr)
		if err := logger.SetLogFormat(viper.GetString("log_format")); err != nil {
			return err
		}
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		presenter.SetQuiet(quiet)

		shutdown, err := initTracing(cmd.Context())
		if err != nil {
			logger.G(cmd.Context()).WithError(err).Warn("failed to initialize tracing")
			return nil
		}
		shutdownTracing = shutdown
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func main() {
	rootCmd.Version = version.Get().String()

	// Add global flags
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().String("root", "", "Directory the agent folders live in (default: current directory)")
	rootCmd.PersistentFlags().BoolP("global", "g", false, "Use the agent folders in the home directory")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print errors")

	// Bind flags to viper
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("library_dir", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("global", rootCmd.PersistentFlags().Lookup("global"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errConversionFailed) {
			presenter.Error(err, filepath.Base(os.Args[0]))
		}
		code = 1
	}

	if shutdownTracing != nil {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.G(ctx).WithError(err).Debug("failed to flush traces")
		}
	}
	cancel()
	os.Exit(code)
}
