package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/truelens/internal/common"
	"github.com/Veraticus/truelens/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// annotationFullscreen marks commands that own the terminal. Their logs go
// to logging.file or nowhere.
const annotationFullscreen = "fullscreen"

var (
	cfgFile string
	logFile *os.File
	version = "dev"
	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "truelens",
		Short: "🔍 Check images against a deepfake detection service",
		Long: `truelens: pick an image, choose a confidence threshold and ask a
deepfake detection service whether the face in it is Real or Fake.

Run without a subcommand to open the interactive form.`,
		Args:              cobra.MaximumNArgs(1),
		Annotations:       map[string]string{annotationFullscreen: "true"},
		PersistentPreRunE: initConfig,
		RunE:              runUI,
		SilenceUsage:      true,
	}

	// Global flags
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/truelens/config.yaml)")
	root.PersistentFlags().String("endpoint", "", "predict endpoint URL (default: http://localhost:8000/predict)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")
	root.PersistentFlags().String("log-file", "", "write logs to this file")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyEndpoint, root.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag(config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, root.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyLogFile, root.PersistentFlags().Lookup("log-file"))

	// Add commands
	root.AddCommand(uiCmd())
	root.AddCommand(predictCmd())
	root.AddCommand(versionCmd())

	return root
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received termination signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup
	closeLogFile()

	if err != nil {
		if !errors.Is(err, errPredictionFailed) {
			fmt.Fprintln(os.Stderr, common.UserMessage(err))
		}
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	config.SetDefaults(viper.GetViper())

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/truelens", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. TRUELENS_HTTP_TIMEOUT
	viper.SetEnvPrefix("TRUELENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(cmd); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(cmd *cobra.Command) error {
	level, err := common.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if path := config.ExpandPath(viper.GetString(config.KeyLogFile)); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		closeLogFile()
		logFile = f
		w = f
	} else if cmd.Annotations[annotationFullscreen] == "true" {
		// Anything written to stderr would tear the alternate screen.
		w = io.Discard
	}

	return common.SetupLogger(level, viper.GetString(config.KeyLogFormat), w)
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	_ = logFile.Close()
	logFile = nil
}

// loadConfig returns the validated configuration for the running command.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "truelens version %s\n", version)
		},
	}
}
