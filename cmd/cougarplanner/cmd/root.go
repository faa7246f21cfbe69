// Package cmd implements the cougarplanner CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielzdev/cougarplanner/internal/canvas"
	"github.com/danielzdev/cougarplanner/internal/config"
	"github.com/danielzdev/cougarplanner/internal/store"
	"github.com/danielzdev/cougarplanner/pkg/dates"
	"github.com/danielzdev/cougarplanner/pkg/errors"
	"github.com/danielzdev/cougarplanner/pkg/logging"
)

var (
	configFile string
	verbose    bool
	quiet      bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cougarplanner",
	Short: "Canvas week planner",
	Long: `Cougarplanner keeps a local, offline-friendly copy of your Canvas
courses, assignments, and announcements.

Each sync fetches one week of data and merges it into CSV files under the
data directory, preserving the difficulty ratings you assign locally.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithLogger(ctx, logging.Default())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError prints a failure with the distinctions the engine guarantees:
// storage failures are the one hard class, token problems get a setup hint.
func reportError(err error) {
	switch {
	case errors.IsStorage(err):
		fmt.Fprintln(os.Stderr, "Storage error:", err)
		fmt.Fprintln(os.Stderr, "The data directory may be unreachable or permission-denied.")
	case errors.IsTokenError(err):
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Set CANVAS_TOKEN in the environment or a .env file.")
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.cougarplanner.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "warnings and errors only")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the CSV store")
	rootCmd.PersistentFlags().String("base-url", "", "Canvas instance base URL")

	if err := viper.BindPFlag(config.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir")); err != nil {
		panic(fmt.Sprintf("Failed to bind data-dir flag: %v", err))
	}
	if err := viper.BindPFlag(config.KeyBaseURL, rootCmd.PersistentFlags().Lookup("base-url")); err != nil {
		panic(fmt.Sprintf("Failed to bind base-url flag: %v", err))
	}
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cougarplanner")
	}

	// .env files load before Viper env binding so both surfaces see them.
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	bindSettings()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// configureLogging sets up the logging system based on flags and environment.
func configureLogging() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	cfg := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		AddCaller: level <= zerolog.DebugLevel,
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}

	logging.Configure(cfg)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil && verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}

// bindSettings explicitly binds the planner's environment variables to Viper
// so they resolve even when absent from the config file.
func bindSettings() {
	keys := []string{
		config.KeyToken,
		config.KeyBaseURL,
		config.KeyDataDir,
		config.KeyWeekStart,
		config.KeySortMode,
		config.KeyDifficultyOrder,
	}
	for _, key := range keys {
		if err := viper.BindEnv(key); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// stores opens the three repositories under the configured data directory.
func stores() (*store.Courses, *store.Assignments, *store.Announcements) {
	dir := config.DataDir()
	return store.NewCourses(dir), store.NewAssignments(dir), store.NewAnnouncements(dir)
}

// client builds an authenticated Canvas client from configuration.
func client() (*canvas.Client, error) {
	token, err := config.Token()
	if err != nil {
		return nil, err
	}
	return canvas.New(config.BaseURL(), token), nil
}

// resolveWeek turns the shared --date and --week-offset flags into a range.
func resolveWeek(anchor string, offset int) (dates.WeekRange, error) {
	ref := dates.Today()
	if anchor != "" {
		ref = dates.ParseDate(anchor)
		if ref.IsZero() {
			return dates.WeekRange{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", anchor)
		}
	}

	week := dates.WeekOf(ref, config.WeekStart())
	for ; offset > 0; offset-- {
		week = week.Next()
	}
	for ; offset < 0; offset++ {
		week = week.Prev()
	}
	return week, nil
}
