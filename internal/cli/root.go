// Package cli implements the bookscan command surface. Commands are thin
// wrappers over the pipeline; everything interesting happens in the
// internal packages.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bookscan/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bookscan",
	Short: "Bookscan - text statistics for books and documents",
	Long: `Bookscan analyzes books and documents (plain text, PDF, EPUB) and
computes descriptive statistics: word, character, sentence and paragraph
counts, word and character frequency, vocabulary richness and estimated
reading time.

Results are emitted as JSON for downstream reporting and can be cached
so unchanged files are never analyzed twice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bookscan v0.3.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.bookscan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.bookscan")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match BOOKSCAN_*
	viper.SetEnvPrefix("BOOKSCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file and environment into a Config.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("analysis.include_stop_words") {
		cfg.Analysis.IncludeStopWords = viper.GetBool("analysis.include_stop_words")
	}
	if viper.IsSet("analysis.reading_speed_wpm") {
		cfg.Analysis.ReadingSpeedWPM = viper.GetInt("analysis.reading_speed_wpm")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("cache.max_age") {
		cfg.Cache.MaxAge = viper.GetDuration("cache.max_age")
	}
	if viper.IsSet("cache.memory_ttl") {
		cfg.Cache.MemoryTTL = viper.GetDuration("cache.memory_ttl")
	}
	if viper.IsSet("concurrency.workers") {
		cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	}
	if viper.IsSet("sentiment.provider") {
		cfg.Sentiment.Provider = viper.GetString("sentiment.provider")
	}
	if viper.IsSet("sentiment.model") {
		cfg.Sentiment.Model = viper.GetString("sentiment.model")
	}
	if viper.IsSet("sentiment.base_url") {
		cfg.Sentiment.BaseURL = viper.GetString("sentiment.base_url")
	}
	cfg.Sentiment.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Output.Verbose = verbose

	return cfg
}

// newLogger builds the logger shared by the pipeline. Verbose runs get
// debug output; quiet runs only surface warnings.
func newLogger() *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}
