package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookscan/internal/cache"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the analysis result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		store := cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.MaxAge, logger)
		removed, err := store.Clear()
		if err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Printf("Removed %d cached results from %s\n", removed, cfg.Cache.Dir)
		return nil
	},
}

var cacheCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove expired cached results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		store := cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.MaxAge, logger)
		removed, err := store.CleanupExpired()
		if err != nil {
			return fmt.Errorf("cleanup cache: %w", err)
		}
		fmt.Printf("Removed %d expired results from %s\n", removed, cfg.Cache.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheCleanupCmd)
}
