package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/swiftkotlin/cache"
	"github.com/teranos/swiftkotlin/display"
	"github.com/teranos/swiftkotlin/errors"
)

// CacheCmd represents the cache command
var CacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the translation cache",
	Long: `Inspect and maintain the translation cache.

The cache is used when cache.enabled is true. Entries are keyed by the
Swift source and the translator settings, so stale entries are never
served; prune removes the ones that are no longer used.

Examples:
  swiftkotlin cache stats
  swiftkotlin cache prune --older-than 720h
  swiftkotlin cache clear`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache size and hit counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(cmd, func(ctx context.Context, s *cache.Store) error {
			st, err := s.Stats(ctx)
			if err != nil {
				return err
			}
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(cmd.OutOrStdout(), st)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries, %d hits, %d bytes\n", st.Entries, st.Hits, st.Bytes)
			return nil
		})
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete entries not used recently",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cacheOlderThan <= 0 {
			return errors.NewInvalidRequestError("--older-than must be positive")
		}
		return withCache(cmd, func(ctx context.Context, s *cache.Store) error {
			n, err := s.Prune(ctx, time.Now().Add(-cacheOlderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Pruned %d entries\n", n)
			return nil
		})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(cmd, func(ctx context.Context, s *cache.Store) error {
			n, err := s.Clear(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d entries\n", n)
			return nil
		})
	},
}

var cacheOlderThan time.Duration

func init() {
	cacheStatsCmd.Flags().BoolP("json", "j", false, "Output stats as JSON")
	cachePruneCmd.Flags().DurationVar(&cacheOlderThan, "older-than", 30*24*time.Hour, "Prune entries unused for this long")

	CacheCmd.AddCommand(cacheStatsCmd)
	CacheCmd.AddCommand(cachePruneCmd)
	CacheCmd.AddCommand(cacheClearCmd)
}

// withCache opens the configured cache whether or not it is enabled, so
// a disabled cache can still be cleaned up.
func withCache(cmd *cobra.Command, fn func(context.Context, *cache.Store) error) error {
	cfg, _, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.Cache.Path
	if path == "" {
		if path, err = cache.DefaultPath(); err != nil {
			return err
		}
	}
	s, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(cmd.Context(), s)
}
