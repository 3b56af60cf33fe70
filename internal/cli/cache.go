package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ilotplan/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear cached zones and layouts",
	}
	cmd.AddCommand(
		c.cacheSubcommand("clear", "Remove every cached zone classification and layout", c.cacheClear),
		c.cacheSubcommand("info", "Show the cache backend and entry count", c.cacheInfo),
		c.cacheSubcommand("path", "Print the file cache directory", func(dir string, _ bool) error {
			fmt.Println(dir)
			return nil
		}),
	)
	return cmd
}

// cacheSubcommand wires a subcommand that needs the file cache directory and
// whether a redis backend is configured.
func (c *CLI) cacheSubcommand(use, short string, fn func(dir string, redis bool) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir, err := cfg.CacheDir()
			if err != nil {
				return err
			}
			return fn(dir, cfg.Cache.RedisURL != "" || cfg.Cache.RedisAddr != "")
		},
	}
}

// openFileCache returns nil when the directory does not exist yet.
func openFileCache(dir string) (*cache.FileCache, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cacheClear(dir string, redis bool) error {
	fc, err := openFileCache(dir)
	if err != nil {
		return err
	}
	if fc == nil {
		printInfo("Cache is empty")
		return nil
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", dir)
	if redis {
		printWarning("Redis entries expire on their own and were not cleared")
	}
	return nil
}

func (c *CLI) cacheInfo(dir string, redis bool) error {
	backend := "file"
	if redis {
		backend = "redis (file cache unused)"
	}
	printKeyValue("Backend", backend)
	printKeyValue("Directory", dir)

	fc, err := openFileCache(dir)
	if err != nil {
		return err
	}
	n := 0
	if fc != nil {
		if n, err = fc.Len(); err != nil {
			return err
		}
	}
	printKeyValue("Entries", fmt.Sprintf("%d", n))
	return nil
}
