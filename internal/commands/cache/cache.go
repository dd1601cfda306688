package cache

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/ghdash/internal/cache"
	"github.com/thomas-vilte/ghdash/internal/commands"
	"github.com/thomas-vilte/ghdash/internal/i18n"
)

type CacheCommand struct{}

func NewCacheCommand() *CacheCommand {
	return &CacheCommand{}
}

func (c *CacheCommand) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: t.GetMessage("cache_usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "clear",
				Usage: t.GetMessage("cache_clear_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := commands.LoadConfig(cmd, false)
					if err != nil {
						return err
					}
					commands.SetupLogging(cmd, cfg)

					store, err := cache.Open(cfg.Cache)
					if err != nil {
						return err
					}
					defer func() { _ = store.Close() }()

					if err := store.Clear(ctx); err != nil {
						return fmt.Errorf("failed to clear %s cache: %w", cfg.Cache.Backend, err)
					}

					green := color.New(color.FgGreen, color.Bold)
					_, _ = green.Printf("✓ %s\n", t.GetMessage("cache_cleared", 0, nil))
					return nil
				},
			},
		},
	}
}
