package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/ghdash/internal/ai"
	"github.com/thomas-vilte/ghdash/internal/ai/gemini"
	"github.com/thomas-vilte/ghdash/internal/ai/openai"
	"github.com/thomas-vilte/ghdash/internal/cache"
	"github.com/thomas-vilte/ghdash/internal/commands"
	"github.com/thomas-vilte/ghdash/internal/config"
	"github.com/thomas-vilte/ghdash/internal/i18n"
	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/server"
	"github.com/thomas-vilte/ghdash/internal/services"
	"github.com/thomas-vilte/ghdash/internal/vcs"
	"github.com/thomas-vilte/ghdash/internal/vcs/github"
	"github.com/thomas-vilte/ghdash/internal/version"
)

type ServeCommand struct{}

func NewServeCommand() *ServeCommand {
	return &ServeCommand{}
}

func (c *ServeCommand) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: t.GetMessage("serve_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return c.Run(ctx, cmd, t)
		},
	}
}

// Run loads the configuration, wires every collaborator and serves until the
// process is interrupted.
func (c *ServeCommand) Run(ctx context.Context, cmd *cli.Command, t *i18n.Translations) error {
	cfg, err := commands.LoadConfig(cmd, true)
	if err != nil {
		return err
	}
	commands.SetupLogging(cmd, cfg)
	if err := t.SetLanguage(cfg.Language); err != nil {
		return err
	}
	if !cmd.Bool(commands.FlagDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	model, err := newChatModel(ctx, cfg)
	if err != nil {
		return err
	}

	ghOpts := []github.Option{github.WithTimeout(cfg.Timeouts.GitHub)}
	gh, err := github.NewGitHubClient(cfg.GitHub.Token, cfg.GitHub.BaseURL, ghOpts...)
	if err != nil {
		return err
	}
	// The base URL was accepted above, so per-token clients cannot fail here.
	newClient := func(token string) vcs.GitHubClient {
		client, err := github.NewGitHubClient(token, cfg.GitHub.BaseURL, ghOpts...)
		if err != nil {
			return gh
		}
		return client
	}

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(ctx, "failed to close summary cache", err)
		}
	}()

	tokens := cfg.AI.Tokens
	srv := server.NewServer(server.Services{
		Chat:       services.NewIssueChatService(model, t, tokens),
		Summary:    services.NewSummaryService(model, gh, cache.NewSummaryCache(store), tokens, cfg.Limits),
		Prioritize: services.NewPrioritizeService(model, tokens, cfg.Limits),
		Activity:   services.NewActivityService(newClient, cfg.GitHub.Token),
		Issues:     services.NewIssueService(gh, t),
	}, cfg.GitHub.Token, server.WithWebDir(cfg.Server.WebDir))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "starting server",
		"version", version.FullVersion(),
		"port", cfg.Server.Port,
		"provider", cfg.AI.Provider,
		"model", cfg.AI.Model,
		"cache", cfg.Cache.Backend)
	green := color.New(color.FgGreen, color.Bold)
	_, _ = green.Printf("✓ %s\n", t.GetMessage("server_listening", 0, map[string]interface{}{"Port": cfg.Server.Port}))

	return srv.Run(ctx, cfg.Address())
}

func newChatModel(ctx context.Context, cfg *config.Config) (ai.ChatModel, error) {
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		p, err := gemini.NewProvider(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return ai.NewTrackedModel(p, gemini.ProviderName, cfg.AI.Model, cfg.Timeouts.Model), nil
	default:
		p, err := openai.NewProvider(cfg)
		if err != nil {
			return nil, err
		}
		return ai.NewTrackedModel(p, openai.ProviderName, cfg.AI.Model, cfg.Timeouts.Model), nil
	}
}
