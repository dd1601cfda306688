package main

import (
	"context"
	stderrors "errors"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/ghdash/internal/commands"
	"github.com/thomas-vilte/ghdash/internal/commands/cache"
	"github.com/thomas-vilte/ghdash/internal/commands/serve"
	"github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/i18n"
	"github.com/thomas-vilte/ghdash/internal/version"
)

func main() {
	translations, err := i18n.NewTranslations(startupLanguage())
	if err != nil {
		log.Fatalf("failed to load translations: %v", err)
	}

	app := newApp(translations)
	if err := app.Run(context.Background(), os.Args); err != nil {
		printError(translations, err)
		os.Exit(1)
	}
}

func newApp(t *i18n.Translations) *cli.Command {
	serveCommand := serve.NewServeCommand()

	return &cli.Command{
		Name:    "ghdash",
		Usage:   t.GetMessage("app_usage", 0, nil),
		Version: version.FullVersion(),
		Flags:   commands.GlobalFlags(t),
		Commands: []*cli.Command{
			serveCommand.CreateCommand(t),
			cache.NewCacheCommand().CreateCommand(t),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return serveCommand.Run(ctx, cmd, t)
		},
	}
}

// startupLanguage picks the language for usage text before any config is read.
func startupLanguage() string {
	if lang := os.Getenv("LANGUAGE"); lang == "es" {
		return lang
	}
	return "en"
}

func printError(t *i18n.Translations, err error) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprintf(os.Stderr, "✗ %s: %v\n", t.GetMessage("startup_failed", 0, nil), err)

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Suggestion != "" {
		yellow := color.New(color.FgYellow)
		_, _ = yellow.Fprintf(os.Stderr, "  %s: %s\n", t.GetMessage("suggestion_label", 0, nil), appErr.Suggestion)
	}
}
