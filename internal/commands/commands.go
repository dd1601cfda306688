package commands

import (
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/ghdash/internal/config"
	"github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/i18n"
	"github.com/thomas-vilte/ghdash/internal/logger"
)

const (
	FlagConfig  = "config"
	FlagPort    = "port"
	FlagDebug   = "debug"
	FlagVerbose = "verbose"
)

// GlobalFlags are defined on the root command and visible to every subcommand.
func GlobalFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Value:   config.DefaultConfigFile,
			Usage:   t.GetMessage("flag_config_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagPort,
			Aliases: []string{"p"},
			Usage:   t.GetMessage("flag_port_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:  FlagDebug,
			Usage: t.GetMessage("flag_debug_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:  FlagVerbose,
			Usage: t.GetMessage("flag_verbose_usage", 0, nil),
		},
	}
}

// LoadConfig reads the configuration named by --config and applies the flag
// overrides. With validate unset, missing credentials are tolerated.
func LoadConfig(cmd *cli.Command, validate bool) (*config.Config, error) {
	path := cmd.String(FlagConfig)

	var (
		cfg *config.Config
		err error
	)
	if validate {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Read(path)
	}
	if err != nil {
		return nil, err
	}

	port, err := parsePort(cmd.String(FlagPort))
	if err != nil {
		return nil, err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	return cfg, nil
}

// parsePort returns 0 for an empty value.
func parsePort(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return 0, errors.ErrInvalidConfig.
			WithContext("flag", FlagPort).
			WithSuggestion("Use a port between 1 and 65535")
	}
	return port, nil
}

// SetupLogging installs the process logger according to the flags and the
// configured format.
func SetupLogging(cmd *cli.Command, cfg *config.Config) {
	logger.Initialize(logger.Options{
		Debug:   cmd.Bool(FlagDebug),
		Verbose: cmd.Bool(FlagVerbose),
		Format:  cfg.Logging.Format,
	})
}
