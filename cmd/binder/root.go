package main

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/binder"
	"github.com/hupe1980/binder/codec"
	"github.com/hupe1980/binder/psmio"
	"github.com/spf13/cobra"
)

// globalFlags are shared by all subcommands.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	codec      string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "binder",
		Short: "Binder-loss point estimation of partitions",
		Long: `binder finds the partition of N items that minimizes the expected
Binder loss under a posterior similarity matrix, using parallel randomized
greedy search.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML run configuration file")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&g.logFormat, "log-format", "", "log format (text, json)")
	pf.StringVar(&g.codec, "codec", "", "JSON codec (json, go-json)")

	root.AddCommand(newRunCmd(g), newLossCmd(g))
	return root
}

// resolve loads the configuration file and applies the global flags.
func (g *globalFlags) resolve(cmd *cobra.Command) (*Config, error) {
	cfg := defaultConfig()
	if g.configPath != "" {
		if err := loadConfig(g.configPath, &cfg); err != nil {
			return nil, err
		}
	}

	fs := cmd.Flags()
	if fs.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = g.logFormat
	}
	if fs.Changed("codec") {
		cfg.Codec = g.codec
	}
	return &cfg, nil
}

func (c *Config) logger(cmd *cobra.Command) (*binder.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: level}

	switch c.LogFormat {
	case "text", "":
		return binder.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), hopts)), nil
	case "json":
		return binder.NewLogger(slog.NewJSONHandler(cmd.ErrOrStderr(), hopts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", c.LogFormat)
	}
}

func (c *Config) codecOption() (psmio.Option, codec.Codec, error) {
	cd, ok := codec.ByName(c.Codec)
	if !ok {
		return nil, nil, fmt.Errorf("unknown codec %q", c.Codec)
	}
	return psmio.WithCodec(cd), cd, nil
}
