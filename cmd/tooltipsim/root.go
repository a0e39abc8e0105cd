package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-tooltip/pkg/config"
)

type rootOptions struct {
	cfgFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "tooltipsim",
		Short: "Simulate tooltip timing and placement without a browser",
		Long: `tooltipsim drives the tooltip engine on a virtual clock with in-memory
elements. It replays interaction scenarios, computes placements and lists the
configuration surface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "tooltip.yml", "config file path")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		newRunCmd(opts),
		newPlaceCmd(),
		newAttributesCmd(),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) loadConfig() (*config.File, error) {
	return config.Load(o.cfgFile)
}

// logger returns a text logger on stderr, or nil when neither verbose nor
// a log level is configured.
func (o *rootOptions) logger(cmd *cobra.Command, cfg *config.File) *slog.Logger {
	level := cfg.Environment.SlogLevel()
	if o.verbose {
		level = slog.LevelDebug
	} else if cfg.Environment.LogLevel == "" {
		return nil
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
