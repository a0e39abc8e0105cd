package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	tooltip "github.com/goliatone/go-tooltip"
	"github.com/goliatone/go-tooltip/internal/scenario"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		format   string
		traceKey string
	)
	cmd := &cobra.Command{
		Use:   "run <scenario.yml>",
		Short: "Replay an interaction scenario and print the timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			opts := scenario.Options{
				Site:        cfg.Tooltip,
				Environment: cfg.EnvironmentOptions(nil),
				TraceKey:    traceKey,
			}
			if logger := root.logger(cmd, cfg); logger != nil {
				opts.Logger = tooltip.SlogLogger(logger)
			}
			result, err := scenario.Run(s, opts)
			if err != nil {
				return err
			}
			return writeResult(cmd, result, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&traceKey, "trace", "", "report which layer set this settings key")
	return cmd
}

func writeResult(cmd *cobra.Command, result *scenario.Result, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "text", "":
		if err := scenario.WriteTimeline(out, result); err != nil {
			return err
		}
		if result.Trace != nil {
			fmt.Fprintf(out, "trace %s:\n", result.Trace.Path)
			for _, layer := range result.Trace.Layers {
				value := "-"
				if layer.Found {
					value = fmt.Sprint(layer.Value)
				}
				fmt.Fprintf(out, "  %-8s %s\n", layer.Scope.Name, value)
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(result)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
