package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	tooltip "github.com/goliatone/go-tooltip"
	"github.com/goliatone/go-tooltip/pkg/floating"
)

func newPlaceCmd() *cobra.Command {
	var (
		anchor    string
		overlay   string
		viewport  string
		placement string
		offset    float64
	)
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Compute where an overlay lands next to an anchor",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseNumbers(anchor, 4)
			if err != nil {
				return fmt.Errorf("--anchor: %w", err)
			}
			o, err := parseNumbers(overlay, 2)
			if err != nil {
				return fmt.Errorf("--overlay: %w", err)
			}
			v, err := parseNumbers(viewport, 2)
			if err != nil {
				return fmt.Errorf("--viewport: %w", err)
			}
			p, err := floating.ParsePlacement(placement)
			if err != nil {
				return err
			}

			cfg := tooltip.DefaultConfig()
			cfg.Placement = p
			cfg.Offset = offset
			result := tooltip.Place(
				floating.Rect{X: a[0], Y: a[1], Width: a[2], Height: a[3]},
				floating.Rect{Width: o[0], Height: o[1]},
				floating.Rect{Width: v[0], Height: v[1]},
				cfg,
			)
			fmt.Fprintf(cmd.OutOrStdout(), "placement=%s x=%g y=%g\n", result.Placement, result.X, result.Y)
			return nil
		},
	}
	cmd.Flags().StringVar(&anchor, "anchor", "0,0,0,0", "anchor rect as x,y,width,height")
	cmd.Flags().StringVar(&overlay, "overlay", "0,0", "overlay size as width,height")
	cmd.Flags().StringVar(&viewport, "viewport", "1280,720", "viewport size as width,height (0,0 disables shift and flip)")
	cmd.Flags().StringVar(&placement, "placement", string(tooltip.DefaultPlacement), "preferred placement")
	cmd.Flags().Float64Var(&offset, "offset", tooltip.DefaultOffset, "distance between anchor and overlay")
	return cmd
}

func parseNumbers(value string, want int) ([]float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d comma separated numbers, got %q", want, value)
	}
	out := make([]float64, want)
	for i, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		out[i] = n
	}
	return out, nil
}
