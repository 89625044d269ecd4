package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
)

func newIndicatorCmd(g *globalOpts) *cobra.Command {
	var pf profileFlags
	cmd := &cobra.Command{
		Use:   "indicator",
		Short: "Derive the personal indicator and its directions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.profile()
			if err != nil {
				return err
			}
			return run(cmd, g, func(ctx context.Context, a *app) error {
				report, err := a.engine.Personal(p)
				if err != nil {
					return err
				}
				return a.emit(ctx, "indicator", p, report)
			})
		},
	}
	pf.register(cmd.Flags())
	return cmd
}

func newCycleCmd(g *globalOpts) *cobra.Command {
	var month int
	cmd := &cobra.Command{
		Use:   "cycle YEAR",
		Short: "Resolve the epoch and centers of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			return run(cmd, g, func(ctx context.Context, a *app) error {
				res, err := a.engine.Cycle(year, month)
				if err != nil {
					return err
				}
				return a.renderer.Render(a.out, res)
			})
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (optional)")
	return cmd
}

func newChartCmd(g *globalOpts) *cobra.Command {
	var month int
	cmd := &cobra.Command{
		Use:   "chart YEAR",
		Short: "Generate the annual or monthly chart with per-position scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			return run(cmd, g, func(ctx context.Context, a *app) error {
				var (
					report *analysis.ChartReport
					err    error
				)
				if month != 0 {
					report, err = a.engine.MonthlyChart(year, month)
				} else {
					report, err = a.engine.AnnualChart(year)
				}
				if err != nil {
					return err
				}
				return a.emit(ctx, "chart", map[string]int{"year": year, "month": month}, report)
			})
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 for a monthly chart")
	return cmd
}

type directionRequest struct {
	Profile   indicator.Profile `json:"profile"`
	Year      int               `json:"year"`
	Direction string            `json:"direction,omitempty"`
}

func newDirectionCmd(g *globalOpts) *cobra.Command {
	var (
		pf   profileFlags
		year int
		dir  string
	)
	cmd := &cobra.Command{
		Use:   "direction",
		Short: "Score one compass direction, or all eight ranked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.profile()
			if err != nil {
				return err
			}
			req := directionRequest{Profile: p, Year: year, Direction: dir}
			return run(cmd, g, func(ctx context.Context, a *app) error {
				if dir == "" {
					report, err := a.engine.DirectionSummary(p, year)
					if err != nil {
						return err
					}
					return a.emit(ctx, "direction-summary", req, report)
				}
				pos, err := compass.Parse(dir)
				if err != nil {
					return err
				}
				report, err := a.engine.PersonalDirection(p, pos, year)
				if err != nil {
					return err
				}
				return a.emit(ctx, "direction", req, report)
			})
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().IntVar(&year, "year", currentYear(), "Year of the annual chart")
	cmd.Flags().StringVar(&dir, "dir", "", "Direction to score (N, NE, E, SE, S, SW, W, NW); all when empty")
	return cmd
}

func newCornerCmd(g *globalOpts) *cobra.Command {
	var (
		pf   profileFlags
		year int
	)
	cmd := &cobra.Command{
		Use:       "corner wealth|love",
		Short:     "Locate and score the wealth or love corner of a year",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"wealth", "love"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := analysis.ParseCornerKind(args[0])
			if err != nil {
				return err
			}
			p, err := pf.profile()
			if err != nil {
				return err
			}
			return run(cmd, g, func(ctx context.Context, a *app) error {
				report, err := a.engine.Corner(p, year, kind)
				if err != nil {
					return err
				}
				return a.emit(ctx, "corner-"+string(kind), directionRequest{Profile: p, Year: year}, report)
			})
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().IntVar(&year, "year", currentYear(), "Year of the annual chart")
	return cmd
}
