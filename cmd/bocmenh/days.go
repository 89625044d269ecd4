package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
)

type dayRequest struct {
	Profile *indicator.Profile      `json:"profile,omitempty"`
	Date    string                  `json:"date,omitempty"`
	Year    int                     `json:"year,omitempty"`
	Month   int                     `json:"month,omitempty"`
	Event   indicator.EventCategory `json:"event,omitempty"`
	Limit   int                     `json:"limit,omitempty"`
}

func newDateCmd(g *globalOpts) *cobra.Command {
	var (
		pf    profileFlags
		event string
	)
	cmd := &cobra.Command{
		Use:   "date YYYY-MM-DD",
		Short: "Score a date for a person and an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}
			ev, err := parseEvent(event)
			if err != nil {
				return err
			}
			p, err := pf.profile()
			if err != nil {
				return err
			}
			return run(cmd, g, func(ctx context.Context, a *app) error {
				report, err := a.memo.DateCompatibility(p, date, ev)
				if err != nil {
					return err
				}
				return a.emit(ctx, "date", dayRequest{Profile: &p, Date: args[0], Event: ev}, report)
			})
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVar(&event, "event", "", "Event category (default: other)")
	return cmd
}

func newDayCmd(g *globalOpts) *cobra.Command {
	var event string
	cmd := &cobra.Command{
		Use:   "day YYYY-MM-DD",
		Short: "Score the general quality of a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}
			ev, err := parseEvent(event)
			if err != nil {
				return err
			}
			return run(cmd, g, func(ctx context.Context, a *app) error {
				report, err := a.memo.DayQuality(date, ev)
				if err != nil {
					return err
				}
				return a.emit(ctx, "day", dayRequest{Date: args[0], Event: ev}, report)
			})
		},
	}
	cmd.Flags().StringVar(&event, "event", "", "Event category (optional)")
	return cmd
}

func newBestDaysCmd(g *globalOpts) *cobra.Command {
	var (
		pf    profileFlags
		event string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "best-days YEAR MONTH",
		Short: "Rank the days of a month, best first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			month, err := parseMonth(args[1])
			if err != nil {
				return err
			}
			ev, err := parseEvent(event)
			if err != nil {
				return err
			}
			p, err := pf.optionalProfile()
			if err != nil {
				return err
			}
			return run(cmd, g, func(ctx context.Context, a *app) error {
				days, err := a.memo.BestDays(year, month, ev, p, limit)
				if err != nil {
					return err
				}
				req := dayRequest{Profile: p, Year: year, Month: month, Event: ev, Limit: limit}
				return a.emit(ctx, "best-days", req, days)
			})
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVar(&event, "event", "", "Event category (optional)")
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of days to return")
	return cmd
}

func newCalendarCmd(g *globalOpts) *cobra.Command {
	var (
		pf    profileFlags
		event string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "calendar YEAR",
		Short: "Rank the best days of every month of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			ev, err := parseEvent(event)
			if err != nil {
				return err
			}
			p, err := pf.optionalProfile()
			if err != nil {
				return err
			}
			return run(cmd, g, func(ctx context.Context, a *app) error {
				months, err := calendar(ctx, a, year, ev, p, limit)
				if err != nil {
					return err
				}
				req := dayRequest{Profile: p, Year: year, Event: ev, Limit: limit}
				return a.emit(ctx, "calendar", req, months)
			})
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVar(&event, "event", "", "Event category (optional)")
	cmd.Flags().IntVar(&limit, "limit", 3, "Number of days per month")
	return cmd
}

// calendar ranks the twelve months concurrently.
func calendar(ctx context.Context, a *app, year int, ev indicator.EventCategory, p *indicator.Profile, limit int) ([]analysis.MonthRanking, error) {
	months := make([]analysis.MonthRanking, 12)
	g, ctx := errgroup.WithContext(ctx)
	for i := range months {
		month := i + 1
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			days, err := a.memo.BestDays(year, month, ev, p, limit)
			if err != nil {
				return err
			}
			months[i] = analysis.MonthRanking{Year: year, Month: month, Days: days}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return months, nil
}
