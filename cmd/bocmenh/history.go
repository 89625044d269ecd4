package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lethanhdatit/v0-bocmenh-sub002/internal/history"
)

func newHistoryCmd(g *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage recorded analysis results",
	}
	cmd.AddCommand(newHistoryListCmd(g), newHistoryShowCmd(g), newHistoryMigrateCmd(g))
	return cmd
}

func newHistoryListCmd(g *globalOpts) *cobra.Command {
	var (
		limit int
		kind  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent results of the configured subject",
		Long: `Lists from the history database when one is configured, otherwise
from the report archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, func(ctx context.Context, a *app) error {
				records, err := listRecords(ctx, a, kind, limit)
				if err != nil {
					return err
				}
				if g.output == "json" {
					return writeJSON(a.out, records)
				}
				return writeRecords(a.out, records)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	cmd.Flags().StringVar(&kind, "kind", "", "Only results of this kind (day, chart, direction, ...)")
	return cmd
}

func listRecords(ctx context.Context, a *app, kind string, limit int) ([]history.Record, error) {
	if limit < 1 {
		return nil, fmt.Errorf("--limit must be positive, got %d", limit)
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	if store != nil {
		return store.List(ctx, a.cfg.History.Subject, kind, limit)
	}
	archive, err := a.openArchive(ctx)
	if err != nil {
		return nil, err
	}
	return history.NewReader(archive, nil, a.cfg.History.Subject).Recent(ctx, kind, limit)
}

func newHistoryShowCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a recorded result with its archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, func(ctx context.Context, a *app) error {
				archive, err := a.openArchive(ctx)
				if err != nil {
					return err
				}
				store, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				var index history.Finder
				if store != nil {
					index = store
				}
				entry, err := history.NewReader(archive, index, a.cfg.History.Subject).Show(ctx, args[0])
				if err != nil {
					return err
				}
				if g.output == "json" {
					return writeJSON(a.out, entry)
				}
				if err := writeRecords(a.out, []history.Record{entry.Record}); err != nil {
					return err
				}
				fmt.Fprintln(a.out)
				return writeJSON(a.out, entry.Envelope.Report)
			})
		},
	}
}

func newHistoryMigrateCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending history database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, func(ctx context.Context, a *app) error {
				if a.cfg.History.DatabaseURL == "" {
					return fmt.Errorf("history.database_url is not configured")
				}
				db, err := history.Open(ctx, a.cfg.History.DatabaseURL)
				if err != nil {
					return err
				}
				defer db.Close()
				state, err := history.AutoMigrate(db)
				if err != nil {
					return err
				}
				a.log.Info("history migrations applied", "version", state.Version)
				fmt.Fprintf(a.out, "history schema at version %d\n", state.Version)
				return nil
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRecords(w io.Writer, records []history.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tOVERALL\tRATING\tRULES\tCREATED")
	for _, r := range records {
		overall := "-"
		if r.Overall != nil {
			overall = fmt.Sprint(*r.Overall)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\tv%d\t%s\n",
			r.ID, r.Kind, overall, r.Rating, r.RulesVersion, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
