// Package main provides the bocmenh CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}
	rootCmd := &cobra.Command{
		Use:   "bocmenh",
		Short: "Temporal and directional compatibility analysis",
		Long: `Bocmenh derives a personal indicator from birth data, resolves the
reigning cycle of a year, month or day, and scores directions, corners
and dates against a table-driven rule base.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&g.configPath, "config", "", "Path to config file (default: search for .bocmenh/config.yaml)")
	f.StringVar(&g.rulesPath, "rules", "", "Path to a YAML rule override file")
	f.StringVar(&g.output, "output", "text", "Output format: text, json or markdown")
	f.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	f.StringVar(&g.logFormat, "log-format", "", "Log format: text or json")
	f.StringVar(&g.lang, "lang", "", "Language of recommendation text")
	f.BoolVar(&g.record, "record", false, "Record results to history (requires history.enabled)")

	rootCmd.AddCommand(
		newIndicatorCmd(g),
		newCycleCmd(g),
		newChartCmd(g),
		newDirectionCmd(g),
		newCornerCmd(g),
		newDateCmd(g),
		newDayCmd(g),
		newBestDaysCmd(g),
		newCalendarCmd(g),
		newRulesCmd(g),
		newHistoryCmd(g),
	)
	return rootCmd
}
