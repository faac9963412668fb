package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/reportcraft/internal/engine"
	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/preview"
)

var (
	runRows     rowOptions
	runParams   []string
	runNoRecord bool

	runsLimit int
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Run a report over sample rows",
		Long: "Run a report over sample rows. Required parameters must be supplied with --param; " +
			"unlike show, the filter chain is applied.",
		Args: cobra.ExactArgs(1),
		RunE: runRunCmd,
	}
	addRowFlags(cmd, &runRows)
	cmd.Flags().StringArrayVarP(&runParams, "param", "p", nil, "parameter value as name=value (repeatable)")
	cmd.Flags().BoolVar(&runNoRecord, "no-record", false, "do not add the run to the history")
	return cmd
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	supplied, err := parseParamFlags(runParams)
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.applyRowConfig(cmd, &runRows); err != nil {
		return err
	}
	ctx := cmd.Context()
	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	rows, err := a.rows(runRows)
	if err != nil {
		return err
	}

	eng := engine.New(preview.NewProjector(preview.ParseLocale(runRows.locale)), newLogger())
	res, err := eng.Run(ctx, cfg, supplied, rows)
	if err != nil {
		return err
	}
	if err := renderPreview(cmd, res.Preview); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "\nMatched %d of %d rows\n", res.Matched, res.Total)
	if len(res.Parameters) > 0 {
		_, _ = fmt.Fprintf(out, "Parameters: %s\n", formatParams(res.Parameters))
	}

	if runNoRecord {
		return nil
	}
	if _, err := a.store.InsertRun(ctx, model.RunRecord{
		Report:     cfg.Name(),
		RanAt:      time.Now(),
		Total:      res.Total,
		Matched:    res.Matched,
		Parameters: res.Parameters,
	}); err != nil {
		logErrf("failed to record run: %v\n", err)
	}
	return nil
}

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs [name]",
		Short: "List recorded runs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRunsCmd,
	}
	cmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to show (0 = all)")
	return cmd
}

func runRunsCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	runs, err := a.store.ListRuns(cmd.Context(), name, runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(out, "(no runs)")
		return nil
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Id", "Report", "Ran at", "Matched", "Total", "Parameters"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.ID, r.Report, r.RanAt.Local().Format("2006-01-02 15:04:05"), r.Matched, r.Total, formatParams(r.Parameters)})
	}
	t.Render()
	return nil
}

func formatParams(values map[string]string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + values[name]
	}
	return strings.Join(parts, " ")
}
