package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/preview"
	"github.com/verte-zerg/reportcraft/internal/report"
)

var (
	newColumns string

	showRows rowOptions

	dumpOutput string

	importName  string
	importForce bool
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty report",
		Args:  cobra.ExactArgs(1),
		RunE:  runNewCmd,
	}
	cmd.Flags().StringVar(&newColumns, "columns", "", "comma-separated field ids to select")
	return cmd
}

func runNewCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("report name must not be empty")
	}
	found, err := a.exists(ctx, name)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("%w: %q", model.ErrReportExists, name)
	}
	cfg := report.New(a.catalog, name)
	for _, id := range splitList(newColumns) {
		if err := cfg.Columns().Add(id); err != nil {
			return err
		}
	}
	if err := a.save(ctx, cfg); err != nil {
		return err
	}
	logErrf("Created %q\n", name)
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved reports",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	summaries, err := a.store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		_, _ = fmt.Fprintln(out, "(no saved reports)")
		return nil
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Columns", "Filters", "Parameters", "Updated"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Name, s.Columns, s.Filters, s.Parameters, s.UpdatedAt.Local().Format("2006-01-02 15:04")})
	}
	t.Render()
	return nil
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a report preview over sample rows",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
	addRowFlags(cmd, &showRows)
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.applyRowConfig(cmd, &showRows); err != nil {
		return err
	}
	cfg, err := a.load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	rows, err := a.rows(showRows)
	if err != nil {
		return err
	}
	pv := preview.NewProjector(preview.ParseLocale(showRows.locale)).Project(cfg, rows)
	return renderPreview(cmd, pv)
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a saved report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.store.Rename(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			logErrf("Renamed %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved report and its run history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			logErrf("Deleted %q\n", args[0])
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <name>",
		Short: "Check a saved report for problems",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidateCmd,
	}
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	cfg, err := a.load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	res := cfg.Validate()
	out := cmd.OutOrStdout()
	if res.OK() {
		_, _ = fmt.Fprintln(out, "OK")
		return nil
	}
	for _, p := range res.Problems {
		_, _ = fmt.Fprintf(out, "%s: %s\n", p.Code, p.Message)
	}
	return res.Err()
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <name>",
		Short: "Write a report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runDumpCmd,
	}
	cmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func runDumpCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	doc, err := a.store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')
	if dumpOutput == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(dumpOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dumpOutput, err)
	}
	logErrf("Wrote %s\n", dumpOutput)
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Save a report from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importName, "name", "", "save under this name instead of the one in the file")
	cmd.Flags().BoolVar(&importForce, "force", false, "replace an existing report")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	cfg, err := report.DecodeJSON(a.catalog, data)
	if err != nil {
		return err
	}
	if importName != "" {
		cfg.SetName(importName)
	}
	if cfg.Name() == "" {
		return fmt.Errorf("imported report has no name; use --name")
	}
	ctx := cmd.Context()
	if !importForce {
		found, err := a.exists(ctx, cfg.Name())
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("%w: %q (use --force to replace)", model.ErrReportExists, cfg.Name())
		}
	}
	if res := cfg.Validate(); !res.OK() {
		for _, p := range res.Problems {
			logErrf("warning: %s\n", p.Message)
		}
	}
	if err := a.save(ctx, cfg); err != nil {
		return err
	}
	logErrf("Imported %q\n", cfg.Name())
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
