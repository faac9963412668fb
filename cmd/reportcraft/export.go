package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/reportcraft/internal/config"
	"github.com/verte-zerg/reportcraft/internal/export"
)

var (
	exportFormat string
	exportDir    string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Hand a report off for Excel or PDF rendering",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatExcel), "excel or pdf")
	cmd.Flags().StringVar(&exportDir, "dir", config.DefaultExportDir(), "directory for export envelopes")
	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	applyStringConfig(cmd, "dir", &exportDir, a.fileCfg.Export.Dir)
	ctx := cmd.Context()
	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	path, err := export.Handoff(ctx, cfg, format, export.FileSpool{Dir: exportDir, Logger: newLogger()})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
