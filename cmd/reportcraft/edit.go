package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/reportcraft/internal/builderui"
	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/preview"
	"github.com/verte-zerg/reportcraft/internal/report"
)

var editRows rowOptions

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Open the interactive report builder",
		Long:  "Open the interactive report builder. A report that does not exist yet is created on first save.",
		Args:  cobra.ExactArgs(1),
		RunE:  runEditCmd,
	}
	addRowFlags(cmd, &editRows)
	return cmd
}

func runEditCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.applyRowConfig(cmd, &editRows); err != nil {
		return err
	}
	cfg, err := a.load(cmd.Context(), args[0])
	if errors.Is(err, model.ErrReportNotFound) {
		cfg = report.New(a.catalog, args[0])
		err = nil
	}
	if err != nil {
		return err
	}
	rows, err := a.rows(editRows)
	if err != nil {
		return err
	}

	ui := builderui.NewModel(cfg, a.store, preview.NewProjector(preview.ParseLocale(editRows.locale)), rows)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if ui.Dirty() {
		logErrln("unsaved changes discarded")
	}
	return nil
}
