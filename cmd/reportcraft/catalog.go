package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/reportcraft/internal/config"
	"github.com/verte-zerg/reportcraft/internal/filter"
)

var catalogOperators bool

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List selectable fields",
		Args:  cobra.NoArgs,
		RunE:  runCatalogCmd,
	}
	cmd.Flags().BoolVar(&catalogOperators, "operators", false, "show the filter operators of each field")
	return cmd
}

func runCatalogCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	cat, err := fileCfg.BuildCatalog()
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	header := table.Row{"Id", "Name", "Type"}
	if catalogOperators {
		header = append(header, "Operators")
	}
	t.AppendHeader(header)
	for _, f := range cat.List() {
		row := table.Row{f.ID, f.Name, string(f.Type)}
		if catalogOperators {
			ops := filter.OperatorsForType(f.Type)
			names := make([]string, len(ops))
			for i, op := range ops {
				names[i] = string(op)
			}
			row = append(row, strings.Join(names, ", "))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}
