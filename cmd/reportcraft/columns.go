package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/report"
)

func newColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Change selected columns",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <report> <field>...",
		Short: "Append fields to the selection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, args[0], func(cfg *report.Configuration) error {
				for _, id := range args[1:] {
					if err := cfg.Columns().Add(id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <report> <field>",
		Short: "Remove a field from the selection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, args[0], func(cfg *report.Configuration) error {
				if !cfg.Columns().Remove(args[1]) {
					return fmt.Errorf("%w: %q", model.ErrColumnNotFound, args[1])
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "agg <report> <field> <none|sum|avg|count|max|min>",
		Short: "Set the aggregation of a selected column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			agg, err := model.ParseAggregation(args[2])
			if err != nil {
				return err
			}
			return mutate(cmd, args[0], func(cfg *report.Configuration) error {
				return cfg.Columns().SetAggregation(args[1], agg)
			})
		},
	})
	return cmd
}
