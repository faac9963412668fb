package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/report"
)

var filterAddOr bool

func newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Change the filter chain",
		Long: "Change the filter chain. Predicates are combined strictly left to right, " +
			"so [A, AND B, OR C] means (A AND B) OR C. Predicates are addressed by position or id.",
	}

	add := &cobra.Command{
		Use:   "add <report> <field> <operator> <value>...",
		Short: "Append a predicate",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := model.Operator(strings.ToLower(strings.TrimSpace(args[2])))
			value := strings.Join(args[3:], " ")
			return mutate(cmd, args[0], func(cfg *report.Configuration) error {
				pred, err := cfg.Filters().Append(args[1], op, value)
				if err != nil {
					return err
				}
				if filterAddOr && cfg.Filters().Len() > 1 {
					return cfg.Filters().SetCombinator(pred.ID, model.CombinatorOr)
				}
				return nil
			})
		},
	}
	add.Flags().BoolVar(&filterAddOr, "or", false, "join with OR instead of AND")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "logic <report> <predicate> <and|or>",
		Short: "Set how a predicate joins the chain",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			comb, err := model.ParseCombinator(args[2])
			if err != nil {
				return err
			}
			return mutate(cmd, args[0], func(cfg *report.Configuration) error {
				id, err := resolveRef(args[1], predicateIDs(cfg), model.ErrPredicateNotFound)
				if err != nil {
					return err
				}
				return cfg.Filters().SetCombinator(id, comb)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <report> <predicate>",
		Short: "Remove a predicate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, args[0], func(cfg *report.Configuration) error {
				id, err := resolveRef(args[1], predicateIDs(cfg), model.ErrPredicateNotFound)
				if err != nil {
					return err
				}
				return cfg.Filters().Remove(id)
			})
		},
	})
	return cmd
}

func predicateIDs(cfg *report.Configuration) []string {
	preds := cfg.Filters().List()
	ids := make([]string, len(preds))
	for i, p := range preds {
		ids[i] = p.ID
	}
	return ids
}
