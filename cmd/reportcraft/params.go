package main

import (
	"github.com/spf13/cobra"

	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/params"
	"github.com/verte-zerg/reportcraft/internal/report"
)

var (
	addParamType     string
	addParamRequired bool
	addParamDefault  string
	addParamOptions  string

	setParamName     string
	setParamType     string
	setParamRequired bool
	setParamDefault  string
	setParamOptions  string
)

func newParamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "param",
		Short: "Change run-time parameters",
	}

	add := &cobra.Command{
		Use:   "add <report> <name>",
		Short: "Define a parameter",
		Args:  cobra.ExactArgs(2),
		RunE:  runParamAddCmd,
	}
	add.Flags().StringVar(&addParamType, "type", string(model.ParamText), "text, number, date or select")
	add.Flags().BoolVar(&addParamRequired, "required", false, "a value must be supplied at run time")
	add.Flags().StringVar(&addParamDefault, "default", "", "default value")
	add.Flags().StringVar(&addParamOptions, "options", "", "comma-separated options for select parameters")
	cmd.AddCommand(add)

	set := &cobra.Command{
		Use:   "set <report> <parameter>",
		Short: "Update a parameter",
		Args:  cobra.ExactArgs(2),
		RunE:  runParamSetCmd,
	}
	set.Flags().StringVar(&setParamName, "name", "", "new name")
	set.Flags().StringVar(&setParamType, "type", "", "text, number, date or select")
	set.Flags().BoolVar(&setParamRequired, "required", false, "a value must be supplied at run time")
	set.Flags().StringVar(&setParamDefault, "default", "", "default value")
	set.Flags().StringVar(&setParamOptions, "options", "", "comma-separated options for select parameters")
	cmd.AddCommand(set)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <report> <parameter>",
		Short: "Remove a parameter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, args[0], func(cfg *report.Configuration) error {
				id, err := resolveRef(args[1], parameterIDs(cfg), model.ErrParameterNotFound)
				if err != nil {
					return err
				}
				return cfg.Parameters().Remove(id)
			})
		},
	})
	return cmd
}

func runParamAddCmd(cmd *cobra.Command, args []string) error {
	typ, err := model.ParseParamType(addParamType)
	if err != nil {
		return err
	}
	return mutate(cmd, args[0], func(cfg *report.Configuration) error {
		p, err := cfg.Parameters().Add(args[1], typ, addParamRequired, addParamDefault)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("options") {
			_, err = cfg.Parameters().Update(p.ID, params.Patch{Options: params.ParseOptions(addParamOptions)})
		}
		return err
	})
}

func runParamSetCmd(cmd *cobra.Command, args []string) error {
	var patch params.Patch
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &setParamName
	}
	if flags.Changed("type") {
		typ, err := model.ParseParamType(setParamType)
		if err != nil {
			return err
		}
		patch.Type = &typ
	}
	if flags.Changed("required") {
		patch.Required = &setParamRequired
	}
	if flags.Changed("default") {
		patch.DefaultValue = &setParamDefault
	}
	if flags.Changed("options") {
		patch.Options = params.ParseOptions(setParamOptions)
	}
	return mutate(cmd, args[0], func(cfg *report.Configuration) error {
		id, err := resolveRef(args[1], parameterIDs(cfg), model.ErrParameterNotFound)
		if err != nil {
			return err
		}
		_, err = cfg.Parameters().Update(id, patch)
		return err
	})
}

func parameterIDs(cfg *report.Configuration) []string {
	list := cfg.Parameters().List()
	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	return ids
}
