package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newValidateCmd(a *app) *cobra.Command {
	o := &extractOptions{}
	var required []string
	cmd := &cobra.Command{
		Use:   "validate <response.json|->",
		Short: "Check extracted variables against the configured rules",
		Long: `Extract the variables of a response and check them against
validation.required and validation.patterns from the config. Prints "Valid"
or the first failure, and exits non-zero on failure.

Examples:
  fsdoc validate --config fsdoc.yaml response.json
  fsdoc validate --require Q.Plant --require W.Et response.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.validators()
			if err != nil {
				return err
			}
			reg.Require(required...)

			o.fields = []string{"variables"}
			res, err := a.extract(cmd, args[0], o)
			if err != nil {
				return err
			}

			if err := reg.ValidateVariables(res.Variables); err != nil {
				a.log.Warn("validation failed", zap.Error(err))
				fmt.Fprintln(cmd.OutOrStdout(), "Error:", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Valid")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&required, "require", nil, "variable that must be present (repeatable)")
	cmd.Flags().StringVar(&o.typeTag, "type-tag", "", "type tag of documenter attributes (default from config)")
	return cmd
}
