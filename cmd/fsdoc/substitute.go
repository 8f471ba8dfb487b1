package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grahms/fsdoc"
)

func newSubstituteCmd(a *app) *cobra.Command {
	o := &extractOptions{}
	var prefix string
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "substitute <response.json|-> <file.rst>",
		Short: "Prepend variables as rst substitutions to a document",
		Long: `Extract the variables of a response and prepend them to <file.rst> as
substitution definitions, so the document can use |W.Et| and friends.

Nested variables are flattened as |<parent>_<name>|.

Examples:
  fsdoc substitute response.json docs/Entrance_Tank/LFOM.rst
  fsdoc substitute response.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.fields = []string{"variables"}
			res, err := a.extract(cmd, args[0], o)
			if err != nil {
				return err
			}

			if printOnly || len(args) == 1 {
				for _, line := range fsdoc.SubstitutionLines(res.Variables, prefix) {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}

			if err := fsdoc.PrependSubstitutions(args[1], res.Variables, prefix); err != nil {
				return err
			}
			a.log.Info("prepended substitutions",
				zap.String("file", args[1]),
				zap.Int("variables", len(res.Variables)))
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix for every substitution name")
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the substitutions instead of writing them")
	cmd.Flags().StringVar(&o.typeTag, "type-tag", "", "type tag of documenter attributes (default from config)")
	return cmd
}
