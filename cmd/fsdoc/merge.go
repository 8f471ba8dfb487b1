package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grahms/fsdoc/rst"
)

func newMergeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge rst documents section by section",
	}
	cmd.AddCommand(
		newMergeSubCmd(a, "index",
			"Merge a new index into an existing one",
			`Merge the toctree sections of <new> into <old>. Sections with the same
caption are united, and sections only in <old> are kept. <old> is overwritten
and <new> is removed.`,
			(*rst.Merger).PlanIndex, true),
		newMergeSubCmd(a, "process",
			"Append missing treatment processes to an existing description",
			`Append every heading section of <new> that <old> lacks to the end of
<old>. Existing sections are not changed. <old> is overwritten and <new> is
kept.`,
			(*rst.Merger).PlanProcess, false),
	)
	return cmd
}

type planFunc func(m *rst.Merger, newPath, oldPath string) (*rst.Plan, error)

func newMergeSubCmd(a *app, name, short, long string, plan planFunc, removeNew bool) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   name + " <new> <old>",
		Short: short,
		Long:  long + "\n\nWith --dry-run the change is printed as a unified diff and nothing is written.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newPath, oldPath := args[0], args[1]
			p, err := plan(a.merger(), newPath, oldPath)
			if err != nil {
				return err
			}

			if dryRun {
				diff, err := p.Diff()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), diff)
				return nil
			}

			if err := p.Write(); err != nil {
				return err
			}
			if removeNew {
				if err := os.Remove(newPath); err != nil {
					return err
				}
			}
			a.log.Info("merged document",
				zap.String("kind", name),
				zap.String("from", newPath),
				zap.String("into", oldPath),
				zap.Bool("changed", p.Changed()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the merge as a diff without writing")
	return cmd
}
