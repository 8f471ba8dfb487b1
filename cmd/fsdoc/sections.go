package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grahms/fsdoc/rst"
)

func newSectionsCmd(a *app) *cobra.Command {
	var mode string
	var strict bool
	cmd := &cobra.Command{
		Use:   "sections <file.rst>",
		Short: "List the sections of an index or process document",
		Long: `List the line ranges of the sections fsdoc merges by.

In outline mode (index files) a section is a toctree directive up to its
second blank line. In headings mode (process descriptions) a section starts
at each heading label.

Examples:
  fsdoc sections docs/index.rst
  fsdoc sections --mode headings docs/Introduction/Treatment_Process.rst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := rst.ReadLines(args[0])
			if err != nil {
				return err
			}

			var sections []rst.Section
			switch mode {
			case "outline":
				if strict {
					sections, err = rst.ScanOutlineStrict(lines, a.cfg.Outline.Start, a.cfg.Outline.End)
				} else {
					sections = rst.ScanOutline(lines, a.cfg.Outline.Start, a.cfg.Outline.End)
				}
			case "headings":
				sections = rst.ScanHeadings(lines, a.cfg.Headings.Delimiter)
			default:
				return fmt.Errorf("unknown mode %q (want outline or headings)", mode)
			}

			fmt.Fprint(cmd.OutOrStdout(), rst.Describe(lines, sections))
			return err
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "outline", "section kind: outline or headings")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on an outline section left open at end of file")
	return cmd
}
