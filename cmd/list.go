package cmd

import (
	"github.com/spf13/cobra"
)

const listLongDescription = `List discovered markdown files with their shortcode, link and reference
definition counts. No file is modified.`

// listCmd represents the list command.
var listCmd = newListCmd()
var listExcludeFlags []string

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List markdown files and link counts",
		Long:  listLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			stats, err := workflow.Stats(parsePaths(args), listExcludeFlags)
			if err != nil {
				return err
			}

			ui.DisplayStats(stats)

			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&listExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
