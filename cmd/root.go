// Package cmd provides the root command and CLI setup for linkfmt.
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/linkfmt/internal/adapter"
	"github.com/mouse-blink/linkfmt/internal/controller"
	"github.com/mouse-blink/linkfmt/internal/domain"
	m "github.com/mouse-blink/linkfmt/internal/model"
)

var fsAdapter adapter.DocFSAdapter
var workflow domain.Workflow
var ui controller.UI

func init() {
	fsAdapter = adapter.NewLocalDocFSAdapter()
	workflow = domain.NewWorkflow(fsAdapter)
	ui = controller.NewSimpleUI(rootCmd, controller.IsTTY(os.Stdout))
}

var parallelFlag int
var diffFlag bool
var checkFlag bool
var excludeFlags []string

const rootLongDescription = `Linkfmt rewrites markdown links into numbered reference style, scoped per
Hugo shortcode region. Footnote-style definitions are renumbered into a
contiguous 1-based sequence and regenerated as a trailing definition block,
independently inside every tab or other nested shortcode scope.

Files are rewritten in place; a file is only written when its formatted
content differs and the whole pipeline succeeded for it.

Supports Go-style path patterns:
  - docs/...       recursively scan the docs directory
  - guide.md       format a single file
  - a/ b/          scan multiple directories`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkfmt [paths...]",
		Short: "Shortcode-aware markdown reference link formatter",
		Long:  rootLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			results, err := workflow.Run(domain.RunArgs{
				Paths:   parsePaths(args),
				Exclude: excludeFlags,
				Threads: parallelFlag,
				Check:   checkFlag,
				Diff:    diffFlag,
			})
			if err != nil {
				return err
			}

			ui.DisplayResults(results, diffFlag)

			return runError(results)
		},
	}
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1, "number of parallel workers")
	cmd.Flags().BoolVarP(&diffFlag, "diff", "d", false, "print pending changes as a diff instead of writing")
	cmd.Flags().BoolVar(&checkFlag, "check", false, "exit non-zero if any file would change, write nothing")
	cmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// runError folds per-document outcomes into the command's exit status: any
// failed document is an error, and in check mode so is any pending change.
func runError(results []m.FileResult) error {
	var failed, changed int

	for _, result := range results {
		if result.Err != nil {
			failed++
		}

		if result.Changed {
			changed++
		}
	}

	if failed > 0 {
		return errors.New("some files failed to format")
	}

	if checkFlag && changed > 0 {
		return errors.New("some files are not formatted")
	}

	return nil
}
