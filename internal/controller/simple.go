package controller

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/linkfmt/internal/model"
)

// Severity prefix styles. Colors only apply when the output is a terminal.
var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// SimpleUI implements UI using the cobra command's writer.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a SimpleUI. Severity prefixes are colorized only when
// color is true.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// Info prints an informational message.
func (s *SimpleUI) Info(format string, args ...any) {
	s.printf("%s: %s\n", s.render(infoStyle, "INFO"), fmt.Sprintf(format, args...))
}

// Warn prints a warning message.
func (s *SimpleUI) Warn(format string, args ...any) {
	s.printf("%s: %s\n", s.render(warnStyle, "WARN"), fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (s *SimpleUI) Error(format string, args ...any) {
	s.printf("%s: %s\n", s.render(errorStyle, "ERROR"), fmt.Sprintf(format, args...))
}

// DisplayResults renders per-document outcomes followed by a summary table.
func (s *SimpleUI) DisplayResults(results []m.FileResult, withDiff bool) {
	var changed, failed int

	for _, result := range results {
		for _, diag := range result.Diagnostics {
			if diag.Severity == m.SeverityError {
				s.Error("%s: %s (scope %s)", result.Path, diag.Message, diag.Scope)
			} else {
				s.Warn("%s: %s (scope %s)", result.Path, diag.Message, diag.Scope)
			}
		}

		switch {
		case result.Err != nil:
			failed++

			s.Error("%v", result.Err)
		case result.Changed:
			changed++

			s.Info("formatted %s", result.Path)

			if withDiff {
				s.printf("%s", renderDiff(result.Before, result.After))
			}
		}
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Files", "Changed", "Failed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.Append([]string{
		fmt.Sprintf("%d", len(results)),
		fmt.Sprintf("%d", changed),
		fmt.Sprintf("%d", failed),
	})
	table.Render()

	s.printf("\n%s", tableBuffer.String())
}

// DisplayStats renders the list view table.
func (s *SimpleUI) DisplayStats(stats []m.DocumentStats) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Title", "Shortcodes", "Links", "Definitions"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	var links int

	for _, stat := range stats {
		table.Append([]string{
			string(stat.Path),
			stat.Title,
			fmt.Sprintf("%d", stat.Shortcodes),
			fmt.Sprintf("%d", stat.Links),
			fmt.Sprintf("%d", stat.Definitions),
		})

		links += stat.Links
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(stats)),
		"",
		"",
		fmt.Sprintf("%d", links),
		"",
	})
	table.Render()

	s.printf("\n%s", tableBuffer.String())
}

func (s *SimpleUI) render(style lipgloss.Style, label string) string {
	if !s.color {
		return label
	}

	return style.Render(label)
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
