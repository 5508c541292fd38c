package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/layout"
)

// layoutsCommand creates the layouts command.
func (c *CLI) layoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Inspect the layout directory",
	}

	cmd.AddCommand(c.layoutsListCommand())
	cmd.AddCommand(c.layoutsCheckCommand())

	return cmd
}

// layoutsListCommand creates the "layouts list" subcommand.
func (c *CLI) layoutsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the loaded layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			reg, err := cfg.LoadLayouts(c.Logger)
			if err != nil {
				return err
			}
			return writeLayoutTable(cmd.OutOrStdout(), reg)
		},
	}
}

func writeLayoutTable(w io.Writer, reg *layout.Registry) error {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	var rows [][]string
	for _, k := range reg.Keys() {
		tmpl, err := reg.Get(k.WordClass, k.Size)
		if err != nil {
			return err
		}
		cells, err := tmpl.InflectionCells()
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			k.WordClass.String(),
			k.Size.String(),
			fmt.Sprint(len(tmpl.Panes())),
			fmt.Sprint(tmpl.MaxNumColumns()),
			fmt.Sprint(len(cells)),
			reg.Source(k),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Word class", "Size", "Panes", "Columns", "Cells", "File").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 5 {
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// layoutsCheckCommand creates the "layouts check" subcommand.
func (c *CLI) layoutsCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [DIR]",
		Short: "Verify that every layout file parses and round-trips",
		Long: `Verify every layout file in DIR (default: the configured layout directory).

Each file must be named <word-class>-<size>.layout.tsv with a known word class
token, parse without errors, and serialize back to exactly its own text.
Files of unsupported sizes are reported and skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.Layouts.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			names, err := cfg.LayoutNames()
			if err != nil {
				return err
			}
			return runLayoutsCheck(dir, names)
		},
	}
}

func runLayoutsCheck(dir string, names layout.Names) error {
	reports, err := layout.Check(dir, names)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		switch {
		case r.Skipped:
			printWarning("%s: unsupported paradigm size, skipped", r.File)
		case !r.OK():
			failed++
			printError("%s", r.File)
			printDetail("%s", errors.UserMessage(r.Err))
		default:
			printSuccess("%s %s", r.File, StyleDim.Render(fmt.Sprintf("(%s: %d panes, %d columns, %d cells)", r.Key, r.Panes, r.Columns, r.Cells)))
		}
	}

	if failed > 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "%d of %d layouts failed", failed, len(reports))
	}
	printInfo("All %d layouts OK", len(reports))
	printNextStep("Fill a paradigm", appName+" fill LEMMA WORDCLASS --layouts "+dir)
	return nil
}
