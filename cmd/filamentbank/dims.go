package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/filabank/filabank/bank"
	"github.com/spf13/cobra"
)

var dimsCmd = &cobra.Command{
	Use:   "dims [config]",
	Short: "Print the derived dimensions of a bank",
	Long: `Prints every dimension derived from the config, in the order they
are computed. Without a config the defaults are used. Constraint
violations are listed after the table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDims,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935"))
)

func runDims(cmd *cobra.Command, args []string) error {
	cfg := bank.DefaultConfig()
	if len(args) == 1 {
		var err error
		if cfg, err = bank.Load(args[0]); err != nil {
			return err
		}
	}
	w := cmd.OutOrStdout()
	writeDims(w, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(w, errorStyle.Render(err.Error()))
		return errors.New("config has constraint violations")
	}
	return nil
}

func writeDims(w io.Writer, cfg *bank.Config) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d filaments, %s)", cfg.Name, cfg.FilamentCount, cfg.Matter())))
	dims := cfg.Dimensions()
	rows := make([][]string, len(dims))
	for i, d := range dims {
		rows[i] = []string{d.Name, fmt.Sprintf("%.3f", d.Value), d.Unit}
		if d.Unit == bank.Count {
			rows[i][1] = fmt.Sprintf("%g", d.Value)
		}
	}
	fmt.Fprint(w, newTable([]string{"dimension", "value", "unit"}, rows))
}

// newTable lays out rows in left aligned columns under a styled header.
func newTable(header []string, rows [][]string) string {
	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Inherit(headerStyle)
			}
			return cellStyle
		})
	return t.String() + "\n"
}
