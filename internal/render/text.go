// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/clp-go/clp/pkg/capability"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	presentStyle = cellStyle.Foreground(lipgloss.Color("#10B981"))
	absentStyle  = cellStyle.Foreground(lipgloss.Color("#6B7280"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func renderText(w io.Writer, snap *capability.Snapshot, o options) error {
	rows := make([][]string, 0)
	kinds := make([]capability.Kind, 0)
	for _, e := range entries(snap, o) {
		rows = append(rows, []string{e.Flag.Category().String(), e.Flag.String(), displayValue(e)})
		kinds = append(kinds, e.Kind)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CATEGORY", "FLAG", "VALUE").
		Rows(rows...)
	if o.styled {
		t = t.BorderStyle(borderStyle).StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2 && row < len(kinds) && kinds[row].IsPresent():
				return presentStyle
			case col == 2:
				return absentStyle
			default:
				return cellStyle
			}
		})
	} else {
		t = t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.UnsetBold()
			}
			return cellStyle
		})
	}

	title := snap.Identity().String()
	if o.styled {
		title = titleStyle.Render(title)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", title, t.Render())
	return err
}

// displayValue is the VALUE column of the text table.
func displayValue(e capability.Entry) string {
	switch e.Kind {
	case capability.KindValued:
		return e.Value.String()
	case capability.KindBoolean:
		return "yes"
	default:
		return "no"
	}
}
