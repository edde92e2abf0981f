package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bayanflow/bayan-flow/internal/algorithms"
	"github.com/bayanflow/bayan-flow/internal/i18n"
)

// algorithmItem is the list item backing one catalog entry.
type algorithmItem struct {
	Info  algorithms.Info
	Group string
}

// List item interface methods.
func (it algorithmItem) Title() string       { return it.Info.Name }
func (it algorithmItem) Description() string { return it.Info.Complexity.Average }
func (it algorithmItem) FilterValue() string { return it.Info.Name + " " + it.Info.ID }

func pickerItems(tr *i18n.Translator) []list.Item {
	all := algorithms.All()
	items := make([]list.Item, 0, len(all))
	for _, a := range all {
		items = append(items, algorithmItem{Info: a, Group: tr.T("picker."+string(a.Kind), nil)})
	}
	return items
}

// pickerDelegate renders one row: index and name on the left, group and
// average complexity right-justified.
type pickerDelegate struct{}

func (d pickerDelegate) Height() int                             { return 1 }
func (d pickerDelegate) Spacing() int                            { return 0 }
func (d pickerDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d pickerDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(algorithmItem)
	if !ok {
		return
	}
	selected := index == m.Index()
	leftPrefix := "  "
	lineStyle := lipgloss.NewStyle()
	if selected {
		leftPrefix = "> "
		lineStyle = lineStyle.Foreground(lipgloss.Color("69")).Bold(true)
	}

	left := fmt.Sprintf("%s%02d. %s", leftPrefix, index+1, it.Title())
	right := kindStyle(it.Info.Kind).Render(it.Group) + " " + it.Description()

	padding := max(1, m.Width()-lipgloss.Width(left)-lipgloss.Width(right))
	line := left + spaces(padding) + right
	_, _ = fmt.Fprint(w, lineStyle.Render(line))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(n).Render("")
}

func kindStyle(k algorithms.Kind) lipgloss.Style {
	switch k {
	case algorithms.KindSorting:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	case algorithms.KindPathfinding:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	}
}
