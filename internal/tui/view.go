package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/bayanflow/bayan-flow/internal/algorithms/pathfinding"
	"github.com/bayanflow/bayan-flow/internal/algorithms/sorting"
	"github.com/bayanflow/bayan-flow/internal/i18n"
)

//nolint:gochecknoglobals // render palette.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	badgeStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	barColors = map[sorting.ElementState]lipgloss.Color{
		sorting.Default:   "69",
		sorting.Comparing: "226",
		sorting.Swapping:  "196",
		sorting.Sorted:    "46",
		sorting.Pivot:     "201",
		sorting.Auxiliary: "208",
	}
	cellColors = map[pathfinding.CellState]lipgloss.Color{
		pathfinding.Default: "236",
		pathfinding.Open:    "39",
		pathfinding.Closed:  "61",
		pathfinding.Path:    "226",
		pathfinding.Start:   "46",
		pathfinding.End:     "196",
		pathfinding.Wall:    "252",
	}
	sortingLegend = []sorting.ElementState{
		sorting.Default, sorting.Comparing, sorting.Swapping, sorting.Sorted, sorting.Pivot,
	}
	pathLegend = []pathfinding.CellState{
		pathfinding.Start, pathfinding.End, pathfinding.Open, pathfinding.Closed, pathfinding.Path, pathfinding.Wall,
	}
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.tutorial.Visible() {
		return m.tutorial.View()
	}
	if m.screen == screenPicker {
		return lipgloss.JoinVertical(lipgloss.Left,
			renderHeader(m.tr),
			m.picker.View(),
			m.help.ShortHelpView([]key.Binding{m.keys.Select, m.keys.Language, m.keys.Quit}),
		)
	}

	board := renderBoard(m)
	if m.flow.Enabled() {
		return lipgloss.JoinVertical(lipgloss.Left,
			board,
			subtitleStyle.Render(m.tr.T("flow.hint", nil)),
		)
	}

	var b strings.Builder
	b.WriteString(renderStatusLine(m))
	b.WriteString("\n\n")
	b.WriteString(board)
	b.WriteString("\n")
	b.WriteString(renderProgress(m))
	b.WriteString("\n")
	b.WriteString(renderDescription(m))
	b.WriteString("\n")
	b.WriteString(renderLegend(m))
	if m.player.Complete() {
		b.WriteString("\n")
		b.WriteString(renderComplexity(m))
	}
	b.WriteString("\n\n")
	if m.helpVisible {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func renderHeader(tr *i18n.Translator) string {
	return titleStyle.Render(tr.T("header.title", nil)) + "  " +
		subtitleStyle.Render(tr.T("header.subtitle", nil)) + "\n"
}

// renderStatusLine shows the algorithm name then mode, speed and sound badges.
func renderStatusLine(m Model) string {
	t := func(k string) string { return m.tr.T(k, nil) }
	mode := badgeStyle.Foreground(lipgloss.Color("69")).Render(t("modes." + string(m.player.Mode())))
	speed := badgeStyle.Foreground(lipgloss.Color("245")).Render(t(speedKey(m.player.Speed())))
	sound := badgeStyle.Foreground(lipgloss.Color("240")).Render(t("sound.off"))
	if m.sound.Enabled() {
		sound = badgeStyle.Foreground(lipgloss.Color("46")).Render(t("sound.on"))
	}
	left := titleStyle.Render(m.algo.Name)
	right := mode + speed + sound
	if m.player.Playing() {
		right = badgeStyle.Foreground(lipgloss.Color("226")).Render("▶") + right
	}
	pad := max(1, m.contentWidth()-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", pad) + right
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width
	}
	return pickerWidth
}

func (m Model) boardHeight() int {
	if m.height == 0 {
		return boardMinHeight * 2
	}
	chrome := chromeLines
	if m.flow.Enabled() {
		chrome = 1
	}
	return min(boardMaxHeight, max(boardMinHeight, m.height-chrome))
}

func renderBoard(m Model) string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}
	f, ok := m.player.Current()
	switch {
	case !ok:
		return ""
	case f.Sort != nil:
		return renderBars(*f.Sort, m.contentWidth(), m.boardHeight())
	case f.Path != nil:
		return renderGrid(*f.Path)
	default:
		return ""
	}
}

// renderBars draws one vertical bar per element, scaled to the largest value.
func renderBars(s sorting.Step, width, height int) string {
	if len(s.Array) == 0 || height <= 0 {
		return ""
	}
	top := max(1, slices.Max(s.Array))
	gap := ""
	if len(s.Array)*2 <= width {
		gap = " "
	}
	heights := make([]int, len(s.Array))
	for i, v := range s.Array {
		heights[i] = max(1, (max(v, 0)*height+top-1)/top)
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		for i := range s.Array {
			cell := " "
			if heights[i] >= row {
				cell = lipgloss.NewStyle().Foreground(barColors[stateAt(s.States, i)]).Render("█")
			}
			b.WriteString(cell)
			b.WriteString(gap)
		}
		if row > 1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func stateAt(states []sorting.ElementState, i int) sorting.ElementState {
	if i < len(states) {
		return states[i]
	}
	return sorting.Default
}

// renderGrid draws each cell two columns wide.
func renderGrid(s pathfinding.Step) string {
	cell := strings.Repeat("█", gridCellWidth)
	lines := make([]string, len(s.States))
	for r, row := range s.States {
		var b strings.Builder
		for _, st := range row {
			b.WriteString(lipgloss.NewStyle().Foreground(cellColors[st]).Render(cell))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func renderProgress(m Model) string {
	total := m.player.Total()
	if total == 0 {
		return ""
	}
	p := m.progress
	p.Width = max(10, m.contentWidth()-24)
	pct := 1.0
	if total > 1 {
		pct = float64(m.player.Index()) / float64(total-1)
	}
	step := m.tr.T("info.step", i18n.Args{"current": m.player.Index() + 1, "total": total})
	if m.player.Complete() {
		step = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.tr.T("info.complete", nil))
	}
	return p.ViewAs(pct) + "  " + step
}

func renderDescription(m Model) string {
	f, ok := m.player.Current()
	if !ok {
		return ""
	}
	return m.tr.Render(f.Description())
}

func renderLegend(m Model) string {
	f, ok := m.player.Current()
	if !ok {
		return ""
	}
	var parts []string
	if f.Sort != nil {
		for _, st := range sortingLegend {
			parts = append(parts, legendEntry(barColors[st], m.tr.T("legend.sorting."+string(st), nil)))
		}
	} else {
		for _, st := range pathLegend {
			parts = append(parts, legendEntry(cellColors[st], m.tr.T("legend.pathfinding."+string(st), nil)))
		}
	}
	return subtitleStyle.Render(strings.Join(parts, "  "))
}

func legendEntry(c lipgloss.Color, label string) string {
	return lipgloss.NewStyle().Foreground(c).Render("■") + " " + label
}

func renderComplexity(m Model) string {
	c := m.algo.Complexity
	t := func(k string) string { return m.tr.T("complexity."+k, nil) }
	return fmt.Sprintf("%s  %s %s · %s %s · %s %s · %s %s",
		titleStyle.Render(t("title")),
		t("best"), c.Best, t("average"), c.Average, t("worst"), c.Worst, t("space"), c.Space)
}
