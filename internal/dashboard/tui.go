// Package dashboard is the interactive terminal view of an analysis report.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/skillradar/internal/analysis"
	"github.com/amishk599/skillradar/internal/report"
)

type tab int

const (
	tabOverview tab = iota
	tabTopSkills
	tabHeatmap
	tabNetwork
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Top skills", "Heatmap", "Network"}

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#01cdfe"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("240"))

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("#171738")).
			Background(lipgloss.Color("#ff71ce"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
)

type dashboardModel struct {
	report   analysis.Report
	source   string // where the dataset came from, shown in the status bar
	active   tab
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func newModel(r analysis.Report, source string) dashboardModel {
	return dashboardModel{report: r, source: source}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.switchTab((m.active + 1) % tabCount)
			return m, nil
		case "shift+tab", "left", "h":
			m.switchTab((m.active + tabCount - 1) % tabCount)
			return m, nil
		case "1", "2", "3", "4":
			m.switchTab(tab(msg.String()[0] - '1'))
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	// Remaining keys (j/k, arrows, pgup/pgdn) scroll the active tab.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *dashboardModel) switchTab(t tab) {
	if t == m.active {
		return
	}
	m.active = t
	if m.ready {
		m.viewport.SetContent(m.renderTab())
		m.viewport.GotoTop()
	}
}

func (m *dashboardModel) recalcLayout() {
	// Tab row (1) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	width := max(m.width-2, 20)
	height := max(m.height-4, 5)

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.viewport.SetContent(m.renderTab())
}

// renderTab renders the body of the active tab for the current width.
func (m dashboardModel) renderTab() string {
	width := m.viewport.Width
	switch m.active {
	case tabTopSkills:
		return report.Bars(m.report.TopSkills, width)
	case tabHeatmap:
		return report.Heatmap(m.report.Heatmap)
	case tabNetwork:
		return report.Network(m.report.Network)
	default:
		return report.Overview(m.report, width)
	}
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	tabs := make([]string, tabCount)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.active {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	content := activeBorderStyle.Width(m.viewport.Width).Render(m.viewport.View())

	status := []string{fmt.Sprintf(" %d vacancies", m.report.Total)}
	if m.source != "" {
		status = append(status, m.source)
	}
	status = append(status, "tab/←/→/1-4 switch  j/k scroll  q quit")
	statusBar := statusBarStyle.Width(m.width).Render(strings.Join(status, " | "))

	return tabRow + "\n" + content + "\n" + statusBar
}

// Run launches the full-screen dashboard for r. source names where the
// dataset came from.
func Run(r analysis.Report, source string) error {
	p := tea.NewProgram(newModel(r, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
