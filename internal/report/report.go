// Package report renders an analysis.Report as styled terminal text.
package report

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/skillradar/internal/analysis"
	"github.com/amishk599/skillradar/internal/cooccur"
	"github.com/amishk599/skillradar/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	barStyle   = lipgloss.NewStyle().Foreground(colorBar)
	nodeStyle  = lipgloss.NewStyle().Foreground(colorNode).Bold(true)
	linkStyle  = lipgloss.NewStyle().Foreground(colorAccent)
)

// Label truncation limits of the heatmap and network charts.
const (
	heatmapLabelMax  = 10
	heatmapLabelKeep = 8
	networkLabelMax  = 8
	networkLabelKeep = 6
	minBarWidth      = 10
)

// Truncate cuts s to keep runes plus "..." when it is longer than limit runes.
func Truncate(s string, limit, keep int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:keep]) + "..."
}

// Render renders every section of r for a terminal of the given width.
func Render(r analysis.Report, width int) string {
	sections := []string{
		section("Overview", Overview(r, width)),
		section("Top skills", Bars(r.TopSkills, width)),
		section("Skill co-occurrence", Heatmap(r.Heatmap)),
		section("Skill network", Network(r.Network)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func section(title, body string) string {
	return titleStyle.Render(title) + "\n" + body + "\n"
}

// Overview renders the totals and the with/without skills split.
func Overview(r analysis.Report, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Vacancies analysed:"), r.Total)
	fmt.Fprintf(&b, "%s %d (%.1f%%)\n", labelStyle.Render("With skills:      "), r.WithSkills, 100*analysis.Share(r.WithSkills, r.Total))
	fmt.Fprintf(&b, "%s %d (%.1f%%)\n", labelStyle.Render("Without skills:   "), r.WithoutSkills, 100*analysis.Share(r.WithoutSkills, r.Total))
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Distinct skills:  "), r.DistinctSkills)
	if r.Errors > 0 {
		fmt.Fprintf(&b, "%s %d\n", mutedStyle.Render("Failed to fetch:  "), r.Errors)
	}

	if r.Total > 0 {
		w := max(width-2, minBarWidth)
		with := int(float64(w)*analysis.Share(r.WithSkills, r.Total) + 0.5)
		b.WriteString(lipgloss.NewStyle().Foreground(colorAccent).Render(strings.Repeat("█", with)))
		b.WriteString(lipgloss.NewStyle().Foreground(colorNode).Render(strings.Repeat("█", w-with)))
		b.WriteString("\n")
	}
	return b.String()
}

// Bars renders a horizontal bar per skill, scaled to the largest count.
func Bars(skills []model.SkillFrequency, width int) string {
	if len(skills) == 0 {
		return mutedStyle.Render("no skills") + "\n"
	}

	labelW, top := 0, 0
	for _, s := range skills {
		labelW = max(labelW, lipgloss.Width(s.Skill))
		top = max(top, s.Count)
	}
	countW := len(strconv.Itoa(top))
	barW := max(width-labelW-countW-3, minBarWidth)

	var b strings.Builder
	for _, s := range skills {
		n := 0
		if top > 0 {
			n = min(max(s.Count*barW/top, 0), barW)
		}
		label := lipgloss.NewStyle().Width(labelW).Render(s.Skill)
		fmt.Fprintf(&b, "%s %s %*d\n", label, barStyle.Render(strings.Repeat("█", n)+strings.Repeat(" ", barW-n)), countW, s.Count)
	}
	return b.String()
}

// Heatmap renders m as a grid of coloured cells with row and column labels.
func Heatmap(m cooccur.Matrix) string {
	if m.Size() == 0 {
		return mutedStyle.Render("no skills") + "\n"
	}

	labels := make([]string, m.Size())
	labelW, cellW := 0, len(strconv.Itoa(m.Max()))+2
	for i, l := range m.Labels {
		labels[i] = Truncate(l, heatmapLabelMax, heatmapLabelKeep)
		labelW = max(labelW, lipgloss.Width(labels[i]))
	}
	cellW = max(cellW, 4)

	var b strings.Builder
	// Column legend: index numbers keep the grid narrow.
	b.WriteString(strings.Repeat(" ", labelW+1))
	for i := range labels {
		b.WriteString(mutedStyle.Width(cellW).Align(lipgloss.Center).Render(strconv.Itoa(i + 1)))
	}
	b.WriteString("\n")

	hi := m.Max()
	for i, row := range m.Cells {
		b.WriteString(lipgloss.NewStyle().Width(labelW).Align(lipgloss.Right).Render(labels[i]))
		b.WriteString(" ")
		for _, v := range row {
			bg := HeatColor(v, hi)
			cell := lipgloss.NewStyle().
				Width(cellW).
				Align(lipgloss.Center).
				Background(lipgloss.Color(bg.Hex())).
				Foreground(textOn(bg))
			b.WriteString(cell.Render(strconv.Itoa(v)))
		}
		fmt.Fprintf(&b, " %s\n", mutedStyle.Render(strconv.Itoa(i+1)))
	}
	return b.String()
}

// Network renders the node list and the edges, strongest first.
func Network(n cooccur.Network) string {
	if len(n.Nodes) == 0 {
		return mutedStyle.Render("no skills") + "\n"
	}

	var b strings.Builder
	nodes := make([]string, len(n.Nodes))
	for i, node := range n.Nodes {
		nodes[i] = fmt.Sprintf("%s %s", nodeStyle.Render("● "+Truncate(node.Skill, networkLabelMax, networkLabelKeep)), mutedStyle.Render(strconv.Itoa(node.Count)))
	}
	b.WriteString(strings.Join(nodes, "  "))
	b.WriteString("\n\n")

	if len(n.Edges) == 0 {
		b.WriteString(mutedStyle.Render("no co-occurring pairs") + "\n")
		return b.String()
	}

	edges := strongestFirst(n.Edges)
	w := 0
	for _, e := range edges {
		w = max(w, lipgloss.Width(e.Source))
	}
	for _, e := range edges {
		src := lipgloss.NewStyle().Width(w).Render(e.Source)
		fmt.Fprintf(&b, "%s %s %s %s\n", src, linkStyle.Render(strings.Repeat("─", min(e.Count, 20))+"─"), e.Target, mutedStyle.Render("("+strconv.Itoa(e.Count)+")"))
	}
	return b.String()
}

// strongestFirst orders edges by descending count, keeping the pair order on ties.
func strongestFirst(edges []cooccur.Edge) []cooccur.Edge {
	out := append([]cooccur.Edge(nil), edges...)
	slices.SortStableFunc(out, func(a, b cooccur.Edge) int { return b.Count - a.Count })
	return out
}
