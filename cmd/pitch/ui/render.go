package ui

import (
	"fmt"
	"strings"

	"pitchdeck/internal/deck"
	"pitchdeck/internal/widget"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// markdownRenderer wraps glamour with width tracking and a plain-text
// fallback: body copy should never take a section down with it.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{width: 72}
}

func (m *markdownRenderer) setWidth(w int) {
	if w < 20 {
		w = 20
	}
	if w == m.width && m.renderer != nil {
		return
	}
	m.width = w
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// render returns the markdown as styled terminal text, or the raw source
// when the renderer is unavailable.
func (m *markdownRenderer) render(md string) string {
	if md == "" {
		return ""
	}
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// renderSection draws one section block, applying the reveal treatment.
func (p *deckPage) renderSection(s *sectionState) string {
	var body string
	switch s.cfg.Kind {
	case deck.KindHero:
		body = p.renderHero(s)
	case deck.KindStats, deck.KindBudget:
		body = p.renderStats(s)
	case deck.KindChart:
		body = p.renderChart(s)
	case deck.KindComparison:
		body = p.renderComparison(s)
	case deck.KindCarousel:
		body = p.renderCarousel(s)
	case deck.KindTabs:
		body = p.renderTabs(s)
	case deck.KindFAQ:
		body = p.renderFAQ(s)
	case deck.KindTimeline:
		body = p.renderTimeline(s)
	default:
		body = p.styles.Muted.Render("(unsupported section)")
	}

	if !s.reveal.Revealed() {
		// Off-screen sections keep their space but stay dimmed until the
		// one-shot reveal trips.
		return p.styles.Muted.Faint(true).Render(stripANSIHeightPreserving(body))
	}
	if s.offset > 0.5 {
		return lipgloss.NewStyle().PaddingLeft(int(s.offset)).Render(body)
	}
	return body
}

// stripANSIHeightPreserving blanks styled content while keeping its line
// count, so reveals do not shift the layout when they trip.
func stripANSIHeightPreserving(body string) string {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.Repeat("·", min(3, len(l)))
	}
	return strings.Join(lines, "\n")
}

func (p *deckPage) sectionTitle(s *sectionState) string {
	if s.cfg.Title == "" {
		return ""
	}
	return p.styles.Heading.Render(s.cfg.Title)
}

func (p *deckPage) renderHero(s *sectionState) string {
	parts := []string{
		p.styles.Title.Render(s.cfg.Title),
	}
	if p.deck.Subtitle != "" {
		parts = append(parts, p.styles.Subtitle.Render(p.deck.Subtitle))
	}
	if s.cfg.Body != "" {
		parts = append(parts, "", p.markdown.render(s.cfg.Body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (p *deckPage) renderStats(s *sectionState) string {
	cells := make([]string, 0, len(s.cfg.Stats))
	for i, stat := range s.cfg.Stats {
		value := stat.Value
		if i < len(s.counters) {
			value = s.counters[i].Value()
		}
		cell := lipgloss.JoinVertical(lipgloss.Center,
			p.styles.StatValue.Render(fmt.Sprintf("%s%s%s", stat.Prefix, formatInt(value), stat.Suffix)),
			p.styles.Muted.Render(stat.Label),
		)
		cells = append(cells, p.styles.Panel.Render(cell))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	parts := []string{p.sectionTitle(s), row}
	if s.cfg.Chart != nil {
		parts = append(parts, "", p.renderChartSpec(*s.cfg.Chart))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// formatInt adds thousands separators; budget figures are unreadable
// without them.
func formatInt(v int) string {
	raw := fmt.Sprintf("%d", v)
	if len(raw) <= 3 {
		return raw
	}
	var b strings.Builder
	lead := len(raw) % 3
	if lead > 0 {
		b.WriteString(raw[:lead])
		if len(raw) > lead {
			b.WriteString(",")
		}
	}
	for i := lead; i < len(raw); i += 3 {
		b.WriteString(raw[i : i+3])
		if i+3 < len(raw) {
			b.WriteString(",")
		}
	}
	return b.String()
}

func (p *deckPage) renderChart(s *sectionState) string {
	parts := []string{p.sectionTitle(s)}
	if s.cfg.Chart != nil {
		parts = append(parts, p.renderChartSpec(*s.cfg.Chart))
	}
	if s.cfg.Diagram != "" {
		out, err := p.diagrams.RenderDiagram(s.cfg.Diagram, p.width-4)
		if err != nil {
			out = p.placeholder("diagram unavailable")
		}
		parts = append(parts, out)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (p *deckPage) renderChartSpec(spec deck.ChartSpec) string {
	out, err := p.charts.RenderChart(spec, p.width-4)
	if err != nil {
		// Collaborator failure degrades to a placeholder, never a crash.
		return p.placeholder("chart unavailable")
	}
	return out
}

func (p *deckPage) placeholder(label string) string {
	return p.styles.Panel.Render(p.styles.Muted.Render("⚠ " + label))
}

func (p *deckPage) renderComparison(s *sectionState) string {
	cmp := s.cfg.Comparison
	pos := s.slider.Position()

	barW := p.width - 10
	if barW < 10 {
		barW = 10
	}
	p.progress.Width = barW
	bar := p.progress.ViewAs(pos / 100)

	labels := lipgloss.JoinHorizontal(lipgloss.Top,
		p.styles.TabIdle.Render(cmp.BeforeLabel),
		lipgloss.NewStyle().Width(barW-lipgloss.Width(cmp.BeforeLabel)-lipgloss.Width(cmp.AfterLabel)).Render(""),
		p.styles.TabIdle.Render(cmp.AfterLabel),
	)

	// The dominant side tracks the handle position.
	before, after := p.styles.Muted, p.styles.Body
	if pos < 50 {
		before, after = p.styles.Body, p.styles.Muted
	}
	hint := "drag or use ←/→ to compare"
	if s.slider.UserControlled() {
		hint = fmt.Sprintf("%.0f%%", pos)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		p.sectionTitle(s),
		labels,
		bar,
		p.styles.Muted.Render(hint),
		"",
		before.Render("◀ "+cmp.BeforeBody),
		after.Render("▶ "+cmp.AfterBody),
	)
}

func (p *deckPage) renderCarousel(s *sectionState) string {
	if s.selector == nil {
		return p.sectionTitle(s)
	}
	active := s.selector.Active()
	slide := s.cfg.Slides[active]

	pg := paginator.New()
	pg.Type = paginator.Dots
	pg.ActiveDot = p.styles.StatValue.Render("●")
	pg.InactiveDot = p.styles.Muted.Render("○")
	pg.SetTotalPages(len(s.cfg.Slides))
	pg.Page = active

	panel := p.styles.FocusPanel.Width(p.width - 6).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			p.styles.Heading.Render(slide.Title),
			p.styles.Body.Render(slide.Body),
		))
	return lipgloss.JoinVertical(lipgloss.Left,
		p.sectionTitle(s),
		panel,
		lipgloss.PlaceHorizontal(p.width-6, lipgloss.Center, pg.View()),
	)
}

func (p *deckPage) renderTabs(s *sectionState) string {
	if s.selector == nil {
		return p.sectionTitle(s)
	}
	active := s.selector.Active()

	headers := make([]string, 0, len(s.cfg.Tabs))
	for i, tab := range s.cfg.Tabs {
		style := p.styles.TabIdle
		if i == active {
			style = p.styles.TabActive
		}
		headers = append(headers, style.Render(tab.Label))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.sectionTitle(s),
		strings.Join(headers, p.styles.Muted.Render("  │  ")),
		"",
		p.styles.Body.Render(s.cfg.Tabs[active].Body),
	)
}

func (p *deckPage) renderFAQ(s *sectionState) string {
	open := widget.NoPanel
	if s.accordion != nil {
		open = s.accordion.Open()
	}
	rows := []string{p.sectionTitle(s)}
	for i, item := range s.cfg.FAQ {
		marker := "▸"
		if i == open {
			marker = "▾"
		}
		rows = append(rows, p.styles.Heading.Render(fmt.Sprintf("%s %s", marker, item.Question)))
		if i == open {
			rows = append(rows, p.markdown.render(item.Answer))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (p *deckPage) renderTimeline(s *sectionState) string {
	rows := []string{p.sectionTitle(s)}
	for _, item := range s.cfg.Timeline {
		rows = append(rows, fmt.Sprintf("%s %s %s — %s",
			p.styles.StatValue.Render(item.Date),
			p.styles.Muted.Render("│"),
			p.styles.Heading.Render(item.Title),
			p.styles.Body.Render(item.Description),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
