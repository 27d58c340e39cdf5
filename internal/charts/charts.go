// Package charts is the built-in chart collaborator: horizontal bars,
// donut-style share legends, and sparklines drawn with lipgloss. It
// implements deck.ChartRenderer; the player treats it like any external
// collaborator and falls back to a placeholder when it errors.
package charts

import (
	"fmt"
	"math"
	"strings"

	"pitchdeck/internal/deck"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// defaultPalette seeds series colors when a series does not name one.
var defaultPalette = []string{"#4db6ac", "#e57373", "#ffd54f", "#29434e", "#ff8a65"}

// Renderer draws deck chart specs as terminal blocks.
type Renderer struct {
	labelStyle lipgloss.Style
	titleStyle lipgloss.Style
}

// NewRenderer creates the built-in chart renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		labelStyle: lipgloss.NewStyle().Faint(true),
		titleStyle: lipgloss.NewStyle().Bold(true),
	}
}

// RenderChart draws the spec at the given width.
func (r *Renderer) RenderChart(spec deck.ChartSpec, width int) (string, error) {
	if width < 20 {
		return "", fmt.Errorf("%w: width %d too narrow", deck.ErrUnavailable, width)
	}
	if len(spec.Series) == 0 {
		return "", fmt.Errorf("%w: no series", deck.ErrUnavailable)
	}

	var body string
	switch spec.Kind {
	case deck.ChartBar:
		body = r.bars(spec, width)
	case deck.ChartDonut:
		body = r.shares(spec, width)
	case deck.ChartSparkline:
		body = r.sparklines(spec, width)
	default:
		return "", fmt.Errorf("%w: unknown chart kind %q", deck.ErrUnavailable, spec.Kind)
	}

	if spec.Title == "" {
		return body, nil
	}
	return lipgloss.JoinVertical(lipgloss.Left, r.titleStyle.Render(spec.Title), body), nil
}

// bars renders one horizontal bar per series, scaled to the series maxima.
func (r *Renderer) bars(spec deck.ChartSpec, width int) string {
	labelW := 0
	max := 0.0
	for _, s := range spec.Series {
		if len(s.Label) > labelW {
			labelW = len(s.Label)
		}
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}
	barW := width - labelW - 10
	if barW < 5 {
		barW = 5
	}

	rows := make([]string, 0, len(spec.Series))
	for i, s := range spec.Series {
		total := 0.0
		for _, v := range s.Values {
			total += v
		}
		value := total
		if len(s.Values) == 1 {
			value = s.Values[0]
		}
		filled := int(math.Round(value / max * float64(barW)))
		if filled > barW {
			filled = barW
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barW-filled)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColor(s, i)))
		rows = append(rows, fmt.Sprintf("%-*s %s %s",
			labelW, s.Label, style.Render(bar), r.labelStyle.Render(formatValue(value))))
	}
	return strings.Join(rows, "\n")
}

// shares renders a donut chart as proportional segments with a legend;
// terminal cells are a poor fit for arcs, shares carry the same data.
func (r *Renderer) shares(spec deck.ChartSpec, width int) string {
	total := 0.0
	for _, s := range spec.Series {
		if len(s.Values) > 0 {
			total += s.Values[0]
		}
	}
	if total <= 0 {
		total = 1
	}

	ringW := width - 4
	if ringW < 10 {
		ringW = 10
	}
	var ring strings.Builder
	rows := make([]string, 0, len(spec.Series)+1)
	for i, s := range spec.Series {
		if len(s.Values) == 0 {
			continue
		}
		share := s.Values[0] / total
		cells := int(math.Round(share * float64(ringW)))
		if cells < 1 {
			cells = 1
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColor(s, i)))
		ring.WriteString(style.Render(strings.Repeat("▓", cells)))
		rows = append(rows, fmt.Sprintf("%s %s %s",
			style.Render("■"), s.Label, r.labelStyle.Render(fmt.Sprintf("%.0f%%", share*100))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{ring.String()}, rows...)...)
}

// sparklines renders each series as a compact block-rune trend line.
func (r *Renderer) sparklines(spec deck.ChartSpec, width int) string {
	rows := make([]string, 0, len(spec.Series))
	for i, s := range spec.Series {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		span := hi - lo
		if span == 0 {
			span = 1
		}
		var line strings.Builder
		for _, v := range s.Values {
			idx := int((v - lo) / span * float64(len(sparkRunes)-1))
			line.WriteRune(sparkRunes[idx])
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColor(s, i)))
		rows = append(rows, fmt.Sprintf("%s %s", style.Render(line.String()), r.labelStyle.Render(s.Label)))
	}
	return strings.Join(rows, "\n")
}

// seriesColor picks the configured color or a readable palette fallback.
func seriesColor(s deck.Series, idx int) string {
	if s.Color != "" {
		if _, err := colorful.Hex(s.Color); err == nil {
			return s.Color
		}
	}
	return defaultPalette[idx%len(defaultPalette)]
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// DiagramRenderer boxes a textual diagram description. It stands in for a
// full diagram collaborator; anything it cannot fit reports unavailable
// so the player degrades to a placeholder.
type DiagramRenderer struct {
	box lipgloss.Style
}

// NewDiagramRenderer creates the built-in diagram collaborator.
func NewDiagramRenderer() *DiagramRenderer {
	return &DiagramRenderer{
		box: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// RenderDiagram draws the source in a bordered block.
func (d *DiagramRenderer) RenderDiagram(source string, width int) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", fmt.Errorf("%w: empty diagram", deck.ErrUnavailable)
	}
	if width < 10 {
		return "", fmt.Errorf("%w: width %d too narrow", deck.ErrUnavailable, width)
	}
	return d.box.Width(width - 2).Render(source), nil
}
