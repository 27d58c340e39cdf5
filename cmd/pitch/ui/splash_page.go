package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// splashPage fills the gap between grant and deck. Dismissal is driven by
// the keeper's splash timer; any key skips ahead.
type splashPage struct {
	headline string
	spin     spinner.Model
	styles   Styles

	width  int
	height int
}

func newSplashPage(headline string, styles Styles) splashPage {
	sp := spinner.New(spinner.WithSpinner(spinner.Points))
	sp.Style = lipgloss.NewStyle().Foreground(styles.Accent)
	return splashPage{
		headline: headline,
		spin:     sp,
		styles:   styles,
	}
}

func (p splashPage) Init() tea.Cmd {
	return p.spin.Tick
}

func (p splashPage) Update(msg tea.Msg) (splashPage, tea.Cmd) {
	var cmd tea.Cmd
	p.spin, cmd = p.spin.Update(msg)
	return p, cmd
}

func (p *splashPage) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p splashPage) View() string {
	headline := p.headline
	if headline == "" {
		headline = "Getting things ready"
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		p.styles.Title.Render(headline),
		"",
		p.spin.View(),
		"",
		p.styles.Muted.Render("press any key to skip"),
	)
	if p.width == 0 {
		return content
	}
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, content)
}
