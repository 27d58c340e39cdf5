package ui

import (
	"errors"

	"pitchdeck/internal/gate"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// gatePage is the passphrase screen. It owns only the input field and the
// denial message; the access state machine itself lives in gate.Keeper.
type gatePage struct {
	keeper *gate.Keeper
	input  textinput.Model
	title  string
	hint   string
	denied bool
	styles Styles

	width  int
	height int
}

func newGatePage(keeper *gate.Keeper, title, hint string, styles Styles) gatePage {
	ti := textinput.New()
	ti.Placeholder = "passphrase"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 64
	ti.Width = 32
	ti.Focus()

	return gatePage{
		keeper: keeper,
		input:  ti,
		title:  title,
		hint:   hint,
		styles: styles,
	}
}

func (p gatePage) Init() tea.Cmd {
	return textinput.Blink
}

// grantMsg reports a successful submission to the root model.
type grantMsg struct {
	grant *gate.Grant
}

func (p gatePage) Update(msg tea.Msg) (gatePage, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		grant, err := p.keeper.Submit(p.input.Value())
		if err != nil {
			if errors.Is(err, gate.ErrDenied) {
				// Recoverable by design: clear and let them retry.
				p.denied = true
				p.input.SetValue("")
				return p, nil
			}
			return p, nil
		}
		p.denied = false
		return p, func() tea.Msg { return grantMsg{grant: grant} }
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *gatePage) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p gatePage) View() string {
	lines := []string{
		p.styles.Title.Render(p.title),
		"",
		p.styles.Body.Render("This preview is gated. Enter the passphrase to continue."),
		"",
		p.input.View(),
	}
	if p.denied {
		lines = append(lines, "", p.styles.Error.Render("Incorrect passphrase"))
	} else if p.hint != "" {
		lines = append(lines, "", p.styles.Muted.Render(p.hint))
	}

	box := p.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if p.width == 0 {
		return box
	}
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
}
