package ui

import (
	"time"

	"pitchdeck/internal/deck"
	"pitchdeck/internal/gate"
	"pitchdeck/internal/logging"
	"pitchdeck/internal/timing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// frameEvery is the UI sampling cadence. Widgets advance on their own
// timers; the frame tick only re-reads their state for drawing.
const frameEvery = 50 * time.Millisecond

// frameMsg is the redraw heartbeat.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// reloadMsg carries a freshly reloaded deck from the file watcher.
type reloadMsg struct {
	deck *deck.Deck
}

// App is the root model. It delegates to one of three pages depending on
// the keeper's stage; the deck page is only built once a grant exists, so
// locked-out viewers never have widget timers running.
type App struct {
	clock  timing.Clock
	keeper *gate.Keeper
	styles Styles
	keys   KeyMap

	deckData *deck.Deck
	reloads  <-chan *deck.Deck

	gatePage   gatePage
	splashPage splashPage
	deckPage   *deckPage

	charts   deck.ChartRenderer
	diagrams deck.DiagramRenderer

	width  int
	height int
}

// NewApp wires the access keeper and the gate page for a loaded deck.
// reloads may be nil when live reload is off.
func NewApp(d *deck.Deck, clock timing.Clock, charts deck.ChartRenderer, diagrams deck.DiagramRenderer, reloads <-chan *deck.Deck) (*App, error) {
	log := logging.Named("gate")
	keeper, err := gate.NewKeeper(clock, d.Gate.Credentials(),
		gate.WithSplash(d.Splash.Duration.Std()),
		gate.WithOnGrant(func(g gate.Grant) {
			log.Info("access granted",
				zap.String("grant_id", g.ID),
				zap.String("role", g.Role))
		}),
	)
	if err != nil {
		return nil, err
	}

	styles := DefaultStyles("")
	return &App{
		clock:    clock,
		keeper:   keeper,
		styles:   styles,
		keys:     DefaultKeyMap(),
		deckData: d,
		reloads:  reloads,
		gatePage: newGatePage(keeper, d.Title, d.Gate.Hint, styles),
		charts:   charts,
		diagrams: diagrams,
	}, nil
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.gatePage.Init(), frameTick(), a.waitForReload())
}

func (a *App) waitForReload() tea.Cmd {
	if a.reloads == nil {
		return nil
	}
	return func() tea.Msg {
		d, ok := <-a.reloads
		if !ok {
			return nil
		}
		return reloadMsg{deck: d}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.gatePage.setSize(msg.Width, msg.Height)
		a.splashPage.setSize(msg.Width, msg.Height)
		if a.deckPage != nil {
			a.deckPage.setSize(msg.Width, msg.Height)
		}
		return a, nil

	case frameMsg:
		var cmd tea.Cmd
		if a.keeper.Stage() == gate.StageUnlocked && a.deckPage != nil {
			cmd, _ = a.deckPage.Update(msg)
		}
		return a, tea.Batch(frameTick(), cmd)

	case grantMsg:
		a.styles = DefaultStyles(msg.grant.Role)
		a.splashPage = newSplashPage(a.deckData.Splash.Headline, a.styles)
		a.buildDeckPage()
		return a, a.splashPage.Init()

	case reloadMsg:
		if msg.deck == nil {
			return a, nil
		}
		a.deckData = msg.deck
		if a.deckPage != nil {
			a.deckPage.setDeck(msg.deck)
		}
		return a, a.waitForReload()

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) && a.keeper.Stage() != gate.StageLocked {
			return a, tea.Quit
		}
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.keeper.Stage() == gate.StageSplash {
			a.keeper.SkipSplash()
			return a, nil
		}
	}

	switch a.keeper.Stage() {
	case gate.StageLocked:
		var cmd tea.Cmd
		a.gatePage, cmd = a.gatePage.Update(msg)
		return a, cmd
	case gate.StageSplash:
		var cmd tea.Cmd
		a.splashPage, cmd = a.splashPage.Update(msg)
		return a, cmd
	default:
		if a.deckPage == nil {
			return a, nil
		}
		cmd, _ := a.deckPage.Update(msg)
		return a, cmd
	}
}

func (a *App) buildDeckPage() {
	a.deckPage = newDeckPage(a.deckData, a.clock, a.charts, a.diagrams, a.styles)
	if a.width > 0 {
		a.deckPage.setSize(a.width, a.height)
	}
}

func (a *App) View() string {
	switch a.keeper.Stage() {
	case gate.StageLocked:
		return a.gatePage.View()
	case gate.StageSplash:
		return a.splashPage.View()
	default:
		if a.deckPage == nil {
			return ""
		}
		return a.deckPage.View()
	}
}

// Close releases every timer the app owns. Call after the program exits.
func (a *App) Close() {
	a.keeper.Dispose()
	if a.deckPage != nil {
		for _, s := range a.deckPage.sections {
			s.dispose()
		}
		if a.deckPage.animator != nil {
			a.deckPage.animator.Stop()
		}
	}
}
