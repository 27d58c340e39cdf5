package ui

import (
	"fmt"
	"sync"

	"pitchdeck/internal/deck"
	"pitchdeck/internal/logging"
	"pitchdeck/internal/timing"
	"pitchdeck/internal/widget"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// canvasBandHeight is the ambient animation strip above the deck.
const canvasBandHeight = 4

// revealSlideOffset is the left indent a section springs in from when
// its reveal trips.
const revealSlideOffset = 8.0

// sectionState pairs a section's content with the widget instances that
// animate it. Widgets are owned here exclusively and disposed together.
type sectionState struct {
	cfg       deck.Section
	reveal    *widget.Reveal
	counters  []*widget.Counter
	selector  *widget.Selector
	slider    *widget.Slider
	accordion *widget.Accordion

	// Spring state for the slide-in after the reveal trips.
	offset float64
	vel    float64

	// Rendered extent inside the viewport content, in lines.
	top    int
	height int
}

func (s *sectionState) dispose() {
	if s.selector != nil {
		s.selector.Dispose()
	}
	if s.slider != nil {
		s.slider.Dispose()
	}
	if s.accordion != nil {
		s.accordion.Dispose()
	}
	for _, c := range s.counters {
		c.Dispose()
	}
}

// deckPage scrolls the unlocked presentation. Each widget runs its own
// timers off the shared clock; the page samples their state every frame
// and routes input to whichever visible section can take it.
type deckPage struct {
	deck   *deck.Deck
	clock  timing.Clock
	styles Styles
	keys   KeyMap

	viewport viewport.Model
	sections []*sectionState

	animator *widget.Animator
	frameMu  sync.Mutex
	frame    []widget.DrawCommand

	charts   deck.ChartRenderer
	diagrams deck.DiagramRenderer
	markdown *markdownRenderer

	progress progress.Model
	spring   harmonica.Spring

	dragging bool

	width  int
	height int
	ready  bool
}

func newDeckPage(d *deck.Deck, clock timing.Clock, charts deck.ChartRenderer, diagrams deck.DiagramRenderer, styles Styles) *deckPage {
	p := &deckPage{
		deck:     d,
		clock:    clock,
		styles:   styles,
		keys:     DefaultKeyMap(),
		charts:   charts,
		diagrams: diagrams,
		markdown: newMarkdownRenderer(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		spring:   harmonica.NewSpring(harmonica.FPS(20), 6.0, 0.6),
	}
	p.buildSections()
	return p
}

// buildSections creates widget state for every section of the current deck.
func (p *deckPage) buildSections() {
	t := p.deck.Timings
	p.sections = make([]*sectionState, 0, len(p.deck.Sections))
	for _, cfg := range p.deck.Sections {
		st := &sectionState{cfg: cfg, reveal: widget.NewReveal(nil), offset: revealSlideOffset}
		switch cfg.Kind {
		case deck.KindStats, deck.KindBudget:
			for _, stat := range cfg.Stats {
				c, err := widget.NewCounter(p.clock, stat.Value, t.CounterDuration.Std(), widget.EaseOutCubic)
				if err != nil {
					logging.Named("widget").Warn("counter skipped", zap.String("label", stat.Label), zap.Error(err))
					continue
				}
				st.counters = append(st.counters, c)
			}
		case deck.KindCarousel:
			st.selector = mustSelector(p.clock, len(cfg.Slides), t)
		case deck.KindTabs:
			st.selector = mustSelector(p.clock, len(cfg.Tabs), t)
		case deck.KindComparison:
			st.slider = widget.NewSlider(p.clock,
				widget.WithDemoCycle(t.SliderDemoCycle.Std(), 20, 80))
		case deck.KindFAQ:
			a, err := widget.NewAccordion(p.clock, len(cfg.FAQ), t.AccordionAutoOpen.Std())
			if err == nil {
				st.accordion = a
			}
		}
		p.sections = append(p.sections, st)
	}
}

func mustSelector(clock timing.Clock, total int, t deck.Timings) *widget.Selector {
	s, err := widget.NewSelector(clock, total, t.CarouselInterval.Std(), t.IdleTimeout.Std())
	if err != nil {
		logging.Named("widget").Warn("selector skipped", zap.Error(err))
		return nil
	}
	return s
}

// setDeck swaps content after a live reload. Widgets restart (the new
// deck may have different sections); gate state is not ours and survives
// untouched.
func (p *deckPage) setDeck(d *deck.Deck) {
	for _, s := range p.sections {
		s.dispose()
	}
	p.deck = d
	p.buildSections()
	p.restartAnimator()
	p.refreshContent()
}

func (p *deckPage) setSize(w, h int) {
	p.width = w
	p.height = h
	bodyH := h - canvasBandHeight - 2 // band + footer
	if bodyH < 1 {
		bodyH = 1
	}
	if !p.ready {
		p.viewport = viewport.New(w, bodyH)
		p.ready = true
	} else {
		p.viewport.Width = w
		p.viewport.Height = bodyH
	}
	p.markdown.setWidth(w - 8)
	p.restartAnimator()
	p.refreshContent()
}

// restartAnimator rebuilds the ambient animation for the current size.
func (p *deckPage) restartAnimator() {
	if p.animator != nil {
		p.animator.Stop()
		p.animator = nil
	}
	if len(p.deck.Background) == 0 || p.width == 0 {
		return
	}
	a, err := widget.StartAnimator(p.clock, float64(p.width), canvasBandHeight, p.deck.Background, func(cmds []widget.DrawCommand) {
		p.frameMu.Lock()
		p.frame = cmds
		p.frameMu.Unlock()
	})
	if err != nil {
		// Malformed shapes are rejected up front; the deck runs without
		// its backdrop rather than glitching mid-loop.
		logging.Named("widget").Warn("background animation disabled", zap.Error(err))
		return
	}
	p.animator = a
}

func (p *deckPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case frameMsg:
		p.updateVisibility()
		for _, s := range p.sections {
			if s.reveal.Revealed() && s.offset > 0 {
				s.offset, s.vel = p.spring.Update(s.offset, s.vel, 0)
				if s.offset < 0 {
					s.offset = 0
				}
			}
		}
		p.refreshContent()
		return nil, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.NextPane):
			if s := p.firstVisibleSelector(); s != nil {
				s.Next()
			}
			return nil, true
		case key.Matches(msg, p.keys.PrevPane):
			if s := p.firstVisibleSelector(); s != nil {
				s.Prev()
			}
			return nil, true
		case key.Matches(msg, p.keys.Toggle):
			p.toggleVisibleAccordion()
			return nil, true
		case key.Matches(msg, p.keys.SlideLeft):
			if s := p.firstVisibleSlider(); s != nil {
				s.Nudge(-5)
				return nil, true
			}
		case key.Matches(msg, p.keys.SlideRight):
			if s := p.firstVisibleSlider(); s != nil {
				s.Nudge(5)
				return nil, true
			}
		}

	case tea.MouseMsg:
		p.handleMouse(msg)
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd, false
}

// handleMouse routes pointer input to the visible comparison slider.
// Drag tracking keeps following the pointer outside the slider row.
func (p *deckPage) handleMouse(msg tea.MouseMsg) {
	s := p.firstVisibleSlider()
	if s == nil {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			p.dragging = true
			s.SetBounds(4, float64(p.width-8))
			s.PointerDown(float64(msg.X))
			s.PointerMove(float64(msg.X))
		}
	case tea.MouseActionMotion:
		if p.dragging {
			s.PointerMove(float64(msg.X))
		}
	case tea.MouseActionRelease:
		if p.dragging {
			p.dragging = false
			s.PointerUp()
		}
	}
}

// updateVisibility feeds each section's viewport overlap into its
// reveal, counters and selector.
func (p *deckPage) updateVisibility() {
	if !p.ready {
		return
	}
	topLine := p.viewport.YOffset
	bottomLine := topLine + p.viewport.Height
	for _, s := range p.sections {
		visible := s.top < bottomLine && s.top+s.height > topLine
		s.reveal.SetVisible(visible)
		for _, c := range s.counters {
			c.SetVisible(visible)
		}
		if s.selector != nil {
			s.selector.SetVisible(visible)
		}
	}
}

func (p *deckPage) firstVisibleSelector() *widget.Selector {
	for _, s := range p.visibleSections() {
		if s.selector != nil {
			return s.selector
		}
	}
	return nil
}

func (p *deckPage) firstVisibleSlider() *widget.Slider {
	for _, s := range p.visibleSections() {
		if s.slider != nil {
			return s.slider
		}
	}
	return nil
}

func (p *deckPage) toggleVisibleAccordion() {
	for _, s := range p.visibleSections() {
		if s.accordion == nil {
			continue
		}
		// Toggle the open panel closed, or open the first one.
		idx := s.accordion.Open()
		if idx == widget.NoPanel {
			idx = 0
		}
		_ = s.accordion.Toggle(idx)
		return
	}
}

func (p *deckPage) visibleSections() []*sectionState {
	if !p.ready {
		return nil
	}
	topLine := p.viewport.YOffset
	bottomLine := topLine + p.viewport.Height
	var out []*sectionState
	for _, s := range p.sections {
		if s.top < bottomLine && s.top+s.height > topLine {
			out = append(out, s)
		}
	}
	return out
}

// refreshContent re-renders all sections and records their line extents
// for visibility tracking.
func (p *deckPage) refreshContent() {
	if !p.ready {
		return
	}
	blocks := make([]string, 0, len(p.sections))
	line := 0
	for _, s := range p.sections {
		block := p.renderSection(s)
		h := lipgloss.Height(block) + 1 // trailing blank line
		s.top = line
		s.height = h
		line += h
		blocks = append(blocks, block, "")
	}
	p.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func (p *deckPage) View() string {
	if !p.ready {
		return "loading deck..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.renderCanvasBand(),
		p.viewport.View(),
		p.renderFooter(),
	)
}

// renderCanvasBand draws the latest animator frame as colored glyphs on
// an otherwise empty strip.
func (p *deckPage) renderCanvasBand() string {
	p.frameMu.Lock()
	frame := p.frame
	p.frameMu.Unlock()

	grid := make([][]rune, canvasBandHeight)
	colors := make([][]string, canvasBandHeight)
	for y := range grid {
		grid[y] = make([]rune, p.width)
		colors[y] = make([]string, p.width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	for _, cmd := range frame {
		x, y := int(cmd.X), int(cmd.Y)
		if x < 0 || x >= p.width || y < 0 || y >= canvasBandHeight {
			continue
		}
		grid[y][x] = shapeRune(cmd.Sides)
		colors[y][x] = cmd.Color
	}

	rows := make([]string, canvasBandHeight)
	for y := range grid {
		var row string
		for x := range grid[y] {
			ch := string(grid[y][x])
			if colors[y][x] != "" {
				ch = lipgloss.NewStyle().Foreground(lipgloss.Color(colors[y][x])).Render(ch)
			}
			row += ch
		}
		rows[y] = row
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func shapeRune(sides int) rune {
	switch {
	case sides == 3:
		return '▲'
	case sides == 4:
		return '■'
	case sides <= 6:
		return '⬢'
	default:
		return '●'
	}
}

func (p *deckPage) renderFooter() string {
	pct := int(p.viewport.ScrollPercent() * 100)
	help := " ↑/↓ scroll • tab next slide • enter faq • ←/→ compare • q quit"
	return p.styles.Footer.Render(fmt.Sprintf("%s • %d%%", help, pct))
}
