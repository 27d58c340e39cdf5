package ui

import (
	"strings"
	"testing"
	"time"

	"pitchdeck/internal/charts"
	"pitchdeck/internal/deck"
	"pitchdeck/internal/gate"
	"pitchdeck/internal/timing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testDeck(splash time.Duration) *deck.Deck {
	return &deck.Deck{
		Title:    "Horizon Preview",
		Subtitle: "confidential",
		Gate: deck.Gate{
			Passphrases: []deck.Passphrase{
				{Phrase: "letmein", Role: "staff"},
			},
		},
		Splash: deck.Splash{
			Headline: "Warming up",
			Duration: deck.Duration(splash),
		},
		Timings: deck.Timings{
			CarouselInterval:  deck.Duration(5 * time.Second),
			IdleTimeout:       deck.Duration(8 * time.Second),
			CounterDuration:   deck.Duration(2 * time.Second),
			AccordionAutoOpen: deck.Duration(4 * time.Second),
			SliderDemoCycle:   deck.Duration(4 * time.Second),
		},
		Sections: []deck.Section{
			{Kind: deck.KindHero, Title: "Horizon Preview", Body: "A short pitch."},
			{Kind: deck.KindStats, Title: "Numbers", Stats: []deck.Stat{
				{Label: "Users", Value: 1200},
			}},
			{Kind: deck.KindTabs, Title: "Plans", Tabs: []deck.Tab{
				{Label: "Now", Body: "today"},
				{Label: "Next", Body: "tomorrow"},
			}},
		},
	}
}

func newTestApp(t *testing.T, clock timing.Clock, splash time.Duration) *App {
	t.Helper()
	app, err := NewApp(testDeck(splash), clock, charts.NewRenderer(), charts.NewDiagramRenderer(), nil)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func TestAppStartsLocked(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	app := newTestApp(t, clock, 0)

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := app.View()
	assert.Contains(t, view, "Horizon Preview")
	assert.Contains(t, view, "passphrase")
	assert.NotContains(t, view, "Numbers")
}

func TestGatePageDenialClearsInput(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	keeper, err := gate.NewKeeper(clock, []gate.Credential{{Phrase: "letmein"}})
	require.NoError(t, err)
	defer keeper.Dispose()

	page := newGatePage(keeper, "Title", "", DefaultStyles(""))
	page.input.SetValue("wrong")
	page, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, page.denied)
	assert.Empty(t, page.input.Value())
	assert.Contains(t, page.View(), "Incorrect passphrase")
}

func TestGatePageSuccessEmitsGrant(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	keeper, err := gate.NewKeeper(clock, []gate.Credential{{Phrase: "letmein", Role: "staff"}})
	require.NoError(t, err)
	defer keeper.Dispose()

	page := newGatePage(keeper, "Title", "", DefaultStyles(""))
	page.input.SetValue("letmein")
	page, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(grantMsg)
	require.True(t, ok)
	assert.Equal(t, "staff", msg.grant.Role)
	assert.False(t, page.denied)
}

func TestAppUnlocksStraightToDeckWithoutSplash(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	app := newTestApp(t, clock, 0)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	grant, err := app.keeper.Submit("letmein")
	require.NoError(t, err)
	app.Update(grantMsg{grant: grant})

	require.NotNil(t, app.deckPage)
	assert.Equal(t, gate.StageUnlocked, app.keeper.Stage())
	assert.Contains(t, app.View(), "Numbers")
}

func TestAppSplashThenSkip(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	app := newTestApp(t, clock, 2500*time.Millisecond)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	grant, err := app.keeper.Submit("letmein")
	require.NoError(t, err)
	app.Update(grantMsg{grant: grant})

	assert.Equal(t, gate.StageSplash, app.keeper.Stage())
	assert.Contains(t, app.View(), "Warming up")

	// Any key skips ahead without waiting out the timer.
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Equal(t, gate.StageUnlocked, app.keeper.Stage())
}

func TestAppSplashExpires(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	app := newTestApp(t, clock, 2500*time.Millisecond)

	grant, err := app.keeper.Submit("letmein")
	require.NoError(t, err)
	app.Update(grantMsg{grant: grant})

	clock.Advance(2500 * time.Millisecond)
	assert.Equal(t, gate.StageUnlocked, app.keeper.Stage())
}

func TestAppRoleSwapsAccentOnly(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	app := newTestApp(t, clock, 0)

	grant, err := app.keeper.Submit("letmein")
	require.NoError(t, err)
	app.Update(grantMsg{grant: grant})

	assert.Equal(t, roleAccents["staff"], app.styles.Accent)
}

func TestAppReloadRebuildsDeckPage(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	app := newTestApp(t, clock, 0)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	grant, err := app.keeper.Submit("letmein")
	require.NoError(t, err)
	app.Update(grantMsg{grant: grant})

	d := testDeck(0)
	d.Sections[1].Title = "Fresh Numbers"
	app.Update(reloadMsg{deck: d})

	assert.Contains(t, app.View(), "Fresh Numbers")
	// Gate state survives the reload untouched.
	assert.Equal(t, gate.StageUnlocked, app.keeper.Stage())
}

func TestDeckPageCountsUpWhenVisible(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	page := newDeckPage(testDeck(0), clock, charts.NewRenderer(), charts.NewDiagramRenderer(), DefaultStyles(""))
	defer func() {
		for _, s := range page.sections {
			s.dispose()
		}
	}()
	page.setSize(100, 40)

	// Everything fits in 40 rows, so the stats section is visible.
	page.Update(frameMsg(clock.Now()))
	clock.Advance(3 * time.Second)
	page.Update(frameMsg(clock.Now()))

	assert.Contains(t, page.View(), "1,200")
}

func TestDeckPageTabKeyAdvancesTabs(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	page := newDeckPage(testDeck(0), clock, charts.NewRenderer(), charts.NewDiagramRenderer(), DefaultStyles(""))
	defer func() {
		for _, s := range page.sections {
			s.dispose()
		}
	}()
	page.setSize(100, 40)
	page.Update(frameMsg(clock.Now()))

	sel := page.firstVisibleSelector()
	require.NotNil(t, sel)
	require.Equal(t, 0, sel.Active())

	page.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, sel.Active())
}

func TestFormatInt(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		98765:   "98,765",
		1234567: "1,234,567",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatInt(in))
	}
}

func TestMarkdownRendererFallsBackToRawText(t *testing.T) {
	m := newMarkdownRenderer()
	// No renderer yet: raw text passes through.
	assert.Equal(t, "# hi", m.render("# hi"))

	m.setWidth(60)
	out := m.render("plain body")
	assert.True(t, strings.Contains(out, "plain body") || out != "")
}
