// Package deck defines the content model for a presentation: sections,
// stats, FAQ entries, timeline milestones, chart data, and the gate
// settings. The engine treats all of this as external configuration; deck
// data flows into widgets, never back out.
package deck

import (
	"fmt"
	"time"

	"pitchdeck/internal/gate"
	"pitchdeck/internal/widget"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with yaml "5s"-style parsing.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration back to its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// SectionKind enumerates the section layouts the player knows.
type SectionKind string

const (
	KindHero       SectionKind = "hero"
	KindStats      SectionKind = "stats"
	KindChart      SectionKind = "chart"
	KindComparison SectionKind = "comparison"
	KindCarousel   SectionKind = "carousel"
	KindTabs       SectionKind = "tabs"
	KindFAQ        SectionKind = "faq"
	KindTimeline   SectionKind = "timeline"
	KindBudget     SectionKind = "budget"
)

// Deck is a complete presentation.
type Deck struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`

	Gate    Gate    `yaml:"gate"`
	Splash  Splash  `yaml:"splash"`
	Timings Timings `yaml:"timings"`

	// Background shapes for the ambient animator.
	Background []widget.Shape `yaml:"background"`

	Sections []Section `yaml:"sections"`
}

// Gate holds the allowlist in front of the deck.
type Gate struct {
	Passphrases []Passphrase `yaml:"passphrases"`
	Hint        string       `yaml:"hint"`
}

// Passphrase is one allowlist entry; the role only picks cosmetics.
type Passphrase struct {
	Phrase string `yaml:"phrase"`
	Role   string `yaml:"role"`
}

// Splash configures the optional post-login splash. A zero duration skips
// the splash entirely.
type Splash struct {
	Headline string   `yaml:"headline"`
	Duration Duration `yaml:"duration"`
}

// Timings are the tunable widget cadences. The source material disagrees
// with itself on the idle timeout and splash duration, so both are
// configuration here rather than hardcoded.
type Timings struct {
	CarouselInterval Duration `yaml:"carousel_interval"`
	IdleTimeout      Duration `yaml:"idle_timeout"`
	CounterDuration  Duration `yaml:"counter_duration"`
	AccordionAutoOpen Duration `yaml:"accordion_auto_open"`
	SliderDemoCycle  Duration `yaml:"slider_demo_cycle"`
}

// Section is one scrollable block of the deck. Which fields matter
// depends on Kind.
type Section struct {
	Kind  SectionKind `yaml:"kind"`
	Title string      `yaml:"title"`
	Body  string      `yaml:"body"` // markdown

	Stats      []Stat         `yaml:"stats"`
	Chart      *ChartSpec     `yaml:"chart"`
	Diagram    string         `yaml:"diagram"`
	Comparison *Comparison    `yaml:"comparison"`
	FAQ        []FAQItem      `yaml:"faq"`
	Timeline   []TimelineItem `yaml:"timeline"`
	Slides     []Slide        `yaml:"slides"`
	Tabs       []Tab          `yaml:"tabs"`
}

// Stat is one counted headline figure.
type Stat struct {
	Label  string `yaml:"label"`
	Value  int    `yaml:"value"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

// FAQItem is one accordion panel.
type FAQItem struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"` // markdown
}

// TimelineItem is one milestone row.
type TimelineItem struct {
	Date        string `yaml:"date"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Slide is one carousel entry.
type Slide struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Tab is one labelled tab pane.
type Tab struct {
	Label string `yaml:"label"`
	Body  string `yaml:"body"`
}

// Comparison labels the two sides of the draggable slider.
type Comparison struct {
	BeforeLabel string `yaml:"before_label"`
	AfterLabel  string `yaml:"after_label"`
	BeforeBody  string `yaml:"before_body"`
	AfterBody   string `yaml:"after_body"`
}

// ChartKind enumerates what the built-in chart collaborator can draw.
type ChartKind string

const (
	ChartBar      ChartKind = "bar"
	ChartDonut    ChartKind = "donut"
	ChartSparkline ChartKind = "sparkline"
)

// ChartSpec is the declarative data+layout object handed to the chart
// collaborator untouched.
type ChartSpec struct {
	Kind   ChartKind `yaml:"kind"`
	Title  string    `yaml:"title"`
	Series []Series  `yaml:"series"`
}

// Series is one labelled numeric series.
type Series struct {
	Label  string    `yaml:"label"`
	Values []float64 `yaml:"values"`
	Color  string    `yaml:"color"`
}

// Validate checks the deck for configurations that would fail mid-show.
// Everything rejectable is rejected here, at load time.
func (d *Deck) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("deck: title is required")
	}
	if len(d.Gate.Passphrases) == 0 {
		return fmt.Errorf("deck: gate needs at least one passphrase")
	}
	for i, p := range d.Gate.Passphrases {
		if p.Phrase == "" {
			return fmt.Errorf("deck: gate passphrase %d is empty", i)
		}
	}
	if len(d.Sections) == 0 {
		return fmt.Errorf("deck: no sections")
	}
	for i, s := range d.Background {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("deck: background shape %d: %w", i, err)
		}
	}
	for i := range d.Sections {
		if err := d.Sections[i].validate(); err != nil {
			return fmt.Errorf("deck: section %d (%s): %w", i, d.Sections[i].Kind, err)
		}
	}
	return nil
}

func (s *Section) validate() error {
	switch s.Kind {
	case KindHero:
		if s.Title == "" {
			return fmt.Errorf("hero needs a title")
		}
	case KindStats, KindBudget:
		if len(s.Stats) == 0 {
			return fmt.Errorf("%s section has no stats", s.Kind)
		}
		for i, st := range s.Stats {
			if st.Value < 0 {
				return fmt.Errorf("stat %d (%s): negative value", i, st.Label)
			}
		}
	case KindChart:
		if s.Chart == nil && s.Diagram == "" {
			return fmt.Errorf("chart section has neither chart nor diagram")
		}
		if s.Chart != nil {
			if err := s.Chart.validate(); err != nil {
				return err
			}
		}
	case KindComparison:
		if s.Comparison == nil {
			return fmt.Errorf("comparison section has no comparison block")
		}
	case KindCarousel:
		if len(s.Slides) == 0 {
			return fmt.Errorf("carousel has no slides")
		}
	case KindTabs:
		if len(s.Tabs) == 0 {
			return fmt.Errorf("tabs section has no tabs")
		}
	case KindFAQ:
		if len(s.FAQ) == 0 {
			return fmt.Errorf("faq section has no entries")
		}
		for i, q := range s.FAQ {
			if q.Question == "" {
				return fmt.Errorf("faq entry %d has no question", i)
			}
		}
	case KindTimeline:
		if len(s.Timeline) == 0 {
			return fmt.Errorf("timeline has no items")
		}
	default:
		return fmt.Errorf("unknown section kind %q", s.Kind)
	}
	return nil
}

func (c *ChartSpec) validate() error {
	switch c.Kind {
	case ChartBar, ChartDonut, ChartSparkline:
	default:
		return fmt.Errorf("unknown chart kind %q", c.Kind)
	}
	if len(c.Series) == 0 {
		return fmt.Errorf("chart %q has no series", c.Title)
	}
	for i, s := range c.Series {
		if len(s.Values) == 0 {
			return fmt.Errorf("chart %q series %d (%s) has no values", c.Title, i, s.Label)
		}
	}
	return nil
}

// Credentials converts the gate config into gate.Keeper credentials.
// Kept here so the conversion stays next to the yaml shape it mirrors.
func (g Gate) Credentials() []gate.Credential {
	creds := make([]gate.Credential, len(g.Passphrases))
	for i, p := range g.Passphrases {
		creds[i] = gate.Credential{Phrase: p.Phrase, Role: p.Role}
	}
	return creds
}
