// Package config loads and validates deck files. Defaults fill any
// timing the file leaves out, and a handful of PITCH_* environment
// variables override the file for rehearsals and CI.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"pitchdeck/internal/deck"

	"gopkg.in/yaml.v3"
)

//go:embed sample_deck.yaml
var sampleDeck []byte

// Default widget cadences, applied when the deck file omits them. The
// source decks disagreed on the idle timeout and splash duration, so
// these are deliberately just defaults, not canon.
const (
	DefaultCarouselInterval  = 5 * time.Second
	DefaultIdleTimeout       = 8 * time.Second
	DefaultCounterDuration   = 2 * time.Second
	DefaultAccordionAutoOpen = 4 * time.Second
	DefaultSliderDemoCycle   = 4 * time.Second
)

// Environment variables recognized by applyEnv.
const (
	EnvPassphrase       = "PITCH_PASSPHRASE"
	EnvSplashDuration   = "PITCH_SPLASH_DURATION"
	EnvIdleTimeout      = "PITCH_IDLE_TIMEOUT"
	EnvCarouselInterval = "PITCH_CAROUSEL_INTERVAL"
)

// Load reads, defaults, env-overrides, and validates a deck file.
func Load(path string) (*deck.Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse builds a deck from yaml bytes. Same pipeline as Load.
func Parse(raw []byte) (*deck.Deck, error) {
	var d deck.Deck
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("config: parse deck: %w", err)
	}
	applyDefaults(&d)
	if err := applyEnv(&d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &d, nil
}

// Sample returns the embedded demo deck.
func Sample() (*deck.Deck, error) {
	return Parse(sampleDeck)
}

func applyDefaults(d *deck.Deck) {
	t := &d.Timings
	if t.CarouselInterval == 0 {
		t.CarouselInterval = deck.Duration(DefaultCarouselInterval)
	}
	if t.IdleTimeout == 0 {
		t.IdleTimeout = deck.Duration(DefaultIdleTimeout)
	}
	if t.CounterDuration == 0 {
		t.CounterDuration = deck.Duration(DefaultCounterDuration)
	}
	if t.AccordionAutoOpen == 0 {
		t.AccordionAutoOpen = deck.Duration(DefaultAccordionAutoOpen)
	}
	if t.SliderDemoCycle == 0 {
		t.SliderDemoCycle = deck.Duration(DefaultSliderDemoCycle)
	}
}

// applyEnv lets the environment override the file. PITCH_PASSPHRASE adds
// an extra operator passphrase rather than replacing the deck's own.
func applyEnv(d *deck.Deck) error {
	if phrase := os.Getenv(EnvPassphrase); phrase != "" {
		d.Gate.Passphrases = append(d.Gate.Passphrases, deck.Passphrase{
			Phrase: phrase,
			Role:   "operator",
		})
	}
	for env, dst := range map[string]*deck.Duration{
		EnvSplashDuration:   &d.Splash.Duration,
		EnvIdleTimeout:      &d.Timings.IdleTimeout,
		EnvCarouselInterval: &d.Timings.CarouselInterval,
	} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", env, val, err)
		}
		*dst = deck.Duration(parsed)
	}
	return nil
}
