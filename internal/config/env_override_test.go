package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv_PassphraseAddsOperatorEntry(t *testing.T) {
	t.Setenv(EnvPassphrase, "backstage-2026")

	d, err := Parse([]byte(minimalDeck))
	require.NoError(t, err)

	require.Len(t, d.Gate.Passphrases, 2)
	assert.Equal(t, "open-sesame", d.Gate.Passphrases[0].Phrase, "file passphrase must survive")
	assert.Equal(t, "backstage-2026", d.Gate.Passphrases[1].Phrase)
	assert.Equal(t, "operator", d.Gate.Passphrases[1].Role)
}

func TestEnv_DurationOverridesBeatFileAndDefaults(t *testing.T) {
	t.Setenv(EnvIdleTimeout, "12s")
	t.Setenv(EnvCarouselInterval, "2s")
	t.Setenv(EnvSplashDuration, "1s")

	d, err := Parse([]byte(minimalDeck + `
timings:
  idle_timeout: 6s
`))
	require.NoError(t, err)

	assert.Equal(t, 12*time.Second, d.Timings.IdleTimeout.Std())
	assert.Equal(t, 2*time.Second, d.Timings.CarouselInterval.Std())
	assert.Equal(t, time.Second, d.Splash.Duration.Std())
}

func TestEnv_BadDurationFailsLoudly(t *testing.T) {
	t.Setenv(EnvIdleTimeout, "whenever")

	_, err := Parse([]byte(minimalDeck))
	assert.Error(t, err)
}

func TestEnv_UnsetLeavesDefaults(t *testing.T) {
	d, err := Parse([]byte(minimalDeck))
	require.NoError(t, err)
	assert.Equal(t, DefaultIdleTimeout, d.Timings.IdleTimeout.Std())
	assert.Len(t, d.Gate.Passphrases, 1)
}
