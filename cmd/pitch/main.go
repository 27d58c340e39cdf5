package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"pitchdeck/cmd/pitch/ui"
	"pitchdeck/internal/charts"
	"pitchdeck/internal/config"
	"pitchdeck/internal/deck"
	"pitchdeck/internal/logging"
	"pitchdeck/internal/timing"
	"pitchdeck/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	// Global flags
	verbose bool
	noWatch bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pitch",
	Short: "pitch - gated terminal pitch-deck player",
	Long: `pitch plays a YAML-defined pitch deck in the terminal.

Viewers pass a passphrase gate before the deck unlocks. Sections animate
as they scroll into view: stats count up, carousels auto-advance until
someone interacts, and the comparison slider demos itself until grabbed.

Run "pitch demo" to try it with the built-in sample deck.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(logDir(), verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// logDir keeps the log file out of the way of the fullscreen UI.
func logDir() string {
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "pitch")
	}
	return os.TempDir()
}

// presentCmd plays a deck file.
var presentCmd = &cobra.Command{
	Use:   "present <deck.yaml>",
	Short: "Play a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		d, err := config.Load(path)
		if err != nil {
			return err
		}

		var reloads chan *deck.Deck
		var watcher *watch.DeckWatcher
		if !noWatch {
			reloads = make(chan *deck.Deck, 1)
			watcher, err = watch.NewDeckWatcher(path, func(d *deck.Deck) {
				select {
				case reloads <- d:
				default:
				}
			})
			if err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return present(cmd.Context(), d, watcher, reloads)
	},
}

// demoCmd plays the embedded sample deck.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play the built-in sample deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := config.Sample()
		if err != nil {
			return err
		}
		return present(cmd.Context(), d, nil, nil)
	},
}

// checkCmd validates a deck without playing it.
var checkCmd = &cobra.Command{
	Use:   "check <deck.yaml>",
	Short: "Validate a deck file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := config.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sections, %d passphrases)\n",
			args[0], len(d.Sections), len(d.Gate.Passphrases))
		return nil
	},
}

// present runs the UI, with the deck watcher alongside it when enabled.
func present(ctx context.Context, d *deck.Deck, watcher *watch.DeckWatcher, reloads chan *deck.Deck) error {
	app, err := ui.NewApp(d, timing.NewSystemClock(), charts.NewRenderer(), charts.NewDiagramRenderer(), reloads)
	if err != nil {
		return err
	}
	defer app.Close()

	prog := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if watcher != nil {
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		g.Go(func() error {
			<-ctx.Done()
			watcher.Stop()
			close(reloads)
			return nil
		})
	}
	g.Go(func() error {
		_, err := prog.Run()
		// Releases the watcher goroutine once the UI is gone.
		cancel()
		return err
	})
	go func() {
		<-ctx.Done()
		prog.Quit()
	}()

	return g.Wait()
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write debug logs")
	presentCmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable live reload of the deck file")

	rootCmd.AddCommand(presentCmd, demoCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
