package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/quizter/internal/app"
	"github.com/abhisek/quizter/internal/mathtex"
	"github.com/abhisek/quizter/internal/quiz"
	"github.com/abhisek/quizter/internal/screens/question"
	"github.com/abhisek/quizter/internal/telemetry"
	"github.com/abhisek/quizter/internal/verify"
	"github.com/spf13/cobra"
)

// runApp loads the deck, opens the telemetry store, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	deck, err := loadDeck(cmd)
	if err != nil {
		return err
	}

	mathtex.SetDefault(mathtex.Simple{})

	// Telemetry is best-effort: a broken database should never block play.
	var events telemetry.EventRepo
	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		if st, err := telemetry.Open(dbPath); err == nil {
			defer st.Close()
			events = st
		} else {
			fmt.Fprintln(os.Stderr, "telemetry unavailable:", err)
		}
	}

	demo, _ := cmd.Flags().GetBool("demo")
	settings := quiz.Settings{DemoMode: demo, Entitlement: quiz.EntitlementPremium}
	if demo {
		settings.Entitlement = quiz.EntitlementFree
	}

	simCfg := verify.DefaultSimConfig()
	if delay, err := cmd.Flags().GetDuration("delay"); err == nil && cmd.Flags().Changed("delay") {
		simCfg.Delay = delay
	}
	if flake, err := cmd.Flags().GetFloat64("flake"); err == nil {
		simCfg.FailureRate = flake
	}
	verifier := verify.NewSim(verify.NewStore(), simCfg)

	return app.Run(question.Options{
		Deck:     deck,
		Verifier: verifier,
		Events:   events,
		Settings: settings,
		OnUpgrade: func() {
			// A real build opens the purchase flow. Here the callback only
			// has to be observable.
		},
	})
}

// loadDeck reads the deck named by --deck, falling back to the embedded
// sample deck.
func loadDeck(cmd *cobra.Command) (*quiz.Deck, error) {
	path, _ := cmd.Flags().GetString("deck")
	if path == "" {
		return quiz.SampleDeck(), nil
	}
	deck, err := quiz.LoadDeck(path)
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", path, err)
	}
	return deck, nil
}

func init() {
	rootCmd.PersistentFlags().String("deck", "", "Path to a deck JSON file (default: built-in sample deck)")
	rootCmd.PersistentFlags().Bool("demo", os.Getenv("QUIZTER_DEMO") != "", "Demo mode: explanations are locked behind an upgrade prompt")
	rootCmd.PersistentFlags().Duration("delay", 600*time.Millisecond, "Simulated verification latency")
	rootCmd.PersistentFlags().Float64("flake", 0, "Simulated transient failure rate in [0,1]")
}
