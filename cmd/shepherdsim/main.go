// Command shepherdsim is the CLI host for the Epoch Driver: it spawns one
// shepherd subprocess per positional argument, runs the configured number
// of epochs, and prints a summary of the final simulation state. It reads
// no environment variables, and every tunable it doesn't expose keeps
// simulation.DefaultSettings.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nodeflock/shepherdsim/ids"
	"github.com/nodeflock/shepherdsim/shepherd"
	"github.com/nodeflock/shepherdsim/simulation"
)

var (
	nEpochs      int
	databasePath string
)

var rootCmd = &cobra.Command{
	Use:           "shepherdsim [flags] SHEPHERD_PATH...",
	Short:         "Run a shepherd ecosystem simulation against one or more shepherd executables",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  false,
	SilenceErrors: false,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().IntVarP(&nEpochs, "n-epochs", "n", 1, "number of epochs to simulate (non-negative)")
	rootCmd.Flags().StringVarP(&databasePath, "database", "d", "", "database path forwarded to every spawned shepherd (collaborator surface; ignored by the core)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := validateNEpochs(nEpochs); err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	channels, err := spawnShepherds(args, logger)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	sim, err := simulation.New(rng, channels, simulation.DefaultSettings(), logger)
	if err != nil {
		return fmt.Errorf("shepherdsim: %w", err)
	}

	for epoch := 0; epoch < nEpochs; epoch++ {
		if err := sim.SimulateEpoch(rng); err != nil {
			return fmt.Errorf("shepherdsim: %w", err)
		}
	}

	summary, err := sim.Stop()
	if err != nil {
		return fmt.Errorf("shepherdsim: %w", err)
	}

	fmt.Printf(
		"final_epoch=%d n_tags=%d n_sheep=%d n_items=%d n_groups=%d n_orphans=%d\n",
		summary.FinalEpoch, len(summary.Tags), len(summary.Sheep), len(summary.Items),
		len(summary.Groups), summary.Orphans.Len(),
	)

	return nil
}

// validateNEpochs rejects a negative epoch count; cobra/pflag already
// reject a non-integer value before this runs.
func validateNEpochs(n int) error {
	if n < 0 {
		return fmt.Errorf("shepherdsim: --n-epochs must be non-negative, got %d", n)
	}

	return nil
}

// childArgsFor builds the argv suffix forwarded to every spawned shepherd.
// db is empty unless -d/--database was given on the host's own command
// line; shepherds that ignore their argv (dummy-shepherd) are unaffected.
func childArgsFor(db string) []string {
	if db == "" {
		return nil
	}

	return []string{"-d", db}
}

// spawnShepherds launches one subprocess per path, appending -d/--database
// to each child's own argv when set: the flag is forwarded, not
// interpreted, by the core. On any spawn failure it stops the channels
// already opened before returning the error.
func spawnShepherds(paths []string, logger zerolog.Logger) ([]simulation.Channel, error) {
	channels := make([]simulation.Channel, 0, len(paths))

	for i, path := range paths {
		childArgs := childArgsFor(databasePath)

		runLogger := logger.With().Stringer("spawn_id", uuid.New()).Logger()

		ch, err := shepherd.Spawn(ids.ShepherdID(i), path, childArgs, runLogger)
		if err != nil {
			for _, opened := range channels {
				_ = opened.Stop()
			}

			return nil, fmt.Errorf("shepherdsim: spawning shepherd #%d (%s): %w", i, path, err)
		}

		channels = append(channels, ch)
	}

	return channels, nil
}
