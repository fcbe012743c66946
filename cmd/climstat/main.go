package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"climstat/adapters/backend"
	"climstat/adapters/stats/engine"
	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/domain/stats"
	"climstat/internal"
	"climstat/internal/testkit"
)

func main() {
	// Optional .env for LOG_LEVEL and friends; absence is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "climstat",
		Short: "Statistic engine for gridded climate time series",
	}
	rootCmd.AddCommand(newListCmd(), newDemoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// describe prefixes errors with their domain category so a failed sweep tells
// the operator whether to fix the config, the statistic name or the data.
func describe(err error) string {
	switch {
	case core.IsConfigError(err):
		return "configuration error: " + err.Error()
	case core.IsDispatchError(err):
		return "dispatch error: " + err.Error()
	case core.IsExecutionError(err):
		return "execution error: " + err.Error()
	}
	return err.Error()
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available statistics and their default options",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := engine.Statistics()
			sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
			for _, stat := range keys {
				defaults, _ := stats.DefaultSettings(stat)
				fmt.Printf("%s\n", stat)
				for _, opt := range defaults.Keys() {
					fmt.Printf("    %-20s %v\n", opt, defaults[opt])
				}
			}
			return nil
		},
	}
}

func newDemoCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a statistics sweep over synthetic data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), workers)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel chunk workers (0 = GOMAXPROCS)")
	return cmd
}

// runDemo exercises a representative slice of the registry over synthetic
// temperature and precipitation fields.
func runDemo(ctx context.Context, workers int) error {
	log := internal.DefaultLogger
	eng := engine.New(backend.NewLocal(workers))

	start := time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC)
	times := testkit.HourlyTimes(start, 24*365)
	tas := testkit.TemperatureDataset(times, 8, 8)
	pr := testkit.PrecipDataset(times, 8, 8)

	requested := map[core.StatisticKey]any{
		"moments":         map[string]any{"moment stat": []string{"D", "mean"}},
		"seasonal cycle":  stats.UseDefaults,
		"annual cycle":    stats.UseDefaults,
		"diurnal cycle":   stats.UseDefaults,
		"dcycle harmonic": stats.UseDefaults,
		"percentile":      map[string]any{"pctls": []float64{90, 95, 99}},
		"pdf":             map[string]any{"thr": 0.1, "normalized": true},
		"asop":            map[string]any{"nr_bins": 50},
		"Rxx":             map[string]any{"thr": 1.0, "normalize": true},
	}
	resolved, err := stats.Resolve(requested)
	if err != nil {
		return err
	}

	for _, stat := range []core.StatisticKey{
		"moments", "seasonal cycle", "annual cycle", "diurnal cycle", "dcycle harmonic",
	} {
		if err := report(ctx, eng, tas, "tas", stat, resolved[stat]); err != nil {
			return err
		}
	}
	for _, stat := range []core.StatisticKey{"percentile", "pdf", "asop", "Rxx"} {
		if err := report(ctx, eng, pr, "pr", stat, resolved[stat]); err != nil {
			return err
		}
	}

	log.Info("Demo sweep finished")
	return nil
}

func report(ctx context.Context, eng *engine.Engine, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) error {
	started := time.Now()
	result, err := eng.Calculate(ctx, ds, variable, stat, cfg)
	if err != nil {
		return fmt.Errorf("%s on %s: %w", stat, variable, err)
	}
	arr, _ := result.Var(variable)
	fmt.Printf("%-16s %-4s %v in %s\n    %s\n",
		stat, variable, arr.Shape(), time.Since(started).Round(time.Millisecond),
		result.Attr("Description"))
	return nil
}
