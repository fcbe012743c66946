package engine

import (
	"context"

	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/domain/stats"
)

// statFunc computes one statistic over a dataset variable using the
// resolved configuration for that statistic.
type statFunc func(e *Engine, ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error)

// registry is the fixed mapping from statistic identifier to implementation.
// Purely declarative; additions happen here and in DefaultSettings together.
var registry = map[core.StatisticKey]statFunc{
	"moments":          (*Engine).moments,
	"seasonal cycle":   (*Engine).seasonalCycle,
	"annual cycle":     (*Engine).annualCycle,
	"percentile":       (*Engine).percentile,
	"diurnal cycle":    (*Engine).diurnalCycle,
	"dcycle harmonic":  (*Engine).dcycleHarmonic,
	"pdf":              (*Engine).freqIntDist,
	"asop":             (*Engine).asop,
	"eda":              (*Engine).eda,
	"Rxx":              (*Engine).rxx,
	"signal filtering": (*Engine).filtering,
}

// Statistics returns the registered statistic identifiers.
func Statistics() []core.StatisticKey {
	keys := make([]core.StatisticKey, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	return keys
}

// Calculate computes the named statistic for one variable of the dataset.
// The configuration record must be the resolved settings for that statistic
// (see stats.Resolve). Unknown statistic names are a hard error.
func (e *Engine) Calculate(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	fn, ok := registry[stat]
	if !ok {
		return nil, core.NewUnknownStatisticError(string(stat))
	}
	if _, exists := ds.Var(variable); !exists {
		return nil, core.ErrUnknownVariable
	}
	return fn(e, ctx, ds, variable, stat, cfg)
}
