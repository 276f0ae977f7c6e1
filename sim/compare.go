package sim

import (
	"context"
	"sort"
	"sync"

	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/trace"
)

// NamedConfig labels a predictor configuration for comparison reports.
type NamedConfig struct {
	// Name identifies the configuration in reports.
	Name string
	// Config is the fully-resolved predictor configuration.
	Config predictor.Config
}

// Comparison is the outcome of one configuration in a comparison run.
type Comparison struct {
	// Name is the configuration's report label.
	Name string
	// Config is the configuration that produced this result.
	Config predictor.Config
	// Bits is the predictor's total state bit budget.
	Bits int
	// Result holds the run's statistics.
	Result Result
}

// Compare replays one in-memory trace through every configuration and
// returns the results sorted by descending misprediction count (worst
// first, matching the report order of a bit-budget sweep).
//
// All configurations are validated before any run starts, so an invalid
// one fails fast with a *predictor.ConfigError. Runs are independent and
// execute concurrently, one goroutine per configuration; each owns its
// predictor and its cursor over the shared read-only record slice.
func Compare(ctx context.Context, records []trace.Record,
	configs []NamedConfig) ([]Comparison, error) {
	predictors := make([]predictor.Predictor, len(configs))
	for i, nc := range configs {
		p, err := predictor.New(nc.Config)
		if err != nil {
			return nil, err
		}
		predictors[i] = p
	}

	results := make([]Comparison, len(configs))
	errs := make([]error, len(configs))

	var wg sync.WaitGroup
	for i := range configs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			runner := NewRunner(predictors[i])
			res, err := runner.Run(ctx, trace.NewRecords(records))
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = Comparison{
				Name:   configs[i].Name,
				Config: configs[i].Config,
				Bits:   predictors[i].BitBudget(),
				Result: res,
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(results, func(a, b int) bool {
		return results[a].Result.Mispredictions > results[b].Result.Mispredictions
	})
	return results, nil
}
