// Package sim drives trace replay: it feeds branch records through a
// predictor in strict sequence and aggregates prediction statistics.
package sim

import (
	"context"
	"io"

	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/trace"
)

// Result holds the statistics of one simulation run.
type Result struct {
	// Records is the number of branch records processed.
	Records uint64
	// Correct is the number of correct predictions.
	Correct uint64
	// Mispredictions is the number of incorrect predictions.
	Mispredictions uint64
	// Instructions is the number of instructions retired over the trace,
	// branches included. For text traces, which carry no retired-
	// instruction deltas, this equals Records.
	Instructions uint64
}

// MispredictionRate returns the misprediction rate as a fraction in
// [0, 1].
func (r Result) MispredictionRate() float64 {
	if r.Records == 0 {
		return 0
	}
	return float64(r.Mispredictions) / float64(r.Records)
}

// Accuracy returns the prediction accuracy as a percentage.
func (r Result) Accuracy() float64 {
	if r.Records == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Records) * 100
}

// MPKI returns mispredictions per thousand retired instructions.
func (r Result) MPKI() float64 {
	if r.Instructions == 0 {
		return 0
	}
	return 1000 * float64(r.Mispredictions) / float64(r.Instructions)
}

// Runner replays one trace through one predictor. A Runner owns its
// predictor exclusively for the duration of the run; no state is shared
// across runs.
type Runner struct {
	predictor predictor.Predictor

	snapshotInterval uint64
	snapshotFn       func(Result)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSnapshot invokes fn with the accumulated statistics every interval
// records, for convergence analysis. Snapshots are interim values; only
// the Result returned by Run is final. An interval of zero disables
// snapshots.
func WithSnapshot(interval uint64, fn func(Result)) RunnerOption {
	return func(r *Runner) {
		if interval == 0 {
			return
		}
		r.snapshotInterval = interval
		r.snapshotFn = fn
	}
}

// NewRunner creates a runner around the given predictor.
func NewRunner(p predictor.Predictor, opts ...RunnerOption) *Runner {
	r := &Runner{predictor: p}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays the trace to exhaustion. Every record is processed exactly
// once, in order: predict, compare against the real outcome, then update
// the predictor with that outcome.
//
// A malformed record aborts the run with the reader's *trace.ParseError
// and no statistics: partial counts from an aborted run are never
// reported as final. Cancellation is checked at record boundaries; an
// aborted run returns ctx.Err().
func (r *Runner) Run(ctx context.Context, tr trace.Reader) (Result, error) {
	var result Result

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		rec, err := tr.Next()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return Result{}, err
		}

		predicted := r.predictor.Predict(rec.Addr)
		result.Records++
		result.Instructions += rec.InstrDelta + 1
		if predicted == rec.Taken {
			result.Correct++
		} else {
			result.Mispredictions++
		}

		r.predictor.Update(rec.Addr, rec.Taken)

		if r.snapshotFn != nil && result.Records%r.snapshotInterval == 0 {
			r.snapshotFn(result)
		}
	}
}
