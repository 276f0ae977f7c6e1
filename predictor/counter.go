// Package predictor implements branch direction predictors built from
// saturating counters and a global branch history register. The variants
// (static not-taken, bimodal, gshare, YAGS) share one interface so a
// simulation run can treat them interchangeably.
package predictor

// Counter is a 2-bit saturating counter.
// States: 0=Strongly Not Taken, 1=Weakly Not Taken,
//         2=Weakly Taken, 3=Strongly Taken
type Counter uint8

const (
	// StronglyNotTaken is the lowest counter state.
	StronglyNotTaken Counter = 0
	// WeaklyNotTaken predicts not-taken with low confidence.
	WeaklyNotTaken Counter = 1
	// WeaklyTaken predicts taken with low confidence. Tables initialize
	// to this state, biased towards taken.
	WeaklyTaken Counter = 2
	// StronglyTaken is the highest counter state.
	StronglyTaken Counter = 3
)

// Taken returns the counter's prediction: true if the state is in the
// upper half of the range.
func (c Counter) Taken() bool {
	return c >= WeaklyTaken
}

// Update moves the counter one step towards the outcome, saturating at
// the range boundaries instead of wrapping. The two-step hysteresis is
// what lets the counter resist single-flip noise.
func (c Counter) Update(taken bool) Counter {
	if taken {
		if c < StronglyTaken {
			return c + 1
		}
	} else {
		if c > StronglyNotTaken {
			return c - 1
		}
	}
	return c
}

// CounterBits is the storage cost of one counter, used in bit budgets.
const CounterBits = 2
