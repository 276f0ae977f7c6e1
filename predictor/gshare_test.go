package predictor_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bpsim/predictor"
)

// syntheticBranch is one step of a generated trace.
type syntheticBranch struct {
	pc    uint64
	taken bool
}

// randomTrace generates a deterministic pseudo-random trace: a fixed pool
// of branch addresses with per-address outcome biases.
func randomTrace(seed int64, n int) []syntheticBranch {
	rng := rand.New(rand.NewSource(seed))
	branches := make([]syntheticBranch, n)
	for i := range branches {
		addr := uint64(0x1000 + 4*rng.Intn(256))
		bias := float64(addr%7) / 7
		branches[i] = syntheticBranch{
			pc:    addr,
			taken: rng.Float64() < bias,
		}
	}
	return branches
}

// expectIdenticalPredictions replays the trace through both predictors in
// lockstep and fails on the first record where their predictions differ.
func expectIdenticalPredictions(a, b predictor.Predictor, trace []syntheticBranch) {
	GinkgoHelper()
	for i, rec := range trace {
		Expect(a.Predict(rec.pc)).To(Equal(b.Predict(rec.pc)),
			"predictions diverged at record %d", i)
		a.Update(rec.pc, rec.taken)
		b.Update(rec.pc, rec.taken)
	}
}

var _ = Describe("GShare", func() {
	It("should initially predict taken (biased)", func() {
		p := predictor.NewGShare(16, 4)
		Expect(p.Predict(0x1000)).To(BeTrue())
	})

	It("should be identical to bimodal with history width 0", func() {
		for _, tableSize := range []int{1, 16, 1024} {
			expectIdenticalPredictions(
				predictor.NewGShare(tableSize, 0),
				predictor.NewBimodal(tableSize),
				randomTrace(42, 2000),
			)
		}
	})

	It("should learn a strict alternation through its history", func() {
		// With 2 history bits the two phases of the T,F,T,F pattern land
		// on distinct table entries, so the pattern becomes perfectly
		// predictable once the history register warms up.
		p := predictor.NewGShare(16, 2)
		pc := uint64(0x1000)

		misses := 0
		for i := 0; i < 100; i++ {
			taken := i%2 == 0
			if p.Predict(pc) != taken {
				misses++
			}
			p.Update(pc, taken)

			if i >= 10 {
				Expect(p.Predict(pc)).To(Equal(!taken),
					"still mispredicting after warmup at record %d", i)
			}
		}
		Expect(misses).To(BeNumerically("<=", 2))
	})

	It("should advance history with the real outcome", func() {
		p := predictor.NewGShare(16, 4)
		pc := uint64(0x1000)

		// Not-taken outcomes keep the history at 0, so the same entry
		// trains to strongly not-taken.
		p.Update(pc, false)
		p.Update(pc, false)
		Expect(p.Predict(pc)).To(BeFalse())

		// A taken outcome shifts the history, moving pc to a fresh
		// entry that still holds the taken-biased default.
		p.Update(pc, true)
		Expect(p.Predict(pc)).To(BeTrue())
	})

	It("should be deterministic across identically configured instances", func() {
		expectIdenticalPredictions(
			predictor.NewGShare(256, 8),
			predictor.NewGShare(256, 8),
			randomTrace(7, 2000),
		)
	})

	It("should count table and history bits in its budget", func() {
		Expect(predictor.NewGShare(1024, 8).BitBudget()).To(Equal(2048 + 8))
		Expect(predictor.NewGShare(1024, 0).BitBudget()).To(Equal(2048))
	})
})
