package predictor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bpsim/predictor"
)

var _ = Describe("YAGS", func() {
	It("should initially predict taken (biased)", func() {
		p := predictor.NewYAGS(16, 8, 6, 4)
		Expect(p.Predict(0x1000)).To(BeTrue())
	})

	It("should be identical to bimodal with history width 0", func() {
		for _, tableSize := range []int{16, 1024} {
			expectIdenticalPredictions(
				predictor.NewYAGS(tableSize, 8, 6, 0),
				predictor.NewBimodal(tableSize),
				randomTrace(42, 2000),
			)
		}
	})

	It("should learn a strict alternation through its exception cache", func() {
		p := predictor.NewYAGS(16, 16, 6, 2)
		pc := uint64(0x1000)

		misses := 0
		for i := 0; i < 100; i++ {
			taken := i%2 == 0
			if p.Predict(pc) != taken {
				misses++
			}
			p.Update(pc, taken)
		}
		// One miss to allocate the not-taken exception entry, none after.
		Expect(misses).To(BeNumerically("<=", 2))
	})

	It("should override a not-taken base through the taken cache", func() {
		p := predictor.NewYAGS(16, 1, 5, 4)
		pc := uint64(4)

		p.Update(pc, false)
		p.Update(pc, false)
		Expect(p.Predict(pc)).To(BeFalse())

		// The deviation allocates a taken-cache entry that overrides the
		// not-taken base while the base counter still points the other way.
		p.Update(pc, true)
		Expect(p.Predict(pc)).To(BeTrue())
	})

	It("should override only tag-matching branches", func() {
		// A single-entry exception cache forces every branch onto the
		// same slot; the tag decides who the stored override belongs to.
		p := predictor.NewYAGS(16, 1, 5, 4)
		pcC := uint64(12) // key 3
		pcD := uint64(76) // key 19, same choice entry as pcC, different tag

		p.Update(pcC, true)
		p.Update(pcC, true)
		p.Update(pcC, false) // allocates a not-taken override tagged for pcC

		Expect(p.Predict(pcC)).To(BeFalse())
		Expect(p.Predict(pcD)).To(BeTrue(),
			"override leaked to a branch with a different tag")
	})

	It("should not pollute the caches while the base predicts correctly", func() {
		p := predictor.NewYAGS(16, 1, 5, 4)
		pcA := uint64(4)
		pcB := uint64(8)

		// pcA deviates once, earning the single cache slot.
		p.Update(pcA, true)
		p.Update(pcA, true)
		p.Update(pcA, false)
		Expect(p.Predict(pcA)).To(BeFalse())

		// pcB keeps agreeing with its base. However long it runs, it
		// never evicts pcA's override.
		for i := 0; i < 20; i++ {
			p.Update(pcB, true)
		}
		Expect(p.Predict(pcA)).To(BeFalse())
	})

	It("should be deterministic across identically configured instances", func() {
		expectIdenticalPredictions(
			predictor.NewYAGS(256, 32, 6, 8),
			predictor.NewYAGS(256, 32, 6, 8),
			randomTrace(7, 2000),
		)
	})

	It("should count choice table, both caches, and history in its budget", func() {
		// 64 entries per cache, each 2 counter bits + 5 tag bits + 1
		// valid bit, two caches.
		p := predictor.NewYAGS(1024, 64, 5, 8)
		Expect(p.BitBudget()).To(Equal(2048 + 2*64*8 + 8))
	})
})
