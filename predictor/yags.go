package predictor

// exceptionEntry is one slot of a YAGS exception cache. The caches are
// direct-mapped: one entry per index, overwritten unconditionally on
// allocation. The tag detects aliasing between (PC, history) keys that
// fold to the same index.
type exceptionEntry struct {
	valid bool
	tag   uint64
	ctr   Counter
}

// YAGS combines a PC-indexed bimodal choice table with two tagged
// exception caches: the taken cache records branches the choice table
// predicts not-taken but that were taken, and the not-taken cache records
// the converse. Prediction consults the cache opposite to the choice
// table's direction; a tag hit overrides the base.
//
// Compared to gshare, YAGS spends table bits only on the minority of
// branches whose outcome deviates from their bimodal bias, buying more
// accuracy per bit for slightly more lookup logic.
//
// Exception cache indexing and tagging:
//
//	key   = pc >> 2
//	index = (key ^ history) & (cacheSize - 1)
//	tag   = key & (1<<tagWidth - 1)
//
// The index fold matches gshare; the tag keeps low key bits that the
// history XOR may have scrambled out of the index (the same split the
// predictor literature uses for single-table YAGS).
//
// With history width 0 there are no history-correlated deviations to
// record, so the exception caches are bypassed entirely and YAGS is
// record-for-record identical to Bimodal.
type YAGS struct {
	choice   []Counter
	taken    []exceptionEntry
	notTaken []exceptionEntry
	history  *HistoryRegister

	choiceMask uint64
	cacheMask  uint64
	tagMask    uint64
	tagWidth   int
}

// NewYAGS creates a YAGS predictor. choiceSize and cacheSize must be
// powers of two and tagWidth in 1..32, validated by Config.Validate.
func NewYAGS(choiceSize, cacheSize, tagWidth, historyWidth int) *YAGS {
	choice := make([]Counter, choiceSize)
	for i := range choice {
		choice[i] = WeaklyTaken
	}
	return &YAGS{
		choice:     choice,
		taken:      make([]exceptionEntry, cacheSize),
		notTaken:   make([]exceptionEntry, cacheSize),
		history:    NewHistoryRegister(historyWidth),
		choiceMask: uint64(choiceSize - 1),
		cacheMask:  uint64(cacheSize - 1),
		tagMask:    (uint64(1) << uint(tagWidth)) - 1,
		tagWidth:   tagWidth,
	}
}

// cacheKey splits the (PC, history) key into exception index and tag.
func (p *YAGS) cacheKey(pc uint64) (index, tag uint64) {
	key := pcIndex(pc)
	return (key ^ p.history.Value()) & p.cacheMask, key & p.tagMask
}

// exceptions returns the cache that can override a base prediction of the
// given direction: a not-taken base is overridden by the taken cache and
// vice versa.
func (p *YAGS) exceptions(base bool) []exceptionEntry {
	if base {
		return p.notTaken
	}
	return p.taken
}

// Predict computes the choice table's prediction and lets a tag hit in
// the opposite-direction exception cache override it.
func (p *YAGS) Predict(pc uint64) bool {
	base := p.choice[pcIndex(pc)&p.choiceMask].Taken()
	if p.history.Width() == 0 {
		return base
	}

	idx, tag := p.cacheKey(pc)
	if e := &p.exceptions(base)[idx]; e.valid && e.tag == tag {
		return e.ctr.Taken()
	}
	return base
}

// Update trains the predictor with the real outcome.
//
// The choice counter always trains, keeping the base an honest bimodal
// predictor. A hitting exception entry trains its counter. When the base
// prediction was wrong and no entry hit, the appropriate cache slot is
// overwritten with the new tag and a weak counter in the outcome's
// direction — direct-mapped, last writer wins, no eviction heuristic.
// When the base was correct and nothing hit, the caches stay untouched so
// well-biased branches never pollute them.
func (p *YAGS) Update(pc uint64, taken bool) {
	cIdx := pcIndex(pc) & p.choiceMask
	base := p.choice[cIdx].Taken()
	p.choice[cIdx] = p.choice[cIdx].Update(taken)

	if p.history.Width() == 0 {
		return
	}

	idx, tag := p.cacheKey(pc)
	e := &p.exceptions(base)[idx]
	switch {
	case e.valid && e.tag == tag:
		e.ctr = e.ctr.Update(taken)
	case base != taken:
		e.valid = true
		e.tag = tag
		if taken {
			e.ctr = WeaklyTaken
		} else {
			e.ctr = WeaklyNotTaken
		}
	}

	p.history.Shift(taken)
}

// BitBudget counts the choice table, both exception caches (counter, tag
// and valid bit per entry), and the history register.
func (p *YAGS) BitBudget() int {
	entryBits := CounterBits + p.tagWidth + 1
	return len(p.choice)*CounterBits +
		2*len(p.taken)*entryBits +
		p.history.Width()
}
