package predictor

// GShare indexes its counter table by the branch address XORed with the
// global branch history:
//
//	index = ((pc >> 2) ^ history) & (tableSize - 1)
//
// The fold takes the low index-width bits of both inputs. XORing history
// into the index widens the effective context captured per table bit at
// the cost of aliasing between unrelated (PC, history) pairs that hash to
// the same entry; that aliasing is the accepted price of bit-budget
// efficiency, not a bug.
//
// With history width 0 the history value is always 0 and GShare is
// record-for-record identical to Bimodal.
type GShare struct {
	table   []Counter
	history *HistoryRegister
	mask    uint64
}

// NewGShare creates a gshare predictor with tableSize entries and a
// historyWidth-bit global history register. Both arguments must have been
// validated by Config.Validate.
func NewGShare(tableSize, historyWidth int) *GShare {
	table := make([]Counter, tableSize)
	for i := range table {
		table[i] = WeaklyTaken
	}
	return &GShare{
		table:   table,
		history: NewHistoryRegister(historyWidth),
		mask:    uint64(tableSize - 1),
	}
}

// index combines the branch address with the current global history.
func (p *GShare) index(pc uint64) uint64 {
	return (pcIndex(pc) ^ p.history.Value()) & p.mask
}

// Predict returns the prediction of the counter at the history-hashed
// index.
func (p *GShare) Predict(pc uint64) bool {
	return p.table[p.index(pc)].Taken()
}

// Update trains the counter at the index computed with the pre-update
// history, then shifts the real outcome into the history register. The
// history always advances with the actual outcome, never the prediction.
func (p *GShare) Update(pc uint64, taken bool) {
	idx := p.index(pc)
	p.table[idx] = p.table[idx].Update(taken)
	p.history.Shift(taken)
}

// BitBudget counts the counter table plus the history register.
func (p *GShare) BitBudget() int {
	return len(p.table)*CounterBits + p.history.Width()
}
