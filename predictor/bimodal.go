package predictor

// Bimodal is a PC-indexed table of 2-bit saturating counters. It applies
// no aliasing mitigation: two branches whose addresses share the low
// index bits train the same counter. It is the baseline the other
// variants are measured against and the base layer inside YAGS.
type Bimodal struct {
	table []Counter
	mask  uint64
}

// NewBimodal creates a bimodal predictor with tableSize entries.
// tableSize must be a power of two, validated by Config.Validate.
func NewBimodal(tableSize int) *Bimodal {
	table := make([]Counter, tableSize)
	for i := range table {
		table[i] = WeaklyTaken
	}
	return &Bimodal{
		table: table,
		mask:  uint64(tableSize - 1),
	}
}

// index computes the table index from the low bits of the branch address.
func (p *Bimodal) index(pc uint64) uint64 {
	return pcIndex(pc) & p.mask
}

// Predict returns the indexed counter's prediction.
func (p *Bimodal) Predict(pc uint64) bool {
	return p.table[p.index(pc)].Taken()
}

// Update trains the indexed counter with the real outcome.
func (p *Bimodal) Update(pc uint64, taken bool) {
	idx := p.index(pc)
	p.table[idx] = p.table[idx].Update(taken)
}

// BitBudget returns the table's storage cost: 2 bits per entry.
func (p *Bimodal) BitBudget() int {
	return len(p.table) * CounterBits
}
