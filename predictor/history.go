package predictor

// HistoryRegister tracks the outcomes of the last W branches as a W-bit
// shift register. The most recent outcome sits in the low-order bit.
//
// Width 0 is legal: the register then contributes no information, which
// reduces history-correlated predictors to the bimodal baseline.
type HistoryRegister struct {
	value uint64
	mask  uint64
	width int
}

// NewHistoryRegister creates a history register of the given width.
// The width must have been validated (0..64) by the predictor config.
func NewHistoryRegister(width int) *HistoryRegister {
	var mask uint64
	if width >= 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << uint(width)) - 1
	}
	return &HistoryRegister{
		mask:  mask,
		width: width,
	}
}

// Shift appends the newest outcome, discarding the oldest bit once the
// register is full. Hardware retires outcomes unconditionally, so this is
// called after every branch regardless of prediction correctness.
func (h *HistoryRegister) Shift(taken bool) {
	var bit uint64
	if taken {
		bit = 1
	}
	h.value = (h.value<<1 | bit) & h.mask
}

// Value returns the current W history bits as a number. Always 0 for a
// width-0 register.
func (h *HistoryRegister) Value() uint64 {
	return h.value
}

// Width returns the configured register width in bits.
func (h *HistoryRegister) Width() int {
	return h.width
}
