package predictor

// NotTaken is the static predict-not-taken baseline. It holds no state
// and serves as the accuracy floor below bimodal.
type NotTaken struct{}

// NewNotTaken creates the static not-taken predictor.
func NewNotTaken() *NotTaken {
	return &NotTaken{}
}

// Predict always returns not-taken.
func (p *NotTaken) Predict(pc uint64) bool {
	return false
}

// Update is a no-op; the static predictor never learns.
func (p *NotTaken) Update(pc uint64, taken bool) {
}

// BitBudget returns 0: the static predictor holds no state.
func (p *NotTaken) BitBudget() int {
	return 0
}
