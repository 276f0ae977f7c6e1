package predictor

// Predictor is the interface every variant implements. A simulation run
// owns its predictor exclusively: Predict and Update are never called
// concurrently, and each record goes through predict-then-update exactly
// once, in trace order.
type Predictor interface {
	// Predict returns the predicted direction for the branch at pc.
	Predict(pc uint64) bool

	// Update trains the predictor with the real outcome. History-using
	// predictors also shift the outcome into their history register,
	// unconditionally, modeling hardware retiring outcomes regardless of
	// prediction correctness.
	Update(pc uint64, taken bool)

	// BitBudget returns the total state bits this configuration holds,
	// used to compare algorithms fairly.
	BitBudget() int
}

// New constructs the predictor described by config. It validates the
// configuration first and returns a *ConfigError before any record is
// processed if the configuration is invalid.
func New(config Config) (Predictor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Kind {
	case KindNotTaken:
		return NewNotTaken(), nil
	case KindBimodal:
		return NewBimodal(config.TableSize), nil
	case KindGShare:
		return NewGShare(config.TableSize, config.HistoryWidth), nil
	default:
		return NewYAGS(config.TableSize, config.ExceptionSize, config.TagWidth,
			config.HistoryWidth), nil
	}
}

// pcIndex folds a branch address into table-index material. The low two
// bits of an instruction address are alignment and carry no information.
func pcIndex(pc uint64) uint64 {
	return pc >> 2
}
