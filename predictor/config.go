package predictor

import (
	"encoding/json"
	"fmt"
	"os"
)

// Kind identifies a predictor variant. The set is closed: the simulator
// compares exactly these algorithms.
type Kind string

const (
	// KindNotTaken is the static predict-not-taken baseline.
	KindNotTaken Kind = "nottaken"
	// KindBimodal is the PC-indexed counter table baseline.
	KindBimodal Kind = "bimodal"
	// KindGShare indexes its table by PC XORed with global history.
	KindGShare Kind = "gshare"
	// KindYAGS combines a bimodal base with tagged exception caches.
	KindYAGS Kind = "yags"
)

// ParseKind converts a command-line variant name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNotTaken, KindBimodal, KindGShare, KindYAGS:
		return Kind(s), nil
	}
	return "", &ConfigError{
		Field:  "predictor",
		Reason: fmt.Sprintf("unknown variant %q (want nottaken, bimodal, gshare, or yags)", s),
	}
}

// Config holds the fully-resolved configuration for one predictor
// instance. The core never reads configuration sources itself; the CLI
// (or a test) builds a Config and hands it to New.
type Config struct {
	// Kind selects the predictor variant.
	Kind Kind `json:"kind"`

	// TableSize is the number of entries in the main prediction table
	// (the choice table for YAGS). Must be a power of two.
	// Default is 4096.
	TableSize int `json:"table_size"`

	// HistoryWidth is the global history register width in bits, shared
	// by all history-using predictors. Zero is a valid degenerate
	// configuration that reduces gshare and YAGS to the bimodal
	// baseline. Default is 12.
	HistoryWidth int `json:"history_width"`

	// ExceptionSize is the number of entries in each YAGS exception
	// cache. Must be a power of two. Default is 512.
	ExceptionSize int `json:"exception_size"`

	// TagWidth is the width in bits of the tag stored in each YAGS
	// exception cache entry. Default is 6.
	TagWidth int `json:"tag_width"`
}

// DefaultConfig returns a Config with default values for the given
// variant.
func DefaultConfig(kind Kind) Config {
	return Config{
		Kind:          kind,
		TableSize:     4096,
		HistoryWidth:  12,
		ExceptionSize: 512,
		TagWidth:      6,
	}
}

// LoadConfig loads a Config from a JSON file. Missing fields keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read predictor config file: %w", err)
	}

	config := DefaultConfig(KindBimodal)
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse predictor config: %w", err)
	}

	return &config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize predictor config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write predictor config file: %w", err)
	}

	return nil
}

// Validate checks the configuration. It runs at predictor construction,
// before any trace record is processed.
func (c *Config) Validate() error {
	switch c.Kind {
	case KindNotTaken, KindBimodal, KindGShare, KindYAGS:
	default:
		return &ConfigError{Field: "kind", Reason: fmt.Sprintf("unknown variant %q", c.Kind)}
	}

	if c.Kind == KindNotTaken {
		// The static baseline carries no state to size.
		return nil
	}

	if !isPowerOfTwo(c.TableSize) {
		return &ConfigError{
			Field:  "table_size",
			Reason: fmt.Sprintf("must be a power of two, got %d", c.TableSize),
		}
	}

	if c.Kind == KindGShare || c.Kind == KindYAGS {
		if c.HistoryWidth < 0 || c.HistoryWidth > 64 {
			return &ConfigError{
				Field:  "history_width",
				Reason: fmt.Sprintf("must be in 0..64, got %d", c.HistoryWidth),
			}
		}
	}

	if c.Kind == KindYAGS {
		if !isPowerOfTwo(c.ExceptionSize) {
			return &ConfigError{
				Field:  "exception_size",
				Reason: fmt.Sprintf("must be a power of two, got %d", c.ExceptionSize),
			}
		}
		if c.TagWidth < 1 || c.TagWidth > 32 {
			return &ConfigError{
				Field:  "tag_width",
				Reason: fmt.Sprintf("must be in 1..32, got %d", c.TagWidth),
			}
		}
	}

	return nil
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// ConfigError reports an invalid predictor configuration. It fails fast:
// construction returns it before any record is processed.
type ConfigError struct {
	// Field is the offending configuration field.
	Field string
	// Reason describes what is wrong with the value.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid predictor config: %s: %s", e.Field, e.Reason)
}
