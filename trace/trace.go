// Package trace provides branch trace acquisition for the simulator. A
// trace is an ordered, finite sequence of branch records; readers deliver
// it one record at a time and report io.EOF when the trace is exhausted.
//
// Two on-disk formats are supported: a one-record-per-line text form and
// the compact binary event stream preferred for large traces.
package trace

import (
	"fmt"
	"io"
)

// Record is one observed branch: the program counter of the branch
// instruction and whether it was taken. InstrDelta carries the number of
// non-branch instructions retired since the previous record (binary
// traces only; zero in text traces) and feeds MPKI reporting.
//
// Records are immutable and their order is significant.
type Record struct {
	// Addr is the program counter of the branch instruction.
	Addr uint64
	// Taken is the observed branch direction.
	Taken bool
	// InstrDelta is the count of instructions retired between the
	// previous record and this one, exclusive of the branch itself.
	InstrDelta uint64
}

// Reader delivers trace records in order. Next returns io.EOF once the
// trace is exhausted and a *ParseError if the underlying data is
// malformed. A Reader is not restartable: a new run re-reads the trace
// from the start with a fresh Reader.
type Reader interface {
	Next() (Record, error)
}

// Records is an in-memory Reader over a record slice. The slice is read
// only: concurrent runs may share it, each with its own Records cursor.
type Records struct {
	records []Record
	pos     int
}

// NewRecords creates a Reader over an in-memory record slice.
func NewRecords(records []Record) *Records {
	return &Records{records: records}
}

// Next returns the next record, or io.EOF past the end.
func (r *Records) Next() (Record, error) {
	if r.pos >= len(r.records) {
		return Record{}, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

// ReadAll drains a Reader into a slice, for callers that replay one trace
// through many predictor configurations.
func ReadAll(r Reader) ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// ParseError reports a malformed trace record. Trace corruption is a
// data-integrity issue, not a transient fault: the run that hits it
// aborts immediately and its partial statistics are discarded.
type ParseError struct {
	// Line is the 1-based line number for text traces, or 0 for binary
	// traces where lines do not apply.
	Line int
	// Reason describes the malformation.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed trace record at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed trace record: %s", e.Reason)
}
