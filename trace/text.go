package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TextReader parses the line-oriented trace form: one record per line as
// `<address-in-hex> <0|1>` (0 = not-taken, 1 = taken). Blank lines and
// lines starting with '#' are skipped. Text traces carry no retired-
// instruction deltas.
type TextReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewTextReader creates a text trace reader over r.
func NewTextReader(r io.Reader) *TextReader {
	return &TextReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next record, io.EOF at end of input, or a *ParseError
// identifying the offending line.
func (t *TextReader) Next() (Record, error) {
	for t.scanner.Scan() {
		t.line++
		text := strings.TrimSpace(t.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return Record{}, &ParseError{
				Line:   t.line,
				Reason: fmt.Sprintf("want `<address-in-hex> <0|1>`, got %d fields", len(fields)),
			}
		}

		addr, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 64)
		if err != nil {
			return Record{}, &ParseError{
				Line:   t.line,
				Reason: fmt.Sprintf("bad address %q: not hexadecimal", fields[0]),
			}
		}

		var taken bool
		switch fields[1] {
		case "0":
			taken = false
		case "1":
			taken = true
		default:
			return Record{}, &ParseError{
				Line:   t.line,
				Reason: fmt.Sprintf("bad outcome %q: want 0 or 1", fields[1]),
			}
		}

		return Record{Addr: addr, Taken: taken}, nil
	}

	if err := t.scanner.Err(); err != nil {
		return Record{}, fmt.Errorf("failed to read trace: %w", err)
	}
	return Record{}, io.EOF
}
