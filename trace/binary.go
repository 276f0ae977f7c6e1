package trace

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Binary trace layout. The file opens with a 1 KiB free-form text header
// describing its provenance, followed by fixed-width 8-byte little-endian
// events:
//
//	bit  63     branch taken
//	bits 48..62 instructions retired since the previous event
//	bits 0..47  branch address
const (
	// HeaderSize is the fixed size of the descriptive file header.
	HeaderSize = 1024

	eventSize = 8

	addrBits  = 48
	addrMask  = (uint64(1) << addrBits) - 1
	deltaBits = 15
	deltaMask = (uint64(1) << deltaBits) - 1
	takenBit  = uint64(1) << 63
)

// BinaryReader decodes the binary trace event stream.
type BinaryReader struct {
	r *bufio.Reader
}

// NewBinaryReader creates a binary trace reader over r, consuming the
// fixed-size header. A file too short to hold the header is malformed.
func NewBinaryReader(r io.Reader) (*BinaryReader, error) {
	br := bufio.NewReader(r)
	if _, err := io.CopyN(io.Discard, br, HeaderSize); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("truncated header: %v", err)}
	}
	return &BinaryReader{r: br}, nil
}

// Next returns the next record, io.EOF at a clean end of stream, or a
// *ParseError if the stream ends mid-event.
func (b *BinaryReader) Next() (Record, error) {
	var buf [eventSize]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, &ParseError{Reason: fmt.Sprintf("truncated event: %v", err)}
	}

	event := binary.LittleEndian.Uint64(buf[:])
	return Record{
		Addr:       event & addrMask,
		Taken:      event&takenBit != 0,
		InstrDelta: (event >> addrBits) & deltaMask,
	}, nil
}

// WriteBinary encodes records into the binary trace form, header
// included. Addresses wider than 48 bits or deltas wider than 15 bits do
// not fit the event layout and are rejected.
func WriteBinary(w io.Writer, header string, records []Record) error {
	head := make([]byte, HeaderSize)
	if len(header) > HeaderSize {
		return fmt.Errorf("header exceeds %d bytes", HeaderSize)
	}
	copy(head, header)
	if _, err := w.Write(head); err != nil {
		return fmt.Errorf("failed to write trace header: %w", err)
	}

	var buf [eventSize]byte
	for i, rec := range records {
		if rec.Addr&^addrMask != 0 {
			return fmt.Errorf("record %d: address 0x%x exceeds %d bits", i, rec.Addr, addrBits)
		}
		if rec.InstrDelta&^deltaMask != 0 {
			return fmt.Errorf("record %d: instruction delta %d exceeds %d bits",
				i, rec.InstrDelta, deltaBits)
		}

		event := rec.Addr | rec.InstrDelta<<addrBits
		if rec.Taken {
			event |= takenBit
		}
		binary.LittleEndian.PutUint64(buf[:], event)
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("failed to write trace event %d: %w", i, err)
		}
	}
	return nil
}
