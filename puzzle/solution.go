package puzzle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chiavault/libchiavault-go/coin"
)

// solutionVersion tags the solution wire format.
const solutionVersion = 0x01

// maxAnnouncementLen bounds a single announcement message.
const maxAnnouncementLen = 1024

// Payment is one requested output: a destination puzzle hash and amount.
type Payment struct {
	PuzzleHash coin.Bytes32 `json:"puzzle_hash"`
	Amount     uint64       `json:"amount"`
}

// Solution is the witness data for a standard puzzle spend. The primary
// spend of a bundle carries payments, the fee and the binding announcement;
// every other spend carries only the matching assertion.
type Solution struct {
	Payments            []Payment
	Fee                 uint64
	Announcements       [][]byte
	AssertAnnouncements []coin.Bytes32
}

// Encode serializes the solution into its canonical wire form. The byte
// form is what gets hashed into the signing message, so encoding must be
// deterministic.
func (s *Solution) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteByte(solutionVersion)

	writeUint16(&buf, len(s.Payments))
	for _, p := range s.Payments {
		buf.Write(p.PuzzleHash[:])
		writeUint64(&buf, p.Amount)
	}

	writeUint64(&buf, s.Fee)

	writeUint16(&buf, len(s.Announcements))
	for _, msg := range s.Announcements {
		writeUint16(&buf, len(msg))
		buf.Write(msg)
	}

	writeUint16(&buf, len(s.AssertAnnouncements))
	for _, id := range s.AssertAnnouncements {
		buf.Write(id[:])
	}

	return buf.Bytes()
}

// DecodeSolution parses a serialized solution, rejecting trailing garbage.
func DecodeSolution(raw []byte) (*Solution, error) {
	r := bytes.NewReader(raw)

	version, err := r.ReadByte()
	if err != nil || version != solutionVersion {
		return nil, fmt.Errorf("%w: bad version", ErrInvalidSolution)
	}

	var s Solution

	nPayments, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nPayments; i++ {
		var p Payment
		if err := readBytes32(r, &p.PuzzleHash); err != nil {
			return nil, err
		}
		if p.Amount, err = readUint64(r); err != nil {
			return nil, err
		}
		s.Payments = append(s.Payments, p)
	}

	if s.Fee, err = readUint64(r); err != nil {
		return nil, err
	}

	nAnnouncements, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nAnnouncements; i++ {
		msgLen, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		if msgLen > maxAnnouncementLen {
			return nil, fmt.Errorf("%w: announcement too long", ErrInvalidSolution)
		}
		msg := make([]byte, msgLen)
		if _, err := io.ReadFull(r, msg); err != nil {
			return nil, fmt.Errorf("%w: truncated announcement", ErrInvalidSolution)
		}
		s.Announcements = append(s.Announcements, msg)
	}

	nAsserts, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nAsserts; i++ {
		var id coin.Bytes32
		if err := readBytes32(r, &id); err != nil {
			return nil, err
		}
		s.AssertAnnouncements = append(s.AssertAnnouncements, id)
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: trailing bytes", ErrInvalidSolution)
	}
	return &s, nil
}

func writeUint16(buf *bytes.Buffer, v int) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func readUint16(r *bytes.Reader) (int, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("%w: truncated", ErrInvalidSolution)
	}
	return int(binary.BigEndian.Uint16(b[:])), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("%w: truncated", ErrInvalidSolution)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func readBytes32(r *bytes.Reader, out *coin.Bytes32) error {
	if _, err := io.ReadFull(r, out[:]); err != nil {
		return fmt.Errorf("%w: truncated", ErrInvalidSolution)
	}
	return nil
}
