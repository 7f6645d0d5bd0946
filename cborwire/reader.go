package cborwire

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/openmimi/mimicontent/errs"
)

// maxNestingDepth bounds recursion when skipping unknown items, so a
// malicious input cannot exhaust the stack.
const maxNestingDepth = 64

// Reader consumes CBOR items from a byte slice, cursor style.
//
// The reader accepts non-minimal integer widths for robustness but rejects
// indefinite-length items, truncated input, and malformed framing. All
// returned byte slices and strings are fresh copies owned by the caller.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader over data. The reader does not retain or
// modify data beyond the duration of its method calls.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ExpectEOF verifies the input is fully consumed.
func (r *Reader) ExpectEOF() error {
	if r.pos != len(r.data) {
		return fmt.Errorf("%w: %d trailing bytes after top-level item", errs.ErrDeserializationFailed, len(r.data)-r.pos)
	}

	return nil
}

// PeekMajor returns the major type of the next item without consuming it.
func (r *Reader) PeekMajor() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("%w: unexpected end of input", errs.ErrDeserializationFailed)
	}

	return r.data[r.pos] >> 5, nil
}

// readHead consumes an initial byte plus its argument and returns the major
// type and argument value. Indefinite-length heads are rejected.
func (r *Reader) readHead() (byte, uint64, error) {
	if r.pos >= len(r.data) {
		return 0, 0, fmt.Errorf("%w: unexpected end of input", errs.ErrDeserializationFailed)
	}

	initial := r.data[r.pos]
	r.pos++
	major := initial >> 5
	info := initial & 0x1f

	switch {
	case info < 24:
		return major, uint64(info), nil
	case info == argUint8:
		if r.Remaining() < 1 {
			return 0, 0, fmt.Errorf("%w: truncated 1-byte argument", errs.ErrDeserializationFailed)
		}
		val := uint64(r.data[r.pos])
		r.pos++

		return major, val, nil
	case info == argUint16:
		if r.Remaining() < 2 {
			return 0, 0, fmt.Errorf("%w: truncated 2-byte argument", errs.ErrDeserializationFailed)
		}
		val := uint64(r.data[r.pos])<<8 | uint64(r.data[r.pos+1])
		r.pos += 2

		return major, val, nil
	case info == argUint32:
		if r.Remaining() < 4 {
			return 0, 0, fmt.Errorf("%w: truncated 4-byte argument", errs.ErrDeserializationFailed)
		}
		val := uint64(r.data[r.pos])<<24 | uint64(r.data[r.pos+1])<<16 | uint64(r.data[r.pos+2])<<8 | uint64(r.data[r.pos+3])
		r.pos += 4

		return major, val, nil
	case info == argUint64:
		if r.Remaining() < 8 {
			return 0, 0, fmt.Errorf("%w: truncated 8-byte argument", errs.ErrDeserializationFailed)
		}
		var val uint64
		for i := 0; i < 8; i++ {
			val = val<<8 | uint64(r.data[r.pos+i])
		}
		r.pos += 8

		return major, val, nil
	case info == argBreak:
		return 0, 0, fmt.Errorf("%w: indefinite-length item", errs.ErrDeserializationFailed)
	default:
		return 0, 0, fmt.Errorf("%w: reserved additional info %d", errs.ErrDeserializationFailed, info)
	}
}

// ReadUint reads an unsigned integer (major type 0).
func (r *Reader) ReadUint() (uint64, error) {
	major, val, err := r.readHead()
	if err != nil {
		return 0, err
	}
	if major != majorUnsigned {
		return 0, fmt.Errorf("%w: expected unsigned integer, got major type %d", errs.ErrDeserializationFailed, major)
	}

	return val, nil
}

// ReadInt reads a signed integer (major type 0 or 1).
func (r *Reader) ReadInt() (int64, error) {
	major, val, err := r.readHead()
	if err != nil {
		return 0, err
	}

	switch major {
	case majorUnsigned:
		if val > math.MaxInt64 {
			return 0, fmt.Errorf("%w: integer %d overflows int64", errs.ErrDeserializationFailed, val)
		}

		return int64(val), nil
	case majorNegative:
		if val > math.MaxInt64 {
			return 0, fmt.Errorf("%w: negative integer underflows int64", errs.ErrDeserializationFailed)
		}

		return -1 - int64(val), nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got major type %d", errs.ErrDeserializationFailed, major)
	}
}

// ReadBytes reads a definite-length byte string and returns a fresh copy.
func (r *Reader) ReadBytes() ([]byte, error) {
	major, length, err := r.readHead()
	if err != nil {
		return nil, err
	}
	if major != majorBytes {
		return nil, fmt.Errorf("%w: expected byte string, got major type %d", errs.ErrDeserializationFailed, major)
	}
	payload, err := r.take(length)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(payload))
	copy(out, payload)

	return out, nil
}

// ReadText reads a definite-length text string and validates it is UTF-8.
func (r *Reader) ReadText() (string, error) {
	major, length, err := r.readHead()
	if err != nil {
		return "", err
	}
	if major != majorText {
		return "", fmt.Errorf("%w: expected text string, got major type %d", errs.ErrDeserializationFailed, major)
	}
	payload, err := r.take(length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(payload) {
		return "", fmt.Errorf("%w: text string is not valid UTF-8", errs.ErrDeserializationFailed)
	}

	return string(payload), nil
}

// ReadArrayHeader reads a definite-length array header and returns the
// element count.
func (r *Reader) ReadArrayHeader() (int, error) {
	major, count, err := r.readHead()
	if err != nil {
		return 0, err
	}
	if major != majorArray {
		return 0, fmt.Errorf("%w: expected array, got major type %d", errs.ErrDeserializationFailed, major)
	}
	if count > uint64(r.Remaining()) {
		// Every element takes at least one byte, so the count cannot
		// exceed the remaining input.
		return 0, fmt.Errorf("%w: array length %d exceeds input", errs.ErrDeserializationFailed, count)
	}

	return int(count), nil
}

// ReadMapHeader reads a definite-length map header and returns the pair
// count.
func (r *Reader) ReadMapHeader() (int, error) {
	major, count, err := r.readHead()
	if err != nil {
		return 0, err
	}
	if major != majorMap {
		return 0, fmt.Errorf("%w: expected map, got major type %d", errs.ErrDeserializationFailed, major)
	}
	if count > uint64(r.Remaining())/2 {
		return 0, fmt.Errorf("%w: map length %d exceeds input", errs.ErrDeserializationFailed, count)
	}

	return int(count), nil
}

// ReadTag reads a semantic tag header and returns the tag number. The
// tagged item follows and must be read by the caller.
func (r *Reader) ReadTag() (uint64, error) {
	major, number, err := r.readHead()
	if err != nil {
		return 0, err
	}
	if major != majorTag {
		return 0, fmt.Errorf("%w: expected tag, got major type %d", errs.ErrDeserializationFailed, major)
	}

	return number, nil
}

// ReadBool reads a boolean simple value.
func (r *Reader) ReadBool() (bool, error) {
	major, val, err := r.readHead()
	if err != nil {
		return false, err
	}
	if major != majorSimple || (val != uint64(simpleFalse) && val != uint64(simpleTrue)) {
		return false, fmt.Errorf("%w: expected boolean", errs.ErrDeserializationFailed)
	}

	return val == uint64(simpleTrue), nil
}

// TryReadNull consumes a null simple value if one is next and reports
// whether it did. Used for optional record slots.
func (r *Reader) TryReadNull() bool {
	if r.pos < len(r.data) && r.data[r.pos] == majorSimple<<5|simpleNull {
		r.pos++
		return true
	}

	return false
}

// ReadRawItem reads one complete item, validating its framing, and returns
// its raw encoded bytes as a fresh copy. Used for opaque extension values.
func (r *Reader) ReadRawItem() ([]byte, error) {
	start := r.pos
	if err := r.skipItem(0); err != nil {
		return nil, err
	}

	out := make([]byte, r.pos-start)
	copy(out, r.data[start:r.pos])

	return out, nil
}

// take consumes length payload bytes and returns them without copying.
func (r *Reader) take(length uint64) ([]byte, error) {
	if length > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: truncated payload: need %d bytes, have %d", errs.ErrDeserializationFailed, length, r.Remaining())
	}
	payload := r.data[r.pos : r.pos+int(length)]
	r.pos += int(length)

	return payload, nil
}

// skipItem advances past one complete item, recursing into nested
// containers and tags.
func (r *Reader) skipItem(depth int) error {
	if depth > maxNestingDepth {
		return fmt.Errorf("%w: nesting depth exceeds %d", errs.ErrDeserializationFailed, maxNestingDepth)
	}

	major, arg, err := r.readHead()
	if err != nil {
		return err
	}

	switch major {
	case majorUnsigned, majorNegative, majorSimple:
		return nil
	case majorBytes, majorText:
		_, err = r.take(arg)

		return err
	case majorArray:
		if arg > uint64(r.Remaining()) {
			return fmt.Errorf("%w: array length %d exceeds input", errs.ErrDeserializationFailed, arg)
		}
		for i := uint64(0); i < arg; i++ {
			if err := r.skipItem(depth + 1); err != nil {
				return err
			}
		}

		return nil
	case majorMap:
		if arg > uint64(r.Remaining())/2 {
			return fmt.Errorf("%w: map length %d exceeds input", errs.ErrDeserializationFailed, arg)
		}
		for i := uint64(0); i < arg; i++ {
			if err := r.skipItem(depth + 1); err != nil {
				return err
			}
			if err := r.skipItem(depth + 1); err != nil {
				return err
			}
		}

		return nil
	case majorTag:
		return r.skipItem(depth + 1)
	default:
		return fmt.Errorf("%w: unsupported major type %d", errs.ErrDeserializationFailed, major)
	}
}
