package content

import (
	"fmt"
	"time"

	"github.com/openmimi/mimicontent/cborwire"
	"github.com/openmimi/mimicontent/errs"
)

// Timestamp is an epoch timestamp scalar, encoded as CBOR tag 62 around an
// unsigned integer of seconds.
type Timestamp struct {
	Seconds uint64
}

// TimestampOf truncates t to whole seconds since the Unix epoch.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{Seconds: uint64(t.Unix())}
}

// Time returns the timestamp as a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t.Seconds), 0).UTC()
}

// Serialize encodes the timestamp as canonical CBOR.
func (t Timestamp) Serialize() []byte {
	w := cborwire.NewWriter()
	defer w.Finish()

	t.encode(w)

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

// DeserializeTimestamp decodes a tag-62 timestamp, rejecting trailing
// bytes.
func DeserializeTimestamp(data []byte) (Timestamp, error) {
	r := cborwire.NewReader(data)

	t, err := decodeTimestamp(r)
	if err != nil {
		return Timestamp{}, err
	}
	if err := r.ExpectEOF(); err != nil {
		return Timestamp{}, err
	}

	return t, nil
}

func (t Timestamp) encode(w *cborwire.Writer) {
	w.WriteTag(epochTag)
	w.WriteUint(t.Seconds)
}

func decodeTimestamp(r *cborwire.Reader) (Timestamp, error) {
	major, err := r.PeekMajor()
	if err != nil {
		return Timestamp{}, err
	}
	if major != 6 {
		return Timestamp{}, fmt.Errorf("%w: missing tag %d", errs.ErrInvalidTimestamp, epochTag)
	}

	number, err := r.ReadTag()
	if err != nil {
		return Timestamp{}, err
	}
	if number != epochTag {
		return Timestamp{}, fmt.Errorf("%w: tag %d", errs.ErrInvalidTimestamp, number)
	}

	major, err = r.PeekMajor()
	if err != nil {
		return Timestamp{}, err
	}
	switch major {
	case 0:
		seconds, err := r.ReadUint()
		if err != nil {
			return Timestamp{}, err
		}

		return Timestamp{Seconds: seconds}, nil
	case 6:
		// A nested positive bignum (tag 2) carries an integer beyond the
		// unsigned 64-bit range; any other nested tag is not an integer.
		inner, err := r.ReadTag()
		if err != nil {
			return Timestamp{}, err
		}
		if inner != 2 {
			return Timestamp{}, fmt.Errorf("%w: payload is tag %d, not an unsigned integer", errs.ErrInvalidTimestamp, inner)
		}

		return Timestamp{}, fmt.Errorf("%w: timestamp exceeds 64 bits", errs.ErrTimestampOverflow)
	default:
		return Timestamp{}, fmt.Errorf("%w: payload is not an unsigned integer", errs.ErrInvalidTimestamp)
	}
}
