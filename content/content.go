package content

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/openmimi/mimicontent/cborwire"
	"github.com/openmimi/mimicontent/errs"
)

// SaltSize is the contractual size of a message salt in bytes. The codec
// itself does not enforce it.
const SaltSize = 16

// mimiContentFields is the fixed slot count of the top-level record: six
// fixed fields plus the nested part, which occupies a single slot holding
// its own array.
const mimiContentFields = 7

// markdownMediaType is the media type StringRendering accepts, with or
// without parameters.
const markdownMediaType = "text/markdown"

// MimiContent is the top-level message record.
//
// Replaces and InReplyTo carry externally computed 32-byte message IDs; a
// nil slice encodes as null (absent), which is distinct from an empty,
// non-nil slice encoding as a zero-length byte string.
type MimiContent struct {
	// Salt is 16 bytes of randomness preventing ID collisions between
	// semantically identical messages.
	Salt []byte
	// Replaces holds the ID of the message this one edits or deletes, or
	// nil.
	Replaces []byte
	// TopicID is an opaque conversation-thread identifier, possibly empty.
	TopicID []byte
	// Expires is the message expiration, or nil.
	Expires *Expiration
	// InReplyTo holds the ID of the message this one replies to, or nil.
	InReplyTo []byte
	// Extensions is the ordered extension map.
	Extensions Extensions
	// NestedPart is the message body tree.
	NestedPart NestedPart
}

// Expiration is a two-field record: whether the time is relative, and the
// time itself in seconds (since the epoch, or from receipt when relative).
type Expiration struct {
	Relative bool
	Time     uint32
}

// Deadline resolves the expiration against now: relative expirations count
// from now, absolute ones are seconds since the Unix epoch.
func (e *Expiration) Deadline(now time.Time) time.Time {
	if e.Relative {
		return now.Add(time.Duration(e.Time) * time.Second)
	}

	return time.Unix(int64(e.Time), 0).UTC()
}

func (e *Expiration) encode(w *cborwire.Writer) {
	w.WriteArrayHeader(2)
	w.WriteBool(e.Relative)
	w.WriteUint(uint64(e.Time))
}

func decodeExpiration(r *cborwire.Reader) (*Expiration, error) {
	count, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	if count < 2 {
		return nil, fmt.Errorf("%w: Expiration: field index %d", errs.ErrMissingField, count)
	}
	if count > 2 {
		return nil, fmt.Errorf("%w: Expiration", errs.ErrTrailingElements)
	}

	relative, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	seconds, err := r.ReadUint()
	if err != nil {
		return nil, err
	}
	if seconds > 0xffffffff {
		return nil, fmt.Errorf("%w: expiration time %d exceeds 32 bits", errs.ErrDeserializationFailed, seconds)
	}

	return &Expiration{Relative: relative, Time: uint32(seconds)}, nil
}

// Serialize encodes the message as canonical deterministic CBOR.
//
// Serialization of a well-typed value cannot fail; the returned slice is
// freshly allocated and owned by the caller.
func (m *MimiContent) Serialize() []byte {
	w := cborwire.NewWriter()
	defer w.Finish()

	m.encode(w)

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

// SerializeTo encodes the message and writes it to sink. The only possible
// failure is the sink itself.
func (m *MimiContent) SerializeTo(sink io.Writer) error {
	w := cborwire.NewWriter()
	defer w.Finish()

	m.encode(w)

	if _, err := w.WriteTo(sink); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrSerializationFailed, err)
	}

	return nil
}

func (m *MimiContent) encode(w *cborwire.Writer) {
	w.WriteArrayHeader(mimiContentFields)
	w.WriteBytes(m.Salt)
	writeOptionalBytes(w, m.Replaces)
	w.WriteBytes(m.TopicID)
	if m.Expires == nil {
		w.WriteNull()
	} else {
		m.Expires.encode(w)
	}
	writeOptionalBytes(w, m.InReplyTo)
	m.Extensions.encode(w)
	m.NestedPart.encode(w)
}

// Deserialize decodes a canonical MimiContent byte stream.
//
// The input must contain exactly one top-level record; trailing bytes are
// rejected. All byte and text fields of the result are fresh copies.
func Deserialize(data []byte) (*MimiContent, error) {
	r := cborwire.NewReader(data)

	m, err := decodeContent(r)
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEOF(); err != nil {
		return nil, err
	}

	return m, nil
}

func decodeContent(r *cborwire.Reader) (*MimiContent, error) {
	count, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	if count < mimiContentFields {
		return nil, fmt.Errorf("%w: MimiContent: field index %d", errs.ErrMissingField, count)
	}
	if count > mimiContentFields {
		return nil, fmt.Errorf("%w: MimiContent", errs.ErrTrailingElements)
	}

	var m MimiContent

	if m.Salt, err = r.ReadBytes(); err != nil {
		return nil, err
	}
	if m.Replaces, err = readOptionalBytes(r); err != nil {
		return nil, err
	}
	if m.TopicID, err = r.ReadBytes(); err != nil {
		return nil, err
	}
	if !r.TryReadNull() {
		if m.Expires, err = decodeExpiration(r); err != nil {
			return nil, err
		}
	}
	if m.InReplyTo, err = readOptionalBytes(r); err != nil {
		return nil, err
	}
	if err = m.Extensions.decode(r); err != nil {
		return nil, err
	}
	if err = m.NestedPart.decode(r, 0); err != nil {
		return nil, err
	}

	return &m, nil
}

// StringRendering returns the message body as text.
//
// It succeeds only when the nested part is a single part carrying markdown
// text; any other shape is ErrUnsupportedContentType, and markdown bytes
// that are not valid UTF-8 are ErrNotUtf8.
func (m *MimiContent) StringRendering() (string, error) {
	single, ok := m.NestedPart.Part.(*SinglePart)
	if !ok {
		return "", fmt.Errorf("%w: message body is %s", errs.ErrUnsupportedContentType, m.NestedPart.Part.variantName())
	}
	if !mediaTypeIs(single.ContentType, markdownMediaType) {
		return "", fmt.Errorf("%w: %q", errs.ErrUnsupportedContentType, single.ContentType)
	}
	if !utf8.Valid(single.Content) {
		return "", errs.ErrNotUtf8
	}

	return string(single.Content), nil
}

// mediaTypeIs reports whether contentType names want, ignoring any media
// type parameters after ";".
func mediaTypeIs(contentType, want string) bool {
	if !strings.HasPrefix(contentType, want) {
		return false
	}
	rest := contentType[len(want):]

	return rest == "" || strings.HasPrefix(rest, ";")
}

func writeOptionalBytes(w *cborwire.Writer, data []byte) {
	if data == nil {
		w.WriteNull()
		return
	}
	w.WriteBytes(data)
}

func readOptionalBytes(r *cborwire.Reader) ([]byte, error) {
	if r.TryReadNull() {
		return nil, nil
	}

	return r.ReadBytes()
}
