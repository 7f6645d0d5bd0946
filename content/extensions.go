package content

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/fxamacker/cbor/v2"

	"github.com/openmimi/mimicontent/cborwire"
	"github.com/openmimi/mimicontent/errs"
)

// ExtensionName is an extension map key: either a text string or an
// integer. It is comparable and totally ordered: numbers sort before
// texts, each kind ascending within itself.
type ExtensionName struct {
	text    string
	number  int64
	numeric bool
}

// NewTextName creates a text-valued extension name.
func NewTextName(name string) ExtensionName {
	return ExtensionName{text: name}
}

// NewNumberName creates an integer-valued extension name.
func NewNumberName(number int64) ExtensionName {
	return ExtensionName{number: number, numeric: true}
}

// IsNumber reports whether the name is integer-valued.
func (n ExtensionName) IsNumber() bool {
	return n.numeric
}

// Text returns the text form of the name, if it is text-valued.
func (n ExtensionName) Text() (string, bool) {
	return n.text, !n.numeric
}

// Number returns the integer form of the name, if it is integer-valued.
func (n ExtensionName) Number() (int64, bool) {
	return n.number, n.numeric
}

func (n ExtensionName) String() string {
	if n.numeric {
		return strconv.FormatInt(n.number, 10)
	}

	return strconv.Quote(n.text)
}

// Less reports whether n sorts before other in the canonical key order.
func (n ExtensionName) Less(other ExtensionName) bool {
	if n.numeric != other.numeric {
		return n.numeric
	}
	if n.numeric {
		return n.number < other.number
	}

	return n.text < other.text
}

func (n ExtensionName) encode(w *cborwire.Writer) {
	if n.numeric {
		w.WriteInt(n.number)
		return
	}
	w.WriteText(n.text)
}

// Extension is one extension map entry. Value is the raw encoding of a
// single CBOR item, carried through the codec untouched.
type Extension struct {
	Name  ExtensionName
	Value cbor.RawMessage
}

// Extensions is an ordered mapping from extension names to opaque CBOR
// values.
//
// Set maintains the canonical key order (numbers before texts, ascending
// within kind), so values assembled through it always encode canonically.
// Decoding preserves wire order, whatever it was; re-encoding a decoded
// map reproduces its input bytes when the keys were minimally encoded
// (keys are always re-encoded at the smallest width).
//
// The zero value is an empty map ready for use.
type Extensions struct {
	entries []Extension
}

// extEncMode is the deterministic encoding mode used for caller-supplied
// extension values.
var extEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	return em
}()

// Len returns the number of entries.
func (e *Extensions) Len() int {
	return len(e.entries)
}

// Entries returns the entries in map order. The returned slice is shared
// with the map; treat it as read-only.
func (e *Extensions) Entries() []Extension {
	return e.entries
}

// Get returns the raw value stored under name.
func (e *Extensions) Get(name ExtensionName) (cbor.RawMessage, bool) {
	for i := range e.entries {
		if e.entries[i].Name == name {
			return e.entries[i].Value, true
		}
	}

	return nil, false
}

// GetValue decodes the value stored under name into out.
func (e *Extensions) GetValue(name ExtensionName, out any) error {
	raw, ok := e.Get(name)
	if !ok {
		return fmt.Errorf("extension %s not present", name)
	}

	return cbor.Unmarshal(raw, out)
}

// Set stores raw under name, replacing any existing entry and keeping the
// canonical key order. The raw bytes must be exactly one well-formed CBOR
// item.
func (e *Extensions) Set(name ExtensionName, raw cbor.RawMessage) error {
	if err := cbor.Wellformed(raw); err != nil {
		return fmt.Errorf("extension %s value is not well-formed CBOR: %w", name, err)
	}

	for i := range e.entries {
		if e.entries[i].Name == name {
			e.entries[i].Value = raw
			return nil
		}
	}

	at := sort.Search(len(e.entries), func(i int) bool {
		return name.Less(e.entries[i].Name)
	})
	e.entries = append(e.entries, Extension{})
	copy(e.entries[at+1:], e.entries[at:])
	e.entries[at] = Extension{Name: name, Value: raw}

	return nil
}

// SetValue encodes val deterministically and stores it under name.
func (e *Extensions) SetValue(name ExtensionName, val any) error {
	raw, err := extEncMode.Marshal(val)
	if err != nil {
		return fmt.Errorf("encoding extension %s: %w", name, err)
	}

	return e.Set(name, raw)
}

// Delete removes the entry stored under name and reports whether one
// existed.
func (e *Extensions) Delete(name ExtensionName) bool {
	for i := range e.entries {
		if e.entries[i].Name == name {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			return true
		}
	}

	return false
}

// encode emits the map in entry order.
func (e *Extensions) encode(w *cborwire.Writer) {
	w.WriteMapHeader(len(e.entries))
	for i := range e.entries {
		e.entries[i].Name.encode(w)
		w.WriteRaw(e.entries[i].Value)
	}
}

// decode reads a map, keeping keys in wire order and rejecting duplicates.
func (e *Extensions) decode(r *cborwire.Reader) error {
	count, err := r.ReadMapHeader()
	if err != nil {
		return err
	}

	e.entries = nil
	if count == 0 {
		return nil
	}

	e.entries = make([]Extension, 0, count)
	seen := make(map[ExtensionName]struct{}, count)

	for i := 0; i < count; i++ {
		name, err := decodeExtensionName(r)
		if err != nil {
			return err
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateExtensionKey, name)
		}
		seen[name] = struct{}{}

		raw, err := r.ReadRawItem()
		if err != nil {
			return err
		}
		e.entries = append(e.entries, Extension{Name: name, Value: raw})
	}

	return nil
}

func decodeExtensionName(r *cborwire.Reader) (ExtensionName, error) {
	major, err := r.PeekMajor()
	if err != nil {
		return ExtensionName{}, err
	}

	switch major {
	case 0, 1:
		number, err := r.ReadInt()
		if err != nil {
			return ExtensionName{}, err
		}

		return NewNumberName(number), nil
	case 3:
		text, err := r.ReadText()
		if err != nil {
			return ExtensionName{}, err
		}

		return NewTextName(text), nil
	default:
		return ExtensionName{}, fmt.Errorf("%w: extension key must be an integer or text, got major type %d", errs.ErrDeserializationFailed, major)
	}
}
