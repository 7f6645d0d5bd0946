package content

import (
	"fmt"

	"github.com/openmimi/mimicontent/cborwire"
	"github.com/openmimi/mimicontent/errs"
	"github.com/openmimi/mimicontent/format"
)

// uriTag and epochTag are the CBOR semantic tags the schema embeds.
const (
	uriTag   = 32
	epochTag = 62
)

// maxPartNesting bounds the multipart tree depth accepted on decode.
const maxPartNesting = 32

// Variant discriminators of NestedPartContent.
const (
	partNull     = 0
	partSingle   = 1
	partExternal = 2
	partMulti    = 3
)

// nestedPartFixedFields is the number of NestedPart fields preceding the
// externally tagged content: disposition and language.
const nestedPartFixedFields = 2

// NestedPart is one node of the message body tree.
//
// On the wire it is an array of 2 + 1 + fields(variant) elements: the two
// fixed fields, the variant discriminator, and the variant's fields spliced
// in behind it.
type NestedPart struct {
	Disposition format.Disposition
	// Language is a comma-separated list of IETF language tags, possibly
	// empty.
	Language string
	Part     NestedPartContent
}

// NestedPartContent is the closed sum of part payloads. Implementations are
// *NullPart, *SinglePart, *ExternalPart, and *MultiPart.
type NestedPartContent interface {
	// Discriminator returns the variant's wire code.
	Discriminator() uint8

	variantName() string
	fieldCount() int
	encodeFields(w *cborwire.Writer)
}

// NullPart is an empty body, used e.g. to delete a message by replacement.
type NullPart struct{}

// SinglePart carries content bytes of a declared media type inline.
type SinglePart struct {
	ContentType string
	Content     []byte
}

// ExternalPart references content held outside the message, optionally
// AEAD-protected, with a hash for integrity verification.
//
// Key, nonce, and AAD are carried verbatim; the codec performs no
// cryptography on them. EncAlg None with empty key material means the
// content is not encrypted.
type ExternalPart struct {
	ContentType string
	URL         string
	// Expires is the retrieval deadline in seconds since the epoch, or 0.
	Expires     uint32
	Size        uint64
	EncAlg      format.EncryptionAlgorithm
	Key         []byte
	Nonce       []byte
	AAD         []byte
	HashAlg     format.HashAlgorithm
	ContentHash []byte
	Description string
	Filename    string
}

// MultiPart groups child parts under a combining semantic.
type MultiPart struct {
	Semantics format.PartSemantics
	Parts     []NestedPart
}

func (p *NullPart) Discriminator() uint8 { return partNull }
func (p *NullPart) variantName() string  { return "NullPart" }
func (p *NullPart) fieldCount() int      { return 0 }

func (p *NullPart) encodeFields(*cborwire.Writer) {}

func (p *SinglePart) Discriminator() uint8 { return partSingle }
func (p *SinglePart) variantName() string  { return "SinglePart" }
func (p *SinglePart) fieldCount() int      { return 2 }

func (p *SinglePart) encodeFields(w *cborwire.Writer) {
	w.WriteText(p.ContentType)
	w.WriteBytes(p.Content)
}

func (p *ExternalPart) Discriminator() uint8 { return partExternal }
func (p *ExternalPart) variantName() string  { return "ExternalPart" }
func (p *ExternalPart) fieldCount() int      { return 12 }

func (p *ExternalPart) encodeFields(w *cborwire.Writer) {
	w.WriteText(p.ContentType)
	w.WriteTag(uriTag)
	w.WriteText(p.URL)
	w.WriteUint(uint64(p.Expires))
	w.WriteUint(p.Size)
	w.WriteUint(uint64(p.EncAlg))
	w.WriteBytes(p.Key)
	w.WriteBytes(p.Nonce)
	w.WriteBytes(p.AAD)
	w.WriteUint(uint64(p.HashAlg))
	w.WriteBytes(p.ContentHash)
	w.WriteText(p.Description)
	w.WriteText(p.Filename)
}

// VerifyContentHash reports whether data matches the part's content hash
// under its declared hash algorithm.
func (p *ExternalPart) VerifyContentHash(data []byte) (bool, error) {
	return p.HashAlg.Verify(data, p.ContentHash)
}

func (p *MultiPart) Discriminator() uint8 { return partMulti }
func (p *MultiPart) variantName() string  { return "MultiPart" }
func (p *MultiPart) fieldCount() int      { return 2 }

func (p *MultiPart) encodeFields(w *cborwire.Writer) {
	w.WriteUint(uint64(p.Semantics))
	w.WriteArrayHeader(len(p.Parts))
	for i := range p.Parts {
		p.Parts[i].encode(w)
	}
}

// encode emits the part as a single positional slot: an array whose length
// is computed from the active variant before the header is written.
func (n *NestedPart) encode(w *cborwire.Writer) {
	w.WriteArrayHeader(nestedPartFixedFields + 1 + n.Part.fieldCount())
	w.WriteUint(uint64(n.Disposition))
	w.WriteText(n.Language)
	w.WriteUint(uint64(n.Part.Discriminator()))
	n.Part.encodeFields(w)
}

func (n *NestedPart) decode(r *cborwire.Reader, depth int) error {
	if depth > maxPartNesting {
		return fmt.Errorf("%w: part nesting exceeds %d", errs.ErrDeserializationFailed, maxPartNesting)
	}

	count, err := r.ReadArrayHeader()
	if err != nil {
		return err
	}
	if count < nestedPartFixedFields+1 {
		return fmt.Errorf("%w: NestedPart: field index %d", errs.ErrMissingField, count)
	}

	disposition, err := readUint8(r)
	if err != nil {
		return err
	}
	n.Disposition = format.Disposition(disposition)

	if n.Language, err = r.ReadText(); err != nil {
		return err
	}

	discriminator, err := readUint8(r)
	if err != nil {
		return err
	}

	switch discriminator {
	case partNull:
		n.Part = &NullPart{}
	case partSingle:
		n.Part = &SinglePart{}
	case partExternal:
		n.Part = &ExternalPart{}
	case partMulti:
		n.Part = &MultiPart{}
	default:
		return fmt.Errorf("%w: NestedPartContent discriminator %d", errs.ErrUnknownVariant, discriminator)
	}

	want := nestedPartFixedFields + 1 + n.Part.fieldCount()
	if count < want {
		return fmt.Errorf("%w: NestedPart(%s): field index %d", errs.ErrMissingField, n.Part.variantName(), count)
	}
	if count > want {
		return fmt.Errorf("%w: NestedPart(%s)", errs.ErrTrailingElements, n.Part.variantName())
	}

	return n.decodePartFields(r, depth)
}

func (n *NestedPart) decodePartFields(r *cborwire.Reader, depth int) error {
	var err error

	switch part := n.Part.(type) {
	case *NullPart:
		return nil

	case *SinglePart:
		if part.ContentType, err = r.ReadText(); err != nil {
			return err
		}
		part.Content, err = r.ReadBytes()

		return err

	case *ExternalPart:
		return part.decodeFields(r)

	case *MultiPart:
		semantics, err := readUint8(r)
		if err != nil {
			return err
		}
		part.Semantics = format.PartSemantics(semantics)

		children, err := r.ReadArrayHeader()
		if err != nil {
			return err
		}
		if children == 0 {
			return nil
		}
		part.Parts = make([]NestedPart, children)
		for i := range part.Parts {
			if err := part.Parts[i].decode(r, depth+1); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("%w: NestedPartContent", errs.ErrUnknownVariant)
	}
}

func (p *ExternalPart) decodeFields(r *cborwire.Reader) error {
	var err error

	if p.ContentType, err = r.ReadText(); err != nil {
		return err
	}
	if p.URL, err = decodeURI(r); err != nil {
		return err
	}

	expires, err := r.ReadUint()
	if err != nil {
		return err
	}
	if expires > 0xffffffff {
		return fmt.Errorf("%w: expires %d exceeds 32 bits", errs.ErrDeserializationFailed, expires)
	}
	p.Expires = uint32(expires)

	if p.Size, err = r.ReadUint(); err != nil {
		return err
	}

	encAlg, err := readUint16(r)
	if err != nil {
		return err
	}
	p.EncAlg = format.EncryptionAlgorithm(encAlg)

	if p.Key, err = r.ReadBytes(); err != nil {
		return err
	}
	if p.Nonce, err = r.ReadBytes(); err != nil {
		return err
	}
	if p.AAD, err = r.ReadBytes(); err != nil {
		return err
	}

	hashAlg, err := readUint8(r)
	if err != nil {
		return err
	}
	p.HashAlg = format.HashAlgorithm(hashAlg)

	if p.ContentHash, err = r.ReadBytes(); err != nil {
		return err
	}
	if p.Description, err = r.ReadText(); err != nil {
		return err
	}
	p.Filename, err = r.ReadText()

	return err
}

// decodeURI reads a tag-32 text string. A missing tag, a wrong tag number,
// or a non-text payload is ErrInvalidUri.
func decodeURI(r *cborwire.Reader) (string, error) {
	major, err := r.PeekMajor()
	if err != nil {
		return "", err
	}
	if major != 6 {
		return "", fmt.Errorf("%w: missing tag %d", errs.ErrInvalidUri, uriTag)
	}

	number, err := r.ReadTag()
	if err != nil {
		return "", err
	}
	if number != uriTag {
		return "", fmt.Errorf("%w: tag %d", errs.ErrInvalidUri, number)
	}

	uri, err := r.ReadText()
	if err != nil {
		return "", fmt.Errorf("%w: tag %d payload is not text", errs.ErrInvalidUri, uriTag)
	}

	return uri, nil
}

// readUint8 reads an unsigned integer declared as 8 bits wide.
func readUint8(r *cborwire.Reader) (uint8, error) {
	val, err := r.ReadUint()
	if err != nil {
		return 0, err
	}
	if val > 0xff {
		return 0, fmt.Errorf("%w: value %d exceeds 8 bits", errs.ErrDeserializationFailed, val)
	}

	return uint8(val), nil
}

// readUint16 reads an unsigned integer declared as 16 bits wide.
func readUint16(r *cborwire.Reader) (uint16, error) {
	val, err := r.ReadUint()
	if err != nil {
		return 0, err
	}
	if val > 0xffff {
		return 0, fmt.Errorf("%w: value %d exceeds 16 bits", errs.ErrDeserializationFailed, val)
	}

	return uint16(val), nil
}
