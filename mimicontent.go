// Package mimicontent provides a byte-exact codec for the MIMI (More
// Instant Messaging Interoperability) content format: a schema-driven
// serializer/deserializer mapping typed message values to a canonical CBOR
// byte stream and back, plus the content-addressed message-ID derivation.
//
// # Core Features
//
//   - Canonical deterministic CBOR output: equal values always serialize to
//     identical bytes
//   - Positional record encoding (fixed-length arrays, no field names) with
//     externally tagged part variants spliced into the enclosing array
//   - Open enumerations whose unnamed codes round-trip unchanged
//   - Content-addressed 32-byte message IDs derived from sender, room,
//     canonical encoding, and a per-message salt
//   - Message status reports
//
// # Basic Usage
//
// Creating, encoding, and identifying a message:
//
//	import "github.com/openmimi/mimicontent"
//
//	msg, _ := mimicontent.NewMarkdownMessage("Hi everyone, release 2.0 shipped!")
//	wire := msg.Serialize()
//	id := msg.MessageID(sender, room)
//
// Decoding:
//
//	msg, err := mimicontent.Deserialize(wire)
//	if err != nil {
//	    return err
//	}
//	body, err := msg.StringRendering()
//
// # Package Structure
//
// This package provides convenient top-level builders around the content
// package, covering the most common message shapes. For full control over
// the schema, use the content package directly; the cborwire package holds
// the low-level canonical CBOR primitives.
package mimicontent

import (
	"crypto/rand"
	"fmt"

	"github.com/openmimi/mimicontent/content"
	"github.com/openmimi/mimicontent/format"
)

// MarkdownContentType is the media type used for markdown message bodies.
const MarkdownContentType = "text/markdown;variant=GFM-MIMI"

// plainTextContentType is the media type used for reaction bodies.
const plainTextContentType = "text/plain;charset=utf-8"

// RandomSalt returns a fresh 16-byte message salt.
func RandomSalt() ([]byte, error) {
	salt := make([]byte, content.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	return salt, nil
}

// Deserialize decodes a canonical MimiContent byte stream.
func Deserialize(data []byte) (*content.MimiContent, error) {
	return content.Deserialize(data)
}

// NewMarkdownMessage builds a renderable markdown message with a fresh
// salt.
func NewMarkdownMessage(markdown string) (*content.MimiContent, error) {
	return newMessage(nil, nil, format.DispositionRender, &content.SinglePart{
		ContentType: MarkdownContentType,
		Content:     []byte(markdown),
	})
}

// NewReply builds a markdown message replying to the message identified by
// inReplyTo.
func NewReply(inReplyTo []byte, markdown string) (*content.MimiContent, error) {
	return newMessage(nil, inReplyTo, format.DispositionRender, &content.SinglePart{
		ContentType: MarkdownContentType,
		Content:     []byte(markdown),
	})
}

// NewReaction builds a reaction (typically a single emoji) to the message
// identified by inReplyTo.
func NewReaction(inReplyTo []byte, reaction string) (*content.MimiContent, error) {
	return newMessage(nil, inReplyTo, format.DispositionReaction, &content.SinglePart{
		ContentType: plainTextContentType,
		Content:     []byte(reaction),
	})
}

// NewEdit builds a markdown message replacing the message identified by
// replaces.
func NewEdit(replaces []byte, markdown string) (*content.MimiContent, error) {
	return newMessage(replaces, nil, format.DispositionRender, &content.SinglePart{
		ContentType: MarkdownContentType,
		Content:     []byte(markdown),
	})
}

// NewDelete builds a tombstone replacing the message identified by replaces
// with an empty body.
func NewDelete(replaces []byte) (*content.MimiContent, error) {
	return newMessage(replaces, nil, format.DispositionRender, &content.NullPart{})
}

// NewAttachment builds a message referencing externally stored content.
func NewAttachment(external *content.ExternalPart) (*content.MimiContent, error) {
	return newMessage(nil, nil, format.DispositionAttachment, external)
}

func newMessage(replaces, inReplyTo []byte, disposition format.Disposition, part content.NestedPartContent) (*content.MimiContent, error) {
	salt, err := RandomSalt()
	if err != nil {
		return nil, err
	}

	return &content.MimiContent{
		Salt:      salt,
		Replaces:  replaces,
		TopicID:   []byte{},
		InReplyTo: inReplyTo,
		NestedPart: content.NestedPart{
			Disposition: disposition,
			Part:        part,
		},
	}, nil
}
