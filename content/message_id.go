package content

import "crypto/sha256"

// MessageIDSize is the length of a derived message ID in bytes.
const MessageIDSize = 32

// messageIDTypeHash is the leading type byte of hash-derived message IDs,
// distinguishing this scheme from future ones.
const messageIDTypeHash = 0x01

// MessageID derives the content-addressed identifier of the message:
//
//	0x01 ∥ SHA-256(sender ∥ room ∥ canonical(content) ∥ salt)[0..31]
//
// sender and room are the byte forms of the external sender and room URIs.
// The ID is never embedded in the encoded content; Replaces and InReplyTo
// carry IDs computed by this function on other messages.
//
// The result is deterministic across runs and platforms; two messages
// differing only in salt produce different IDs with overwhelming
// probability.
func (m *MimiContent) MessageID(sender, room []byte) []byte {
	digest := sha256.New()
	digest.Write(sender)
	digest.Write(room)
	digest.Write(m.Serialize())
	digest.Write(m.Salt)
	sum := digest.Sum(nil)

	id := make([]byte, MessageIDSize)
	id[0] = messageIDTypeHash
	copy(id[1:], sum[:MessageIDSize-1])

	return id
}
