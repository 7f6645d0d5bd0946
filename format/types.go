// Package format defines the open enumerations of the MIMI content format.
//
// Every enumeration is an integer type whose named values are constants and
// whose wire form is the integer itself, encoded at the declared width
// (8 or 16 bits). Codes outside the named set are legal: they round-trip
// unchanged and render as "Custom(n)". Because a code equal to a named value
// is that named value, decoders canonicalize collisions by construction.
package format

import "fmt"

type (
	// Disposition describes how a receiver should present a part.
	Disposition uint8
	// PartSemantics describes how the parts of a multipart relate.
	PartSemantics uint8
	// MessageStatus is a per-message delivery/read state.
	MessageStatus uint8
	// HashAlgorithm identifies the hash protecting an external part.
	HashAlgorithm uint8
	// EncryptionAlgorithm identifies the AEAD protecting an external part,
	// per the IANA AEAD registry. Encoded as 16 bits.
	EncryptionAlgorithm uint16
)

const (
	DispositionUnspecified Disposition = 0
	DispositionRender      Disposition = 1
	DispositionReaction    Disposition = 2
	DispositionProfile     Disposition = 3
	DispositionInline      Disposition = 4
	DispositionIcon        Disposition = 5
	DispositionAttachment  Disposition = 6
	DispositionSession     Disposition = 7
	DispositionPreview     Disposition = 8
)

const (
	PartSemanticsChooseOne  PartSemantics = 0
	PartSemanticsSingleUnit PartSemantics = 1
	PartSemanticsProcessAll PartSemantics = 2
)

const (
	MessageStatusUnread    MessageStatus = 0
	MessageStatusDelivered MessageStatus = 1
	MessageStatusRead      MessageStatus = 2
	MessageStatusExpired   MessageStatus = 3
	MessageStatusDeleted   MessageStatus = 4
	MessageStatusHidden    MessageStatus = 5
	MessageStatusError     MessageStatus = 6
)

const (
	HashUnspecified HashAlgorithm = 0
	HashSha256      HashAlgorithm = 1
	HashSha256_128  HashAlgorithm = 2
	HashSha256_120  HashAlgorithm = 3
	HashSha256_96   HashAlgorithm = 4
	HashSha256_64   HashAlgorithm = 5
	HashSha256_32   HashAlgorithm = 6
	HashSha384      HashAlgorithm = 7
	HashSha512      HashAlgorithm = 8
	HashSha3_224    HashAlgorithm = 9
	HashSha3_256    HashAlgorithm = 10
	HashSha3_384    HashAlgorithm = 11
	HashSha3_512    HashAlgorithm = 12
)

// AEAD algorithm codes from the IANA AEAD registry (RFC 5116 and
// successors). Code 0 means the external part is not encrypted.
const (
	EncNone              EncryptionAlgorithm = 0
	EncAes128Gcm         EncryptionAlgorithm = 1
	EncAes256Gcm         EncryptionAlgorithm = 2
	EncAes128Ccm         EncryptionAlgorithm = 3
	EncAes256Ccm         EncryptionAlgorithm = 4
	EncAes128Gcm8        EncryptionAlgorithm = 5
	EncAes256Gcm8        EncryptionAlgorithm = 6
	EncAes128Gcm12       EncryptionAlgorithm = 7
	EncAes256Gcm12       EncryptionAlgorithm = 8
	EncAes128CcmShort    EncryptionAlgorithm = 9
	EncAes256CcmShort    EncryptionAlgorithm = 10
	EncAes128CcmShort8   EncryptionAlgorithm = 11
	EncAes256CcmShort8   EncryptionAlgorithm = 12
	EncAes128CcmShort12  EncryptionAlgorithm = 13
	EncAes256CcmShort12  EncryptionAlgorithm = 14
	EncAesSivCmac256     EncryptionAlgorithm = 15
	EncAesSivCmac384     EncryptionAlgorithm = 16
	EncAesSivCmac512     EncryptionAlgorithm = 17
	EncAes128Ccm8        EncryptionAlgorithm = 18
	EncAes256Ccm8        EncryptionAlgorithm = 19
	EncAes128OcbTag128   EncryptionAlgorithm = 20
	EncAes128OcbTag96    EncryptionAlgorithm = 21
	EncAes128OcbTag64    EncryptionAlgorithm = 22
	EncAes192OcbTag128   EncryptionAlgorithm = 23
	EncAes192OcbTag96    EncryptionAlgorithm = 24
	EncAes192OcbTag64    EncryptionAlgorithm = 25
	EncAes256OcbTag128   EncryptionAlgorithm = 26
	EncAes256OcbTag96    EncryptionAlgorithm = 27
	EncAes256OcbTag64    EncryptionAlgorithm = 28
	EncChaCha20Poly1305  EncryptionAlgorithm = 29
	EncAes128GcmSiv      EncryptionAlgorithm = 30
	EncAes256GcmSiv      EncryptionAlgorithm = 31
	EncAegis128L         EncryptionAlgorithm = 32
	EncAegis256          EncryptionAlgorithm = 33
)

func (d Disposition) String() string {
	switch d {
	case DispositionUnspecified:
		return "Unspecified"
	case DispositionRender:
		return "Render"
	case DispositionReaction:
		return "Reaction"
	case DispositionProfile:
		return "Profile"
	case DispositionInline:
		return "Inline"
	case DispositionIcon:
		return "Icon"
	case DispositionAttachment:
		return "Attachment"
	case DispositionSession:
		return "Session"
	case DispositionPreview:
		return "Preview"
	default:
		return fmt.Sprintf("Custom(%d)", uint8(d))
	}
}

// IsNamed reports whether the code is one of the named dispositions.
func (d Disposition) IsNamed() bool {
	return d <= DispositionPreview
}

func (s PartSemantics) String() string {
	switch s {
	case PartSemanticsChooseOne:
		return "ChooseOne"
	case PartSemanticsSingleUnit:
		return "SingleUnit"
	case PartSemanticsProcessAll:
		return "ProcessAll"
	default:
		return fmt.Sprintf("Custom(%d)", uint8(s))
	}
}

// IsNamed reports whether the code is one of the named part semantics.
func (s PartSemantics) IsNamed() bool {
	return s <= PartSemanticsProcessAll
}

func (m MessageStatus) String() string {
	switch m {
	case MessageStatusUnread:
		return "Unread"
	case MessageStatusDelivered:
		return "Delivered"
	case MessageStatusRead:
		return "Read"
	case MessageStatusExpired:
		return "Expired"
	case MessageStatusDeleted:
		return "Deleted"
	case MessageStatusHidden:
		return "Hidden"
	case MessageStatusError:
		return "Error"
	default:
		return fmt.Sprintf("Custom(%d)", uint8(m))
	}
}

// IsNamed reports whether the code is one of the named statuses.
func (m MessageStatus) IsNamed() bool {
	return m <= MessageStatusError
}

func (h HashAlgorithm) String() string {
	switch h {
	case HashUnspecified:
		return "Unspecified"
	case HashSha256:
		return "Sha256"
	case HashSha256_128:
		return "Sha256_128"
	case HashSha256_120:
		return "Sha256_120"
	case HashSha256_96:
		return "Sha256_96"
	case HashSha256_64:
		return "Sha256_64"
	case HashSha256_32:
		return "Sha256_32"
	case HashSha384:
		return "Sha384"
	case HashSha512:
		return "Sha512"
	case HashSha3_224:
		return "Sha3_224"
	case HashSha3_256:
		return "Sha3_256"
	case HashSha3_384:
		return "Sha3_384"
	case HashSha3_512:
		return "Sha3_512"
	default:
		return fmt.Sprintf("Custom(%d)", uint8(h))
	}
}

// IsNamed reports whether the code is one of the named hash algorithms.
func (h HashAlgorithm) IsNamed() bool {
	return h <= HashSha3_512
}

func (e EncryptionAlgorithm) String() string {
	switch e {
	case EncNone:
		return "None"
	case EncAes128Gcm:
		return "Aes128Gcm"
	case EncAes256Gcm:
		return "Aes256Gcm"
	case EncAes128Ccm:
		return "Aes128Ccm"
	case EncAes256Ccm:
		return "Aes256Ccm"
	case EncChaCha20Poly1305:
		return "ChaCha20Poly1305"
	case EncAes128GcmSiv:
		return "Aes128GcmSiv"
	case EncAes256GcmSiv:
		return "Aes256GcmSiv"
	case EncAegis128L:
		return "Aegis128L"
	case EncAegis256:
		return "Aegis256"
	default:
		if e.IsNamed() {
			return fmt.Sprintf("Aead(%d)", uint16(e))
		}

		return fmt.Sprintf("Custom(%d)", uint16(e))
	}
}

// IsNamed reports whether the code is inside the named AEAD registry range.
func (e EncryptionAlgorithm) IsNamed() bool {
	return e <= EncAegis256
}
