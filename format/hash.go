package format

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Hasher returns a fresh hash.Hash for the algorithm, or an error for
// Unspecified and custom codes.
//
// The truncated SHA-256 variants share the SHA-256 hasher; truncation
// happens in Sum.
func (h HashAlgorithm) Hasher() (hash.Hash, error) {
	switch h {
	case HashSha256, HashSha256_128, HashSha256_120, HashSha256_96, HashSha256_64, HashSha256_32:
		return sha256.New(), nil
	case HashSha384:
		return sha512.New384(), nil
	case HashSha512:
		return sha512.New(), nil
	case HashSha3_224:
		return sha3.New224(), nil
	case HashSha3_256:
		return sha3.New256(), nil
	case HashSha3_384:
		return sha3.New384(), nil
	case HashSha3_512:
		return sha3.New512(), nil
	default:
		return nil, fmt.Errorf("no hasher for hash algorithm %s", h)
	}
}

// Size returns the digest length in bytes, or 0 for Unspecified and custom
// codes.
func (h HashAlgorithm) Size() int {
	switch h {
	case HashSha256:
		return 32
	case HashSha256_128:
		return 16
	case HashSha256_120:
		return 15
	case HashSha256_96:
		return 12
	case HashSha256_64:
		return 8
	case HashSha256_32:
		return 4
	case HashSha384:
		return 48
	case HashSha512:
		return 64
	case HashSha3_224:
		return 28
	case HashSha3_256:
		return 32
	case HashSha3_384:
		return 48
	case HashSha3_512:
		return 64
	default:
		return 0
	}
}

// Sum computes the digest of data, truncated to Size for the truncated
// SHA-256 variants.
func (h HashAlgorithm) Sum(data []byte) ([]byte, error) {
	hasher, err := h.Hasher()
	if err != nil {
		return nil, err
	}
	hasher.Write(data)

	return hasher.Sum(nil)[:h.Size()], nil
}

// Verify reports whether digest matches the digest of data under the
// algorithm. The comparison is constant time.
func (h HashAlgorithm) Verify(data, digest []byte) (bool, error) {
	want, err := h.Sum(data)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(want, digest) == 1, nil
}
