package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// RowSignature is a canonical fingerprint of one dataset row
type RowSignature Hash

// String returns the string representation
func (s RowSignature) String() string { return Hash(s).String() }

// fieldSeparator keeps adjacent fields from colliding in the joined form
// ("ab","c" vs "a","bc").
const fieldSeparator = "\x1f"

// NewRowSignature computes the signature of a row from its already-normalized
// field values. Fields must be supplied in header order so that identical rows
// always hash identically.
func NewRowSignature(fields []string) RowSignature {
	joined := strings.Join(fields, fieldSeparator)
	return RowSignature(NewHash([]byte(joined)))
}
