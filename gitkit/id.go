// Package gitkit defines the core value types shared by every component of
// the object store and wire-protocol client: content identifiers, typed
// objects, file modes, tree entries, commits, and the structures used during
// reference negotiation.
package gitkit // import "gitkit.dev/gitkit"

import (
	"encoding/hex"

	"gitkit.dev/errors"
)

// IDSize is the length in bytes of a raw object identifier under the
// default digest.
const IDSize = 20

// HexSize is the length of the hexadecimal string form of an ObjectID.
const HexSize = IDSize * 2

// ObjectID is a content-derived 20-byte identifier. Its zero value is the
// all-zero identifier, which is not the digest of any known content and
// serves only as a sentinel (e.g. a missing object in tests).
type ObjectID [IDSize]byte

// ZeroID is the all-zero identifier, used as a sentinel.
var ZeroID ObjectID

// FromRaw builds an ObjectID from a raw 20-byte slice.
func FromRaw(b []byte) (ObjectID, error) {
	var id ObjectID
	if len(b) != IDSize {
		return id, errors.E("gitkit.FromRaw", errors.InvalidInput, errors.Str("raw id must be 20 bytes"))
	}
	copy(id[:], b)
	return id, nil
}

// FromHex parses the 40-character lowercase hex form of an ObjectID.
func FromHex(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != HexSize {
		return id, errors.E("gitkit.FromHex", errors.InvalidInput, errors.Str("invalid-hex-length"))
	}
	n, err := hex.Decode(id[:], []byte(s))
	if err != nil || n != IDSize {
		return id, errors.E("gitkit.FromHex", errors.InvalidInput, errors.Str("invalid-hex-digit"))
	}
	return id, nil
}

// String returns the 40-character lowercase hex form.
func (id ObjectID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether id is the all-zero sentinel.
func (id ObjectID) IsZero() bool {
	return id == ZeroID
}

// PathParts splits the hex form into the two-character bucket directory
// and the remaining 38-character file name, matching the store's on-disk
// layout.
func (id ObjectID) PathParts() (dir, name string) {
	s := id.String()
	return s[:2], s[2:]
}
