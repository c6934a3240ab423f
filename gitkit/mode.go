package gitkit

import (
	"fmt"

	"gitkit.dev/errors"
)

// FileMode is the set of modes a tree entry may carry.
type FileMode uint32

// The recognized file modes.
const (
	ModeNormal     FileMode = 0o100644
	ModeExecutable FileMode = 0o100755
	ModeSymlink    FileMode = 0o120000
	ModeDirectory  FileMode = 0o040000
)

// String returns the ASCII form used in tree entry serialization: six
// fixed digits for every mode except Directory, which uses "40000" with
// no leading zero, matching the canonical on-disk representation.
func (m FileMode) String() string {
	if m == ModeDirectory {
		return "40000"
	}
	return fmt.Sprintf("%06o", uint32(m))
}

// ParseFileMode parses the ASCII mode string used in a tree entry. Only the
// four recognized modes are valid; anything else is invalid-data.
func ParseFileMode(s string) (FileMode, error) {
	var v uint32
	if _, err := fmt.Sscanf(s, "%o", &v); err != nil {
		return 0, errors.E("gitkit.ParseFileMode", errors.InvalidInput, err)
	}
	m := FileMode(v)
	switch m {
	case ModeNormal, ModeExecutable, ModeSymlink, ModeDirectory:
		return m, nil
	}
	return 0, errors.E("gitkit.ParseFileMode", errors.InvalidInput, errors.Str("unrecognized file mode"))
}

// ObjectType reports the object type a mode implies: Directory implies
// Tree, every other mode implies Blob.
func (m FileMode) ObjectType() ObjectType {
	if m == ModeDirectory {
		return Tree
	}
	return Blob
}

// IsDir reports whether m is the directory mode.
func (m FileMode) IsDir() bool {
	return m == ModeDirectory
}
