package gitkit

// TreeEntry is one (mode, name, object-id) record inside a Tree object's
// payload.
type TreeEntry struct {
	Mode FileMode
	Name string
	ID   ObjectID
}

// SortKey returns the byte string TreeEntry ordering compares by. Per the
// canonical tree-ordering rule, a directory's name is compared as if it
// had a trailing "/", so that a file "abc" sorts before a directory
// "abc/" even though "abc" < "abc/" would otherwise be true anyway; the
// adjustment matters when one name is a prefix of another plus a
// dash/dot-like byte that sorts before '/'.
func (e TreeEntry) SortKey() string {
	if e.Mode.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}
