package gitkit

// ObjectType tags the kind of payload a typed object carries.
type ObjectType uint8

// The recognized object types. Unknown stands for any type this client
// does not interpret (e.g. pack delta types); it does not record the
// original numeric code, which the pack reader keeps in
// ObjectHeader.RawType.
const (
	Blob ObjectType = iota
	Tree
	Commit
	Unknown
)

// typeNames maps a type to its on-disk ASCII tag, used in the envelope
// grammar "<type-ascii> <decimal-size>\0<payload>".
var typeNames = map[ObjectType]string{
	Blob:   "blob",
	Tree:   "tree",
	Commit: "commit",
}

// String returns the envelope's ASCII type tag.
func (t ObjectType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseObjectType maps an ASCII tag back to an ObjectType. Unrecognized
// tags yield Unknown.
func ParseObjectType(s string) ObjectType {
	for t, name := range typeNames {
		if name == s {
			return t
		}
	}
	return Unknown
}

// Object is a decoded typed object: the type tag plus its opaque payload.
type Object struct {
	Type    ObjectType
	Payload []byte
}
