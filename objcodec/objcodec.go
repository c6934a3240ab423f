// Package objcodec serializes and deserializes the typed object envelope:
// "<type-ascii> <decimal-size>\0<payload>". It is the wire/disk grammar
// shared by every object in the store.
package objcodec // import "gitkit.dev/objcodec"

import (
	"bytes"
	"fmt"
	"strconv"

	"gitkit.dev/errors"
	"gitkit.dev/gitkit"
)

// Encode renders the envelope for the given type and payload.
func Encode(typ gitkit.ObjectType, payload []byte) []byte {
	head := fmt.Sprintf("%s %d\x00", typ, len(payload))
	out := make([]byte, 0, len(head)+len(payload))
	out = append(out, head...)
	out = append(out, payload...)
	return out
}

// Decode splits an envelope into its type and payload. It rejects an
// envelope missing the NUL separator or whose declared size does not match
// the remaining bytes.
func Decode(envelope []byte) (gitkit.ObjectType, []byte, error) {
	const op = "objcodec.Decode"
	nul := bytes.IndexByte(envelope, 0)
	if nul < 0 {
		return 0, nil, errors.E(op, errors.MalformedObject, errors.Str("missing NUL separator"))
	}
	header := envelope[:nul]
	payload := envelope[nul+1:]

	sp := bytes.IndexByte(header, ' ')
	if sp < 0 {
		return 0, nil, errors.E(op, errors.MalformedObject, errors.Str("missing type/size separator"))
	}
	typeTag := string(header[:sp])
	sizeStr := string(header[sp+1:])

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 0 {
		return 0, nil, errors.E(op, errors.MalformedObject, errors.Str("invalid size field"))
	}
	if size != len(payload) {
		return 0, nil, errors.E(op, errors.MalformedObject, errors.Str("declared size does not match payload length"))
	}

	typ := gitkit.ParseObjectType(typeTag)
	return typ, payload, nil
}
