// Package refadv parses the reference advertisement returned by the first
// exchange of a v2 negotiation: an optional service banner, a flat list of
// "<hex-id> <refname>[\0<capabilities>]" lines, terminated by a flush
// frame.
package refadv // import "gitkit.dev/refadv"

import (
	"strings"

	"gitkit.dev/capability"
	"gitkit.dev/errors"
	"gitkit.dev/frame"
	"gitkit.dev/gitkit"
)

// Ref is one advertised (id, name) pair.
type Ref struct {
	ID   gitkit.ObjectID
	Name string
}

// Advertisement is the parsed form of the server's first response.
type Advertisement struct {
	Refs         []Ref
	Capabilities capability.Capabilities
	HEAD         gitkit.ObjectID
	HasHEAD      bool
}

const serviceBannerPrefix = "# service="

// Parse reads frames from r until a Flush frame (or EOF) and assembles
// the advertisement. Only the first ref line may carry capabilities; an
// advertised id whose hex length does not match the configured digest
// size is an unsupported-object-format error.
func Parse(r *frame.Reader) (Advertisement, error) {
	const op = "refadv.Parse"
	var adv Advertisement
	first := true

	for {
		f, err := r.Next()
		if err != nil {
			return adv, errors.E(op, err)
		}
		switch f.Kind {
		case frame.Flush:
			return adv, nil
		case frame.Delimiter, frame.ResponseEnd:
			continue
		case frame.Data:
			line := strings.TrimSuffix(string(f.Payload), "\n")
			if strings.HasPrefix(line, serviceBannerPrefix) {
				continue
			}
			if line == "" {
				continue
			}

			var capsText string
			if first {
				if nul := strings.IndexByte(line, 0); nul >= 0 {
					capsText = line[nul+1:]
					line = line[:nul]
				}
			}

			idStr, name, ok := strings.Cut(line, " ")
			if !ok {
				return adv, errors.E(op, errors.MalformedObject, errors.Str("malformed ref line"))
			}
			if len(idStr) != gitkit.HexSize {
				return adv, errors.E(op, errors.UnsupportedObjectFormat, errors.Str("advertised id has wrong length for configured digest"))
			}
			id, err := gitkit.FromHex(idStr)
			if err != nil {
				return adv, errors.E(op, errors.UnsupportedObjectFormat, err)
			}

			adv.Refs = append(adv.Refs, Ref{ID: id, Name: name})
			if name == "HEAD" {
				adv.HEAD = id
				adv.HasHEAD = true
			}
			if first {
				adv.Capabilities = capability.Parse(capsText)
				first = false
			}
		}
	}
}
