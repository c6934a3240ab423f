// Package capability parses and re-serializes the flat capability token
// list a server advertises alongside the first ref in an upload-pack
// negotiation, generalizing the key=value / bare-token config line grammar
// into a structured view.
package capability // import "gitkit.dev/capability"

import "strings"

// Capabilities is the structured view of a flat capability token list.
// Original token order is preserved in Tokens so ToWire is a faithful
// round-trip even for tokens this parser does not interpret.
type Capabilities struct {
	Tokens []string // raw tokens, in advertised order

	MultiAck             bool
	MultiAckDetailed     bool
	ThinPack             bool
	SideBand             bool
	SideBand64k          bool
	OfsDelta             bool
	Shallow              bool
	NoProgress           bool
	IncludeTag           bool
	AllowTipSHA1InWant   bool
	AllowReachableSHA1   bool
	NoDone               bool
	SymrefFrom           string // set when a "symref=<from>:<to>" token is present
	SymrefTo             string
	Agent                string
	ObjectFormat         string
	Other                []string // tokens not recognized above, in order
}

// Parse splits a space-separated capability list into a Capabilities
// value. Unrecognized tokens are retained verbatim in Other (and in
// Tokens) so a client can re-emit them unchanged.
func Parse(line string) Capabilities {
	var c Capabilities
	if line == "" {
		return c
	}
	for _, tok := range strings.Fields(line) {
		c.Tokens = append(c.Tokens, tok)
		switch {
		case tok == "multi_ack":
			c.MultiAck = true
		case tok == "multi_ack_detailed":
			c.MultiAckDetailed = true
		case tok == "thin-pack":
			c.ThinPack = true
		case tok == "side-band":
			c.SideBand = true
		case tok == "side-band-64k":
			c.SideBand64k = true
		case tok == "ofs-delta":
			c.OfsDelta = true
		case tok == "shallow":
			c.Shallow = true
		case tok == "no-progress":
			c.NoProgress = true
		case tok == "include-tag":
			c.IncludeTag = true
		case tok == "allow-tip-sha1-in-want":
			c.AllowTipSHA1InWant = true
		case tok == "allow-reachable-sha1-in-want":
			c.AllowReachableSHA1 = true
		case tok == "no-done":
			c.NoDone = true
		case strings.HasPrefix(tok, "symref="):
			rest := strings.TrimPrefix(tok, "symref=")
			if from, to, ok := strings.Cut(rest, ":"); ok {
				c.SymrefFrom, c.SymrefTo = from, to
			} else {
				c.Other = append(c.Other, tok)
			}
		case strings.HasPrefix(tok, "agent="):
			c.Agent = strings.TrimPrefix(tok, "agent=")
		case strings.HasPrefix(tok, "object-format="):
			c.ObjectFormat = strings.TrimPrefix(tok, "object-format=")
		default:
			c.Other = append(c.Other, tok)
		}
	}
	return c
}

// ToWire reconstructs the original space-separated token list, which must
// equal the input to Parse byte for byte.
func (c Capabilities) ToWire() string {
	return strings.Join(c.Tokens, " ")
}
