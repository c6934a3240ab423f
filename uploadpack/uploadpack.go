// Package uploadpack builds the v2 "command=fetch" request body: a
// command section and an argument section separated by a delimiter frame,
// terminated by a flush frame. Fields are set explicitly on a builder
// struct and serialized by a single Build call, using the line-framer
// from gitkit.dev/frame for every emitted line.
package uploadpack // import "gitkit.dev/uploadpack"

import (
	"fmt"

	"gitkit.dev/config"
	"gitkit.dev/frame"
	"gitkit.dev/gitkit"
)

// Request collects the fields of a v2 fetch request before it is
// serialized by Build.
type Request struct {
	ObjectFormat string // digest algorithm name, e.g. "sha1"
	Agent        string // optional; omitted when empty

	// Options are bare fetch-options frames emitted in the command
	// section, e.g. "thin-pack", "ofs-delta", "no-progress".
	Options []string

	Wants   []gitkit.ObjectID
	Shallow []gitkit.ObjectID
	Deepen  uint // 0 means omit

	Done bool
}

// NewRequest returns a Request preconfigured with the configured digest
// name and client user-agent.
func NewRequest() *Request {
	return &Request{
		ObjectFormat: config.DigestName,
		Agent:        config.UserAgent,
	}
}

// WithWant appends a desired tip.
func (r *Request) WithWant(id gitkit.ObjectID) *Request {
	r.Wants = append(r.Wants, id)
	return r
}

// WithOption appends a bare fetch option, e.g. "thin-pack".
func (r *Request) WithOption(opt string) *Request {
	r.Options = append(r.Options, opt)
	return r
}

// WithDone marks the request to include a trailing "done" frame.
func (r *Request) WithDone() *Request {
	r.Done = true
	return r
}

// Build serializes the request to its framed-line wire form.
func (r *Request) Build() []byte {
	var out []byte

	line := func(s string) {
		out = append(out, frame.EncodeData([]byte(s+"\n"))...)
	}

	line("command=fetch")
	if r.ObjectFormat != "" {
		line(fmt.Sprintf("object-format=%s", r.ObjectFormat))
	}
	if r.Agent != "" {
		line(fmt.Sprintf("agent=%s", r.Agent))
	}
	for _, opt := range r.Options {
		line(opt)
	}

	out = append(out, frame.EncodeDelimiter()...)

	for _, w := range r.Wants {
		line(fmt.Sprintf("want %s", w))
	}
	for _, s := range r.Shallow {
		line(fmt.Sprintf("shallow %s", s))
	}
	if r.Deepen > 0 {
		line(fmt.Sprintf("deepen %d", r.Deepen))
	}
	if r.Done {
		line("done")
	}

	out = append(out, frame.EncodeFlush()...)
	return out
}
