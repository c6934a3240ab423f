// Package clone composes the transport, ref-advertisement parser,
// upload-pack request builder, buffered cursor, and pack reader into an
// end-to-end clone operation, with cleanup on failure and on interrupt via
// gitkit.dev/shutdown's LIFO handler registration.
package clone // import "gitkit.dev/clone"

import (
	"fmt"
	"os"
	"path/filepath"

	"gitkit.dev/config"
	"gitkit.dev/cursor"
	"gitkit.dev/errors"
	"gitkit.dev/frame"
	"gitkit.dev/objstore"
	"gitkit.dev/packfile"
	"gitkit.dev/refadv"
	"gitkit.dev/shutdown"
	"gitkit.dev/transport"
	"gitkit.dev/uploadpack"
)

// State names the orchestrator's progress through a clone's state
// machine. It is exposed only for diagnostics; no caller branches on it.
type State int

const (
	Init State = iota
	TargetValidated
	GitDirCreated
	RefsFetched
	RefsParsed
	NegotiationPosted
	PackStreaming
	PackPersisted
	Done
)

// Result summarizes a completed clone.
type Result struct {
	Advertisement refadv.Advertisement
	Pack          *packfile.Result
}

// Orchestrator drives a single clone from a remote URL into a local
// target directory.
type Orchestrator struct {
	URL    string
	Target string

	state State
	store *objstore.Store
}

// New returns an Orchestrator for cloning url into target.
func New(url, target string) *Orchestrator {
	return &Orchestrator{URL: url, Target: target}
}

// Run executes the full clone sequence, registering a shutdown handler at
// TargetValidated that removes the target directory on interrupt, and
// removing it itself on any failure from GitDirCreated onward.
func (o *Orchestrator) Run() (*Result, error) {
	const op = "clone.Run"

	if err := o.validateTarget(); err != nil {
		return nil, errors.E(op, o.Target, err)
	}
	o.state = TargetValidated

	shutdown.Handle(func() {
		os.RemoveAll(o.Target)
	})

	result, err := o.runFrom()
	if err != nil {
		os.RemoveAll(o.Target)
		return nil, errors.E(op, o.URL, err)
	}
	o.state = Done
	return result, nil
}

func (o *Orchestrator) validateTarget() error {
	const op = "clone.validateTarget"
	entries, err := os.ReadDir(o.Target)
	if err == nil {
		if len(entries) > 0 {
			return errors.E(op, o.Target, errors.AlreadyExists)
		}
		return nil
	}
	if os.IsNotExist(err) {
		return nil
	}
	return errors.E(op, o.Target, err)
}

func (o *Orchestrator) runFrom() (*Result, error) {
	const op = "clone.runFrom"

	gitDir := filepath.Join(o.Target, ".git")
	if err := os.MkdirAll(gitDir, 0o755); err != nil {
		return nil, errors.E(op, gitDir, err)
	}
	if err := os.MkdirAll(filepath.Join(gitDir, "refs"), 0o755); err != nil {
		return nil, errors.E(op, gitDir, err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644); err != nil {
		return nil, errors.E(op, gitDir, err)
	}
	o.store = objstore.New(gitDir)
	o.state = GitDirCreated

	t, u, err := transport.Dispatch(o.URL)
	if err != nil {
		return nil, errors.E(op, o.URL, err)
	}

	refsBody, err := t.Discover(u)
	if err != nil {
		return nil, errors.E(op, o.URL, err)
	}
	defer refsBody.Close()
	o.state = RefsFetched

	adv, err := refadv.Parse(frame.NewReader(refsBody))
	if err != nil {
		return nil, errors.E(op, o.URL, err)
	}
	o.state = RefsParsed

	req := uploadpack.NewRequest()
	for _, ref := range adv.Refs {
		if ref.Name == "HEAD" {
			continue
		}
		req.WithWant(ref.ID)
	}
	req.WithOption("thin-pack").WithOption("ofs-delta").WithOption("no-progress").WithDone()

	respBody, err := t.Negotiate(u, req.Build())
	if err != nil {
		return nil, errors.E(op, o.URL, err)
	}
	defer respBody.Close()
	o.state = NegotiationPosted

	c := cursor.New(respBody)
	prelude, err := packfile.Locate(c)
	if err != nil {
		return nil, errors.E(op, o.URL, err)
	}
	if prelude != "" {
		fmt.Fprint(os.Stdout, prelude)
	}
	o.state = PackStreaming

	packDir, err := o.store.PackDir()
	if err != nil {
		return nil, errors.E(op, o.URL, err)
	}
	packResult, err := packfile.Read(c, packDir)
	if err != nil {
		return nil, errors.E(op, o.URL, err)
	}
	o.state = PackPersisted

	if err := o.writeRefs(adv); err != nil {
		return nil, errors.E(op, o.URL, err)
	}

	return &Result{Advertisement: adv, Pack: packResult}, nil
}

// writeRefs persists each ref the server advertised, other than HEAD, as a
// file at .git/<refname> (e.g. .git/refs/heads/main) holding its hex id.
// HEAD itself is not rewritten: it keeps the "ref: refs/heads/main" text
// written when the git directory was created.
func (o *Orchestrator) writeRefs(adv refadv.Advertisement) error {
	const op = "clone.writeRefs"
	gitDir := filepath.Join(o.Target, ".git")

	for _, ref := range adv.Refs {
		if ref.Name == "HEAD" {
			continue
		}
		dst := filepath.Join(gitDir, filepath.FromSlash(ref.Name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return errors.E(op, dst, err)
		}
		if err := os.WriteFile(dst, []byte(ref.ID.String()+"\n"), 0o644); err != nil {
			return errors.E(op, dst, err)
		}
	}
	return nil
}

// State reports the orchestrator's current progress.
func (o *Orchestrator) State() State { return o.state }

// UserAgent is re-exported for callers (e.g. the CLI) that want to report
// the client identity string this package negotiates with.
const UserAgent = config.UserAgent
