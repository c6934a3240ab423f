// Command gitkit is a small client for the content-addressed object store
// and wire-protocol clone path implemented by gitkit.dev. Subcommand
// dispatch uses a plain name-to-method table; each subcommand parses its
// own flags with the standard library's flag package.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	_ "gitkit.dev/shutdown" // installs the SIGINT/SIGTERM handler via init()
	_ "gitkit.dev/transport" // registers http/https/ssh backends via init()
)

var commands = map[string]func(*State, []string){
	"init":        (*State).initCmd,
	"hash-object": (*State).hashObject,
	"cat-file":    (*State).catFile,
	"ls-tree":     (*State).lsTree,
	"add":         (*State).add,
	"write-tree":  (*State).writeTree,
	"commit-tree": (*State).commitTree,
	"clone":       (*State).clone,
}

// State carries the per-invocation command name, exit code, and output
// streams.
type State struct {
	op       string
	exitCode int
	Stdout   *os.File
	Stderr   *os.File
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	name := strings.ToLower(os.Args[1])
	fn, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "gitkit: unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}

	s := &State{op: name, Stdout: os.Stdout, Stderr: os.Stderr}
	fn(s, os.Args[2:])
	os.Exit(s.exitCode)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: gitkit <command> [arguments]")
	fmt.Fprintln(os.Stderr, "Commands:")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	fmt.Fprintln(os.Stderr, "  "+strings.Join(names, ", "))
}

// fail reports err on stderr and sets a non-zero exit code without
// terminating the process, so defers in the caller still run.
func (s *State) fail(err error) {
	fmt.Fprintf(s.Stderr, "gitkit %s: %v\n", s.op, err)
	s.exitCode = 1
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs
}
