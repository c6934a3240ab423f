package main

import (
	"fmt"
	"os"

	"gitkit.dev/gitkit"
	"gitkit.dev/tree"
)

// catFile implements "cat-file -p <id>": print an object's content,
// pretty-printing tree payloads into "<mode> <type> <id>\t<name>" lines.
func (s *State) catFile(args []string) {
	fs := newFlagSet("cat-file")
	pretty := fs.Bool("p", false, "pretty-print the object's content")
	fs.Parse(args)

	if fs.NArg() != 1 {
		s.fail(fmt.Errorf("usage: gitkit cat-file -p <id>"))
		return
	}
	if !*pretty {
		s.fail(fmt.Errorf("cat-file requires -p"))
		return
	}

	store, _, err := openStore()
	if err != nil {
		s.fail(err)
		return
	}
	typ, payload, err := store.Read(fs.Arg(0))
	if err != nil {
		s.fail(err)
		return
	}

	if typ != gitkit.Tree {
		os.Stdout.Write(payload)
		if len(payload) == 0 || payload[len(payload)-1] != '\n' {
			fmt.Fprintln(s.Stdout)
		}
		return
	}

	entries, err := tree.Parse(payload)
	if err != nil {
		s.fail(err)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(s.Stdout, "%s %s %s\t%s\n", e.Mode, e.Mode.ObjectType(), e.ID, e.Name)
	}
}
