package main

import (
	"fmt"

	"gitkit.dev/gitkit"
	"gitkit.dev/tree"
)

// lsTree implements "ls-tree [--name-only] <tree-ish>". tree-ish may name
// a tree object directly or a commit object, in which case its recorded
// tree is used.
func (s *State) lsTree(args []string) {
	fs := newFlagSet("ls-tree")
	nameOnly := fs.Bool("name-only", false, "list only file names")
	fs.Parse(args)

	if fs.NArg() != 1 {
		s.fail(fmt.Errorf("usage: gitkit ls-tree [--name-only] <tree-ish>"))
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
	if typ == gitkit.Commit {
		c, err := gitkit.ParseCommit(payload)
		if err != nil {
			s.fail(err)
			return
		}
		typ, payload, err = store.Read(c.Tree.String())
		if err != nil {
			s.fail(err)
			return
		}
	}
	if typ != gitkit.Tree {
		s.fail(fmt.Errorf("%s is not a tree", fs.Arg(0)))
		return
	}

	entries, err := tree.Parse(payload)
	if err != nil {
		s.fail(err)
		return
	}
	for _, e := range entries {
		if *nameOnly {
			fmt.Fprintln(s.Stdout, e.Name)
			continue
		}
		fmt.Fprintf(s.Stdout, "%s %s %s\t%s\n", e.Mode, e.Mode.ObjectType(), e.ID, e.Name)
	}
}
