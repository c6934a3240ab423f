package main

import (
	"fmt"

	"gitkit.dev/index"
	"gitkit.dev/tree"
)

// writeTree implements "write-tree": synthesize the nested tree object
// for the current staging index and print its id.
func (s *State) writeTree(args []string) {
	flags := newFlagSet("write-tree")
	flags.Parse(args)

	store, gitDir, err := openStore()
	if err != nil {
		s.fail(err)
		return
	}

	entries := index.Read(indexPath(gitDir))
	id, err := tree.Build(store, entries)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.Stdout, id)
}
