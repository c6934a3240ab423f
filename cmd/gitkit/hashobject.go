package main

import (
	"fmt"
	"os"

	"gitkit.dev/gitkit"
	"gitkit.dev/objcodec"
)

// hashObject implements "hash-object -w <path>": hash a file's content as
// a blob and, when -w is given, persist it to the object store.
func (s *State) hashObject(args []string) {
	fs := newFlagSet("hash-object")
	write := fs.Bool("w", false, "write the object into the object store")
	fs.Parse(args)

	if fs.NArg() != 1 {
		s.fail(fmt.Errorf("usage: gitkit hash-object [-w] <path>"))
		return
	}

	payload, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		s.fail(err)
		return
	}

	if *write {
		store, _, err := openStore()
		if err != nil {
			s.fail(err)
			return
		}
		id, err := store.Write(gitkit.Blob, payload)
		if err != nil {
			s.fail(err)
			return
		}
		fmt.Fprintln(s.Stdout, id)
		return
	}

	id := gitkit.DefaultDigester.Sum(objcodec.Encode(gitkit.Blob, payload))
	fmt.Fprintln(s.Stdout, id)
}
