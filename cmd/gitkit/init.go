package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// initCmd creates the .git on-disk layout under the given directory
// (default ".").
func (s *State) initCmd(args []string) {
	fs := newFlagSet("init")
	fs.Parse(args)

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	gitDir := filepath.Join(dir, ".git")

	for _, sub := range []string{"objects", "objects/pack", "refs"} {
		if err := os.MkdirAll(filepath.Join(gitDir, sub), 0o755); err != nil {
			s.fail(err)
			return
		}
	}
	if err := os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.Stdout, "Initialized empty repository in %s\n", gitDir)
}
