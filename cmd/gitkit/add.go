package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gitkit.dev/gitkit"
	"gitkit.dev/index"
	"gitkit.dev/objstore"
)

// add implements "add <paths>...": hash each named file (recursing into
// directories), write it as a blob, and merge the result into the
// staging index, replacing any existing entry for the same path.
func (s *State) add(args []string) {
	flags := newFlagSet("add")
	flags.Parse(args)

	if flags.NArg() == 0 {
		s.fail(fmt.Errorf("usage: gitkit add <paths>..."))
		return
	}

	store, gitDir, err := openStore()
	if err != nil {
		s.fail(err)
		return
	}
	repoRoot := filepath.Dir(gitDir)

	existing := index.Read(indexPath(gitDir))
	byPath := make(map[string]gitkit.IndexEntry, len(existing))
	for _, e := range existing {
		byPath[e.Path] = e
	}

	for _, arg := range flags.Args() {
		if err := addPath(store, repoRoot, arg, byPath); err != nil {
			s.fail(err)
			return
		}
	}

	merged := make([]gitkit.IndexEntry, 0, len(byPath))
	for _, e := range byPath {
		merged = append(merged, e)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Path < merged[j].Path })

	if err := index.Write(indexPath(gitDir), merged); err != nil {
		s.fail(err)
		return
	}
}

func addPath(store *objstore.Store, repoRoot, path string, byPath map[string]gitkit.IndexEntry) error {
	full := filepath.Join(repoRoot, path)
	return filepath.WalkDir(full, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(repoRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		mode := gitkit.ModeNormal
		if info.Mode()&0o111 != 0 {
			mode = gitkit.ModeExecutable
		}

		payload, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		id, err := store.Write(gitkit.Blob, payload)
		if err != nil {
			return err
		}

		byPath[rel] = gitkit.IndexEntry{Mode: mode, Path: rel, ID: id}
		return nil
	})
}
