package main

import (
	"os"
	"path/filepath"

	"gitkit.dev/errors"
	"gitkit.dev/objstore"
)

// findGitDir walks up from the current working directory looking for a
// ".git" directory, mirroring the conventional repo-root discovery every
// subcommand needs.
func findGitDir() (string, error) {
	const op = "gitkit.findGitDir"
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.E(op, err)
	}
	for {
		candidate := filepath.Join(dir, ".git")
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.E(op, errors.NotFound, errors.Str("not a gitkit repository"))
		}
		dir = parent
	}
}

func openStore() (*objstore.Store, string, error) {
	gitDir, err := findGitDir()
	if err != nil {
		return nil, "", err
	}
	return objstore.New(gitDir), gitDir, nil
}

func indexPath(gitDir string) string {
	return filepath.Join(gitDir, "index")
}
