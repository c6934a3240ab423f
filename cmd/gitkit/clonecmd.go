package main

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"gitkit.dev/clone"
	"gitkit.dev/errors"
)

// clone implements "clone <url> [dir]".
func (s *State) clone(args []string) {
	flags := newFlagSet("clone")
	flags.Parse(args)

	if flags.NArg() < 1 || flags.NArg() > 2 {
		s.fail(fmt.Errorf("usage: gitkit clone <url> [dir]"))
		return
	}

	remote := flags.Arg(0)
	target := flags.Arg(1)
	if target == "" {
		target = defaultCloneDir(remote)
	}

	o := clone.New(remote, target)
	result, err := o.Run()
	if err != nil {
		if errors.Is(errors.AlreadyExists, err) {
			s.fail(fmt.Errorf("destination path %q already exists and is not empty", target))
			return
		}
		s.fail(err)
		return
	}

	fmt.Fprintf(s.Stdout, "cloned %d refs into %s\n", len(result.Advertisement.Refs), target)
	if result.Pack != nil {
		fmt.Fprintf(s.Stdout, "pack header: version=%d objects=%d\n",
			result.Pack.Header.Version, result.Pack.Header.NumObjects)
	}
}

// defaultCloneDir derives the target directory name from the URL's last
// path segment, stripping a trailing ".git", matching the conventional
// clone-with-no-destination behavior.
func defaultCloneDir(remote string) string {
	u, err := url.Parse(remote)
	if err != nil {
		return strings.TrimSuffix(path.Base(remote), ".git")
	}
	return strings.TrimSuffix(path.Base(u.Path), ".git")
}
