package main

import (
	"fmt"
	"os"
	"time"

	"gitkit.dev/gitkit"
)

// multiFlag collects repeated occurrences of a flag, e.g. "-p" in
// commit-tree.
type multiFlag []string

func (m *multiFlag) String() string { return fmt.Sprint([]string(*m)) }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// commitTree implements "commit-tree <tree> [-p <parent>]... -m <msg>":
// assemble and persist a Commit object, printing its id.
func (s *State) commitTree(args []string) {
	flags := newFlagSet("commit-tree")
	var parents multiFlag
	flags.Var(&parents, "p", "parent commit id (repeatable)")
	message := flags.String("m", "", "commit message")
	flags.Parse(args)

	if flags.NArg() != 1 || *message == "" {
		s.fail(fmt.Errorf("usage: gitkit commit-tree <tree> [-p <parent>]... -m <msg>"))
		return
	}

	treeID, err := gitkit.FromHex(flags.Arg(0))
	if err != nil {
		s.fail(err)
		return
	}

	var parentIDs []gitkit.ObjectID
	for _, p := range parents {
		id, err := gitkit.FromHex(p)
		if err != nil {
			s.fail(err)
			return
		}
		parentIDs = append(parentIDs, id)
	}

	who := committerIdentity()
	c := gitkit.Commit{
		Tree:      treeID,
		Parents:   parentIDs,
		Author:    who,
		Committer: who,
		Message:   *message,
	}

	store, _, err := openStore()
	if err != nil {
		s.fail(err)
		return
	}
	id, err := store.Write(gitkit.Commit, c.Serialize())
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.Stdout, id)
}

// committerIdentity builds a Person from the environment, falling back to
// placeholders when unset; there is no config-file identity store at this
// scope.
func committerIdentity() gitkit.Person {
	name := os.Getenv("GITKIT_AUTHOR_NAME")
	if name == "" {
		name = "gitkit"
	}
	email := os.Getenv("GITKIT_AUTHOR_EMAIL")
	if email == "" {
		email = "gitkit@localhost"
	}
	_, offset := time.Now().Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	tz := fmt.Sprintf("%s%02d%02d", sign, offset/3600, (offset%3600)/60)
	return gitkit.Person{Name: name, Email: email, Seconds: time.Now().Unix(), TZ: tz}
}
