package gitkit

import (
	"fmt"
	"strconv"
	"strings"

	"gitkit.dev/errors"
)

// Person identifies an author or committer with a point in time.
type Person struct {
	Name    string
	Email   string
	Seconds int64  // unix seconds
	TZ      string // e.g. "+0000"
}

// String renders the person line fragment: "<name> <<email>> <seconds> <tz>".
func (p Person) String() string {
	return fmt.Sprintf("%s <%s> %d %s", p.Name, p.Email, p.Seconds, p.TZ)
}

// Commit is the decoded form of a Commit object's payload.
type Commit struct {
	Tree      ObjectID
	Parents   []ObjectID // zero or more; spec's "optional parent" generalized to repeatable
	Author    Person
	Committer Person
	Message   string
}

// Serialize renders the commit in the canonical text form:
//
//	tree <hex>
//	[parent <hex>]...
//	author <person>
//	committer <person>
//
//	<message>
func (c Commit) Serialize() []byte {
	s := fmt.Sprintf("tree %s\n", c.Tree)
	for _, p := range c.Parents {
		s += fmt.Sprintf("parent %s\n", p)
	}
	s += fmt.Sprintf("author %s\n", c.Author)
	s += fmt.Sprintf("committer %s\n", c.Committer)
	s += "\n" + c.Message
	return []byte(s)
}

// ParseCommit decodes the canonical text form produced by Serialize.
func ParseCommit(payload []byte) (Commit, error) {
	const op = "gitkit.ParseCommit"
	var c Commit

	text := string(payload)
	headers, message, ok := strings.Cut(text, "\n\n")
	if !ok {
		return c, errors.E(op, errors.MalformedObject, errors.Str("missing header/message separator"))
	}
	c.Message = message

	for _, line := range strings.Split(headers, "\n") {
		if line == "" {
			continue
		}
		key, rest, ok := strings.Cut(line, " ")
		if !ok {
			return c, errors.E(op, errors.MalformedObject, errors.Str("malformed header line"))
		}
		switch key {
		case "tree":
			id, err := FromHex(rest)
			if err != nil {
				return c, errors.E(op, err)
			}
			c.Tree = id
		case "parent":
			id, err := FromHex(rest)
			if err != nil {
				return c, errors.E(op, err)
			}
			c.Parents = append(c.Parents, id)
		case "author":
			p, err := parsePerson(rest)
			if err != nil {
				return c, errors.E(op, err)
			}
			c.Author = p
		case "committer":
			p, err := parsePerson(rest)
			if err != nil {
				return c, errors.E(op, err)
			}
			c.Committer = p
		}
	}
	return c, nil
}

// parsePerson parses "<name> <<email>> <seconds> <tz>".
func parsePerson(s string) (Person, error) {
	const op = "gitkit.parsePerson"
	var p Person

	open := strings.LastIndex(s, "<")
	shut := strings.LastIndex(s, ">")
	if open < 0 || shut < open {
		return p, errors.E(op, errors.MalformedObject, errors.Str("missing email brackets"))
	}
	p.Name = strings.TrimSpace(s[:open])
	p.Email = s[open+1 : shut]

	rest := strings.TrimSpace(s[shut+1:])
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return p, errors.E(op, errors.MalformedObject, errors.Str("expected \"<seconds> <tz>\""))
	}
	seconds, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return p, errors.E(op, err)
	}
	p.Seconds = seconds
	p.TZ = fields[1]
	return p, nil
}
