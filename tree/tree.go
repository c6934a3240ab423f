// Package tree parses tree object payloads and synthesizes nested tree
// objects from a flat staging index, recursively assembling each
// directory node and its child tree ids over a stateless parse/build pass.
package tree // import "gitkit.dev/tree"

import (
	"bytes"
	"sort"
	"strings"

	"gitkit.dev/errors"
	"gitkit.dev/gitkit"
	"gitkit.dev/objstore"
)

// Parse decodes a Tree object's payload into its entries, in encounter
// order.
func Parse(payload []byte) ([]gitkit.TreeEntry, error) {
	const op = "tree.Parse"
	var entries []gitkit.TreeEntry

	for len(payload) > 0 {
		sp := bytes.IndexByte(payload, ' ')
		if sp < 0 {
			return nil, errors.E(op, errors.MalformedObject, errors.Str("missing mode separator"))
		}
		mode, err := gitkit.ParseFileMode(string(payload[:sp]))
		if err != nil {
			return nil, errors.E(op, err)
		}
		rest := payload[sp+1:]

		nul := bytes.IndexByte(rest, 0)
		if nul < 0 {
			return nil, errors.E(op, errors.MalformedObject, errors.Str("missing name separator"))
		}
		name := string(rest[:nul])
		rest = rest[nul+1:]

		if len(rest) < gitkit.IDSize {
			return nil, errors.E(op, errors.UnexpectedEOF, errors.Str("truncated object id"))
		}
		id, err := gitkit.FromRaw(rest[:gitkit.IDSize])
		if err != nil {
			return nil, errors.E(op, err)
		}

		entries = append(entries, gitkit.TreeEntry{Mode: mode, Name: name, ID: id})
		payload = rest[gitkit.IDSize:]
	}
	return entries, nil
}

// Serialize renders entries in the canonical on-disk tree payload form.
// Callers (Build) are responsible for sorting beforehand.
func Serialize(entries []gitkit.TreeEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(e.Mode.String())
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(e.ID[:])
	}
	return buf.Bytes()
}

// Entry pairs a TreeEntry with the full repo-relative path it was found
// at during a Walk.
type Entry struct {
	gitkit.TreeEntry
	FullPath string
}

// Walk performs a depth-first traversal of the tree identified by id,
// reading sub-trees from store as needed. If recursive is false, only the
// direct children of id are visited.
func Walk(store *objstore.Store, id gitkit.ObjectID, parent string, recursive bool, visit func(Entry) error) error {
	const op = "tree.Walk"
	typ, payload, err := store.Read(id.String())
	if err != nil {
		return errors.E(op, id.String(), err)
	}
	if typ != gitkit.Tree {
		return errors.E(op, id.String(), errors.MalformedObject, errors.Str("object is not a tree"))
	}

	entries, err := Parse(payload)
	if err != nil {
		return errors.E(op, id.String(), err)
	}

	for _, e := range entries {
		full := e.Name
		if parent != "" {
			full = parent + "/" + e.Name
		}
		if err := visit(Entry{TreeEntry: e, FullPath: full}); err != nil {
			return err
		}
		if recursive && e.Mode.IsDir() {
			if err := Walk(store, e.ID, full, recursive, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// EmptyTreeID is the well-known id of an empty tree object's payload under
// the default (SHA-1) digest: digest("tree 0\x00").
var EmptyTreeID = func() gitkit.ObjectID {
	id, err := gitkit.FromHex("4b825dc642cb6eb9a060e54bf8d69288fbee4904")
	if err != nil {
		panic(err)
	}
	return id
}()

// Build synthesizes a nested tree object from a flat, sorted staging
// index and writes every node to store, returning the id of the root.
//
// Entries must have distinct Path values; if duplicates are present the
// entry encountered later for a given path wins once grouped (callers
// are expected to de-duplicate beforehand).
func Build(store *objstore.Store, entries []gitkit.IndexEntry) (gitkit.ObjectID, error) {
	return buildNode(store, entries)
}

func buildNode(store *objstore.Store, entries []gitkit.IndexEntry) (gitkit.ObjectID, error) {
	const op = "tree.Build"

	type child struct {
		name    string
		entries []gitkit.IndexEntry
	}

	var direct []gitkit.IndexEntry
	directIdx := map[string]int{}
	childOrder := []string{}
	childMap := map[string]*child{}

	for _, e := range entries {
		name, rest, isDir := strings.Cut(e.Path, "/")
		if !isDir {
			if i, ok := directIdx[e.Path]; ok {
				direct[i] = e // later duplicate replaces the earlier entry
				continue
			}
			directIdx[e.Path] = len(direct)
			direct = append(direct, e)
			continue
		}
		c, ok := childMap[name]
		if !ok {
			c = &child{name: name}
			childMap[name] = c
			childOrder = append(childOrder, name)
		}
		sub := e
		sub.Path = rest
		c.entries = append(c.entries, sub)
	}

	var treeEntries []gitkit.TreeEntry
	for _, e := range direct {
		treeEntries = append(treeEntries, gitkit.TreeEntry{
			Mode: e.Mode,
			Name: e.Path,
			ID:   e.ID,
		})
	}
	for _, name := range childOrder {
		c := childMap[name]
		childID, err := buildNode(store, c.entries)
		if err != nil {
			return gitkit.ObjectID{}, errors.E(op, name, err)
		}
		treeEntries = append(treeEntries, gitkit.TreeEntry{
			Mode: gitkit.ModeDirectory,
			Name: name,
			ID:   childID,
		})
	}

	sort.Slice(treeEntries, func(i, j int) bool {
		return treeEntries[i].SortKey() < treeEntries[j].SortKey()
	})

	payload := Serialize(treeEntries)
	id, err := store.Write(gitkit.Tree, payload)
	if err != nil {
		return gitkit.ObjectID{}, errors.E(op, err)
	}
	return id, nil
}
