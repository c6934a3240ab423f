// Package index reads and writes the flat binary staging index file:
// entries are kept in memory, transformed by the caller, and written back
// as a total replacement. Fields are written and read in lockstep with
// explicit length prefixes ahead of variable-length data.
package index // import "gitkit.dev/index"

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"gitkit.dev/errors"
	"gitkit.dev/gitkit"
)

var magic = [3]byte{'I', 'D', 'X'}

const version = 1

// Read parses the index file at path into a slice of entries. A missing
// file, an unexpected EOF, or any malformed header/entry degrades to an
// empty slice rather than an error, so a fresh or corrupt index never
// blocks staging.
func Read(path string) []gitkit.IndexEntry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var gotMagic [3]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil || gotMagic != magic {
		return nil
	}
	var gotVersion uint8
	if err := binary.Read(r, binary.BigEndian, &gotVersion); err != nil || gotVersion != version {
		return nil
	}
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil
	}

	entries := make([]gitkit.IndexEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		e, ok := readEntry(r)
		if !ok {
			return nil
		}
		entries = append(entries, e)
	}
	return entries
}

func readEntry(r io.Reader) (gitkit.IndexEntry, bool) {
	var e gitkit.IndexEntry

	var modeRaw uint32
	if err := binary.Read(r, binary.BigEndian, &modeRaw); err != nil {
		return e, false
	}
	mode, err := modeFromRaw(modeRaw)
	if err != nil {
		return e, false
	}

	var pathLen uint16
	if err := binary.Read(r, binary.BigEndian, &pathLen); err != nil {
		return e, false
	}
	pathBytes := make([]byte, pathLen)
	if _, err := io.ReadFull(r, pathBytes); err != nil {
		return e, false
	}

	var raw [gitkit.IDSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return e, false
	}
	id, err := gitkit.FromRaw(raw[:])
	if err != nil {
		return e, false
	}

	e.Mode = mode
	e.Path = string(pathBytes)
	e.ID = id
	return e, true
}

func modeFromRaw(v uint32) (gitkit.FileMode, error) {
	m := gitkit.FileMode(v)
	switch m {
	case gitkit.ModeNormal, gitkit.ModeExecutable, gitkit.ModeSymlink, gitkit.ModeDirectory:
		return m, nil
	}
	return 0, errors.E("index.modeFromRaw", errors.InvalidInput, errors.Str("unrecognized file mode"))
}

// Write serializes entries to path in the order given: header followed by
// each entry. The write goes to a sibling temp file and is renamed into
// place so readers never observe a partial file.
func Write(path string, entries []gitkit.IndexEntry) error {
	const op = "index.Write"

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "index-*.tmp")
	if err != nil {
		return errors.E(op, path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(magic[:]); err != nil {
		tmp.Close()
		return errors.E(op, path, err)
	}
	if err := binary.Write(w, binary.BigEndian, uint8(version)); err != nil {
		tmp.Close()
		return errors.E(op, path, err)
	}
	if len(entries) > 1<<32-1 {
		tmp.Close()
		return errors.E(op, path, errors.InvalidInput, errors.Str("too many entries"))
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(entries))); err != nil {
		tmp.Close()
		return errors.E(op, path, err)
	}

	for _, e := range entries {
		if len(e.Path) > 1<<16-1 {
			tmp.Close()
			return errors.E(op, e.Path, errors.InvalidInput, errors.Str("path-len exceeds 65535"))
		}
		if err := binary.Write(w, binary.BigEndian, uint32(e.Mode)); err != nil {
			tmp.Close()
			return errors.E(op, path, err)
		}
		if err := binary.Write(w, binary.BigEndian, uint16(len(e.Path))); err != nil {
			tmp.Close()
			return errors.E(op, path, err)
		}
		if _, err := w.WriteString(e.Path); err != nil {
			tmp.Close()
			return errors.E(op, path, err)
		}
		if _, err := w.Write(e.ID[:]); err != nil {
			tmp.Close()
			return errors.E(op, path, err)
		}
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		return errors.E(op, path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.E(op, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.E(op, path, err)
	}
	return nil
}
