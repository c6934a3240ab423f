// Package objstore implements the content-addressed object store: a
// two-level hex-bucket directory layout under which typed object
// envelopes are persisted compressed, write-once, keyed by their own
// digest.
package objstore // import "gitkit.dev/objstore"

import (
	"io"
	"os"
	"path/filepath"

	"gitkit.dev/errors"
	"gitkit.dev/gitkit"
	"gitkit.dev/objcodec"
)

// Store is a filesystem-rooted content-addressed object store.
type Store struct {
	// Root is the directory holding the "objects" tree, normally
	// "<repo>/.git".
	Root string

	Digester   gitkit.Digester
	Compressor gitkit.Compressor
}

// New returns a Store rooted at root, using the default digest and
// compression algorithms.
func New(root string) *Store {
	return &Store{
		Root:       root,
		Digester:   gitkit.DefaultDigester,
		Compressor: gitkit.DefaultCompressor,
	}
}

// objectsDir returns "<root>/objects".
func (s *Store) objectsDir() string {
	return filepath.Join(s.Root, "objects")
}

// PackDir returns "<root>/objects/pack", creating it if necessary.
func (s *Store) PackDir() (string, error) {
	dir := filepath.Join(s.objectsDir(), "pack")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.E("objstore.PackDir", dir, err)
	}
	return dir, nil
}

func (s *Store) path(id gitkit.ObjectID) (dir, file string) {
	bucket, name := id.PathParts()
	dir = filepath.Join(s.objectsDir(), bucket)
	file = filepath.Join(dir, name)
	return dir, file
}

// Write computes the envelope for (typ, payload), derives its id, and
// persists the compressed envelope under the bucket path for that id. A
// path that already exists is left untouched and treated as success: the
// write is idempotent.
func (s *Store) Write(typ gitkit.ObjectType, payload []byte) (gitkit.ObjectID, error) {
	const op = "objstore.Write"
	envelope := objcodec.Encode(typ, payload)
	id := s.Digester.Sum(envelope)

	dir, file := s.path(id)
	if _, err := os.Stat(file); err == nil {
		return id, nil
	} else if !os.IsNotExist(err) {
		return id, errors.E(op, id.String(), err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return id, errors.E(op, id.String(), err)
	}

	tmp, err := os.CreateTemp(dir, "obj-*.tmp")
	if err != nil {
		return id, errors.E(op, id.String(), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := s.Compressor.Compress(tmp, envelope); err != nil {
		tmp.Close()
		return id, errors.E(op, id.String(), err)
	}
	if err := tmp.Close(); err != nil {
		return id, errors.E(op, id.String(), err)
	}

	if err := os.Rename(tmpName, file); err != nil {
		if os.IsExist(err) {
			return id, nil
		}
		return id, errors.E(op, id.String(), err)
	}
	return id, nil
}

// Read decompresses and decodes the object stored under the given hex id.
func (s *Store) Read(hexID string) (gitkit.ObjectType, []byte, error) {
	const op = "objstore.Read"
	id, err := gitkit.FromHex(hexID)
	if err != nil {
		return 0, nil, errors.E(op, hexID, errors.InvalidInput, err)
	}

	_, file := s.path(id)
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil, errors.E(op, hexID, errors.NotFound, err)
		}
		return 0, nil, errors.E(op, hexID, err)
	}
	defer f.Close()

	envelope, err := s.Compressor.Decompress(f)
	if err != nil {
		return 0, nil, errors.E(op, hexID, errors.Str("decompress-failed"), err)
	}

	typ, payload, err := objcodec.Decode(envelope)
	if err != nil {
		return 0, nil, errors.E(op, hexID, err)
	}
	return typ, payload, nil
}

// Has reports whether an object with the given id is already persisted.
func (s *Store) Has(id gitkit.ObjectID) bool {
	_, file := s.path(id)
	_, err := os.Stat(file)
	return err == nil
}

// ReadRaw returns the bytes of id's object file exactly as stored on disk:
// the compressed envelope, neither decompressed nor decoded.
func (s *Store) ReadRaw(id gitkit.ObjectID) ([]byte, error) {
	_, file := s.path(id)
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
