package gitkit

import (
	"compress/zlib"
	"crypto/sha1"
	"io"
)

// Digester computes the content identifier for an envelope. It is the
// pluggable 160-bit hash primitive referenced throughout the object store;
// callers may substitute an alternate implementation, but the default
// matches the digest the widely deployed system this client talks to uses.
type Digester interface {
	// Sum returns the ObjectID of b.
	Sum(b []byte) ObjectID
	// Name identifies the algorithm, e.g. "sha1". Advertised as the
	// object-format capability during negotiation.
	Name() string
}

// SHA1Digester is the default Digester.
type SHA1Digester struct{}

// Sum implements Digester.
func (SHA1Digester) Sum(b []byte) ObjectID {
	sum := sha1.Sum(b)
	return ObjectID(sum)
}

// Name implements Digester.
func (SHA1Digester) Name() string { return "sha1" }

// DefaultDigester is the Digester used when none is supplied explicitly.
var DefaultDigester Digester = SHA1Digester{}

// Compressor is the pluggable deflate/inflate codec used to store object
// envelopes on disk. The default is zlib at a fixed compression level.
type Compressor interface {
	// Compress writes the zlib-compressed form of b to w.
	Compress(w io.Writer, b []byte) error
	// Decompress returns the inflated contents read from r.
	Decompress(r io.Reader) ([]byte, error)
}

// ZlibCompressor is the default Compressor.
type ZlibCompressor struct {
	// Level is the zlib compression level; zero means
	// zlib.DefaultCompression.
	Level int
}

// Compress implements Compressor.
func (z ZlibCompressor) Compress(w io.Writer, b []byte) error {
	level := z.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	zw, err := zlib.NewWriterLevel(w, level)
	if err != nil {
		return err
	}
	if _, err := zw.Write(b); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Decompress implements Compressor.
func (ZlibCompressor) Decompress(r io.Reader) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// DefaultCompressor is the Compressor used when none is supplied explicitly.
var DefaultCompressor Compressor = ZlibCompressor{}
