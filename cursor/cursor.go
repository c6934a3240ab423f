// Package cursor implements a pull-based buffered byte window over an
// underlying reader: ensure/read/peek/advance/search/drain, used where the
// wire stream switches mid-stream from framed text to a raw binary pack.
package cursor // import "gitkit.dev/cursor"

import (
	"bytes"
	"io"

	"gitkit.dev/errors"
)

// DefaultChunkSize is the size of each underlying read performed by
// ensureAvailable when the buffer needs to grow.
const DefaultChunkSize = 64 * 1024

// Cursor is a buffered, pull-based window over r. All returned slices
// alias the internal buffer and are only valid until the next mutating
// call.
type Cursor struct {
	r         io.Reader
	buf       []byte
	pos       int  // read cursor within buf
	eof       bool
	chunkSize int
}

// New wraps r for cursor-style reads, using DefaultChunkSize chunks.
func New(r io.Reader) *Cursor {
	return &Cursor{r: r, chunkSize: DefaultChunkSize}
}

// available returns the number of unread bytes currently buffered.
func (c *Cursor) available() int {
	return len(c.buf) - c.pos
}

// ensureAvailable reads from the underlying reader in chunkSize pieces
// until at least n bytes are buffered (from pos) or EOF is reached.
func (c *Cursor) ensureAvailable(n int) error {
	for c.available() < n && !c.eof {
		chunk := make([]byte, c.chunkSize)
		read, err := c.r.Read(chunk)
		if read > 0 {
			c.buf = append(c.buf, chunk[:read]...)
		}
		if err != nil {
			if err == io.EOF {
				c.eof = true
				break
			}
			return errors.E("cursor.ensureAvailable", err)
		}
	}
	if c.available() < n {
		return errors.E("cursor.ensureAvailable", errors.UnexpectedEOF)
	}
	return nil
}

// Peek returns the next n bytes without advancing the cursor.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if err := c.ensureAvailable(n); err != nil {
		return nil, err
	}
	return c.buf[c.pos : c.pos+n], nil
}

// Read returns the next n bytes and advances the cursor past them.
func (c *Cursor) Read(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// Advance moves the cursor forward by n bytes, ensuring they are
// available first.
func (c *Cursor) Advance(n int) error {
	if err := c.ensureAvailable(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// Search looks for pattern in the unread buffer, reading more of the
// underlying stream in chunks until it is found or EOF. It returns the
// offset of the match relative to the current cursor position, or false
// if pattern never appears before EOF.
func (c *Cursor) Search(pattern []byte) (int, bool) {
	for {
		if idx := bytes.Index(c.buf[c.pos:], pattern); idx >= 0 {
			return idx, true
		}
		if c.eof {
			return 0, false
		}
		chunk := make([]byte, c.chunkSize)
		read, err := c.r.Read(chunk)
		if read > 0 {
			c.buf = append(c.buf, chunk[:read]...)
		}
		if err != nil {
			c.eof = true
		}
	}
}

// DrainConsumed discards the already-read prefix of the buffer so memory
// usage does not grow unboundedly across phase boundaries.
func (c *Cursor) DrainConsumed() {
	if c.pos == 0 {
		return
	}
	remaining := make([]byte, c.available())
	copy(remaining, c.buf[c.pos:])
	c.buf = remaining
	c.pos = 0
}

// Unread returns the slice of currently buffered, not-yet-consumed bytes
// without performing any reads. Used to hand off the remainder of the
// buffer to a raw byte consumer (the pack container reader) after the
// framed portion of the stream has been fully parsed.
func (c *Cursor) Unread() []byte {
	return c.buf[c.pos:]
}

// Reader returns an io.Reader that first drains any buffered-but-unread
// bytes, then falls through to the underlying reader. Used once the
// cursor has located a boundary (e.g. the start of the pack container)
// and a plain io.Reader is needed for the remainder of the stream.
func (c *Cursor) Reader() io.Reader {
	return io.MultiReader(bytes.NewReader(c.Unread()), c.r)
}
