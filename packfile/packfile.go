// Package packfile locates and parses the pack container returned at the
// tail of an upload-pack response: scans framed lines for the "PACK"
// magic, forwards any preceding progress text, validates the 12-byte
// header, and then streams per-object variable-length headers while
// teeing the raw bytes into a temp file and an in-memory copy. No digest
// of the pack is computed and its trailing checksum is not checked.
// Object body inflation and delta resolution are out of scope and left as
// a documented extension point.
package packfile // import "gitkit.dev/packfile"

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"

	"gitkit.dev/cursor"
	"gitkit.dev/errors"
	"gitkit.dev/gitkit"
)

// Header is the 12-byte pack container header.
type Header struct {
	Version    uint32
	NumObjects uint32
}

const packMagic = "PACK"

// ObjectHeader is one decoded variable-length pack object header.
type ObjectHeader struct {
	// Type is the decoded object type; delta types (6, 7) and any
	// other code this client does not interpret surface as Unknown.
	Type gitkit.ObjectType
	// RawType is the original 3-bit type code from the first header
	// byte, preserved for Unknown types.
	RawType uint8
	Size    uint64
}

// teeWriter forwards every Write to both an underlying file and an
// in-memory buffer. It computes no digest; the hash field is never set.
type teeWriter struct {
	f    *os.File
	hash []byte
	buf  bytes.Buffer // accumulates a copy of the bytes, returned as Result.Raw
}

func (t *teeWriter) Write(p []byte) (int, error) {
	if _, err := t.f.Write(p); err != nil {
		return 0, err
	}
	t.buf.Write(p)
	return len(p), nil
}

// Result is what Read returns: the parsed header, the per-object header
// list (parsing stops there; body inflation and delta resolution are out
// of scope), the temp file holding the pack bytes read while parsing
// those headers, and an in-memory copy of the same bytes. It carries no
// digest of the pack.
type Result struct {
	Header        Header
	ObjectHeaders []ObjectHeader
	TempFile      string
	Raw           []byte // the tee'd raw pack bytes collected while headers were parsed
	// Prelude is for the human-readable progress/status text preceding
	// "PACK". Read leaves it empty; Locate returns that text instead.
	Prelude string
}

// Locate scans frames directly off the cursor, decoding each frame's
// 4-hex-digit length prefix and payload via cursor reads, forwarding any
// non-PACK progress text to the returned prelude. As soon as a frame's
// payload contains the "PACK" magic it stops, having consumed only the
// bytes up to and including that frame's length prefix and the prelude
// portion of the payload — the "PACK" bytes and everything after remain
// unread in the cursor's buffer, so the caller can switch straight to raw
// reads via c.Reader() without any byte being double-buffered or lost.
//
// Flush frames ("0000") preceding the pack are ignored.
func Locate(c *cursor.Cursor) (prelude string, err error) {
	const op = "packfile.Locate"
	var sb bytes.Buffer

	for {
		lenBytes, err := c.Read(4)
		if err != nil {
			return sb.String(), errors.E(op, err)
		}
		var raw [2]byte
		n, herr := hex.Decode(raw[:], lenBytes)
		if herr != nil || n != 2 {
			return sb.String(), errors.E(op, errors.MalformedFrame, errors.Str("non-hex length prefix"))
		}
		length := int(raw[0])<<8 | int(raw[1])

		switch length {
		case 0: // flush
			continue
		case 1, 2: // delimiter / response-end
			continue
		}
		if length > 0 && length < 4 {
			return sb.String(), errors.E(op, errors.MalformedFrame, errors.Str("length in [1,3] is invalid"))
		}

		payloadLen := length - 4
		payload, err := c.Peek(payloadLen)
		if err != nil {
			return sb.String(), errors.E(op, err)
		}

		if idx := bytes.Index(payload, []byte(packMagic)); idx >= 0 {
			sb.Write(payload[:idx])
			if err := c.Advance(idx); err != nil {
				return sb.String(), errors.E(op, err)
			}
			c.DrainConsumed()
			return sb.String(), nil
		}

		sb.Write(payload)
		if err := c.Advance(payloadLen); err != nil {
			return sb.String(), errors.E(op, err)
		}
	}
}

// Read parses the pack container from c, whose unread buffer must begin
// exactly at the "PACK" magic (the normal sequence is Locate followed by
// Read on the same cursor). tempDir is the object store's
// "objects/pack" directory.
func Read(c *cursor.Cursor, tempDir string) (*Result, error) {
	const op = "packfile.Read"

	f, err := os.CreateTemp(tempDir, "incoming-*.pack")
	if err != nil {
		return nil, errors.E(op, err)
	}
	tee := &teeWriter{f: f}
	tr := io.TeeReader(c.Reader(), tee)

	var magic [4]byte
	if _, err := io.ReadFull(tr, magic[:]); err != nil {
		f.Close()
		return nil, errors.E(op, errors.UnexpectedEOF, err)
	}
	if string(magic[:]) != packMagic {
		f.Close()
		return nil, errors.E(op, errors.MalformedPack, errors.Str("missing PACK magic"))
	}

	var versionBuf, countBuf [4]byte
	if _, err := io.ReadFull(tr, versionBuf[:]); err != nil {
		f.Close()
		return nil, errors.E(op, errors.UnexpectedEOF, err)
	}
	if _, err := io.ReadFull(tr, countBuf[:]); err != nil {
		f.Close()
		return nil, errors.E(op, errors.UnexpectedEOF, err)
	}

	hdr := Header{
		Version:    be32(versionBuf),
		NumObjects: be32(countBuf),
	}
	if hdr.Version != 2 {
		f.Close()
		return nil, errors.E(op, errors.MalformedPack, errors.Str("unsupported pack version"))
	}

	var headers []ObjectHeader
	for i := uint32(0); i < hdr.NumObjects; i++ {
		oh, err := readObjectHeader(tr)
		if err != nil {
			f.Close()
			return nil, errors.E(op, err)
		}
		headers = append(headers, oh)
	}

	if err := f.Close(); err != nil {
		return nil, errors.E(op, err)
	}

	return &Result{
		Header:        hdr,
		ObjectHeaders: headers,
		TempFile:      f.Name(),
		Raw:           tee.buf.Bytes(),
	}, nil
}

func be32(b [4]byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// readObjectHeader decodes one variable-length object header: the first
// byte holds the 3-bit type in bits 6..4 and the low 4 bits of size;
// subsequent continuation bytes (MSB set) each contribute 7 more bits of
// size, least-significant group first.
func readObjectHeader(r io.Reader) (ObjectHeader, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return ObjectHeader{}, errors.E("packfile.readObjectHeader", errors.UnexpectedEOF, err)
	}
	first := b[0]
	typeCode := (first >> 4) & 0x7
	size := uint64(first & 0x0f)
	shift := uint(4)

	for first&0x80 != 0 {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return ObjectHeader{}, errors.E("packfile.readObjectHeader", errors.UnexpectedEOF, err)
		}
		first = b[0]
		size |= uint64(first&0x7f) << shift
		shift += 7
	}

	return ObjectHeader{
		Type:    decodeType(typeCode),
		RawType: typeCode,
		Size:    size,
	}, nil
}

func decodeType(code uint8) gitkit.ObjectType {
	switch code {
	case 1:
		return gitkit.Commit
	case 2:
		return gitkit.Tree
	case 3:
		return gitkit.Blob
	default:
		return gitkit.Unknown
	}
}
