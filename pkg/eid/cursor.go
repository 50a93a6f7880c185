package eid

import (
	"errors"
	"io"
	"os"
)

// bufferSize is the reference chunk size from spec §4.1.
const bufferSize = 4096

// EOF is the sentinel byte value ByteAt and NextByte return at end of file.
const EOF = -1

// Cursor is a Buffered Forward Reader: it wraps a random-access file and
// exposes a cursor-style byte stream under the invariant that the
// caller's read offset is monotonically non-decreasing, with one
// permitted in-window rewind via Seek (spec §4.1).
//
// Cursor reads the underlying file forward in bufferSize chunks and
// retains everything read so far for the lifetime of the scan, so that a
// Seek back to any previously-read offset — in particular, the offset a
// Scanner just reported — always falls within the window.
//
// A Cursor is not safe for concurrent use; each scan owns exactly one.
type Cursor struct {
	path string
	f    *os.File

	buf        []byte // all bytes read so far, starting at file offset 0
	eof        bool   // true once the underlying file has been read to EOF
	lastOffset int64  // highest offset successfully served, -1 before the first read
	nextOffset int64  // offset NextByte will serve next
}

// Open opens path for reading, pre-reads one buffer-sized chunk, and
// positions the logical cursor at offset 0.
func Open(path string) (*Cursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, readError(path, "open", err)
	}
	c := &Cursor{path: path, f: f, lastOffset: -1}
	if err := c.ensure(0); err != nil {
		_ = f.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the underlying file handle. Safe to call more than once.
func (c *Cursor) Close() error {
	if c.f == nil {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	if err != nil {
		return readError(c.path, "close", err)
	}
	return nil
}

// ensure reads forward in bufferSize chunks until the buffer holds byte
// offset or the underlying file is exhausted.
func (c *Cursor) ensure(offset int64) error {
	for !c.eof && int64(len(c.buf)) <= offset {
		chunk := make([]byte, bufferSize)
		n, err := c.f.Read(chunk)
		if n > 0 {
			c.buf = append(c.buf, chunk[:n]...)
		}
		if err != nil {
			if isEOF(err) {
				c.eof = true
				break
			}
			return readError(c.path, "read", err)
		}
		if n == 0 {
			c.eof = true
		}
	}
	return nil
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}

// ByteAt returns the byte at offset, or EOF at end of file. It fails with
// InvalidUsage if offset is strictly less than the previously served
// offset (the monotonic-cursor contract). When offset falls past what has
// already been buffered, the underlying file is read forward to cover it.
func (c *Cursor) ByteAt(offset int64) (int, error) {
	if offset < c.lastOffset {
		return 0, invalidUsage("eid: cursor %s: non-monotonic read at offset %d, last served %d", c.path, offset, c.lastOffset)
	}
	if err := c.ensure(offset); err != nil {
		return 0, err
	}
	c.lastOffset = offset
	c.nextOffset = offset + 1
	if offset >= int64(len(c.buf)) {
		return EOF, nil
	}
	return int(c.buf[offset]), nil
}

// NextByte is equivalent to ByteAt(previousOffset + 1); the first call
// after Open reads offset 0.
func (c *Cursor) NextByte() (int, error) {
	offset := c.nextOffset
	if c.lastOffset < 0 {
		offset = 0
	}
	return c.ByteAt(offset)
}

// Seek repositions the cursor for subsequent NextByte calls to offset.
// offset must fall within what has already been buffered
// (0 <= offset < len(buffered)); Seek exists solely to let the Extractor
// re-read the matched region after the KMP Scanner has located it, never
// to jump arbitrarily far back.
func (c *Cursor) Seek(offset int64) error {
	if offset < 0 || offset >= int64(len(c.buf)) {
		return invalidUsage("eid: cursor %s: seek to %d outside buffered window [0, %d)", c.path, offset, len(c.buf))
	}
	c.nextOffset = offset
	c.lastOffset = offset - 1
	return nil
}
