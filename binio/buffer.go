package binio

import (
	"fmt"
	"io"
)

// Buffer is an in-memory io.ReadWriteSeeker. The SSPM encoder needs a
// seekable sink for offset back-patching; when the real destination cannot
// seek, encode into a Buffer and flush its Bytes once.
type Buffer struct {
	data []byte
	off  int64
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Bytes returns the written content. The slice aliases the buffer's
// storage and is valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the content length.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Read reads from the current offset.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.off:])
	b.off += int64(n)
	return n, nil
}

// Write writes at the current offset, growing the buffer and zero-filling
// any gap left by a seek past the end.
func (b *Buffer) Write(p []byte) (int, error) {
	if end := b.off + int64(len(p)); end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	n := copy(b.data[b.off:], p)
	b.off += int64(n)
	return n, nil
}

// Seek repositions the offset. Seeking before the start is an error;
// seeking past the end is allowed and materializes on the next write.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.off + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("binio: invalid seek whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("binio: seek before start of buffer")
	}
	b.off = abs
	return abs, nil
}
