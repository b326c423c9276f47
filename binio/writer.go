package binio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Neumenon/mapcodec/mapfile"
)

// Writer is a typed cursor over a seekable byte sink. Seeking is required
// for the SSPM encoder's deferred offset back-patching; wrap output in a
// Buffer when the real destination cannot seek.
type Writer struct {
	w   io.WriteSeeker
	pos int64
	buf [8]byte
}

// NewWriter wraps a seekable byte sink, starting from its current
// position.
func NewWriter(w io.WriteSeeker) (*Writer, error) {
	pos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("binio: query position: %w", err)
	}
	return &Writer{w: w, pos: pos}, nil
}

// Position returns the current write offset.
func (w *Writer) Position() int64 {
	return w.pos
}

// Seek repositions the cursor. Whence follows the io.Seek* constants.
func (w *Writer) Seek(offset int64, whence int) (int64, error) {
	pos, err := w.w.Seek(offset, whence)
	if err != nil {
		return 0, fmt.Errorf("binio: seek: %w", err)
	}
	w.pos = pos
	return pos, nil
}

// WriteBytes writes p verbatim.
func (w *Writer) WriteBytes(p []byte) error {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	if err != nil {
		return fmt.Errorf("binio: write: %w", err)
	}
	return nil
}

// WriteBool writes 0x01 for true, 0x00 for false.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteUint8(0x01)
	}
	return w.WriteUint8(0x00)
}

// WriteUint8 writes one byte.
func (w *Writer) WriteUint8(v uint8) error {
	w.buf[0] = v
	return w.WriteBytes(w.buf[:1])
}

// WriteUint16 writes a little-endian u16.
func (w *Writer) WriteUint16(v uint16) error {
	binary.LittleEndian.PutUint16(w.buf[:2], v)
	return w.WriteBytes(w.buf[:2])
}

// WriteUint32 writes a little-endian u32.
func (w *Writer) WriteUint32(v uint32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	return w.WriteBytes(w.buf[:4])
}

// WriteUint64 writes a little-endian u64.
func (w *Writer) WriteUint64(v uint64) error {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	return w.WriteBytes(w.buf[:8])
}

// WriteFloat32 writes a little-endian IEEE 754 single.
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes a little-endian IEEE 754 double.
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteString writes a u16 byte-length prefix followed by the string
// bytes.
func (w *Writer) WriteString(s string) error {
	if len(s) > math.MaxUint16 {
		return &mapfile.EncodingError{Reason: fmt.Sprintf("string of %d bytes exceeds u16 length prefix", len(s)), Offset: w.pos}
	}
	if err := w.WriteUint16(uint16(len(s))); err != nil {
		return err
	}
	return w.WriteBytes([]byte(s))
}

// WriteLongString writes a u32 byte-length prefix followed by the string
// bytes.
func (w *Writer) WriteLongString(s string) error {
	if int64(len(s)) > math.MaxUint32 {
		return &mapfile.EncodingError{Reason: fmt.Sprintf("string of %d bytes exceeds u32 length prefix", len(s)), Offset: w.pos}
	}
	if err := w.WriteUint32(uint32(len(s))); err != nil {
		return err
	}
	return w.WriteBytes([]byte(s))
}

// WriteBuffer writes a u16 byte-length prefix followed by the buffer
// bytes.
func (w *Writer) WriteBuffer(p []byte) error {
	if len(p) > math.MaxUint16 {
		return &mapfile.EncodingError{Reason: fmt.Sprintf("buffer of %d bytes exceeds u16 length prefix", len(p)), Offset: w.pos}
	}
	if err := w.WriteUint16(uint16(len(p))); err != nil {
		return err
	}
	return w.WriteBytes(p)
}

// WriteLongBuffer writes a u32 byte-length prefix followed by the buffer
// bytes.
func (w *Writer) WriteLongBuffer(p []byte) error {
	if int64(len(p)) > math.MaxUint32 {
		return &mapfile.EncodingError{Reason: fmt.Sprintf("buffer of %d bytes exceeds u32 length prefix", len(p)), Offset: w.pos}
	}
	if err := w.WriteUint32(uint32(len(p))); err != nil {
		return err
	}
	return w.WriteBytes(p)
}

// WriteHash writes a fixed 20-byte hash verbatim.
func (w *Writer) WriteHash(h [20]byte) error {
	return w.WriteBytes(h[:])
}

// WriteVec2 writes a quantized 2D vector in the SSPM export encoding:
// compact (one byte per axis, offset by +1) when both axes are integral to
// two decimal places, exact f32 per axis otherwise. The +1 compact offset
// is not the mirror of any decode bias; the two sides of the format
// disagree by one unit and the encoding here matches what the format's
// exporter emits.
func (w *Writer) WriteVec2(v mapfile.Vec2) error {
	quantum := !integral(v.X) || !integral(v.Y)
	if err := w.WriteBool(quantum); err != nil {
		return err
	}
	if quantum {
		if err := w.WriteFloat32(v.X); err != nil {
			return err
		}
		return w.WriteFloat32(v.Y)
	}
	if err := w.WriteUint8(compactByte(v.X)); err != nil {
		return err
	}
	return w.WriteUint8(compactByte(v.Y))
}

// compactByte converts one integral axis to its compact byte. The cast
// saturates: a float to uint8 conversion out of range is
// implementation-dependent in Go, and decoded maps legitimately carry
// negative axes under the decode bias.
func compactByte(v float32) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 254 {
		v = 254
	}
	return uint8(v) + 1
}

// integral reports whether v carries no fractional part within two decimal
// places, the boundary the exporter uses to pick compact form.
func integral(v float32) bool {
	f := float64(v)
	return math.Round(f) == math.Round(f*100)/100
}
