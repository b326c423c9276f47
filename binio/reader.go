// Package binio provides the little-endian binary cursor the map container
// codecs read and write through: fixed-width primitives, length-prefixed
// UTF-8 strings, fixed hash buffers, and quantized vectors, over a
// seekable byte stream.
//
// All reads are fail-fast: a short read surfaces as a
// mapfile.TruncatedError, never as zero-filled data. Length prefixes are
// checked against the bytes actually remaining in the stream before any
// allocation, so an adversarial prefix cannot force a huge buffer.
package binio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/Neumenon/mapcodec/mapfile"
)

// Reader is a typed cursor over a seekable byte source. It is not safe for
// concurrent use; callers decoding independent streams need no
// synchronization.
type Reader struct {
	r    io.ReadSeeker
	size int64
	pos  int64
	buf  [20]byte // scratch for fixed-width reads
}

// NewReader wraps a seekable byte source. The stream size is measured once
// up front so declared lengths can be validated before allocation; the
// read position is left where it was.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("binio: query position: %w", err)
	}
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("binio: measure size: %w", err)
	}
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return nil, fmt.Errorf("binio: restore position: %w", err)
	}
	return &Reader{r: r, size: size, pos: pos}, nil
}

// Position returns the current read offset.
func (r *Reader) Position() int64 {
	return r.pos
}

// Size returns the total stream size.
func (r *Reader) Size() int64 {
	return r.size
}

// Seek repositions the cursor. Whence follows the io.Seek* constants.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	pos, err := r.r.Seek(offset, whence)
	if err != nil {
		return 0, fmt.Errorf("binio: seek: %w", err)
	}
	r.pos = pos
	return pos, nil
}

func (r *Reader) readFull(p []byte) error {
	n, err := io.ReadFull(r.r, p)
	r.pos += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &mapfile.TruncatedError{Offset: r.pos, Err: io.ErrUnexpectedEOF}
		}
		return fmt.Errorf("binio: read: %w", err)
	}
	return nil
}

// checkN rejects a declared length that exceeds the bytes left in the
// stream, before anything is allocated for it.
func (r *Reader) checkN(n uint64) error {
	if n > math.MaxInt64 || int64(n) > r.size-r.pos {
		return &mapfile.TruncatedError{Offset: r.pos, Err: io.ErrUnexpectedEOF}
	}
	return nil
}

// ReadBool reads one byte; 0x01 is true, anything else false.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return false, err
	}
	return b == 0x01, nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.readFull(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// ReadUint16 reads a little-endian u16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.readFull(r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[:2]), nil
}

// ReadUint32 reads a little-endian u32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.readFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

// ReadUint64 reads a little-endian u64.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.readFull(r.buf[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.buf[:8]), nil
}

// ReadFloat32 reads a little-endian IEEE 754 single.
func (r *Reader) ReadFloat32() (float32, error) {
	bits, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadFloat64 reads a little-endian IEEE 754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	bits, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n uint64) ([]byte, error) {
	if err := r.checkN(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadHash reads a fixed 20-byte hash verbatim.
func (r *Reader) ReadHash() ([20]byte, error) {
	var h [20]byte
	if err := r.readFull(h[:]); err != nil {
		return h, err
	}
	return h, nil
}

// ReadString reads a u16 byte-length prefix followed by that many UTF-8
// bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	return r.readUTF8(uint64(n))
}

// ReadLongString reads a u32 byte-length prefix followed by that many
// UTF-8 bytes.
func (r *Reader) ReadLongString() (string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	return r.readUTF8(uint64(n))
}

func (r *Reader) readUTF8(n uint64) (string, error) {
	start := r.pos
	buf, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", &mapfile.EncodingError{Reason: "invalid UTF-8 sequence", Offset: start}
	}
	return string(buf), nil
}

// ReadBuffer reads a u16 byte-length prefix followed by that many raw
// bytes.
func (r *Reader) ReadBuffer() ([]byte, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(uint64(n))
}

// ReadLongBuffer reads a u32 byte-length prefix followed by that many raw
// bytes.
func (r *Reader) ReadLongBuffer() ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(uint64(n))
}

// ReadVec2 reads a quantized 2D vector: a quantum flag, then either a full
// f32 per axis (flag set) or one byte per axis widened to float and offset
// by compactBias. The bias differs between container variants, so the
// caller supplies it.
func (r *Reader) ReadVec2(compactBias float32) (mapfile.Vec2, error) {
	quantum, err := r.ReadBool()
	if err != nil {
		return mapfile.Vec2{}, err
	}
	if quantum {
		x, err := r.ReadFloat32()
		if err != nil {
			return mapfile.Vec2{}, err
		}
		y, err := r.ReadFloat32()
		if err != nil {
			return mapfile.Vec2{}, err
		}
		return mapfile.Vec2{X: x, Y: y}, nil
	}
	bx, err := r.ReadUint8()
	if err != nil {
		return mapfile.Vec2{}, err
	}
	by, err := r.ReadUint8()
	if err != nil {
		return mapfile.Vec2{}, err
	}
	return mapfile.Vec2{X: float32(bx) + compactBias, Y: float32(by) + compactBias}, nil
}

// ReadVec3 reads a quantized 3D vector with the same axis encoding as
// ReadVec2.
func (r *Reader) ReadVec3(compactBias float32) (mapfile.Vec3, error) {
	quantum, err := r.ReadBool()
	if err != nil {
		return mapfile.Vec3{}, err
	}
	if quantum {
		var axes [3]float32
		for i := range axes {
			f, err := r.ReadFloat32()
			if err != nil {
				return mapfile.Vec3{}, err
			}
			axes[i] = f
		}
		return mapfile.Vec3{X: axes[0], Y: axes[1], Z: axes[2]}, nil
	}
	var axes [3]float32
	for i := range axes {
		b, err := r.ReadUint8()
		if err != nil {
			return mapfile.Vec3{}, err
		}
		axes[i] = float32(b) + compactBias
	}
	return mapfile.Vec3{X: axes[0], Y: axes[1], Z: axes[2]}, nil
}
