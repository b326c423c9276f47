package binio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/Neumenon/mapcodec/mapfile"
)

func newTestReader(t *testing.T, data []byte) *Reader {
	t.Helper()
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	return r
}

func TestReader_TruncatedRead(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(r *Reader) error
	}{
		{"u32 from 2 bytes", []byte{0x01, 0x02}, func(r *Reader) error {
			_, err := r.ReadUint32()
			return err
		}},
		{"u64 from empty", nil, func(r *Reader) error {
			_, err := r.ReadUint64()
			return err
		}},
		{"hash from 10 bytes", make([]byte, 10), func(r *Reader) error {
			_, err := r.ReadHash()
			return err
		}},
		{"string body cut short", []byte{0x05, 0x00, 'a', 'b'}, func(r *Reader) error {
			_, err := r.ReadString()
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(newTestReader(t, tt.data))
			var trunc *mapfile.TruncatedError
			if !errors.As(err, &trunc) {
				t.Fatalf("expected TruncatedError, got %v", err)
			}
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("TruncatedError should unwrap to io.ErrUnexpectedEOF")
			}
		})
	}
}

func TestReader_LengthGuard(t *testing.T) {
	// A long-string prefix declaring 4 GiB must be rejected before any
	// allocation happens.
	r := newTestReader(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 'x'})
	_, err := r.ReadLongString()
	var trunc *mapfile.TruncatedError
	if !errors.As(err, &trunc) {
		t.Fatalf("expected TruncatedError for oversized length prefix, got %v", err)
	}
}

func TestReader_InvalidUTF8(t *testing.T) {
	r := newTestReader(t, []byte{0x02, 0x00, 0xFF, 0xFE})
	_, err := r.ReadString()
	var enc *mapfile.EncodingError
	if !errors.As(err, &enc) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
}

func TestReader_Strings(t *testing.T) {
	r := newTestReader(t, []byte{0x05, 0x00, 'a', 'l', 'i', 'c', 'e'})
	s, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if s != "alice" {
		t.Errorf("expected %q, got %q", "alice", s)
	}
	if r.Position() != 7 {
		t.Errorf("expected position 7, got %d", r.Position())
	}
}

func TestReader_Vec2(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		bias float32
		want mapfile.Vec2
	}{
		{
			name: "compact with -2 bias",
			data: []byte{0x00, 5, 6},
			bias: -2,
			want: mapfile.Vec2{X: 3, Y: 4},
		},
		{
			name: "compact with -1 bias",
			data: []byte{0x00, 5, 6},
			bias: -1,
			want: mapfile.Vec2{X: 4, Y: 5},
		},
		{
			name: "quantum ignores bias",
			data: []byte{0x01, 0x00, 0x00, 0x40, 0x40, 0x00, 0x00, 0x90, 0x40}, // 3.0, 4.5
			bias: -2,
			want: mapfile.Vec2{X: 3, Y: 4.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := newTestReader(t, tt.data).ReadVec2(tt.bias)
			if err != nil {
				t.Fatalf("ReadVec2 failed: %v", err)
			}
			if v != tt.want {
				t.Errorf("expected %v, got %v", tt.want, v)
			}
		})
	}
}

func TestReader_SeekAndSize(t *testing.T) {
	r := newTestReader(t, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if r.Size() != 8 {
		t.Fatalf("expected size 8, got %d", r.Size())
	}
	if _, err := r.Seek(6, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	b, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if b != 7 {
		t.Errorf("expected byte 7, got %d", b)
	}
	if _, err := r.Seek(-2, io.SeekEnd); err != nil {
		t.Fatalf("Seek from end failed: %v", err)
	}
	if r.Position() != 6 {
		t.Errorf("expected position 6, got %d", r.Position())
	}
}
