package mapfile

import (
	"errors"
	"testing"
)

func TestKindFromTag(t *testing.T) {
	tests := []struct {
		tag  uint8
		want Kind
	}{
		{0x01, KindUint8},
		{0x05, KindFloat32},
		{0x07, KindVec2},
		{0x09, KindString},
		{0x0C, KindArray},
	}
	for _, tt := range tests {
		k, err := KindFromTag(tt.tag)
		if err != nil {
			t.Fatalf("KindFromTag(0x%02X) failed: %v", tt.tag, err)
		}
		if k != tt.want {
			t.Errorf("KindFromTag(0x%02X): expected %s, got %s", tt.tag, tt.want, k)
		}
	}

	for _, tag := range []uint8{0x00, 0x0D, 0x0E, 0xFF} {
		_, err := KindFromTag(tag)
		var enc *EncodingError
		if !errors.As(err, &enc) {
			t.Errorf("KindFromTag(0x%02X): expected EncodingError, got %v", tag, err)
		}
	}
}

func TestValue_Accessors(t *testing.T) {
	v := Uint16(1234)
	got, err := v.AsUint16()
	if err != nil {
		t.Fatalf("AsUint16 failed: %v", err)
	}
	if got != 1234 {
		t.Errorf("expected 1234, got %d", got)
	}

	// Kind mismatch
	if _, err := v.AsStr(); err == nil {
		t.Error("expected error reading u16 as str")
	}

	// Empty slot
	slot := Slot(KindUint16)
	if slot.Populated() {
		t.Error("slot should not be populated")
	}
	if _, err := slot.AsUint16(); err == nil {
		t.Error("expected error reading an empty slot")
	}
}

func TestValue_StrCoversBothWidths(t *testing.T) {
	for _, v := range []Value{Str("a"), LongStr("a")} {
		s, err := v.AsStr()
		if err != nil {
			t.Fatalf("AsStr failed for %s: %v", v.Kind(), err)
		}
		if s != "a" {
			t.Errorf("expected %q, got %q", "a", s)
		}
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same u32", Uint32(7), Uint32(7), true},
		{"different u32", Uint32(7), Uint32(8), false},
		{"kind mismatch", Uint32(7), Uint64(7), false},
		{"slot vs populated", Slot(KindUint32), Uint32(0), false},
		{"matching slots", Slot(KindVec2), Slot(KindVec2), true},
		{"vec2", Vec2Val(Vec2{X: 1, Y: 2}), Vec2Val(Vec2{X: 1, Y: 2}), true},
		{"buffers", Buffer([]byte{1, 2}), Buffer([]byte{1, 2}), true},
		{"buffer length", Buffer([]byte{1, 2}), Buffer([]byte{1}), false},
		{"arrays", Array([]Value{Uint8(1)}), Array([]Value{Uint8(1)}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Uint8(3), "3"},
		{Str("hi"), `"hi"`},
		{Vec2Val(Vec2{X: 1, Y: 2.5}), "(1, 2.5)"},
		{Slot(KindFloat64), "f64(slot)"},
		{Buffer([]byte{1, 2, 3}), "buf[3 bytes]"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String: expected %q, got %q", tt.want, got)
		}
	}
}
