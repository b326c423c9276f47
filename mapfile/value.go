package mapfile

import (
	"fmt"
	"strconv"
)

// Vec2 is a 2D position. Axes are stored as float32 to match the exact
// on-disk encoding; quantized axes are widened from a single byte.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D position. Declared by the value model but never produced by
// a decode path.
type Vec3 struct {
	X, Y, Z float32
}

// Kind identifies a field kind. For kinds the SSPM wire format can name,
// the numeric value is the on-disk type tag.
type Kind uint8

const (
	KindUint8      Kind = 0x01
	KindUint16     Kind = 0x02
	KindUint32     Kind = 0x03
	KindUint64     Kind = 0x04
	KindFloat32    Kind = 0x05
	KindFloat64    Kind = 0x06
	KindVec2       Kind = 0x07
	KindBuffer     Kind = 0x08
	KindString     Kind = 0x09
	KindLongBuffer Kind = 0x0A
	KindLongString Kind = 0x0B
	KindArray      Kind = 0x0C

	// Declared by the value model but absent from the tag space. These
	// never appear in a schema table and have no decode implementation.
	KindInt64 Kind = 0x0D
	KindVec3  Kind = 0x0E
)

// KindFromTag maps an on-disk type tag to a Kind. Tags outside the
// declared 0x01..0x0C range are an encoding error.
func KindFromTag(tag uint8) (Kind, error) {
	if tag >= 0x01 && tag <= 0x0C {
		return Kind(tag), nil
	}
	return 0, &EncodingError{Reason: fmt.Sprintf("unknown type tag 0x%02X", tag), Offset: -1}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUint8:
		return "u8"
	case KindUint16:
		return "u16"
	case KindUint32:
		return "u32"
	case KindUint64:
		return "u64"
	case KindFloat32:
		return "f32"
	case KindFloat64:
		return "f64"
	case KindVec2:
		return "vec2"
	case KindBuffer:
		return "buf"
	case KindString:
		return "str"
	case KindLongBuffer:
		return "longbuf"
	case KindLongString:
		return "longstr"
	case KindArray:
		return "array"
	case KindInt64:
		return "i64"
	case KindVec3:
		return "vec3"
	default:
		return "unknown"
	}
}

// Value is one field of a record: a tagged union over the format's field
// kinds. A Value is either a bare slot (kind only, as stored in a schema
// table) or populated with decoded content.
type Value struct {
	kind      Kind
	populated bool

	// Scalar storage (only one valid based on kind)
	uintVal  uint64
	intVal   int64
	floatVal float64
	strVal   string
	bytesVal []byte
	vecVal   Vec3 // vec2 uses X/Y only

	arrVal []Value
}

// ============================================================
// Constructors
// ============================================================

// Slot creates an unpopulated value of the given kind, as read from a
// schema table.
func Slot(k Kind) Value {
	return Value{kind: k}
}

// Uint8 creates a populated u8 value.
func Uint8(v uint8) Value {
	return Value{kind: KindUint8, populated: true, uintVal: uint64(v)}
}

// Uint16 creates a populated u16 value.
func Uint16(v uint16) Value {
	return Value{kind: KindUint16, populated: true, uintVal: uint64(v)}
}

// Uint32 creates a populated u32 value.
func Uint32(v uint32) Value {
	return Value{kind: KindUint32, populated: true, uintVal: uint64(v)}
}

// Uint64 creates a populated u64 value.
func Uint64(v uint64) Value {
	return Value{kind: KindUint64, populated: true, uintVal: v}
}

// Float32 creates a populated f32 value.
func Float32(v float32) Value {
	return Value{kind: KindFloat32, populated: true, floatVal: float64(v)}
}

// Float64 creates a populated f64 value.
func Float64(v float64) Value {
	return Value{kind: KindFloat64, populated: true, floatVal: v}
}

// Vec2Val creates a populated 2D-vector value.
func Vec2Val(v Vec2) Value {
	return Value{kind: KindVec2, populated: true, vecVal: Vec3{X: v.X, Y: v.Y}}
}

// Vec3Val creates a populated 3D-vector value.
func Vec3Val(v Vec3) Value {
	return Value{kind: KindVec3, populated: true, vecVal: v}
}

// Buffer creates a populated short-buffer value.
func Buffer(b []byte) Value {
	return Value{kind: KindBuffer, populated: true, bytesVal: b}
}

// LongBuffer creates a populated long-buffer value.
func LongBuffer(b []byte) Value {
	return Value{kind: KindLongBuffer, populated: true, bytesVal: b}
}

// Str creates a populated short-string value.
func Str(s string) Value {
	return Value{kind: KindString, populated: true, strVal: s}
}

// LongStr creates a populated long-string value.
func LongStr(s string) Value {
	return Value{kind: KindLongString, populated: true, strVal: s}
}

// Int64 creates a populated signed-64 value.
func Int64(v int64) Value {
	return Value{kind: KindInt64, populated: true, intVal: v}
}

// Array creates a populated nested-sequence value.
func Array(vals []Value) Value {
	return Value{kind: KindArray, populated: true, arrVal: vals}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// Populated reports whether the value holds content, as opposed to being a
// bare schema slot.
func (v Value) Populated() bool {
	return v.populated
}

// AsUint8 returns the u8 content.
func (v Value) AsUint8() (uint8, error) {
	if err := v.check(KindUint8); err != nil {
		return 0, err
	}
	return uint8(v.uintVal), nil
}

// AsUint16 returns the u16 content.
func (v Value) AsUint16() (uint16, error) {
	if err := v.check(KindUint16); err != nil {
		return 0, err
	}
	return uint16(v.uintVal), nil
}

// AsUint32 returns the u32 content.
func (v Value) AsUint32() (uint32, error) {
	if err := v.check(KindUint32); err != nil {
		return 0, err
	}
	return uint32(v.uintVal), nil
}

// AsUint64 returns the u64 content.
func (v Value) AsUint64() (uint64, error) {
	if err := v.check(KindUint64); err != nil {
		return 0, err
	}
	return v.uintVal, nil
}

// AsFloat32 returns the f32 content.
func (v Value) AsFloat32() (float32, error) {
	if err := v.check(KindFloat32); err != nil {
		return 0, err
	}
	return float32(v.floatVal), nil
}

// AsFloat64 returns the f64 content.
func (v Value) AsFloat64() (float64, error) {
	if err := v.check(KindFloat64); err != nil {
		return 0, err
	}
	return v.floatVal, nil
}

// AsVec2 returns the 2D-vector content.
func (v Value) AsVec2() (Vec2, error) {
	if err := v.check(KindVec2); err != nil {
		return Vec2{}, err
	}
	return Vec2{X: v.vecVal.X, Y: v.vecVal.Y}, nil
}

// AsVec3 returns the 3D-vector content.
func (v Value) AsVec3() (Vec3, error) {
	if err := v.check(KindVec3); err != nil {
		return Vec3{}, err
	}
	return v.vecVal, nil
}

// AsBytes returns short- or long-buffer content.
func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBuffer && v.kind != KindLongBuffer {
		return nil, &EncodingError{Reason: fmt.Sprintf("expected buf, got %s", v.kind), Offset: -1}
	}
	if !v.populated {
		return nil, &EncodingError{Reason: "value is an empty slot", Offset: -1}
	}
	return v.bytesVal, nil
}

// AsStr returns short- or long-string content.
func (v Value) AsStr() (string, error) {
	if v.kind != KindString && v.kind != KindLongString {
		return "", &EncodingError{Reason: fmt.Sprintf("expected str, got %s", v.kind), Offset: -1}
	}
	if !v.populated {
		return "", &EncodingError{Reason: "value is an empty slot", Offset: -1}
	}
	return v.strVal, nil
}

// AsInt64 returns the signed-64 content.
func (v Value) AsInt64() (int64, error) {
	if err := v.check(KindInt64); err != nil {
		return 0, err
	}
	return v.intVal, nil
}

// AsArray returns the nested-sequence content.
func (v Value) AsArray() ([]Value, error) {
	if err := v.check(KindArray); err != nil {
		return nil, err
	}
	return v.arrVal, nil
}

func (v Value) check(want Kind) error {
	if v.kind != want {
		return &EncodingError{Reason: fmt.Sprintf("expected %s, got %s", want, v.kind), Offset: -1}
	}
	if !v.populated {
		return &EncodingError{Reason: "value is an empty slot", Offset: -1}
	}
	return nil
}

// Equal reports whether two values have the same kind, population state and
// content. Buffers compare byte-wise; nested sequences element-wise.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.populated != o.populated {
		return false
	}
	if !v.populated {
		return true
	}
	switch v.kind {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.uintVal == o.uintVal
	case KindInt64:
		return v.intVal == o.intVal
	case KindFloat32, KindFloat64:
		return v.floatVal == o.floatVal
	case KindVec2, KindVec3:
		return v.vecVal == o.vecVal
	case KindString, KindLongString:
		return v.strVal == o.strVal
	case KindBuffer, KindLongBuffer:
		if len(v.bytesVal) != len(o.bytesVal) {
			return false
		}
		for i := range v.bytesVal {
			if v.bytesVal[i] != o.bytesVal[i] {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.arrVal) != len(o.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(o.arrVal[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the value for diagnostics and CLI display.
func (v Value) String() string {
	if !v.populated {
		return v.kind.String() + "(slot)"
	}
	switch v.kind {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.uintVal, 10)
	case KindInt64:
		return strconv.FormatInt(v.intVal, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.floatVal, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.floatVal, 'g', -1, 64)
	case KindVec2:
		return fmt.Sprintf("(%g, %g)", v.vecVal.X, v.vecVal.Y)
	case KindVec3:
		return fmt.Sprintf("(%g, %g, %g)", v.vecVal.X, v.vecVal.Y, v.vecVal.Z)
	case KindString, KindLongString:
		return strconv.Quote(v.strVal)
	case KindBuffer, KindLongBuffer:
		return fmt.Sprintf("%s[%d bytes]", v.kind, len(v.bytesVal))
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.arrVal))
	default:
		return v.kind.String()
	}
}
