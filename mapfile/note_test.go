package mapfile

import (
	"errors"
	"testing"
)

func TestNoteFromObject(t *testing.T) {
	obj := Object{
		Name:        NoteRecordName,
		Millisecond: 1000,
		Fields:      []Value{Vec2Val(Vec2{X: 3, Y: 4})},
	}
	note, err := NoteFromObject(obj)
	if err != nil {
		t.Fatalf("NoteFromObject failed: %v", err)
	}
	if note.Millisecond != 1000 {
		t.Errorf("expected ms 1000, got %d", note.Millisecond)
	}
	if note.Position != (Vec2{X: 3, Y: 4}) {
		t.Errorf("expected position (3, 4), got %v", note.Position)
	}
}

func TestNoteFromObject_BadShapes(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
	}{
		{"no fields", Object{Name: NoteRecordName}},
		{"wrong kind", Object{Name: NoteRecordName, Fields: []Value{Uint32(5)}}},
		{"unpopulated slot", Object{Name: NoteRecordName, Fields: []Value{Slot(KindVec2)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NoteFromObject(tt.obj)
			var enc *EncodingError
			if !errors.As(err, &enc) {
				t.Fatalf("expected EncodingError, got %v", err)
			}
		})
	}
}

func TestSchema_Lookup(t *testing.T) {
	s := NewSchema(
		Entry{Name: NoteRecordName, Slots: []Kind{KindVec2}},
		Entry{Name: "ssp_beat", Slots: []Kind{KindUint8, KindString}},
	)
	e, ok := s.Lookup(1)
	if !ok {
		t.Fatal("expected entry at id 1")
	}
	if e.Name != "ssp_beat" || len(e.Slots) != 2 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if _, ok := s.Lookup(2); ok {
		t.Error("expected lookup miss for unregistered id")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", s.Len())
	}

	var nilSchema *Schema
	if _, ok := nilSchema.Lookup(0); ok {
		t.Error("nil schema lookup should miss")
	}
}
