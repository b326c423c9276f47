package mapfile

// NoteRecordName is the reserved schema name for note records.
const NoteRecordName = "ssp_note"

// Note is one timestamped playable position. Timestamps are expected to be
// non-decreasing across a map but the format does not enforce it.
type Note struct {
	Millisecond uint32
	Position    Vec2
}

// NoteFromObject projects a generic record into a Note. The record must
// carry at least one field and its first field must be a populated 2D
// vector; anything else is an encoding error.
func NoteFromObject(obj Object) (Note, error) {
	if len(obj.Fields) < 1 {
		return Note{}, &EncodingError{Reason: "note record has no fields", Offset: -1}
	}
	pos, err := obj.Fields[0].AsVec2()
	if err != nil {
		return Note{}, &EncodingError{Reason: "note record field is not a 2D vector", Offset: -1}
	}
	return Note{Millisecond: obj.Millisecond, Position: pos}, nil
}
