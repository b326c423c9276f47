package mapfile

import "fmt"

// Entry describes one record type: its name and the ordered field kinds a
// record of that type carries in the stream.
type Entry struct {
	Name  string
	Slots []Kind
}

// Schema is a per-file record-type registry. Entries are addressed by
// their positional index, matching the one-byte id each in-stream record
// carries. A schema is built once while decoding (or encoding) the schema
// table section and never mutated afterward.
type Schema struct {
	entries []Entry
}

// NewSchema creates a schema from entries in id order.
func NewSchema(entries ...Entry) *Schema {
	return &Schema{entries: entries}
}

// Lookup returns the entry registered under id.
func (s *Schema) Lookup(id uint8) (Entry, bool) {
	if s == nil || int(id) >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[id], true
}

// Len returns the number of registered entries.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns all entries in id order.
func (s *Schema) Entries() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Object is a decoded generic record: a schema name, the record timestamp,
// and one populated value per schema slot in declared order. Records whose
// name the codec does not recognize stay in this shape.
type Object struct {
	Name        string
	Millisecond uint32
	Fields      []Value
}

// String renders the record for diagnostics.
func (o Object) String() string {
	return fmt.Sprintf("%s@%dms[%d fields]", o.Name, o.Millisecond, len(o.Fields))
}
