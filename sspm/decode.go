package sspm

import (
	"fmt"
	"io"

	"github.com/Neumenon/mapcodec/binio"
	"github.com/Neumenon/mapcodec/mapfile"
)

// sectionOffsets is the ten-slot offset table: absolute byte offsets and
// lengths for each variable section, read once and held for later seeks.
type sectionOffsets struct {
	customOff, customLen uint64
	audioOff, audioLen   uint64
	coverOff, coverLen   uint64
	schemaOff, schemaLen uint64
	recordOff, recordLen uint64
}

// Decode reads one SSPM container from r and materializes the map. The
// stream must be positioned at the start of the container. Decode performs
// a single pass with backward seeks only to offset-table-declared
// sections; it does not retry and leaves the stream position unspecified.
func Decode(r io.ReadSeeker) (*mapfile.Map, error) {
	br, err := binio.NewReader(r)
	if err != nil {
		return nil, err
	}

	if err := decodeHeader(br); err != nil {
		return nil, err
	}

	// Static metadata. The hash is carried but never verified, and the
	// star rating is dead weight in every known file.
	if _, err := br.ReadHash(); err != nil {
		return nil, err
	}
	length, err := br.ReadUint32()
	if err != nil {
		return nil, err
	}
	noteCount, err := br.ReadUint32()
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadUint32(); err != nil { // total record count
		return nil, err
	}
	difficulty, err := br.ReadUint8()
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadUint16(); err != nil { // star rating
		return nil, err
	}
	hasAudio, err := br.ReadBool()
	if err != nil {
		return nil, err
	}
	hasCover, err := br.ReadBool()
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadBool(); err != nil { // has-mod
		return nil, err
	}

	offs, err := decodeOffsets(br)
	if err != nil {
		return nil, err
	}

	id, err := br.ReadString()
	if err != nil {
		return nil, err
	}
	title, err := br.ReadString()
	if err != nil {
		return nil, err
	}
	song, err := br.ReadString()
	if err != nil {
		return nil, err
	}

	mapperCount, err := br.ReadUint16()
	if err != nil {
		return nil, err
	}
	mappers := make([]string, 0, mapperCount)
	for i := 0; i < int(mapperCount); i++ {
		name, err := br.ReadString()
		if err != nil {
			return nil, err
		}
		mappers = append(mappers, name)
	}

	custom, err := decodeCustomData(br)
	if err != nil {
		return nil, err
	}

	m := &mapfile.Map{
		ID:         id,
		Length:     length,
		Title:      title,
		Song:       song,
		Mappers:    mappers,
		Difficulty: difficulty,
		Custom:     custom,
		Format:     mapfile.FormatSSPM,
	}

	// The exporter stores the difficulty display name as a custom-data
	// string; surface it so a decode/encode cycle preserves it.
	if v, ok := custom["difficulty_name"]; ok && v.Kind() == mapfile.KindString {
		if name, err := v.AsStr(); err == nil {
			m.DifficultyName = name
		}
	}

	// Media sections are seek targets; skip the seek entirely when the
	// presence flag is clear so the position stays stable.
	if hasAudio {
		if _, err := br.Seek(int64(offs.audioOff), io.SeekStart); err != nil {
			return nil, err
		}
		m.Audio, err = br.ReadBytes(offs.audioLen)
		if err != nil {
			return nil, err
		}
	}
	if hasCover {
		if _, err := br.Seek(int64(offs.coverOff), io.SeekStart); err != nil {
			return nil, err
		}
		m.Cover, err = br.ReadBytes(offs.coverLen)
		if err != nil {
			return nil, err
		}
	}

	if _, err := br.Seek(int64(offs.schemaOff), io.SeekStart); err != nil {
		return nil, err
	}
	schema, err := decodeSchema(br)
	if err != nil {
		return nil, err
	}

	if _, err := br.Seek(int64(offs.recordOff), io.SeekStart); err != nil {
		return nil, err
	}
	if err := decodeRecords(br, schema, offs.recordLen, noteCount, m); err != nil {
		return nil, err
	}

	return m, nil
}

func decodeHeader(br *binio.Reader) error {
	sig, err := br.ReadBytes(4)
	if err != nil {
		return err
	}
	if sig[0] != magic[0] || sig[1] != magic[1] || sig[2] != magic[2] || sig[3] != magic[3] {
		return &mapfile.FormatError{Reason: "incorrect file signature"}
	}
	version, err := br.ReadUint16()
	if err != nil {
		return err
	}
	if version != formatVersion {
		return &mapfile.FormatError{Reason: fmt.Sprintf("unsupported SSPM version %d", version)}
	}
	// Remaining header bytes are unused.
	if _, err := br.ReadBytes(4); err != nil {
		return err
	}
	return nil
}

func decodeOffsets(br *binio.Reader) (sectionOffsets, error) {
	var offs sectionOffsets
	for _, slot := range []*uint64{
		&offs.customOff, &offs.customLen,
		&offs.audioOff, &offs.audioLen,
		&offs.coverOff, &offs.coverLen,
		&offs.schemaOff, &offs.schemaLen,
		&offs.recordOff, &offs.recordLen,
	} {
		v, err := br.ReadUint64()
		if err != nil {
			return offs, err
		}
		*slot = v
	}
	return offs, nil
}

// decodeCustomData reads the typed key/value block that follows the mapper
// list. Field order is not significant and duplicate names overwrite.
func decodeCustomData(br *binio.Reader) (map[string]mapfile.Value, error) {
	count, err := br.ReadUint16()
	if err != nil {
		return nil, err
	}
	fields := make(map[string]mapfile.Value, count)
	for i := 0; i < int(count); i++ {
		name, err := br.ReadString()
		if err != nil {
			return nil, err
		}
		tag, err := br.ReadUint8()
		if err != nil {
			return nil, err
		}
		kind, err := mapfile.KindFromTag(tag)
		if err != nil {
			return nil, err
		}
		val, err := decodeValue(br, kind)
		if err != nil {
			return nil, err
		}
		fields[name] = val
	}
	return fields, nil
}

// decodeSchema reads the record-type table: per entry a name, a slot
// count, one type tag per slot, and a mandatory zero terminator.
func decodeSchema(br *binio.Reader) (*mapfile.Schema, error) {
	count, err := br.ReadUint8()
	if err != nil {
		return nil, err
	}
	entries := make([]mapfile.Entry, 0, count)
	for i := 0; i < int(count); i++ {
		name, err := br.ReadString()
		if err != nil {
			return nil, err
		}
		slotCount, err := br.ReadUint8()
		if err != nil {
			return nil, err
		}
		slots := make([]mapfile.Kind, 0, slotCount)
		for j := 0; j < int(slotCount); j++ {
			tag, err := br.ReadUint8()
			if err != nil {
				return nil, err
			}
			kind, err := mapfile.KindFromTag(tag)
			if err != nil {
				return nil, err
			}
			slots = append(slots, kind)
		}
		term, err := br.ReadUint8()
		if err != nil {
			return nil, err
		}
		if term != 0x00 {
			return nil, &mapfile.EncodingError{
				Reason: fmt.Sprintf("schema entry %q missing zero terminator", name),
				Offset: br.Position() - 1,
			}
		}
		entries = append(entries, mapfile.Entry{Name: name, Slots: slots})
	}
	return mapfile.NewSchema(entries...), nil
}

// decodeRecords walks the record stream up to its declared end offset,
// projecting note records and retaining everything else opaquely.
func decodeRecords(br *binio.Reader, schema *mapfile.Schema, streamLen uint64, noteCount uint32, m *mapfile.Map) error {
	// Bound the declared length before converting to an offset; a huge
	// value would wrap int64 and slip past the end check.
	if streamLen > uint64(br.Size()) {
		return &mapfile.TruncatedError{Offset: br.Position(), Err: io.ErrUnexpectedEOF}
	}
	end := br.Position() + int64(streamLen)
	if end > br.Size() {
		return &mapfile.TruncatedError{Offset: br.Position(), Err: io.ErrUnexpectedEOF}
	}

	m.Notes = make([]mapfile.Note, 0, capHint(uint64(noteCount), streamLen))
	for br.Position() < end {
		ms, err := br.ReadUint32()
		if err != nil {
			return err
		}
		id, err := br.ReadUint8()
		if err != nil {
			return err
		}
		entry, ok := schema.Lookup(id)
		if !ok {
			return &mapfile.EncodingError{
				Reason: fmt.Sprintf("record references unregistered schema id %d", id),
				Offset: br.Position() - 1,
			}
		}

		obj := mapfile.Object{Name: entry.Name, Millisecond: ms}
		obj.Fields = make([]mapfile.Value, 0, len(entry.Slots))
		for _, kind := range entry.Slots {
			val, err := decodeValue(br, kind)
			if err != nil {
				return err
			}
			obj.Fields = append(obj.Fields, val)
		}

		// The declared stream length is authoritative; a record that
		// runs past it means the table and the stream disagree.
		if br.Position() > end {
			return &mapfile.EncodingError{
				Reason: "record overruns declared record-stream length",
				Offset: br.Position(),
			}
		}

		if entry.Name == mapfile.NoteRecordName {
			note, err := mapfile.NoteFromObject(obj)
			if err != nil {
				return err
			}
			m.Notes = append(m.Notes, note)
		} else {
			m.Objects = append(m.Objects, obj)
		}
	}
	return nil
}

// decodeValue reads one populated value of the given kind. It serves both
// the custom-data block and the record stream.
func decodeValue(br *binio.Reader, kind mapfile.Kind) (mapfile.Value, error) {
	switch kind {
	case mapfile.KindUint8:
		v, err := br.ReadUint8()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.Uint8(v), nil
	case mapfile.KindUint16:
		v, err := br.ReadUint16()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.Uint16(v), nil
	case mapfile.KindUint32:
		v, err := br.ReadUint32()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.Uint32(v), nil
	case mapfile.KindUint64:
		v, err := br.ReadUint64()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.Uint64(v), nil
	case mapfile.KindFloat32:
		v, err := br.ReadFloat32()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.Float32(v), nil
	case mapfile.KindFloat64:
		v, err := br.ReadFloat64()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.Float64(v), nil
	case mapfile.KindVec2:
		v, err := br.ReadVec2(compactBias)
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.Vec2Val(v), nil
	case mapfile.KindBuffer:
		v, err := br.ReadBuffer()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.Buffer(v), nil
	case mapfile.KindLongBuffer:
		v, err := br.ReadLongBuffer()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.LongBuffer(v), nil
	case mapfile.KindString:
		v, err := br.ReadString()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.Str(v), nil
	case mapfile.KindLongString:
		v, err := br.ReadLongString()
		if err != nil {
			return mapfile.Value{}, err
		}
		return mapfile.LongStr(v), nil
	default:
		// Nested sequences, 3D vectors and signed-64 are declared by
		// the value model but have no decode encoding.
		return mapfile.Value{}, &mapfile.UnsupportedError{Feature: fmt.Sprintf("%s field decoding", kind)}
	}
}

// capHint bounds a header-declared element count by what the section could
// physically hold, so a hostile count cannot drive a huge allocation.
func capHint(declared, sectionLen uint64) int {
	// A record is at least 5 bytes (timestamp + schema id).
	most := sectionLen / 5
	if declared < most {
		most = declared
	}
	if most > 1<<20 {
		most = 1 << 20
	}
	return int(most)
}
